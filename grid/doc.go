// Package grid builds the uniform 1-D sampling grid the operator is
// discretized on: n points spanning [XMin, XMax] inclusive, spacing
// H = (XMax−XMin)/(n−1), and the potential sampled at every point.
package grid
