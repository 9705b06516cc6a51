// Package potential provides the right-hand-side functions V(x) sampled on
// the grid: a few closed-form builtins and a compiler for textual
// expressions in the variable x.
//
//	v, err := potential.Compile("0.5*x^2")
//	if err != nil { ... }
//	v(1.0) // 0.5
//
// Every Func must be pure: the grid samples it exactly once per point.
package potential
