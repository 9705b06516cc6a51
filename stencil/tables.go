// SPDX-License-Identifier: MIT

package stencil

import "fmt"

// Supported neighbor orders.
const (
	MinOrder = 1
	MaxOrder = 7

	// maxReferenceOrder is the highest order present in the reference family.
	maxReferenceOrder = 6
)

// Coefficients is a symmetric central stencil: index 0 is the center weight,
// index d the weight shared by the ±d neighbors.
type Coefficients []float64

// Order returns the neighbor order k of the stencil.
func (c Coefficients) Order() int { return len(c) - 1 }

// Sum returns c0 + 2·Σc_d. A valid second-derivative stencil annihilates
// constants, so the result is zero up to rounding.
func (c Coefficients) Sum() float64 {
	if len(c) == 0 {
		return 0
	}
	s := c[0]
	for _, v := range c[1:] {
		s += 2 * v
	}

	return s
}

// Correction is an asymmetric boundary stencil. Entry m multiplies the sample
// at offset m−1 from the row's diagonal, so entry 0 lands on the (Dirichlet)
// ghost point left of the domain in the first row.
type Correction []float64

// laplacian holds the central stencils, indexed by neighbor order.
var laplacian = [MaxOrder + 1]Coefficients{
	1: {-2.0, 1.0},
	2: {-5. / 2, 4. / 3, -1. / 12},
	3: {-490. / 180, 270. / 180, -27. / 180, 2. / 180},
	4: {-14350. / 5040, 8064. / 5040, -1008. / 5040, 128. / 5040, -9. / 5040},
	5: {-73766. / 25200, 42000. / 25200, -6000. / 25200, 1000. / 25200, -125. / 25200,
		8. / 25200},
	6: {-2480478. / 831600, 1425600. / 831600, -222750. / 831600, 44000. / 831600,
		-7425. / 831600, 864. / 831600, -50. / 831600},
	7: {-228812298. / 75675600, 132432300. / 75675600, -22072050. / 75675600,
		4904900. / 75675600, -1003275. / 75675600, 160524. / 75675600,
		-17150. / 75675600, 900. / 75675600},
}

// reference holds the same stencils written in lowest terms (orders 1..6).
var reference = [maxReferenceOrder + 1]Coefficients{
	1: {-2.0, 1.0},
	2: {-5. / 2, 4. / 3, -1. / 12},
	3: {-49. / 18, 3. / 2, -3. / 20, 1. / 90},
	4: {-205. / 72, 8. / 5, -1. / 5, 8. / 315, -1. / 560},
	5: {-5269. / 1800, 5. / 3, -5. / 21, 5. / 126, -5. / 1008, 1. / 3150},
	6: {-5369. / 1800, 12. / 7, -15. / 56, 10. / 189, -1. / 112, 2. / 1925, -1. / 16632},
}

// boundary holds the correction stencils; order 1 needs none.
var boundary = [MaxOrder + 1]Correction{
	1: {},
	2: {10. / 12, -15. / 12, -4. / 12, 14. / 12, -6. / 12, 1. / 12},
	3: {126. / 180, -70. / 180, -486. / 180, 855. / 180, -670. / 180, 324. / 180, -90. / 180,
		11. / 180},
	4: {3044. / 5040, 2135. / 5040, -28944. / 5040, 57288. / 5040, -65128. / 5040,
		51786. / 5040, -28560. / 5040, 10424. / 5040, -2268. / 5040, 223. / 5040},
	5: {13420. / 25200, 29513. / 25200, -234100. / 25200, 540150. / 25200,
		-804200. / 25200, 888510. / 25200, -731976. / 25200, 444100. / 25200,
		-192900. / 25200, 56825. / 25200, -10180. / 25200, 838. / 25200},
	6: {397020. / 831600, 1545544. / 831600, -11009160. / 831600, 29331060. / 831600,
		-53967100. / 831600, 76285935. / 831600, -83567088. / 831600,
		70858920. / 831600, -46112220. / 831600, 22619850. / 831600,
		-8099080. / 831600, 1999044. / 831600, -304260. / 831600, 21535. / 831600},
	7: {32808524. / 75675600, 188699914. / 75675600, -1325978220. / 75675600,
		4020699410. / 75675600, -8806563220. / 75675600, 15162089943. / 75675600,
		-20721128428. / 75675600, 22561929390. / 75675600, -19559645820. / 75675600,
		13424150740. / 75675600, -7206307108. / 75675600, 2963338014. / 75675600,
		-901775420. / 75675600, 191429035. / 75675600, -25318020. / 75675600,
		1571266. / 75675600},
}

// CheckOrder reports whether order is inside [MinOrder, MaxOrder].
func CheckOrder(order int) error {
	if order < MinOrder || order > MaxOrder {
		return fmt.Errorf("order %d not in [%d,%d]: %w", order, MinOrder, MaxOrder, ErrUnsupportedOrder)
	}

	return nil
}

// Laplacian returns a copy of the central stencil for the given neighbor order.
// Higher orders are more accurate (error O(h^2k)) and widen the band.
func Laplacian(order int) (Coefficients, error) {
	if err := CheckOrder(order); err != nil {
		return nil, err
	}

	return append(Coefficients(nil), laplacian[order]...), nil
}

// Reference returns a copy of the reference-family stencil (orders 1..6).
func Reference(order int) (Coefficients, error) {
	if order < MinOrder || order > maxReferenceOrder {
		return nil, fmt.Errorf("reference order %d not in [%d,%d]: %w",
			order, MinOrder, maxReferenceOrder, ErrUnsupportedOrder)
	}

	return append(Coefficients(nil), reference[order]...), nil
}

// BoundaryCorrection returns a copy of the correction stencil matching
// Laplacian(order). Order 1 yields an empty stencil since no rows need
// rewriting.
func BoundaryCorrection(order int) (Correction, error) {
	if err := CheckOrder(order); err != nil {
		return nil, err
	}

	return append(Correction{}, boundary[order]...), nil
}

// Rows returns how many leading (and, mirrored, trailing) operator rows the
// correction of the given order rewrites.
func Rows(order int) int {
	if order < 2 {
		return 0
	}

	return order - 1
}
