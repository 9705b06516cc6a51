// SPDX-License-Identifier: MIT

package potential

// Func is a pure real potential V(x).
type Func func(x float64) float64

// Zero is the infinite square well interior: V ≡ 0.
func Zero() Func {
	return func(float64) float64 { return 0 }
}

// Constant returns V ≡ c.
func Constant(c float64) Func {
	return func(float64) float64 { return c }
}

// Harmonic returns V(x) = ½·k·x².
func Harmonic(k float64) Func {
	return func(x float64) float64 { return 0.5 * k * x * x }
}

// Shifted returns V(x − x0).
func Shifted(v Func, x0 float64) Func {
	return func(x float64) float64 { return v(x - x0) }
}
