// SPDX-License-Identifier: MIT

package potential

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrInvalidExpression is returned when a textual potential cannot be
// compiled or does not evaluate to a number.
var ErrInvalidExpression = errors.New("potential: invalid expression")

// env is the evaluation environment exposed to expressions. The builtin
// abs, min, max, floor, ceil and round functions come from expr itself.
type env struct {
	X  float64 `expr:"x"`
	Pi float64 `expr:"pi"`

	Sin  func(float64) float64          `expr:"sin"`
	Cos  func(float64) float64          `expr:"cos"`
	Tan  func(float64) float64          `expr:"tan"`
	Sinh func(float64) float64          `expr:"sinh"`
	Cosh func(float64) float64          `expr:"cosh"`
	Tanh func(float64) float64          `expr:"tanh"`
	Exp  func(float64) float64          `expr:"exp"`
	Log  func(float64) float64          `expr:"log"`
	Sqrt func(float64) float64          `expr:"sqrt"`
	Pow  func(float64, float64) float64 `expr:"pow"`
}

func newEnv(x float64) env {
	return env{
		X:    x,
		Pi:   math.Pi,
		Sin:  math.Sin,
		Cos:  math.Cos,
		Tan:  math.Tan,
		Sinh: math.Sinh,
		Cosh: math.Cosh,
		Tanh: math.Tanh,
		Exp:  math.Exp,
		Log:  math.Log,
		Sqrt: math.Sqrt,
		Pow:  math.Pow,
	}
}

// Compile turns an expression such as "0.5*x^2" or "-1/sqrt(x*x+1)" into a
// Func. The program is compiled once; each call only runs the VM.
//
// Compile probes the program at x = 0 so type errors surface here rather than
// while the grid is being sampled. At evaluation time a runtime failure
// yields NaN.
func Compile(expression string) (Func, error) {
	src := strings.TrimSpace(expression)
	if src == "" {
		return nil, fmt.Errorf("empty expression: %w", ErrInvalidExpression)
	}

	program, err := expr.Compile(src, expr.Env(env{}), expr.AsFloat64())
	if err != nil {
		return nil, fmt.Errorf("compile %q: %w: %v", src, ErrInvalidExpression, err)
	}
	if _, err = run(program, 0); err != nil {
		return nil, fmt.Errorf("probe %q: %w: %v", src, ErrInvalidExpression, err)
	}

	return func(x float64) float64 {
		v, err := run(program, x)
		if err != nil {
			return math.NaN()
		}

		return v
	}, nil
}

// MustCompile is like Compile but panics on error. Intended for package-level
// fixtures and tests.
func MustCompile(expression string) Func {
	f, err := Compile(expression)
	if err != nil {
		panic(err)
	}

	return f
}

func run(program *vm.Program, x float64) (float64, error) {
	out, err := expr.Run(program, newEnv(x))
	if err != nil {
		return 0, err
	}
	switch v := out.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	default:
		return 0, fmt.Errorf("result %T is not numeric", out)
	}
}
