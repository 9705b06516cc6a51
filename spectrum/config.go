// SPDX-License-Identifier: MIT

package spectrum

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfig indicates a resolved configuration that cannot be run.
var ErrInvalidConfig = errors.New("spectrum: invalid configuration")

// Config is a fully resolved run configuration.
type Config struct {
	MinimalGrid     int     // points on the coarsest level; spectra are truncated to this length
	GridIncrements  int     // extra refinement levels beyond the coarsest
	IncrementFactor float64 // configured refinement ratio between levels
	Neighbors       int     // stencil neighbor order
	UseRomberg      bool    // extrapolate across levels
	LeadingOrder    int     // leading error order removed by the first extrapolation
}

// Overrides replaces preset fields one by one; nil keeps the preset value.
type Overrides struct {
	MinimalGrid     *int
	GridIncrements  *int
	IncrementFactor *float64
	Neighbors       *int
	UseRomberg      *bool
	LeadingOrder    *int
}

// Resolve merges ov over the preset of mode and validates the result.
//
// Errors:
//   - ErrInvalidMode for an unknown mode.
//   - ErrInvalidConfig when MinimalGrid < 2, GridIncrements < 0,
//     LeadingOrder ≤ 0, or Romberg with increments lacks a factor > 1.
//
// Neighbor order is not checked here; the assembler reports
// stencil.ErrUnsupportedOrder.
func Resolve(mode Mode, ov Overrides) (Config, error) {
	cfg, err := mode.Defaults()
	if err != nil {
		return Config{}, err
	}

	if ov.MinimalGrid != nil {
		cfg.MinimalGrid = *ov.MinimalGrid
	}
	if ov.GridIncrements != nil {
		cfg.GridIncrements = *ov.GridIncrements
	}
	if ov.IncrementFactor != nil {
		cfg.IncrementFactor = *ov.IncrementFactor
	}
	if ov.Neighbors != nil {
		cfg.Neighbors = *ov.Neighbors
	}
	if ov.UseRomberg != nil {
		cfg.UseRomberg = *ov.UseRomberg
	}
	if ov.LeadingOrder != nil {
		cfg.LeadingOrder = *ov.LeadingOrder
	}

	if err = cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("mode %s: %w", mode, err)
	}

	return cfg, nil
}

func (c Config) validate() error {
	switch {
	case c.MinimalGrid < 2:
		return fmt.Errorf("minimalgrid=%d < 2: %w", c.MinimalGrid, ErrInvalidConfig)
	case c.GridIncrements < 0:
		return fmt.Errorf("gridincrements=%d < 0: %w", c.GridIncrements, ErrInvalidConfig)
	case c.LeadingOrder <= 0:
		return fmt.Errorf("leading order=%d ≤ 0: %w", c.LeadingOrder, ErrInvalidConfig)
	case c.UseRomberg && c.GridIncrements > 0 &&
		(math.IsNaN(c.IncrementFactor) || math.IsInf(c.IncrementFactor, 0) || c.IncrementFactor <= 1):
		return fmt.Errorf("incrementfactor=%g must be > 1: %w", c.IncrementFactor, ErrInvalidConfig)
	}

	return nil
}

// Levels returns how many grids are solved: GridIncrements+1 with Romberg,
// otherwise 1.
func (c Config) Levels() int {
	if !c.UseRomberg {
		return 1
	}

	return c.GridIncrements + 1
}

// PointCounts returns the grid sizes of every level:
//
//	points[i] = round((MinimalGrid+1)·IncrementFactor^i) − 1
//
// Without Romberg it is just [MinimalGrid].
func PointCounts(c Config) []int {
	counts := make([]int, c.Levels())
	counts[0] = c.MinimalGrid
	for i := 1; i < len(counts); i++ {
		counts[i] = int(math.Round(float64(c.MinimalGrid+1)*math.Pow(c.IncrementFactor, float64(i)))) - 1
	}

	return counts
}

// RealizedFactors returns (points[i+1]+1)/(points[i]+1) for consecutive
// levels. Integer rounding makes them drift from the configured factor.
func RealizedFactors(points []int) []float64 {
	if len(points) < 2 {
		return nil
	}
	out := make([]float64, len(points)-1)
	for i := range out {
		out[i] = float64(points[i+1]+1) / float64(points[i]+1)
	}

	return out
}
