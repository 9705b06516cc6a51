// SPDX-License-Identifier: MIT

// Package spectrum computes the energy spectrum of
//
//	Hcoeff · (−½ u'') + V(x) u = E u   on [xmin, xmax]
//
// by finite differences, optionally extrapolated to the continuum limit with
// Romberg's method over several grid resolutions.
//
// A run is described by a preset Mode and field-by-field Overrides, resolved
// into a Config up front. Without Romberg one grid of MinimalGrid points is
// solved. With Romberg, GridIncrements+1 grids growing geometrically by
// IncrementFactor are solved (optionally in parallel), truncated to
// MinimalGrid eigenvalues each, and extrapolated per eigenvalue index.
package spectrum

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/katalvlaran/fdspectrum/eigen"
	"github.com/katalvlaran/fdspectrum/grid"
	"github.com/katalvlaran/fdspectrum/hamiltonian"
	"github.com/katalvlaran/fdspectrum/potential"
	"github.com/katalvlaran/fdspectrum/romberg"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// FactorTolerance is the relative deviation between realized and configured
// increment factors above which a warning is logged.
const FactorTolerance = 0.01

// Result is a computed spectrum with its provenance.
type Result struct {
	Energies        []float64 // ascending in both modes
	LogErrors       []float64 // LogErrors[i] belongs to Energies[i]; nil without Romberg
	Config          Config
	PointCounts     []int
	RealizedFactors []float64
}

// Option configures EnergySpectrum.
type Option func(*options)

type options struct {
	logger      zerolog.Logger
	solver      eigen.Solver
	parallelism int
}

// WithLogger sets the diagnostics logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithSolver selects the eigensolver used for every level.
func WithSolver(s eigen.Solver) Option {
	return func(o *options) {
		if s != nil {
			o.solver = s
		}
	}
}

// WithParallelism bounds how many levels are solved concurrently.
// Panics when n < 1.
func WithParallelism(n int) Option {
	if n < 1 {
		panic("spectrum: WithParallelism: n must be ≥ 1")
	}

	return func(o *options) { o.parallelism = n }
}

func gatherOptions(user ...Option) options {
	o := options{
		logger:      zerolog.Nop(),
		solver:      eigen.Default(),
		parallelism: 1,
	}
	for _, set := range user {
		if set != nil {
			set(&o)
		}
	}

	return o
}

// EnergySpectrum resolves the run configuration and computes the spectrum.
//
// Implementation:
//   - Stage 1: Resolve(mode, ov); PointCounts.
//   - Stage 2: solve every level; each spectrum is truncated to MinimalGrid
//     and stored in its own slot. Levels run on an errgroup bounded by
//     WithParallelism.
//   - Stage 3: without Romberg return level 0; otherwise log realized
//     factors, run romberg.IntegrateSpectrum with the configured factor and
//     sort the extrapolants ascending, carrying each log error along.
//
// Errors:
//   - ErrInvalidMode, ErrInvalidConfig (configuration).
//   - grid.ErrInvalidDomain, stencil.ErrUnsupportedOrder,
//     eigen.ErrNumericalFailure, hamiltonian.ErrNonFiniteOperator (per level,
//     the first failure wins).
//
// Complexity:
//   - Time Σ O(n_i³), peak memory Σ O(n_i²) over levels solved at once.
func EnergySpectrum(
	xmin, xmax float64,
	v potential.Func,
	hcoeff float64,
	mode Mode,
	ov Overrides,
	opts ...Option,
) (Result, error) {
	o := gatherOptions(opts...)
	log := o.logger.With().Str("mode", mode.String()).Logger()

	cfg, err := Resolve(mode, ov)
	if err != nil {
		return Result{}, err
	}
	points := PointCounts(cfg)
	log.Debug().
		Ints("points", points).
		Int("neighbors", cfg.Neighbors).
		Bool("romberg", cfg.UseRomberg).
		Float64("factor", cfg.IncrementFactor).
		Msg("resolved configuration")

	start := time.Now()
	levels := make([][]float64, len(points))
	var g errgroup.Group
	g.SetLimit(o.parallelism)
	for i, n := range points {
		i, n := i, n
		g.Go(func() error {
			t0 := time.Now()
			gr, err := grid.Build(xmin, xmax, n, v)
			if err != nil {
				return fmt.Errorf("level %d (n=%d): %w", i, n, err)
			}
			spec, err := hamiltonian.Solve(gr, hcoeff,
				hamiltonian.WithNeighbors(cfg.Neighbors),
				hamiltonian.WithSolver(o.solver))
			if err != nil {
				return fmt.Errorf("level %d (n=%d): %w", i, n, err)
			}
			levels[i] = spec[:min(len(spec), cfg.MinimalGrid)]
			log.Debug().
				Int("level", i).
				Int("points", n).
				Dur("elapsed", time.Since(t0)).
				Msg("level solved")

			return nil
		})
	}
	if err = g.Wait(); err != nil {
		log.Error().Err(err).Msg("spectrum failed")

		return Result{}, err
	}

	res := Result{Config: cfg, PointCounts: points}
	if !cfg.UseRomberg {
		res.Energies = levels[0]
		log.Info().Int("energies", len(res.Energies)).Dur("elapsed", time.Since(start)).Msg("spectrum computed")

		return res, nil
	}

	res.RealizedFactors = RealizedFactors(points)
	for i, f := range res.RealizedFactors {
		ev := log.Debug()
		if math.Abs(f-cfg.IncrementFactor) > FactorTolerance*cfg.IncrementFactor {
			ev = log.Warn()
		}
		ev.Int("level", i+1).
			Float64("realized", f).
			Float64("factor", cfg.IncrementFactor).
			Msg("realized increment factor")
	}

	res.Energies, res.LogErrors, err = romberg.IntegrateSpectrum(levels, cfg.IncrementFactor,
		romberg.WithLeadingOrder(cfg.LeadingOrder))
	if err != nil {
		return Result{}, err
	}
	sortByEnergy(res.Energies, res.LogErrors)
	log.Info().
		Int("energies", len(res.Energies)).
		Int("levels", len(levels)).
		Dur("elapsed", time.Since(start)).
		Msg("spectrum extrapolated")

	return res, nil
}

// Energies returns only the eigenvalues of EnergySpectrum.
func Energies(
	xmin, xmax float64,
	v potential.Func,
	hcoeff float64,
	mode Mode,
	ov Overrides,
	opts ...Option,
) ([]float64, error) {
	res, err := EnergySpectrum(xmin, xmax, v, hcoeff, mode, ov, opts...)
	if err != nil {
		return nil, err
	}

	return res.Energies, nil
}

// energyPairs sorts energies and their log errors together.
type energyPairs struct{ e, logErr []float64 }

func (p energyPairs) Len() int           { return len(p.e) }
func (p energyPairs) Less(i, j int) bool { return p.e[i] < p.e[j] }
func (p energyPairs) Swap(i, j int) {
	p.e[i], p.e[j] = p.e[j], p.e[i]
	p.logErr[i], p.logErr[j] = p.logErr[j], p.logErr[i]
}

// sortByEnergy orders extrapolants ascending. Extrapolation is per index, so
// neighboring levels can cross when the coarse grids resolve them poorly.
func sortByEnergy(e, logErr []float64) {
	sort.Stable(energyPairs{e: e, logErr: logErr})
}
