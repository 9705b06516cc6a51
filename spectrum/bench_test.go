// Benchmarks for the spectrum driver on small grids.
package spectrum_test

import (
	"fmt"
	"testing"

	"github.com/katalvlaran/fdspectrum/potential"
	"github.com/katalvlaran/fdspectrum/spectrum"
)

// sink defeats dead-code elimination.
var sink []float64

func BenchmarkEnergySpectrum_Direct(b *testing.B) {
	b.ReportAllocs()
	for _, n := range []int{64, 128, 256} {
		b.Run(fmt.Sprintf("n=%d", n), func(b *testing.B) {
			ov := spectrum.Overrides{MinimalGrid: &n}
			for i := 0; i < b.N; i++ {
				res, err := spectrum.EnergySpectrum(-10, 10, potential.Harmonic(1), 1, spectrum.Fast, ov)
				if err != nil {
					b.Fatal(err)
				}
				sink = res.Energies
			}
		})
	}
}

func BenchmarkEnergySpectrum_Romberg(b *testing.B) {
	b.ReportAllocs()
	m, inc, f := 63, 3, 4./3
	ov := spectrum.Overrides{MinimalGrid: &m, GridIncrements: &inc, IncrementFactor: &f}
	for _, par := range []int{1, 4} {
		b.Run(fmt.Sprintf("parallel=%d", par), func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				res, err := spectrum.EnergySpectrum(-10, 10, potential.Harmonic(1), 1,
					spectrum.Experimental1, ov, spectrum.WithParallelism(par))
				if err != nil {
					b.Fatal(err)
				}
				sink = res.Energies
			}
		})
	}
}
