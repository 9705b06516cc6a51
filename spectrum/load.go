// SPDX-License-Identifier: MIT

package spectrum

import (
	"fmt"
	"io"

	"github.com/BurntSushi/toml"
)

// runFile maps run description keys to Overrides. Mode stays raw so that
// Mode.UnmarshalTOML errors keep their sentinel.
type runFile struct {
	Mode            any     `toml:"mode"`
	MinimalGrid     int     `toml:"minimalgrid"`
	GridIncrements  int     `toml:"gridincrements"`
	IncrementFactor float64 `toml:"incrementfactor"`
	Neighbors       int     `toml:"neighbors"`
	Romberg         bool    `toml:"romberg"`
	LeadingOrder    int     `toml:"leading_order"`
}

// LoadOverrides decodes a TOML run description:
//
//	mode            = "fast"
//	minimalgrid     = 512
//	gridincrements  = 2
//	incrementfactor = 2.0
//	neighbors       = 4
//	romberg         = true
//	leading_order   = 2
//
// Absent keys leave the matching Overrides field nil. A missing mode yields
// Fast; numeric tags may also be written as integers (`mode = -1`). Unknown
// keys are rejected so typos do not silently fall back to preset values.
func LoadOverrides(r io.Reader) (Mode, Overrides, error) {
	var raw runFile
	meta, err := toml.NewDecoder(r).Decode(&raw)
	if err != nil {
		return 0, Overrides{}, fmt.Errorf("load run description: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return 0, Overrides{}, fmt.Errorf("load run description: unknown key %q: %w", undecoded[0].String(), ErrInvalidConfig)
	}

	mode := Fast
	if meta.IsDefined("mode") {
		if err = mode.UnmarshalTOML(raw.Mode); err != nil {
			return 0, Overrides{}, fmt.Errorf("load run description: mode: %w", err)
		}
	}

	var ov Overrides
	if meta.IsDefined("minimalgrid") {
		ov.MinimalGrid = &raw.MinimalGrid
	}
	if meta.IsDefined("gridincrements") {
		ov.GridIncrements = &raw.GridIncrements
	}
	if meta.IsDefined("incrementfactor") {
		ov.IncrementFactor = &raw.IncrementFactor
	}
	if meta.IsDefined("neighbors") {
		ov.Neighbors = &raw.Neighbors
	}
	if meta.IsDefined("romberg") {
		ov.UseRomberg = &raw.Romberg
	}
	if meta.IsDefined("leading_order") {
		ov.LeadingOrder = &raw.LeadingOrder
	}

	return mode, ov, nil
}
