// SPDX-License-Identifier: MIT

package spectrum

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrInvalidMode indicates an unrecognized preset.
var ErrInvalidMode = errors.New("spectrum: invalid mode")

// Mode is a closed set of run presets. The zero value is invalid.
type Mode int

const (
	_ Mode = iota
	// Fast: one 1024-point solve with a 6-neighbor stencil.
	Fast
	// Accurate: one 2048-point solve with a 6-neighbor stencil.
	Accurate
	// ExperimentalMinus1 .. Experimental3 are fixed multi-level Romberg
	// presets kept for compatibility (tags -1, 0, 1, 2, 3).
	ExperimentalMinus1
	Experimental0
	Experimental1
	Experimental2
	Experimental3
	// FiniteDifference: one 1024-point solve with the default stencil (tag -100).
	FiniteDifference
)

var modeNames = map[Mode]string{
	Fast:               "fast",
	Accurate:           "accurate",
	ExperimentalMinus1: "-1",
	Experimental0:      "0",
	Experimental1:      "1",
	Experimental2:      "2",
	Experimental3:      "3",
	FiniteDifference:   "fd",
}

// modeAliases are accepted by ParseMode in addition to the canonical names.
var modeAliases = map[string]Mode{
	"-100":              FiniteDifference,
	"finite-difference": FiniteDifference,
}

// presets is the read-only preset table.
var presets = map[Mode]Config{
	Fast:               {MinimalGrid: 1024, Neighbors: 6, LeadingOrder: 2},
	Accurate:           {MinimalGrid: 2048, Neighbors: 6, LeadingOrder: 2},
	ExperimentalMinus1: {MinimalGrid: 728, GridIncrements: 2, IncrementFactor: 4. / 3, Neighbors: 2, UseRomberg: true, LeadingOrder: 2},
	Experimental0:      {MinimalGrid: 546, GridIncrements: 6, IncrementFactor: 4. / 3, Neighbors: 2, UseRomberg: true, LeadingOrder: 2},
	Experimental1:      {MinimalGrid: 728, GridIncrements: 5, IncrementFactor: 4. / 3, Neighbors: 2, UseRomberg: true, LeadingOrder: 2},
	Experimental2:      {MinimalGrid: 1023, GridIncrements: 5, IncrementFactor: 5. / 4, Neighbors: 2, UseRomberg: true, LeadingOrder: 2},
	Experimental3:      {MinimalGrid: 3124, GridIncrements: 5, IncrementFactor: 6. / 5, Neighbors: 2, UseRomberg: true, LeadingOrder: 2},
	FiniteDifference:   {MinimalGrid: 1024, Neighbors: 2, LeadingOrder: 2},
}

// ParseMode maps a preset name ("fast", "accurate", "-1".."3", "fd", "-100")
// to its Mode. Matching is case-insensitive and ignores surrounding spaces.
func ParseMode(s string) (Mode, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for m, name := range modeNames {
		if name == key {
			return m, nil
		}
	}
	if m, ok := modeAliases[key]; ok {
		return m, nil
	}

	return 0, fmt.Errorf("%q: %w", s, ErrInvalidMode)
}

// String returns the canonical preset name, or "Mode(n)" for invalid values.
func (m Mode) String() string {
	if name, ok := modeNames[m]; ok {
		return name
	}

	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid reports whether m is one of the declared presets.
func (m Mode) Valid() bool {
	_, ok := presets[m]

	return ok
}

// Defaults returns the preset configuration of m.
func (m Mode) Defaults() (Config, error) {
	cfg, ok := presets[m]
	if !ok {
		return Config{}, fmt.Errorf("%s: %w", m, ErrInvalidMode)
	}

	return cfg, nil
}

// MarshalText implements encoding.TextMarshaler.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%s: %w", m, ErrInvalidMode)
	}

	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, so TOML run files can
// carry `mode = "fast"`.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed

	return nil
}

// UnmarshalTOML implements toml.Unmarshaler. Besides names it accepts the
// numeric tags as TOML integers (`mode = -1`, `mode = -100`).
func (m *Mode) UnmarshalTOML(v any) error {
	switch tag := v.(type) {
	case string:
		return m.UnmarshalText([]byte(tag))
	case int64:
		return m.UnmarshalText([]byte(strconv.FormatInt(tag, 10)))
	case float64:
		if tag != math.Trunc(tag) || math.IsInf(tag, 0) {
			return fmt.Errorf("%v: %w", tag, ErrInvalidMode)
		}

		return m.UnmarshalText([]byte(strconv.FormatInt(int64(tag), 10)))
	default:
		return fmt.Errorf("%T: %w", v, ErrInvalidMode)
	}
}
