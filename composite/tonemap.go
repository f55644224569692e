// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package composite

import (
	"fmt"
	"strings"
)

// ToneMapping selects the operator that maps HDR radiance into [0,1].
type ToneMapping uint8

const (
	// ACESFilmic is the fitted ACES reference rendering transform.
	ACESFilmic ToneMapping = iota
	// Reinhard maps c to c/(1+c).
	Reinhard
	// Linear scales by exposure and clamps.
	Linear
	// None clamps without applying exposure.
	None
)

var toneMappingNames = [...]string{
	ACESFilmic: "aces",
	Reinhard:   "reinhard",
	Linear:     "linear",
	None:       "none",
}

// String returns the lower-case operator name.
func (t ToneMapping) String() string {
	if int(t) < len(toneMappingNames) {
		return toneMappingNames[t]
	}
	return fmt.Sprintf("ToneMapping(%d)", uint8(t))
}

// Valid reports whether t names a known operator.
func (t ToneMapping) Valid() bool {
	return int(t) < len(toneMappingNames)
}

// ParseToneMapping parses an operator name, case-insensitively.
// "acesfilmic" is accepted as an alias of "aces".
func ParseToneMapping(name string) (ToneMapping, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "acesfilmic" {
		return ACESFilmic, nil
	}
	for i, n := range toneMappingNames {
		if n == name {
			return ToneMapping(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown tone mapping %q", ErrInvalidParams, name)
}

// MarshalText implements encoding.TextMarshaler.
func (t ToneMapping) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: tone mapping %d", ErrInvalidParams, uint8(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *ToneMapping) UnmarshalText(text []byte) error {
	v, err := ParseToneMapping(string(text))
	if err != nil {
		return err
	}
	*t = v
	return nil
}

// operator returns the per-pixel mapping for t at the given exposure.
func (t ToneMapping) operator(exposure float32) func(r, g, b float32) (float32, float32, float32) {
	switch t {
	case Reinhard:
		return func(r, g, b float32) (float32, float32, float32) {
			r, g, b = r*exposure, g*exposure, b*exposure
			return saturate(r / (1 + r)), saturate(g / (1 + g)), saturate(b / (1 + b))
		}
	case Linear:
		return func(r, g, b float32) (float32, float32, float32) {
			return saturate(r * exposure), saturate(g * exposure), saturate(b * exposure)
		}
	case None:
		return func(r, g, b float32) (float32, float32, float32) {
			return saturate(r), saturate(g), saturate(b)
		}
	default:
		k := exposure / 0.6
		return func(r, g, b float32) (float32, float32, float32) {
			return aces(r*k, g*k, b*k)
		}
	}
}

// aces applies the Stephen Hill fit: input matrix, RRT+ODT curve, output matrix.
func aces(r, g, b float32) (float32, float32, float32) {
	ir := 0.59719*r + 0.35458*g + 0.04823*b
	ig := 0.07600*r + 0.90834*g + 0.01566*b
	ib := 0.02840*r + 0.13383*g + 0.83777*b

	ir, ig, ib = rrtAndODTFit(ir), rrtAndODTFit(ig), rrtAndODTFit(ib)

	or := 1.60475*ir - 0.53108*ig - 0.07367*ib
	og := -0.10208*ir + 1.10813*ig - 0.00605*ib
	ob := -0.00327*ir - 0.07276*ig + 1.07602*ib
	return saturate(or), saturate(og), saturate(ob)
}

func rrtAndODTFit(v float32) float32 {
	a := v*(v+0.0245786) - 0.000090537
	b := v*(0.983729*v+0.4329510) + 0.238081
	return a / b
}

// saturate clamps to [0,1], mapping NaN to 0.
func saturate(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	return min(v, 1)
}
