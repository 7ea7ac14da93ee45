// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package sign provides the sign classes of synaptic weights (excitatory, inhibitory,
unsigned), the constraint functions that map a raw stored weight onto its
effective value, and the initialization schemes that produce raw values.

Constraints are applied every time a weight is used, so an optimizer is free to
move the stored value anywhere: the effective value always stays within its class.
*/
package sign

import (
	"github.com/chewxy/math32"
	"github.com/emer/etable/minmax"
	"github.com/goki/ki/kit"
)

// Class is the sign class of a weight
type Class int32

//go:generate stringer -type=Class

var KiT_Class = kit.Enums.AddEnum(ClassN, kit.NotBitFlag, nil)

func (ev Class) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Class) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The weight sign classes
const (
	// Excitatory weights are constrained to be non-negative
	Excitatory Class = iota

	// Inhibitory weights are constrained to be non-positive
	Inhibitory

	// Unsigned weights can take either sign, optionally within bounds
	Unsigned

	ClassN
)

// Params are the bounds used by the constraint functions
type Params struct {
	ExcUpper float32    `min:"0" def:"0" desc:"upper bound on effective excitatory weights -- 0 = unbounded"`
	InhLower float32    `max:"0" def:"0" desc:"lower bound on effective inhibitory weights -- 0 = unbounded"`
	Uns      minmax.F32 `desc:"bounds on effective unsigned weights -- identity when Min == Max"`
}

func (sp *Params) Defaults() {
	sp.ExcUpper = 0
	sp.InhLower = 0
	sp.Uns.Min = 0
	sp.Uns.Max = 0
}

func (sp *Params) Update() {
}

// Excitatory returns the effective excitatory weight: clamped to [0, ExcUpper]
func (sp *Params) Excitatory(w float32) float32 {
	w = math32.Max(w, 0)
	if sp.ExcUpper > 0 {
		w = math32.Min(w, sp.ExcUpper)
	}
	return w
}

// Inhibitory returns the effective inhibitory weight: clamped to [InhLower, 0]
func (sp *Params) Inhibitory(w float32) float32 {
	w = math32.Min(w, 0)
	if sp.InhLower < 0 {
		w = math32.Max(w, sp.InhLower)
	}
	return w
}

// Unsigned returns the effective unsigned weight, clipped to Uns if it is a
// non-empty range, else unchanged.
func (sp *Params) Unsigned(w float32) float32 {
	if sp.Uns.Min == sp.Uns.Max {
		return w
	}
	return sp.Uns.ClipVal(w)
}

// Constrain returns the effective value of raw weight w of given class
func (sp *Params) Constrain(cls Class, w float32) float32 {
	switch cls {
	case Excitatory:
		return sp.Excitatory(w)
	case Inhibitory:
		return sp.Inhibitory(w)
	default:
		return sp.Unsigned(w)
	}
}

// Satisfies returns true if w is already a legal effective value for class cls,
// i.e., Constrain is a no-op on it.
func (sp *Params) Satisfies(cls Class, w float32) bool {
	return sp.Constrain(cls, w) == w
}

// InRange returns true if effective weight w lies within the bounds of
// class cls: [0, ExcUpper] for Excitatory, [InhLower, 0] for Inhibitory
// (a zero bound is unbounded), and Uns for Unsigned if it is a non-empty range.
// NaN is never in range for a signed class.
func (sp *Params) InRange(cls Class, w float32) bool {
	switch cls {
	case Excitatory:
		return w >= 0 && (sp.ExcUpper <= 0 || w <= sp.ExcUpper)
	case Inhibitory:
		return w <= 0 && (sp.InhLower >= 0 || w >= sp.InhLower)
	default:
		if sp.Uns.Min == sp.Uns.Max {
			return true
		}
		return w >= sp.Uns.Min && w <= sp.Uns.Max
	}
}

// Graded is the bounded [0, 1] activation nonlinearity used for neurons and muscles
func Graded(x float32) float32 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}
