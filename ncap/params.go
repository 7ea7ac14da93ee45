// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"github.com/chewxy/math32"
	"github.com/goki/ki/kit"
	"github.com/goki/mat32"
	"github.com/robsatz/social-agents/damping"
)

// Features are the feature flags that determine which connections exist
type Features struct {
	Prop        bool `def:"true" desc:"B-neurons receive proprioceptive input from the previous joint, propagating a wave down the body"`
	Osc         bool `def:"true" desc:"head B-neurons receive input from the rhythmic oscillator"`
	Speed       bool `def:"false" desc:"all B-neurons receive an inhibitory brake derived from a speed control input"`
	Turn        bool `def:"false" desc:"head B-neurons receive right / left turn control inputs"`
	WtShare     bool `def:"true" desc:"use one weight per connection role across all joints, instead of one per joint"`
	WtConstrain bool `def:"true" desc:"constrain effective weights to their excitatory / inhibitory sign -- if off, all weights are unsigned"`
	WtConstInit bool `def:"true" desc:"initialize weights to constant values instead of random uniform"`
}

func (ft *Features) Defaults() {
	ft.Prop = true
	ft.Osc = true
	ft.Speed = false
	ft.Turn = false
	ft.WtShare = true
	ft.WtConstrain = true
	ft.WtConstInit = true
}

// DampMode determines how the oscillator damping correction is applied
// to the ventral channel.
type DampMode int32

//go:generate stringer -type=DampMode

var KiT_DampMode = kit.Enums.AddEnum(DampModeN, kit.NotBitFlag, nil)

func (ev DampMode) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *DampMode) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The damping modes
const (
	// DampAsPublished reproduces the published update order: the dorsal
	// drive is damped first, and the ventral correction is then scaled by
	// the already damped dorsal value, not by the ventral value.
	DampAsPublished DampMode = iota

	// DampSymmetric corrects each channel from its own value
	DampSymmetric

	DampModeN
)

// OscParams are the head oscillator parameters
type OscParams struct {
	Period int            `def:"60" min:"1" desc:"oscillator period in control steps -- dorsal drive is active for the first Period/2 steps of each period, ventral for the rest"`
	Damp   damping.Params `view:"inline" desc:"proximity damping of the oscillator amplitude"`
	Mode   DampMode       `desc:"how the damping correction is applied to the ventral channel"`
	Freq   float32        `view:"-" json:"-" xml:"-" desc:"angular frequency 2 pi / Period"`
}

func (op *OscParams) Defaults() {
	op.Period = 60
	op.Damp.Defaults()
	op.Mode = DampAsPublished
	op.Update()
}

func (op *OscParams) Update() {
	op.Damp.Update()
	if op.Period > 0 {
		op.Freq = 2 * math32.Pi / float32(op.Period)
	}
}

// Phase returns the oscillator phase for integer time t, in [0, Period)
func (op *OscParams) Phase(t int) int {
	ph := t % op.Period
	if ph < 0 {
		ph += op.Period
	}
	return ph
}

// PhaseFmTime returns the phase for an explicit (possibly fractional)
// timestep, which is rounded to the nearest integer step.
func (op *OscParams) PhaseFmTime(ts float32) int {
	return op.Phase(int(mat32.Round(ts)))
}

// Raw returns the undamped (dorsal, ventral) oscillator drive at given phase:
// (1, 0) in the first half period, (0, 1) in the second.
func (op *OscParams) Raw(phase int) (d, v float32) {
	if phase < op.Period/2 {
		return 1, 0
	}
	return 0, 1
}

// Damped applies the proximity damping correction to raw drive values.
// The correction is Freq * Decay(prox), scaled by the dorsal drive for the
// dorsal channel.  For the ventral channel it is scaled by the damped dorsal
// drive (DampAsPublished) or by the ventral drive itself (DampSymmetric).
func (op *OscParams) Damped(d, v, prox float32) (float32, float32) {
	corr := op.Freq * op.Damp.Decay(prox)
	if corr == 0 {
		return d, v
	}
	nd := d - corr*d
	var nv float32
	if op.Mode == DampSymmetric {
		nv = v - corr*v
	} else {
		nv = v - corr*nd
	}
	return nd, nv
}

// Drive returns the damped (dorsal, ventral) oscillator drive at phase
func (op *OscParams) Drive(phase int, prox float32) (d, v float32) {
	d, v = op.Raw(phase)
	return op.Damped(d, v, prox)
}
