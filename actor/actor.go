// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package actor connects an ncap.Circuit to environment observations: it
extracts and normalizes the joint angles and the time signal from a flat
observation vector, obtains optional high-level controls from a Controller,
runs the circuit, and optionally adds Gaussian action noise for a
stochastic policy.
*/
package actor

import (
	"fmt"

	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
	"github.com/emer/etable/etensor"
	"github.com/robsatz/social-agents/ncap"
)

// TimeXform maps the normalized time signal in the observation onto
// timesteps: the range [InLo, InHi] is mapped linearly onto [OutLo, OutHi].
type TimeXform struct {
	On    bool    `def:"true" desc:"transform the observation time signal -- otherwise it is used as the timestep directly"`
	InLo  float32 `viewif:"On" def:"-1" desc:"low end of the observation time signal"`
	InHi  float32 `viewif:"On" def:"1" desc:"high end of the observation time signal"`
	OutLo float32 `viewif:"On" def:"0" desc:"timestep corresponding to InLo"`
	OutHi float32 `viewif:"On" def:"1000" desc:"timestep corresponding to InHi, e.g., the max episode length"`
}

func (tx *TimeXform) Defaults() {
	tx.On = true
	tx.InLo = -1
	tx.InHi = 1
	tx.OutLo = 0
	tx.OutHi = 1000
}

// Xform returns the timestep for observation time signal v
func (tx *TimeXform) Xform(v float32) float32 {
	if !tx.On || tx.InHi == tx.InLo {
		return v
	}
	return (v-tx.InLo)/(tx.InHi-tx.InLo)*(tx.OutHi-tx.OutLo) + tx.OutLo
}

// Params are the actor parameters
type Params struct {
	NAct      int             `min:"1" desc:"number of actions = number of circuit joints -- the first NAct observation values are the joint angles"`
	Time      TimeXform       `view:"inline" desc:"mapping of the last observation value onto circuit timesteps"`
	NoiseOn   bool            `def:"false" desc:"add random noise to the actions, for a stochastic policy"`
	Noise     erand.RndParams `viewif:"NoiseOn" desc:"action noise distribution -- Gaussian with standard deviation 0.1 by default"`
	Proximity float32         `def:"1" desc:"proximity passed to the circuit oscillator damping -- beyond Osc.Damp.Thr there is no damping"`
}

func (ap *Params) Defaults() {
	ap.Time.Defaults()
	ap.NoiseOn = false
	ap.Noise.Dist = erand.Gaussian
	ap.Noise.Mean = 0
	ap.Noise.Var = 0.1
	ap.Proximity = 1
}

// JointLimit returns the max joint angle in radians used to normalize joint
// angles, 2 pi / (NAct + 1), as the environment computes it from the number of bodies.
func (ap *Params) JointLimit() float32 {
	return 2 * math32.Pi / float32(ap.NAct+1)
}

// Controller generates the high-level control signals for the circuit from
// the observations.  Each returned tensor has one value per batch element, or
// a single value for the whole batch, and may be nil if that control is not used.
type Controller interface {
	Control(obs *etensor.Float32) (right, left, speed *etensor.Float32, err error)
}

// ConstController is a Controller with fixed control values
type ConstController struct {
	Right float32 `desc:"right turn control in [0,1]"`
	Left  float32 `desc:"left turn control in [0,1]"`
	Speed float32 `desc:"speed control in [0,1], 1 = fastest"`
}

func (cc *ConstController) Control(obs *etensor.Float32) (right, left, speed *etensor.Float32, err error) {
	mk := func(v float32) *etensor.Float32 {
		t := etensor.NewFloat32([]int{1}, nil, nil)
		t.Values[0] = v
		return t
	}
	return mk(cc.Right), mk(cc.Left), mk(cc.Speed), nil
}

// Actor maps observations to actions through a Circuit
type Actor struct {
	Params
	Circ *ncap.Circuit   `desc:"the circuit generating the actions -- must be built"`
	Ctrl Controller      `desc:"optional high-level controller -- nil for none"`
	Pos  etensor.Float32 `view:"-" desc:"normalized joint angles from the last call"`
	Ts   etensor.Float32 `view:"-" desc:"timesteps from the last call"`
}

// New returns a new Actor for given built circuit, with default parameters
func New(cc *ncap.Circuit) *Actor {
	ac := &Actor{Circ: cc}
	ac.Defaults()
	ac.NAct = cc.NJoints
	return ac
}

// Act returns the actions for observations obs of shape (..., NObs), where
// the first NAct values are the joint angles in radians and the last is
// the time signal.  Actions have shape (..., NAct).
func (ac *Actor) Act(obs *etensor.Float32) (*etensor.Float32, error) {
	if ac.Circ == nil {
		return nil, fmt.Errorf("Actor.Act: no circuit")
	}
	if ac.NAct != ac.Circ.NJoints {
		return nil, fmt.Errorf("Actor.Act: NAct: %d != circuit joints: %d", ac.NAct, ac.Circ.NJoints)
	}
	nd := obs.NumDims()
	if nd == 0 {
		return nil, fmt.Errorf("Actor.Act: empty observation shape")
	}
	nobs := obs.Dim(nd - 1)
	if nobs < ac.NAct+1 {
		return nil, fmt.Errorf("Actor.Act: observation size: %d must be at least NAct + 1 = %d", nobs, ac.NAct+1)
	}
	nb := obs.Len() / nobs

	pshp := append([]int(nil), obs.Shapes()...)
	pshp[nd-1] = ac.NAct
	ac.Pos.SetShape(pshp, nil, nil)
	tshp := append([]int(nil), obs.Shapes()...)
	tshp[nd-1] = 1
	ac.Ts.SetShape(tshp, nil, nil)

	lim := ac.JointLimit()
	for bi := 0; bi < nb; bi++ {
		ob := obs.Values[bi*nobs : (bi+1)*nobs]
		for ai := 0; ai < ac.NAct; ai++ {
			ac.Pos.Values[bi*ac.NAct+ai] = math32.Max(-1, math32.Min(1, ob[ai]/lim))
		}
		ac.Ts.Values[bi] = ac.Time.Xform(ob[nobs-1])
	}

	in := &ncap.Inputs{JointPos: &ac.Pos, Timesteps: &ac.Ts, Proximity: ac.Proximity}
	if ac.Ctrl != nil {
		var err error
		in.Right, in.Left, in.Speed, err = ac.Ctrl.Control(obs)
		if err != nil {
			return nil, err
		}
	}
	act, err := ac.Circ.Forward(in)
	if err != nil {
		return nil, err
	}
	if ac.NoiseOn {
		for i := range act.Values {
			act.Values[i] += float32(ac.Noise.Gen(-1))
		}
	}
	return act, nil
}
