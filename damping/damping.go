// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package damping computes the proximity-dependent damping applied to the head
oscillator: nearby agents increase the effective viscosity of the medium,
which reduces the amplitude of the oscillatory drive.

The damping coefficient grows linearly with proximity up to a threshold
distance; beyond the threshold there is no effect and Decay returns 0.
*/
package damping

import "github.com/chewxy/math32"

// Params are the proximity damping parameters
type Params struct {
	On   bool    `def:"true" desc:"apply proximity damping at all"`
	A    float32 `viewif:"On" def:"0.0001" desc:"effect of proximity on viscosity -- damping coefficient is A * proximity"`
	Thr  float32 `viewif:"On" def:"5" min:"0" desc:"threshold distance between agents beyond which there is no damping effect"`
	Delt float32 `viewif:"On" def:"1" min:"0" desc:"time over which damping occurs, in control steps"`
}

func (dp *Params) Defaults() {
	dp.On = true
	dp.A = 0.0001
	dp.Thr = 5
	dp.Delt = 1
}

func (dp *Params) Update() {
}

// Coef returns the damping coefficient for given proximity:
// A * proximity within threshold, 1 otherwise.
func (dp *Params) Coef(prox float32) float32 {
	if prox <= dp.Thr {
		return dp.A * prox
	}
	return 1
}

// Decay returns the exponential decay factor exp(-Coef * Delt) for given
// proximity, or 0 (no damping) if proximity is beyond threshold or damping is off.
func (dp *Params) Decay(prox float32) float32 {
	if !dp.On || prox > dp.Thr {
		return 0
	}
	return math32.Exp(-dp.Coef(prox) * dp.Delt)
}
