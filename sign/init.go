// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sign

import (
	"github.com/chewxy/math32"
	"github.com/emer/emergent/erand"
)

// InitParams are the weight initialization parameters.  Constant init sets
// excitatory weights to ExcConst, inhibitory to InhConst, and unsigned weights
// to +1 with probability P and -1 otherwise.  Uniform init draws from the
// Exc, Inh, Uns distributions, which default to uniform over the legal
// interval of each class.
type InitParams struct {
	Const    bool            `def:"true" desc:"use constant initial values instead of random uniform ones"`
	ExcConst float32         `viewif:"Const" min:"0" def:"1" desc:"constant initial value for excitatory weights"`
	InhConst float32         `viewif:"Const" max:"0" def:"-1" desc:"constant initial value for inhibitory weights"`
	P        float32         `viewif:"Const" min:"0" max:"1" def:"0.5" desc:"probability of an unsigned constant weight starting at +1 rather than -1"`
	Exc      erand.RndParams `viewif:"!Const" view:"inline" desc:"random distribution for excitatory weights -- uniform [0,1] by default"`
	Inh      erand.RndParams `viewif:"!Const" view:"inline" desc:"random distribution for inhibitory weights -- uniform [-1,0] by default"`
	Uns      erand.RndParams `viewif:"!Const" view:"inline" desc:"random distribution for unsigned weights -- uniform [-1,1] by default"`
}

func (ip *InitParams) Defaults() {
	ip.Const = true
	ip.ExcConst = 1
	ip.InhConst = -1
	ip.P = 0.5
	ip.Exc.Dist = erand.Uniform
	ip.Exc.Mean = 0.5
	ip.Exc.Var = 0.5
	ip.Inh.Dist = erand.Uniform
	ip.Inh.Mean = -0.5
	ip.Inh.Var = 0.5
	ip.Uns.Dist = erand.Uniform
	ip.Uns.Mean = 0
	ip.Uns.Var = 1
	ip.Update()
}

func (ip *InitParams) Update() {
	ip.ExcConst = math32.Max(ip.ExcConst, 0)
	ip.InhConst = math32.Min(ip.InhConst, 0)
}

// Gen returns a raw initial value for a weight of class cls.
// The value always satisfies the constraint for the class under sp,
// so Constrain is a no-op on a freshly initialized weight.
func (ip *InitParams) Gen(cls Class, sp *Params) float32 {
	var w float32
	if ip.Const {
		switch cls {
		case Excitatory:
			w = ip.ExcConst
		case Inhibitory:
			w = ip.InhConst
		default:
			w = -1
			if erand.BoolProb(float64(ip.P), -1) {
				w = 1
			}
		}
	} else {
		switch cls {
		case Excitatory:
			w = float32(ip.Exc.Gen(-1))
		case Inhibitory:
			w = float32(ip.Inh.Gen(-1))
		default:
			w = float32(ip.Uns.Gen(-1))
		}
	}
	return sp.Constrain(cls, w)
}
