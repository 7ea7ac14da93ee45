// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"fmt"

	"github.com/robsatz/social-agents/sign"
)

// Weight is one learnable parameter of the circuit.  Wt is the raw stored
// value, which an external optimizer may set to anything; the effective
// value used in computation is always Wt passed through the constraint
// for Class.
type Weight struct {
	Name  string     `desc:"unique name: shared key (e.g., muscle_ipsi) or per-joint key (e.g., muscle_d_d_2)"`
	Class sign.Class `desc:"sign class enforced on the effective value"`
	Wt    float32    `desc:"raw stored weight value"`
}

// buildWts allocates all weights and the (role, joint) -> slot table,
// according to the feature flags.  Called by Build.
func (cc *Circuit) buildWts() {
	nj := cc.NJoints
	cc.Wts = cc.Wts[:0]
	byName := make(map[string]int)
	for rl := Role(0); rl < RoleN; rl++ {
		cc.WtIdxs[rl] = make([]int, nj)
		cc.ConNames[rl] = make([]string, nj)
		rp := &Roles[rl]
		cls := rp.Class
		if !cc.Feat.WtConstrain {
			cls = sign.Unsigned
		}
		for ji := 0; ji < nj; ji++ {
			cc.WtIdxs[rl][ji] = -1
			if !cc.Applies(rl, ji) {
				continue
			}
			con := fmt.Sprintf("%s_%d", rp.Key, ji)
			cc.ConNames[rl][ji] = con
			nm := con
			if cc.Feat.WtShare {
				nm = rp.Shared
			}
			wi, has := byName[nm]
			if !has {
				wi = len(cc.Wts)
				cc.Wts = append(cc.Wts, Weight{Name: nm, Class: cls})
				byName[nm] = wi
			}
			cc.WtIdxs[rl][ji] = wi
		}
	}
	cc.WtMap = byName
}

// InitWts initializes all weights according to the Init parameters.
// With WtConstInit off, weights are drawn at random from the Init distributions.
func (cc *Circuit) InitWts() {
	cc.Init.Const = cc.Feat.WtConstInit
	for wi := range cc.Wts {
		w := &cc.Wts[wi]
		w.Wt = cc.Init.Gen(w.Class, &cc.Sign)
	}
}

// WtIdx returns the index into Wts of the weight for given role at joint ji.
// Returns an error if that connection does not exist under the configuration.
func (cc *Circuit) WtIdx(rl Role, ji int) (int, error) {
	if !cc.built {
		return -1, ErrNotBuilt
	}
	if rl < 0 || rl >= RoleN {
		return -1, fmt.Errorf("Circuit.WtIdx: role %v not valid", rl)
	}
	if ji < 0 || ji >= cc.NJoints {
		return -1, fmt.Errorf("Circuit.WtIdx: joint %d out of range for %d joints", ji, cc.NJoints)
	}
	wi := cc.WtIdxs[rl][ji]
	if wi < 0 {
		return -1, fmt.Errorf("Circuit.WtIdx: no %v connection at joint %d under current configuration", rl, ji)
	}
	return wi, nil
}

// Wt returns the weight for given role at joint ji, or error if the
// connection does not exist.
func (cc *Circuit) Wt(rl Role, ji int) (*Weight, error) {
	wi, err := cc.WtIdx(rl, ji)
	if err != nil {
		return nil, err
	}
	return &cc.Wts[wi], nil
}

// SetWt sets the raw weight value for given role at joint ji.
// With weight sharing this sets the value for every joint sharing it.
func (cc *Circuit) SetWt(rl Role, ji int, val float32) error {
	w, err := cc.Wt(rl, ji)
	if err != nil {
		return err
	}
	w.Wt = val
	return nil
}

// WtByName returns the weight with given name, or error
func (cc *Circuit) WtByName(nm string) (*Weight, error) {
	wi, ok := cc.WtMap[nm]
	if !ok {
		return nil, fmt.Errorf("Circuit.WtByName: weight named: %v not found", nm)
	}
	return &cc.Wts[wi], nil
}

// EffWt returns the effective (constrained) weight value for role at joint ji.
// The connection must exist (see Applies); the constraint is applied on every
// call as the raw value may have been changed since the last one.
func (cc *Circuit) EffWt(rl Role, ji int) float32 {
	w := &cc.Wts[cc.WtIdxs[rl][ji]]
	return cc.Sign.Constrain(w.Class, w.Wt)
}

// WtVals returns the raw values of all weights, in Wts order,
// into given slice (only resized if not big enough).
func (cc *Circuit) WtVals(vals *[]float32) {
	nw := len(cc.Wts)
	if *vals == nil || cap(*vals) < nw {
		*vals = make([]float32, nw)
	} else if len(*vals) < nw {
		*vals = (*vals)[0:nw]
	}
	for i := range cc.Wts {
		(*vals)[i] = cc.Wts[i].Wt
	}
}

// SetWtVals sets the raw values of all weights from vals, in Wts order,
// e.g., after an external optimizer step.
func (cc *Circuit) SetWtVals(vals []float32) error {
	if len(vals) != len(cc.Wts) {
		return fmt.Errorf("Circuit.SetWtVals: got %d values for %d weights", len(vals), len(cc.Wts))
	}
	for i := range cc.Wts {
		cc.Wts[i].Wt = vals[i]
	}
	return nil
}
