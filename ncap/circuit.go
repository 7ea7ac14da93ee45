// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"errors"
	"fmt"
	"log"
	"strings"
	"unsafe"

	"github.com/c2h5oh/datasize"
	"github.com/emer/emergent/params"
	"github.com/emer/etable/etensor"
	"github.com/goki/ki/ints"
	"github.com/goki/ki/ki"
	"github.com/goki/ki/kit"
	"github.com/robsatz/social-agents/sign"
)

var (
	// ErrNotBuilt is returned when using a Circuit before Build
	ErrNotBuilt = errors.New("ncap: circuit not built")

	// ErrNoTurnControl is returned by Forward when turn control is on
	// but the right or left control input is missing
	ErrNoTurnControl = errors.New("ncap: turn control enabled but right / left control input missing")

	// ErrNoSpeedControl is returned by Forward when speed control is on
	// but the speed control input is missing
	ErrNoSpeedControl = errors.New("ncap: speed control enabled but speed control input missing")
)

// Circuit is the NCAP swimmer motor circuit: a chain of body segments, each
// with a dorsal and ventral B-neuron driving an antagonistic muscle pair,
// with a rhythmic oscillator driving the head segment and proprioceptive
// input propagating the resulting wave down the body.
type Circuit struct {
	Nm          string          `desc:"name of the circuit"`
	NJoints     int             `min:"1" desc:"number of joints (body segments)"`
	NTurnJoints int             `def:"1" min:"0" desc:"number of head joints receiving turn control input"`
	Feat        Features        `view:"inline" desc:"feature flags determining which connections exist"`
	Osc         OscParams       `view:"inline" desc:"head oscillator parameters"`
	Sign        sign.Params     `view:"inline" desc:"sign constraint bounds on effective weights"`
	Init        sign.InitParams `view:"inline" desc:"weight initialization parameters"`
	Time        int             `inactive:"+" desc:"internal timestep counter, advanced by each Forward call without explicit timesteps"`
	Step        int             `inactive:"+" desc:"Forward call counter, advanced by every successful Forward call and used to stamp activity log entries -- zeroed by Reset"`
	Wts         []Weight        `desc:"all learnable weights -- the raw values may be set to anything, e.g., by an external optimizer"`
	Segs        []Segment       `desc:"segment activations from the last Forward call, indexed by batch * NJoints + joint"`
	NBatch      int             `inactive:"+" desc:"batch size of the last Forward call"`
	Obs         ActObserver     `view:"-" json:"-" xml:"-" desc:"optional observer notified of each connection used -- nil for none"`
	WtIdxs      [RoleN][]int    `view:"-" json:"-" xml:"-" desc:"index into Wts for each role and joint, -1 if no such connection"`
	ConNames    [RoleN][]string `view:"-" json:"-" xml:"-" desc:"per-joint connection names for each role, for activity logging"`
	WtMap       map[string]int  `view:"-" json:"-" xml:"-" desc:"map from weight name to index in Wts"`
	built       bool
	sensD       []float32
	sensV       []float32
	bnD         []float32
	bnV         []float32
}

var KiT_Circuit = kit.Types.AddType(&Circuit{}, CircuitProps)

var CircuitProps = ki.Props{
	"ToolBar": ki.PropSlice{
		{Name: "SaveWtsJSON", Value: ki.Props{
			"label": "Save Wts...",
			"icon":  "file-save",
			"desc":  "Save json-formatted weights",
			"Args": ki.PropSlice{
				{Name: "Weights File Name", Value: ki.Props{
					"ext": ".wts,.wts.gz",
				}},
			},
		}},
		{Name: "OpenWtsJSON", Value: ki.Props{
			"label": "Open Wts...",
			"icon":  "file-open",
			"desc":  "Open json-formatted weights",
			"Args": ki.PropSlice{
				{Name: "Weights File Name", Value: ki.Props{
					"ext": ".wts,.wts.gz",
				}},
			},
		}},
		{Name: "sep-file", Value: ki.BlankProp{}},
		{Name: "Build", Value: ki.Props{
			"icon": "update",
			"desc": "build the circuit weights and connection tables according to current params",
		}},
		{Name: "InitWts", Value: ki.Props{
			"icon": "update",
			"desc": "initialize the weight values according to the Init params",
		}},
		{Name: "Reset", Value: ki.Props{
			"icon": "reset",
			"desc": "zero the timestep and Forward call counters and clear the activity observer",
		}},
	},
}

// NewCircuit returns a new Circuit with given name and number of joints,
// with default parameters.  Call Build before use.
func NewCircuit(name string, nJoints int) *Circuit {
	cc := &Circuit{Nm: name, NJoints: nJoints}
	cc.Defaults()
	return cc
}

func (cc *Circuit) Defaults() {
	cc.NTurnJoints = 1
	cc.Feat.Defaults()
	cc.Osc.Defaults()
	cc.Sign.Defaults()
	cc.Init.Defaults()
	cc.Init.Const = cc.Feat.WtConstInit
}

// UpdateParams updates all derived parameter values
func (cc *Circuit) UpdateParams() {
	cc.Osc.Update()
	cc.Sign.Update()
	cc.Init.Update()
}

// TypeName, Class, and Name implement params.Styler
func (cc *Circuit) TypeName() string { return "Circuit" }
func (cc *Circuit) Class() string    { return "" }
func (cc *Circuit) Name() string     { return cc.Nm }

// IsBuilt returns true if Build has been called successfully
func (cc *Circuit) IsBuilt() bool { return cc.built }

// ApplyParams applies given parameter style Sheet to this circuit.
// Calls UpdateParams if anything was set.  The configuration is fixed
// by Build, so applying params to a built circuit is an error.
// If setMsg is true, then a message is printed to confirm each parameter that is set.
func (cc *Circuit) ApplyParams(pars *params.Sheet, setMsg bool) (bool, error) {
	if cc.built {
		return false, fmt.Errorf("Circuit.ApplyParams: circuit %q already built, configuration is fixed", cc.Nm)
	}
	app, err := pars.Apply(cc, setMsg)
	if app {
		cc.UpdateParams()
	}
	return app, err
}

// Build validates the configuration and constructs the weights and
// connection tables.  Configuration errors are reported here, never
// at Forward time.  Call InitWts afterward to initialize the weights.
func (cc *Circuit) Build() error {
	if cc.built {
		return fmt.Errorf("Circuit.Build: circuit %q already built", cc.Nm)
	}
	if cc.NJoints < 1 {
		return fmt.Errorf("Circuit.Build: NJoints must be >= 1, got %d", cc.NJoints)
	}
	if cc.NTurnJoints < 0 {
		return fmt.Errorf("Circuit.Build: NTurnJoints must be >= 0, got %d", cc.NTurnJoints)
	}
	if cc.Osc.Period < 1 {
		return fmt.Errorf("Circuit.Build: Osc.Period must be >= 1, got %d", cc.Osc.Period)
	}
	cc.NTurnJoints = ints.MinInt(cc.NTurnJoints, cc.NJoints)
	cc.UpdateParams()
	cc.buildWts()
	cc.Segs = make([]Segment, cc.NJoints)
	cc.NBatch = 1
	cc.Time = 0
	cc.Step = 0
	cc.built = true
	return nil
}

// Reset zeroes the timestep and Forward call counters, e.g., at an episode
// boundary, and resets the activity observer if it has a Reset method.
func (cc *Circuit) Reset() {
	cc.Time = 0
	cc.Step = 0
	if rs, ok := cc.Obs.(interface{ Reset() }); ok {
		rs.Reset()
	}
}

// Inputs are the inputs to one Forward call.  JointPos has shape (..., NJoints),
// and the control and timestep tensors each have one value per batch element,
// i.e., shape (..., 1), or a single value that applies to the whole batch.
type Inputs struct {
	JointPos  *etensor.Float32 `desc:"joint angles normalized to [-1,1], shape (..., NJoints) -- out of range values are clamped"`
	Right     *etensor.Float32 `desc:"right turn control in [0,1] -- required if Feat.Turn"`
	Left      *etensor.Float32 `desc:"left turn control in [0,1] -- required if Feat.Turn"`
	Speed     *etensor.Float32 `desc:"speed control in [0,1], 1 = fastest -- required if Feat.Speed"`
	Timesteps *etensor.Float32 `desc:"explicit timesteps -- if nil, the internal counter is used and advanced"`
	Proximity float32          `desc:"proximity term for oscillator damping -- beyond Osc.Damp.Thr there is no damping"`
}

// ctrlLen checks that control tensor ct has 1 or nb values
func ctrlLen(ct *etensor.Float32, nb int, nm string) error {
	if n := ct.Len(); n != 1 && n != nb {
		return fmt.Errorf("Circuit.Forward: %s has %d values, need 1 or batch size %d", nm, n, nb)
	}
	return nil
}

// ctrlVal returns the control value for batch element bi
func ctrlVal(ct *etensor.Float32, bi int) float32 {
	if len(ct.Values) == 1 {
		return ct.Values[0]
	}
	return ct.Values[bi]
}

// checkInputs checks all preconditions of Forward, returning the batch size
func (cc *Circuit) checkInputs(in *Inputs) (int, error) {
	if !cc.built {
		return 0, ErrNotBuilt
	}
	if in == nil || in.JointPos == nil {
		return 0, errors.New("Circuit.Forward: JointPos input is required")
	}
	if cc.Feat.Turn && (in.Right == nil || in.Left == nil) {
		return 0, ErrNoTurnControl
	}
	if cc.Feat.Speed && in.Speed == nil {
		return 0, ErrNoSpeedControl
	}
	jp := in.JointPos
	nd := jp.NumDims()
	if nd == 0 || jp.Dim(nd-1) != cc.NJoints {
		return 0, fmt.Errorf("Circuit.Forward: JointPos shape %v must end in NJoints = %d", jp.Shapes(), cc.NJoints)
	}
	nb := jp.Len() / cc.NJoints
	if cc.Feat.Turn {
		if err := ctrlLen(in.Right, nb, "Right"); err != nil {
			return 0, err
		}
		if err := ctrlLen(in.Left, nb, "Left"); err != nil {
			return 0, err
		}
	}
	if cc.Feat.Speed {
		if err := ctrlLen(in.Speed, nb, "Speed"); err != nil {
			return 0, err
		}
	}
	if in.Timesteps != nil {
		if err := ctrlLen(in.Timesteps, nb, "Timesteps"); err != nil {
			return 0, err
		}
	}
	return nb, nil
}

// active notifies the observer that the connection for role at joint ji was used
func (cc *Circuit) active(rl Role, ji int) {
	if cc.Obs == nil {
		return
	}
	w := &cc.Wts[cc.WtIdxs[rl][ji]]
	cc.Obs.ConnActive(cc.Step, w.Class, cc.ConNames[rl][ji])
}

// Forward computes joint torques from joint angles and optional control inputs.
// Joints are processed head to tail, as each joint's proprioceptive input
// comes from the previous joint, with each joint computed across the batch.
// Returns torques with the same shape as in.JointPos, in [-1,1].
// Advances the internal timestep counter if in.Timesteps is nil, and the
// Forward call counter Step in any case.
// All preconditions are checked before any computation.
func (cc *Circuit) Forward(in *Inputs) (*etensor.Float32, error) {
	nb, err := cc.checkInputs(in)
	if err != nil {
		return nil, err
	}
	nj := cc.NJoints
	shp := append([]int(nil), in.JointPos.Shapes()...)
	out := etensor.NewFloat32(shp, nil, nil)

	cc.sensD, cc.sensV = SplitSensors(in.JointPos.Values, cc.sensD, cc.sensV)
	if cap(cc.bnD) < nb {
		cc.bnD = make([]float32, nb)
		cc.bnV = make([]float32, nb)
	}
	bd := cc.bnD[:nb]
	bv := cc.bnV[:nb]
	if len(cc.Segs) != nb*nj {
		cc.Segs = make([]Segment, nb*nj)
	}
	cc.NBatch = nb
	ft := &cc.Feat

	for ji := 0; ji < nj; ji++ {
		for bi := range bd {
			bd[bi] = 0
			bv[bi] = 0
		}

		if ft.Prop && ji > 0 {
			wd := cc.EffWt(BneurDProp, ji)
			wv := cc.EffWt(BneurVProp, ji)
			cc.active(BneurDProp, ji)
			cc.active(BneurVProp, ji)
			for bi := range bd {
				pi := bi*nj + ji - 1
				bd[bi] += cc.sensD[pi] * wd
				bv[bi] += cc.sensV[pi] * wv
			}
		}

		if ft.Speed {
			wd := cc.EffWt(BneurDSpeed, ji)
			wv := cc.EffWt(BneurVSpeed, ji)
			cc.active(BneurDSpeed, ji)
			cc.active(BneurVSpeed, ji)
			for bi := range bd {
				brake := 1 - sign.Graded(ctrlVal(in.Speed, bi))
				bd[bi] += brake * wd
				bv[bi] += brake * wv
			}
		}

		if ft.Turn && ji < cc.NTurnJoints {
			wd := cc.EffWt(BneurDTurn, ji)
			wv := cc.EffWt(BneurVTurn, ji)
			cc.active(BneurDTurn, ji)
			cc.active(BneurVTurn, ji)
			for bi := range bd {
				bd[bi] += sign.Graded(ctrlVal(in.Right, bi)) * wd
				bv[bi] += sign.Graded(ctrlVal(in.Left, bi)) * wv
			}
		}

		if ft.Osc && ji == 0 {
			wd := cc.EffWt(BneurDOsc, ji)
			wv := cc.EffWt(BneurVOsc, ji)
			cc.active(BneurDOsc, ji)
			cc.active(BneurVOsc, ji)
			ph := cc.Osc.Phase(cc.Time)
			for bi := range bd {
				if in.Timesteps != nil {
					ph = cc.Osc.PhaseFmTime(ctrlVal(in.Timesteps, bi))
				}
				od, ov := cc.Osc.Drive(ph, in.Proximity)
				bd[bi] += od * wd
				bv[bi] += ov * wv
			}
		}

		ipsD := cc.EffWt(MuscDD, ji)
		conD := cc.EffWt(MuscDV, ji)
		ipsV := cc.EffWt(MuscVV, ji)
		conV := cc.EffWt(MuscVD, ji)
		cc.active(MuscDD, ji)
		cc.active(MuscDV, ji)
		cc.active(MuscVV, ji)
		cc.active(MuscVD, ji)
		for bi := range bd {
			sg := &cc.Segs[bi*nj+ji]
			sg.BneurD = sign.Graded(bd[bi])
			sg.BneurV = sign.Graded(bv[bi])
			sg.MuscD = sign.Graded(sg.BneurD*ipsD + sg.BneurV*conD)
			sg.MuscV = sign.Graded(sg.BneurV*ipsV + sg.BneurD*conV)
			sg.Torque = sg.MuscD - sg.MuscV
			out.Values[bi*nj+ji] = sg.Torque
		}
	}

	if in.Timesteps == nil {
		cc.Time++
	}
	cc.Step++
	return out, nil
}

// SegVal returns the value of given Segment variable for batch element bi
// and joint ji from the last Forward call.
func (cc *Circuit) SegVal(varNm string, bi, ji int) (float32, error) {
	if !cc.built {
		return 0, ErrNotBuilt
	}
	if bi < 0 || bi >= cc.NBatch || ji < 0 || ji >= cc.NJoints {
		return 0, fmt.Errorf("Circuit.SegVal: batch %d, joint %d out of range (%d x %d)", bi, ji, cc.NBatch, cc.NJoints)
	}
	return cc.Segs[bi*cc.NJoints+ji].VarByName(varNm)
}

// SizeReport returns a string reporting the size of
// each weight and segment state in the circuit, and the total.
func (cc *Circuit) SizeReport() string {
	var b strings.Builder
	wmem := len(cc.Wts) * int(unsafe.Sizeof(Weight{}))
	smem := len(cc.Segs) * int(unsafe.Sizeof(Segment{}))
	fmt.Fprintf(&b, "%14s:\t Joints: %d\t Batch: %d\n", cc.Nm, cc.NJoints, cc.NBatch)
	for rl := Role(0); rl < RoleN; rl++ {
		n := 0
		for _, wi := range cc.WtIdxs[rl] {
			if wi >= 0 {
				n++
			}
		}
		if n == 0 {
			continue
		}
		fmt.Fprintf(&b, "\t%14s:\t %v\t Conns: %d\n", rl, Roles[rl].Class, n)
	}
	fmt.Fprintf(&b, "\n%14s:\t Wts: %d\t WtMem: %v \t Segs: %d \t SegMem: %v\n", cc.Nm, len(cc.Wts), (datasize.ByteSize)(wmem).HumanReadable(), len(cc.Segs), (datasize.ByteSize)(smem).HumanReadable())
	return b.String()
}

// ConnList returns the names of all connections in the circuit, in the
// order they are used within a Forward call.  Mostly for debugging.
func (cc *Circuit) ConnList() []string {
	var cl []string
	for ji := 0; ji < cc.NJoints; ji++ {
		for rl := Role(0); rl < RoleN; rl++ {
			if cc.WtIdxs[rl] == nil || cc.WtIdxs[rl][ji] < 0 {
				continue
			}
			cl = append(cl, cc.ConNames[rl][ji])
		}
	}
	return cl
}

// CheckWts checks that the effective weight of every connection used by
// Forward lies within the bounds of its sign class, logging and returning
// an error for the first that does not.
func (cc *Circuit) CheckWts() error {
	if !cc.built {
		return ErrNotBuilt
	}
	for rl := Role(0); rl < RoleN; rl++ {
		for ji := 0; ji < cc.NJoints; ji++ {
			if !cc.Applies(rl, ji) {
				continue
			}
			w := &cc.Wts[cc.WtIdxs[rl][ji]]
			ew := cc.EffWt(rl, ji)
			if !cc.Sign.InRange(w.Class, ew) {
				err := fmt.Errorf("Circuit.CheckWts: %s effective value %g violates class %v", cc.ConNames[rl][ji], ew, w.Class)
				log.Println(err)
				return err
			}
		}
	}
	return nil
}
