// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"github.com/goki/ki/kit"
	"github.com/robsatz/social-agents/sign"
)

// Role is the kind of a weighted connection in a segment.  Bneur roles are
// inputs onto the dorsal (D) or ventral (V) B-neuron; Musc roles are
// B-neuron to muscle connections, named muscle-side then B-neuron side,
// so MuscDD is dorsal ipsilateral and MuscDV is dorsal contralateral.
type Role int32

//go:generate stringer -type=Role

var KiT_Role = kit.Enums.AddEnum(RoleN, kit.NotBitFlag, nil)

func (ev Role) MarshalJSON() ([]byte, error)  { return kit.EnumMarshalJSON(ev) }
func (ev *Role) UnmarshalJSON(b []byte) error { return kit.EnumUnmarshalJSON(ev, b) }

// The connection roles
const (
	// BneurDProp is proprioceptive input from the previous joint's dorsal sensor
	BneurDProp Role = iota

	// BneurVProp is proprioceptive input from the previous joint's ventral sensor
	BneurVProp

	// BneurDSpeed is the speed control (brake) input onto the dorsal B-neuron
	BneurDSpeed

	// BneurVSpeed is the speed control (brake) input onto the ventral B-neuron
	BneurVSpeed

	// BneurDTurn is the right turn control input onto the dorsal B-neuron
	BneurDTurn

	// BneurVTurn is the left turn control input onto the ventral B-neuron
	BneurVTurn

	// BneurDOsc is the head oscillator input onto the dorsal B-neuron
	BneurDOsc

	// BneurVOsc is the head oscillator input onto the ventral B-neuron
	BneurVOsc

	// MuscDD is dorsal B-neuron to dorsal muscle (ipsilateral, excitatory)
	MuscDD

	// MuscDV is ventral B-neuron to dorsal muscle (contralateral, inhibitory)
	MuscDV

	// MuscVV is ventral B-neuron to ventral muscle (ipsilateral, excitatory)
	MuscVV

	// MuscVD is dorsal B-neuron to ventral muscle (contralateral, inhibitory)
	MuscVD

	RoleN
)

// RoleProps are the fixed properties of each role
type RoleProps struct {
	Class  sign.Class `desc:"sign class of the connection"`
	Shared string     `desc:"name of the single weight used for this role when weights are shared"`
	Key    string     `desc:"prefix for per-joint connection names -- joint index is appended"`
}

// Roles has the properties for each Role, indexed by Role
var Roles = [RoleN]RoleProps{
	BneurDProp:  {sign.Excitatory, "bneuron_prop", "bneuron_d_prop"},
	BneurVProp:  {sign.Excitatory, "bneuron_prop", "bneuron_v_prop"},
	BneurDSpeed: {sign.Inhibitory, "bneuron_speed", "bneuron_d_speed"},
	BneurVSpeed: {sign.Inhibitory, "bneuron_speed", "bneuron_v_speed"},
	BneurDTurn:  {sign.Excitatory, "bneuron_turn", "bneuron_d_turn"},
	BneurVTurn:  {sign.Excitatory, "bneuron_turn", "bneuron_v_turn"},
	BneurDOsc:   {sign.Excitatory, "bneuron_osc", "bneuron_d_osc"},
	BneurVOsc:   {sign.Excitatory, "bneuron_osc", "bneuron_v_osc"},
	MuscDD:      {sign.Excitatory, "muscle_ipsi", "muscle_d_d"},
	MuscDV:      {sign.Inhibitory, "muscle_contra", "muscle_d_v"},
	MuscVV:      {sign.Excitatory, "muscle_ipsi", "muscle_v_v"},
	MuscVD:      {sign.Inhibitory, "muscle_contra", "muscle_v_d"},
}

// Class returns the sign class of the role
func (rl Role) Class() sign.Class {
	return Roles[rl].Class
}

// Applies returns true if role rl has a connection at joint ji under
// given configuration.  This is the single definition of which
// (role, joint) pairs exist.
func (cc *Circuit) Applies(rl Role, ji int) bool {
	if ji < 0 || ji >= cc.NJoints {
		return false
	}
	ft := &cc.Feat
	switch rl {
	case BneurDProp, BneurVProp:
		return ft.Prop && ji > 0
	case BneurDSpeed, BneurVSpeed:
		return ft.Speed
	case BneurDTurn, BneurVTurn:
		return ft.Turn && ji < cc.NTurnJoints
	case BneurDOsc, BneurVOsc:
		return ft.Osc && ji == 0
	case MuscDD, MuscDV, MuscVV, MuscVD:
		return true
	}
	return false
}
