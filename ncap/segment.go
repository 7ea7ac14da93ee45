// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"fmt"
	"reflect"
)

// Segment holds the activation state of one body segment (joint) for one
// batch element, as computed by the most recent Forward call.
type Segment struct {
	BneurD float32 `desc:"dorsal B-neuron activation, graded [0,1]"`
	BneurV float32 `desc:"ventral B-neuron activation, graded [0,1]"`
	MuscD  float32 `desc:"dorsal muscle activation, graded [0,1]"`
	MuscV  float32 `desc:"ventral muscle activation, graded [0,1]"`
	Torque float32 `desc:"joint torque = MuscD - MuscV, in [-1,1]"`
}

var SegmentVars = []string{"BneurD", "BneurV", "MuscD", "MuscV", "Torque"}

var SegmentVarsMap map[string]int

func init() {
	SegmentVarsMap = make(map[string]int, len(SegmentVars))
	for i, v := range SegmentVars {
		SegmentVarsMap[v] = i
	}
}

func (sg *Segment) VarNames() []string {
	return SegmentVars
}

// SegmentVarByName returns the index of the variable in the Segment, or error
func SegmentVarByName(varNm string) (int, error) {
	i, ok := SegmentVarsMap[varNm]
	if !ok {
		return 0, fmt.Errorf("Segment VarByName: variable name: %v not valid", varNm)
	}
	return i, nil
}

// VarByIndex returns variable using index (0 = first variable in SegmentVars list)
func (sg *Segment) VarByIndex(idx int) float32 {
	v := reflect.ValueOf(*sg)
	return v.Field(idx).Interface().(float32)
}

// VarByName returns variable by name, or error
func (sg *Segment) VarByName(varNm string) (float32, error) {
	i, err := SegmentVarByName(varNm)
	if err != nil {
		return 0, err
	}
	return sg.VarByIndex(i), nil
}
