// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sign

import (
	"testing"
)

func TestConstrain(t *testing.T) {
	sp := Params{}
	sp.Defaults()

	raw := []float32{-1e6, -3, -1, -0.25, 0, 0.25, 1, 3, 1e6}
	for _, w := range raw {
		if e := sp.Constrain(Excitatory, w); e < 0 {
			t.Errorf("excitatory: raw %v gave effective %v < 0", w, e)
		}
		if e := sp.Constrain(Inhibitory, w); e > 0 {
			t.Errorf("inhibitory: raw %v gave effective %v > 0", w, e)
		}
		if e := sp.Constrain(Unsigned, w); e != w {
			t.Errorf("unbounded unsigned: raw %v gave effective %v", w, e)
		}
	}

	sp.ExcUpper = 2
	sp.InhLower = -0.5
	sp.Uns.Min = -1
	sp.Uns.Max = 1
	cases := []struct {
		cls Class
		w   float32
		cor float32
	}{
		{Excitatory, -1, 0},
		{Excitatory, 1.5, 1.5},
		{Excitatory, 3, 2},
		{Inhibitory, 1, 0},
		{Inhibitory, -0.25, -0.25},
		{Inhibitory, -4, -0.5},
		{Unsigned, -4, -1},
		{Unsigned, 0.3, 0.3},
		{Unsigned, 4, 1},
	}
	for i, c := range cases {
		if e := sp.Constrain(c.cls, c.w); e != c.cor {
			t.Errorf("case %d: %v(%v) = %v, want %v", i, c.cls, c.w, e, c.cor)
		}
	}
}

func TestInRange(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	nan := float32(0)
	nan = nan / nan
	cases := []struct {
		cls Class
		w   float32
		ok  bool
	}{
		{Excitatory, 0, true},
		{Excitatory, 5, true},
		{Excitatory, -0.1, false},
		{Excitatory, nan, false},
		{Inhibitory, 0, true},
		{Inhibitory, -5, true},
		{Inhibitory, 0.1, false},
		{Inhibitory, nan, false},
		{Unsigned, -5, true},
		{Unsigned, 5, true},
	}
	for _, cs := range cases {
		if ok := sp.InRange(cs.cls, cs.w); ok != cs.ok {
			t.Errorf("default bounds %v %g: in range: %v != %v", cs.cls, cs.w, ok, cs.ok)
		}
	}

	sp.ExcUpper = 2
	sp.InhLower = -2
	sp.Uns.Set(-1, 1)
	cases = []struct {
		cls Class
		w   float32
		ok  bool
	}{
		{Excitatory, 2, true},
		{Excitatory, 2.5, false},
		{Inhibitory, -2, true},
		{Inhibitory, -2.5, false},
		{Unsigned, 1, true},
		{Unsigned, -1.5, false},
		{Unsigned, 1.5, false},
	}
	for _, cs := range cases {
		if ok := sp.InRange(cs.cls, cs.w); ok != cs.ok {
			t.Errorf("bounded %v %g: in range: %v != %v", cs.cls, cs.w, ok, cs.ok)
		}
		if cs.ok && !sp.InRange(cs.cls, sp.Constrain(cs.cls, cs.w*10)) {
			t.Errorf("bounded %v: constrained %g out of range", cs.cls, cs.w*10)
		}
	}
}

func TestGraded(t *testing.T) {
	tstx := []float32{-2, -0.1, 0, 0.3, 1, 1.7}
	cory := []float32{0, 0, 0, 0.3, 1, 1}
	for i := range tstx {
		if y := Graded(tstx[i]); y != cory[i] {
			t.Errorf("Graded(%v) = %v, want %v", tstx[i], y, cory[i])
		}
	}
}

func TestInitSatisfiesConstraint(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	for _, cnst := range []bool{true, false} {
		ip := InitParams{}
		ip.Defaults()
		ip.Const = cnst
		for cls := Excitatory; cls < ClassN; cls++ {
			for i := 0; i < 200; i++ {
				w := ip.Gen(cls, &sp)
				if !sp.Satisfies(cls, w) {
					t.Fatalf("const=%v %v: init value %v violates constraint", cnst, cls, w)
				}
				if w < -1 || w > 1 {
					t.Fatalf("const=%v %v: init value %v outside [-1,1]", cnst, cls, w)
				}
			}
		}
	}
}

func TestConstInit(t *testing.T) {
	sp := Params{}
	sp.Defaults()
	ip := InitParams{}
	ip.Defaults()
	if w := ip.Gen(Excitatory, &sp); w != 1 {
		t.Errorf("excitatory constant = %v, want 1", w)
	}
	if w := ip.Gen(Inhibitory, &sp); w != -1 {
		t.Errorf("inhibitory constant = %v, want -1", w)
	}
	ip.P = 1
	for i := 0; i < 20; i++ {
		if w := ip.Gen(Unsigned, &sp); w != 1 {
			t.Fatalf("unsigned constant with P=1 = %v, want 1", w)
		}
	}
	ip.P = 0
	for i := 0; i < 20; i++ {
		if w := ip.Gen(Unsigned, &sp); w != -1 {
			t.Fatalf("unsigned constant with P=0 = %v, want -1", w)
		}
	}
}

func TestClassString(t *testing.T) {
	for cls := Excitatory; cls < ClassN; cls++ {
		var c Class
		if err := c.FromString(cls.String()); err != nil || c != cls {
			t.Errorf("round trip of %v gave %v, err: %v", cls, c, err)
		}
	}
	var c Class
	if err := c.FromString("Modulatory"); err == nil {
		t.Errorf("expected error for unknown class name")
	}
}
