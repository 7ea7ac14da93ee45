// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import "github.com/robsatz/social-agents/sign"

// SplitSensor splits a normalized joint angle x in [-1, 1] into
// non-negative dorsal and ventral channels: d = clamp(x, 0, 1),
// v = clamp(-x, 0, 1).  Out-of-range inputs are clamped, not rejected.
func SplitSensor(x float32) (d, v float32) {
	return sign.Graded(x), sign.Graded(-x)
}

// SplitSensors splits all values in xs into the d and v slices,
// which are resized if needed and returned.
func SplitSensors(xs []float32, d, v []float32) ([]float32, []float32) {
	n := len(xs)
	if cap(d) < n {
		d = make([]float32, n)
	}
	if cap(v) < n {
		v = make([]float32, n)
	}
	d = d[:n]
	v = v[:n]
	for i, x := range xs {
		d[i], v[i] = SplitSensor(x)
	}
	return d, v
}
