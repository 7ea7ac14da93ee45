// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package ncap implements the NCAP swimmer motor circuit, a small, fixed
topology network modeled on the nematode motor circuit that maps the
joint angles of an articulated swimmer (and optional speed and turn
controls) onto joint torques.

Each joint (body segment) has a dorsal and a ventral B-neuron, each driving
its own muscle excitatorily and the opposite muscle inhibitorily.  The head
segment (joint 0) is driven by a square wave oscillator, and every other
segment by proprioceptive input from the previous segment, so the rhythm
propagates as a wave from head to tail.  All activations use the graded
[0,1] nonlinearity, and the torque of a joint is the difference of its two
muscle activations, in [-1,1].

Weights are stored raw in Circuit.Wts, where an external optimizer may set
them to anything, and are passed through their sign constraint
(see package sign) on every use.  With weight sharing (the default), every
joint uses the same weight for a given connection role.

Construction follows the usual sequence:

	cc := ncap.NewCircuit("swimmer", 6)
	cc.ApplyParams(sheet, false) // optional
	err := cc.Build()
	cc.InitWts()
	torque, err := cc.Forward(&ncap.Inputs{JointPos: pos})

Without explicit Inputs.Timesteps, the oscillator phase comes from the
internal counter Circuit.Time, which advances with each such Forward call and
is zeroed by Reset, e.g., at episode boundaries.  Activity log entries are
stamped with Circuit.Step, which counts every Forward call.  A Circuit is not safe for
concurrent use: use one per goroutine.
*/
package ncap
