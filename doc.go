// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package socialagents is the repository for the NCAP swimmer control circuit,
a small biologically structured network that maps the joint angles of an
articulated swimmer onto joint torques, modeled on the nematode motor circuit.

This top-level of the repository has no functional code -- everything is organized
into the following sub-packages:

* ncap: the circuit itself: configuration, the sign constrained and optionally
shared weights, the sensor splitter, head oscillator and segment stack computing
the torques, the connection activity log, and weight files.

* sign: excitatory / inhibitory / unsigned weight classes, the constraint functions
mapping raw weights onto effective ones, and weight initialization.

* damping: the proximity dependent damping of the head oscillator.

* actor: glue from flat environment observations to circuit inputs and
(optionally noisy) actions, with optional high-level speed and turn controllers.

* examples: these compile into runnable programs.  examples/swim runs the circuit
open loop on a toy kinematic chain and writes the resulting logs.
*/
package socialagents
