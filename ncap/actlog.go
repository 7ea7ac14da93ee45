// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"io"

	"github.com/emer/etable/etable"
	"github.com/emer/etable/etensor"
	"github.com/robsatz/social-agents/sign"
)

// ActObserver is notified of every weighted connection the circuit uses
// during Forward.  It must not affect the computation.  If it also has a
// Reset() method, that is called by Circuit.Reset.
type ActObserver interface {
	// ConnActive is called once per connection per Forward call, with the
	// Forward call counter, the sign class of the weight, and the
	// per-joint connection name, e.g., bneuron_d_osc_0.
	ConnActive(step int, cls sign.Class, conn string)
}

// ActEntry is one record in the ActLog
type ActEntry struct {
	Time  int        `desc:"circuit Forward call counter (Circuit.Step) when the connection was used"`
	Class sign.Class `desc:"sign class of the connection weight"`
	Conn  string     `desc:"connection name"`
}

// ActLog is an ActObserver that records every connection use, in order.
// It grows without bound until Reset.
type ActLog struct {
	Entries []ActEntry `desc:"recorded entries, in order"`
}

func (al *ActLog) ConnActive(step int, cls sign.Class, conn string) {
	al.Entries = append(al.Entries, ActEntry{Time: step, Class: cls, Conn: conn})
}

// Reset clears all entries
func (al *ActLog) Reset() {
	al.Entries = al.Entries[:0]
}

// Len returns the number of entries
func (al *ActLog) Len() int {
	return len(al.Entries)
}

// ActLogSchema returns the table schema for the activity log
func ActLogSchema() etable.Schema {
	return etable.Schema{
		{Name: "Time", Type: etensor.INT64, CellShape: nil, DimNames: nil},
		{Name: "Class", Type: etensor.STRING, CellShape: nil, DimNames: nil},
		{Name: "Conn", Type: etensor.STRING, CellShape: nil, DimNames: nil},
	}
}

// Table returns the entries as a new etable.Table, one row per entry
func (al *ActLog) Table() *etable.Table {
	dt := &etable.Table{}
	dt.SetMetaData("name", "ActLog")
	dt.SetMetaData("desc", "connections used by each circuit forward step")
	dt.SetFromSchema(ActLogSchema(), len(al.Entries))
	for i, e := range al.Entries {
		dt.SetCellFloat("Time", i, float64(e.Time))
		dt.SetCellString("Class", i, e.Class.String())
		dt.SetCellString("Conn", i, e.Conn)
	}
	return dt
}

// WriteCSV writes the entries as a tab-separated table with headers
func (al *ActLog) WriteCSV(w io.Writer) error {
	return al.Table().WriteCSV(w, etable.Tab, true)
}
