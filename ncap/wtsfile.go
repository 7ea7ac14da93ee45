// Copyright (c) 2024, The Emergent Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ncap

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/emer/emergent/weights"
	"github.com/goki/ki/indent"
	"github.com/robsatz/social-agents/sign"
)

// WtsLayer is the name of the single layer holding all circuit weights in
// the weights file.  Each weight is stored as a projection From its name,
// with its sign class in the projection MetaData and a single receiving
// unit whose Ri is the first joint that uses the weight.
const WtsLayer = "Circuit"

// SaveWtsJSON saves circuit weights to a JSON-formatted file.
// If filename has .gz extension, then file is gzip compressed.
func (cc *Circuit) SaveWtsJSON(filename string) error {
	fp, err := os.Create(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzw := gzip.NewWriter(fp)
		defer gzw.Close()
		return cc.WriteWtsJSON(gzw)
	}
	bw := bufio.NewWriter(fp)
	defer bw.Flush()
	return cc.WriteWtsJSON(bw)
}

// OpenWtsJSON opens circuit weights from a JSON-formatted file.
// If filename has .gz extension, then file is gzip uncompressed.
func (cc *Circuit) OpenWtsJSON(filename string) error {
	fp, err := os.Open(filename)
	if err != nil {
		log.Println(err)
		return err
	}
	defer fp.Close()
	if filepath.Ext(filename) == ".gz" {
		gzr, err := gzip.NewReader(fp)
		if err != nil {
			log.Println(err)
			return err
		}
		defer gzr.Close()
		return cc.ReadWtsJSON(gzr)
	}
	return cc.ReadWtsJSON(bufio.NewReader(fp))
}

// WriteWtsJSON writes the raw weight values in the emergent weights JSON
// format, readable by weights.NetReadJSON.  Values are written at full
// float32 precision so that a read restores them exactly.
func (cc *Circuit) WriteWtsJSON(w io.Writer) error {
	if !cc.built {
		return ErrNotBuilt
	}
	ris := cc.wtJoints()
	depth := 0
	bw := &errWriter{w: w}
	bw.write(indent.TabBytes(depth), "{\n")
	depth++
	bw.write(indent.TabBytes(depth), fmt.Sprintf("\"Network\": %q,\n", cc.Nm))
	bw.write(indent.TabBytes(depth), "\"MetaData\": {\n")
	depth++
	bw.write(indent.TabBytes(depth), fmt.Sprintf("\"NJoints\": \"%d\",\n", cc.NJoints))
	bw.write(indent.TabBytes(depth), fmt.Sprintf("\"WtShare\": \"%v\",\n", cc.Feat.WtShare))
	bw.write(indent.TabBytes(depth), fmt.Sprintf("\"Time\": \"%d\"\n", cc.Time))
	depth--
	bw.write(indent.TabBytes(depth), "},\n")
	bw.write(indent.TabBytes(depth), "\"Layers\": [\n")
	depth++
	bw.write(indent.TabBytes(depth), "{\n")
	depth++
	bw.write(indent.TabBytes(depth), fmt.Sprintf("\"Layer\": %q,\n", WtsLayer))
	bw.write(indent.TabBytes(depth), "\"Prjns\": [\n")
	depth++
	nw := len(cc.Wts)
	for wi := range cc.Wts {
		wt := &cc.Wts[wi]
		bw.write(indent.TabBytes(depth), "{\n")
		depth++
		bw.write(indent.TabBytes(depth), fmt.Sprintf("\"From\": %q,\n", wt.Name))
		bw.write(indent.TabBytes(depth), fmt.Sprintf("\"MetaData\": { \"Class\": %q },\n", wt.Class.String()))
		bw.write(indent.TabBytes(depth), "\"Rs\": [\n")
		depth++
		bw.write(indent.TabBytes(depth), fmt.Sprintf("{ \"Ri\": %d, \"N\": 1, \"Si\": [ 0 ], \"Wt\": [ %s ] }\n", ris[wi], strconv.FormatFloat(float64(wt.Wt), 'g', -1, 32)))
		depth--
		bw.write(indent.TabBytes(depth), "]\n")
		depth--
		if wi < nw-1 {
			bw.write(indent.TabBytes(depth), "},\n")
		} else {
			bw.write(indent.TabBytes(depth), "}\n")
		}
	}
	depth--
	bw.write(indent.TabBytes(depth), "]\n")
	depth--
	bw.write(indent.TabBytes(depth), "}\n")
	depth--
	bw.write(indent.TabBytes(depth), "]\n")
	depth--
	bw.write(indent.TabBytes(depth), "}\n")
	return bw.err
}

// wtJoints returns the first joint using each weight, indexed as Wts
func (cc *Circuit) wtJoints() []int {
	ris := make([]int, len(cc.Wts))
	for wi := range ris {
		ris[wi] = -1
	}
	for ji := 0; ji < cc.NJoints; ji++ {
		for rl := Role(0); rl < RoleN; rl++ {
			if cc.WtIdxs[rl] == nil {
				continue
			}
			if wi := cc.WtIdxs[rl][ji]; wi >= 0 && ris[wi] < 0 {
				ris[wi] = ji
			}
		}
	}
	for wi := range ris {
		if ris[wi] < 0 {
			ris[wi] = 0
		}
	}
	return ris
}

// ReadWtsJSON reads weights in the emergent weights JSON format, as written
// by WriteWtsJSON, into a weights.Network that is then passed to SetWts.
func (cc *Circuit) ReadWtsJSON(r io.Reader) error {
	if !cc.built {
		return ErrNotBuilt
	}
	nw, err := weights.NetReadJSON(r)
	if err != nil {
		return err // note: already logged
	}
	err = cc.SetWts(nw)
	if err != nil {
		log.Println(err)
	}
	return err
}

// SetWts sets the weights from weights.Network decoded values.
// Every weight in the file must exist in the circuit with the same class.
// Weights not in the file are left unchanged.  The circuit is only
// modified if the whole file is valid.
func (cc *Circuit) SetWts(nw *weights.Network) error {
	if nw == nil {
		return errors.New("Circuit.SetWts: empty weights file")
	}
	if nj, ok := nw.MetaData["NJoints"]; ok {
		if n, err := strconv.Atoi(nj); err != nil || n != cc.NJoints {
			return fmt.Errorf("Circuit.SetWts: weights file NJoints: %s != circuit NJoints: %d", nj, cc.NJoints)
		}
	}
	var lw *weights.Layer
	for li := range nw.Layers {
		if nw.Layers[li].Layer == WtsLayer {
			lw = &nw.Layers[li]
			break
		}
	}
	if lw == nil {
		return fmt.Errorf("Circuit.SetWts: no %s layer in weights file %q", WtsLayer, nw.Network)
	}
	idxs := make([]int, len(lw.Prjns))
	vals := make([]float32, len(lw.Prjns))
	for pi := range lw.Prjns {
		pw := &lw.Prjns[pi]
		wi, ok := cc.WtMap[pw.From]
		if !ok {
			return fmt.Errorf("Circuit.SetWts: weight %s not found", pw.From)
		}
		wt := &cc.Wts[wi]
		var cls sign.Class
		if err := cls.FromString(pw.MetaData["Class"]); err != nil {
			return fmt.Errorf("Circuit.SetWts: weight %s: %w", pw.From, err)
		}
		if cls != wt.Class {
			return fmt.Errorf("Circuit.SetWts: weight %s has class %v in file, %v in circuit", pw.From, cls, wt.Class)
		}
		if len(pw.Rs) != 1 || len(pw.Rs[0].Wt) != 1 {
			return fmt.Errorf("Circuit.SetWts: weight %s must have exactly one value", pw.From)
		}
		idxs[pi] = wi
		vals[pi] = pw.Rs[0].Wt[0]
	}
	for pi, wi := range idxs {
		cc.Wts[wi].Wt = vals[pi]
	}
	return nil
}

// errWriter keeps the first write error
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) write(ind []byte, s string) {
	if ew.err != nil {
		return
	}
	if len(ind) > 0 {
		if _, ew.err = ew.w.Write(ind); ew.err != nil {
			return
		}
	}
	_, ew.err = ew.w.Write([]byte(s))
}
