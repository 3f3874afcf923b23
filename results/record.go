// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package results reads and writes the result files produced by the
// map benchmark harness.
//
// Each benchmark binary prints one record as a Python literal. Most
// print a dictionary naming the map implementation, the run
// parameters, the fields of each measurement and the measurements
// themselves:
//
//	{
//	'mapType': 'Junction Leapfrog map',
//	'readsPerWrite': 4,
//	'labels': ('numThreads', 'mapOpsDone', 'totalTime'),
//	'points': [
//	    (1, 18350000, 0.510412),
//	    (2, 35420000, 0.511008),
//	],
//	}
//
// Some print only the list of measurement tuples, in which case the
// field names come from Reader.DefaultLabels and the record name from
// the enclosing build directory.
package results

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/aclements/go-gg/table"
)

// A Record is the result of running one benchmark binary built
// against one map implementation.
type Record struct {
	// Name identifies the map implementation, from the
	// "mapType" key or the build directory.
	Name string

	// File is the path the record was read from, if any.
	File string

	// Params holds the remaining scalar keys of the record, such
	// as "readsPerWrite" or "chunks".
	Params map[string]Value

	// Labels names the fields of each point.
	Labels []string

	// Points holds one tuple per measurement, each with exactly
	// len(Labels) fields.
	Points [][]float64
}

// A Value is a scalar record parameter: either a number or a string.
type Value struct {
	Num   float64
	Str   string
	IsNum bool
}

// Number returns a numeric Value.
func Number(v float64) Value { return Value{Num: v, IsNum: true} }

// String returns a string Value.
func String(s string) Value { return Value{Str: s} }

func (v Value) String() string {
	if v.IsNum {
		return strconv.FormatFloat(v.Num, 'g', -1, 64)
	}
	return v.Str
}

// Config returns the build configuration r belongs to: the name of
// the build-<name> directory holding its file, or r.Name if there is
// none.
func (r *Record) Config() string {
	if name := DefaultName(r.File); name != "" {
		return name
	}
	return r.Name
}

// Field returns the index of the named field in r's points, or -1.
func (r *Record) Field(name string) int {
	for i, l := range r.Labels {
		if l == name {
			return i
		}
	}
	return -1
}

// Clone returns a deep copy of r.
func (r *Record) Clone() *Record {
	r2 := &Record{
		Name:   r.Name,
		File:   r.File,
		Labels: append([]string(nil), r.Labels...),
		Points: make([][]float64, len(r.Points)),
	}
	if r.Params != nil {
		r2.Params = make(map[string]Value, len(r.Params))
		for k, v := range r.Params {
			r2.Params[k] = v
		}
	}
	for i, p := range r.Points {
		r2.Points[i] = append([]float64(nil), p...)
	}
	return r2
}

// ParamKeys returns the keys of r.Params in sorted order.
func (r *Record) ParamKeys() []string {
	keys := make([]string, 0, len(r.Params))
	for k := range r.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Table returns r as a table with one float64 column per label.
// Numeric parameters become constant columns unless a label of the
// same name exists. A record without labels yields an empty table.
func (r *Record) Table() *table.Table {
	var b table.Builder
	if len(r.Labels) == 0 {
		return b.Done()
	}
	for i, label := range r.Labels {
		col := make([]float64, len(r.Points))
		for j, p := range r.Points {
			col[j] = p[i]
		}
		b.Add(label, col)
	}
	for _, k := range r.ParamKeys() {
		if v := r.Params[k]; v.IsNum && !b.Has(k) {
			b.AddConst(k, v.Num)
		}
	}
	return b.Done()
}

func (r *Record) String() string {
	return fmt.Sprintf("%s (%d points of %v)", r.Name, len(r.Points), r.Labels)
}
