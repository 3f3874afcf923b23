// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

func TestWriter(t *testing.T) {
	rec := &Record{
		Name:   "Tervel's map",
		Params: map[string]Value{"readsPerWrite": Number(4), "impl": String(`a\b`)},
		Labels: []string{"delayFactor", "workUnitsDone", "mapOpsDone", "totalTime"},
		Points: [][]float64{{0.5, 1e6, 2000000, 0.25}, {1, 123456789012, 0, 1.5e-7}},
	}
	var buf bytes.Buffer
	if err := NewWriter(&buf).Write(rec); err != nil {
		t.Fatal(err)
	}
	const want = `{
'mapType': 'Tervel\'s map',
'impl': 'a\\b',
'readsPerWrite': 4,
'labels': ('delayFactor', 'workUnitsDone', 'mapOpsDone', 'totalTime'),
'points': [
    (0.5, 1000000, 2000000, 0.25),
    (1, 123456789012, 0, 1.5e-07),
],
}
`
	if diff := cmp.Diff(want, buf.String()); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	recs := []*Record{
		{
			Name:   "one",
			Params: map[string]Value{"chunks": Number(200)},
			Labels: []string{"n"},
			Points: [][]float64{{1}, {math.Inf(1)}, {math.NaN()}},
		},
		{
			Name:   "two",
			Params: map[string]Value{},
			Labels: []string{"x", "y"},
			Points: [][]float64{{-0.125, 3e20}},
		},
	}
	var buf bytes.Buffer
	if err := WriteAll(&buf, recs); err != nil {
		t.Fatal(err)
	}
	r := NewReader(strings.NewReader(buf.String()), "roundtrip")
	var got []*Record
	for r.Scan() {
		rec := r.Record()
		rec.File = ""
		got = append(got, rec)
	}
	if err := r.Err(); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(recs, got, cmpopts.EquateNaNs()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}
