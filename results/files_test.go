// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeResults(t *testing.T, dir, name, src string) string {
	t.Helper()
	sub := filepath.Join(dir, "build-"+name)
	if err := os.MkdirAll(sub, 0o777); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(sub, ResultsFile)
	if err := os.WriteFile(path, []byte(src), 0o666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := writeResults(t, dir, "linear", "{'mapType': 'Junction Linear map', 'labels': ('a',), 'points': [(1,)]}")
	p2 := writeResults(t, dir, "tbb", "[(1, 2), (3, 4)]")

	f := &Files{
		Paths:         []string{p1, "Custom=" + p2},
		AllowLabels:   true,
		DefaultLabels: []string{"x", "y"},
	}
	recs, err := f.ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, rec := range recs {
		names = append(names, rec.Name)
	}
	if diff := cmp.Diff([]string{"Junction Linear map", "Custom"}, names); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([][]float64{{1, 2}, {3, 4}}, recs[1].Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if recs[1].File != p2 {
		t.Errorf("File = %q, want %q", recs[1].File, p2)
	}
}

func TestFilesErrors(t *testing.T) {
	dir := t.TempDir()
	bad := writeResults(t, dir, "bad", "{'mapType': ")
	f := &Files{Paths: []string{bad}}
	if f.Scan() {
		t.Fatal("Scan succeeded on a truncated file")
	}
	if err := f.Err(); err == nil || !strings.Contains(err.Error(), "results.txt:1:") {
		t.Errorf("Err() = %v, want a syntax error on line 1", err)
	}

	f = &Files{Paths: []string{filepath.Join(dir, "missing.txt")}}
	if _, err := f.ReadAll(); !os.IsNotExist(err) {
		t.Errorf("ReadAll on missing file: got %v, want not-exist error", err)
	}
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	leap := writeResults(t, dir, "leapfrog", "[]")
	folly := writeResults(t, dir, "folly", "[]")

	var warnings []string
	warn := func(format string, args ...interface{}) {
		warnings = append(warnings, format)
	}
	got, err := Discover(dir, []string{"leapfrog", "nbds", "folly"}, warn)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{leap, folly}, got); diff != "" {
		t.Errorf("Discover with names mismatch (-want +got):\n%s", diff)
	}
	if len(warnings) != 1 {
		t.Errorf("got %d warnings, want 1 for the missing nbds results", len(warnings))
	}

	got, err = Discover(dir, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]string{folly, leap}, got); diff != "" {
		t.Errorf("Discover without names mismatch (-want +got):\n%s", diff)
	}
	if name := DefaultName(got[0]); name != "folly" {
		t.Errorf("DefaultName(%q) = %q, want folly", got[0], name)
	}
}
