// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// A Files reads result records from a sequence of input files.
//
// If AllowLabels is true, entries in Paths may be of the form
// label=path, and the label is used as the name of every record read
// from that path, overriding any "mapType" key.
type Files struct {
	// Paths is the list of file names to read in.
	Paths []string

	// AllowLabels indicates that custom labels are allowed in
	// Paths. This is generally the desired behavior when the file
	// list comes from command-line arguments.
	AllowLabels bool

	// DefaultLabels is passed on to each file's Reader.
	DefaultLabels []string

	// inputs is the sequence of remaining inputs, or nil if this
	// Files has not started yet.
	inputs []input

	reader Reader
	label  string
	open   bool
	err    error
}

type input struct {
	path  string
	label string
}

func (f *Files) init() {
	f.inputs = []input{}
	for _, path := range f.Paths {
		label := ""
		if i := strings.Index(path, "="); f.AllowLabels && i >= 0 {
			label, path = path[:i], path[i+1:]
		}
		f.inputs = append(f.inputs, input{path, label})
	}
}

// Scan advances to the next record in the sequence of files and
// reports whether a record was read. If Scan reaches the end of the
// file sequence, or if an error occurs, it returns false. In this
// case, the caller should use the Err method to check for errors.
func (f *Files) Scan() bool {
	if f.err != nil {
		return false
	}
	if f.inputs == nil {
		f.init()
	}
	for {
		if !f.open {
			if len(f.inputs) == 0 {
				return false
			}
			inp := f.inputs[0]
			f.inputs = f.inputs[1:]

			file, err := os.Open(inp.path)
			if err != nil {
				f.err = err
				return false
			}
			// Reset reads the whole file.
			f.reader.DefaultLabels = f.DefaultLabels
			f.reader.Reset(file, inp.path)
			file.Close()
			if inp.label != "" {
				f.reader.DefaultName = inp.label
			}
			f.label = inp.label
			f.open = true
		}

		if f.reader.Scan() {
			if f.label != "" {
				f.reader.rec.Name = f.label
			}
			return true
		}
		if err := f.reader.Err(); err != nil {
			f.err = err
			return false
		}
		f.open = false
	}
}

// Record returns the record that was just read by Scan.
func (f *Files) Record() *Record {
	return f.reader.Record()
}

// Err returns the error that stopped Scan, if any.
func (f *Files) Err() error {
	return f.err
}

// ReadAll reads every record from f.
func (f *Files) ReadAll() ([]*Record, error) {
	var recs []*Record
	for f.Scan() {
		recs = append(recs, f.Record())
	}
	return recs, f.Err()
}

// ResultsFile is the name of the file the harness writes in each
// build directory.
const ResultsFile = "results.txt"

// Discover returns the result files of the named map configurations
// under dir, following the harness layout dir/build-<name>/results.txt.
// The paths are in the order of names. Configurations without a
// results file are reported through warn, if non-nil, and skipped.
// DefaultName recovers the configuration name from each path.
//
// If names is empty, Discover returns every build-*/results.txt under
// dir in lexical order.
func Discover(dir string, names []string, warn func(format string, args ...interface{})) ([]string, error) {
	if len(names) == 0 {
		matches, err := filepath.Glob(filepath.Join(dir, "build-*", ResultsFile))
		if err != nil {
			return nil, err
		}
		sort.Strings(matches)
		return matches, nil
	}

	var paths []string
	for _, name := range names {
		path := filepath.Join(dir, "build-"+name, ResultsFile)
		st, err := os.Stat(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, err
			}
			if warn != nil {
				warn("no results for %s: %s does not exist", name, path)
			}
			continue
		}
		if st.IsDir() {
			return nil, fmt.Errorf("%s: is a directory", path)
		}
		paths = append(paths, path)
	}
	return paths, nil
}
