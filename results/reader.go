// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
)

// A Reader reads result records from a harness output file.
//
// Its API is modeled on bufio.Scanner. A file normally holds a single
// record, but any number of literals may follow one another.
type Reader struct {
	// DefaultLabels names the fields of records that carry no
	// "labels" key, such as the bare point lists printed by the
	// memory benchmark. If it is nil, such fields are named by
	// their index: "0", "1", ...
	DefaultLabels []string

	// DefaultName names records that carry no "mapType" key.
	// NewReader sets it from the enclosing build-<name> directory
	// of fileName, if any.
	DefaultName string

	p       parser
	readErr error
	rec     *Record
	err     error
}

// A SyntaxError represents a syntax error on a particular line of a
// result file.
type SyntaxError struct {
	FileName string
	Line     int
	Msg      string
}

func (e *SyntaxError) Pos() (fileName string, line int) {
	return e.FileName, e.Line
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d: %s", e.FileName, e.Line, e.Msg)
}

// NewReader constructs a reader for the result records in r.
// fileName is used in error messages and to pick a default record
// name.
func NewReader(r io.Reader, fileName string) *Reader {
	reader := new(Reader)
	reader.Reset(r, fileName)
	return reader
}

// Reset resets the reader to begin reading from a new input. It
// resets DefaultName but keeps DefaultLabels.
func (r *Reader) Reset(ior io.Reader, fileName string) {
	if fileName == "" {
		fileName = "<unknown>"
	}
	src, err := io.ReadAll(ior)
	r.p = parser{src: src, line: 1, fileName: fileName}
	r.readErr = err
	r.rec = nil
	r.err = nil
	r.DefaultName = DefaultName(fileName)
}

// DefaultName returns the map name implied by path: the name of the
// nearest enclosing directory of the form build-<name>, or "".
func DefaultName(path string) string {
	for dir := filepath.Dir(path); ; {
		if base := filepath.Base(dir); strings.HasPrefix(base, "build-") && len(base) > len("build-") {
			return base[len("build-"):]
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// Scan advances the reader to the next record and reports whether a
// record was read. The caller should use the Record method to get the
// record. If Scan reaches the end of the input or encounters an error,
// it returns false, in which case the caller should use the Err method
// to check for errors. Syntax errors end the scan; there is no way to
// resynchronize within a literal.
func (r *Reader) Scan() bool {
	r.rec = nil
	if r.err != nil {
		return false
	}
	if r.readErr != nil {
		r.err = fmt.Errorf("%s: %w", r.p.fileName, r.readErr)
		return false
	}
	if r.p.atEOF() {
		return false
	}
	start := r.p.line
	lit, serr := r.p.value()
	if serr != nil {
		r.err = serr
		return false
	}
	rec, serr := r.convert(lit, start)
	if serr != nil {
		r.err = serr
		return false
	}
	r.rec = rec
	return true
}

// Record returns the record read by the last call to Scan. The
// returned record is owned by the caller.
func (r *Reader) Record() *Record {
	return r.rec
}

// Err returns the first error encountered by the Reader.
func (r *Reader) Err() error {
	return r.err
}

func (r *Reader) errorAt(line int, format string, args ...interface{}) *SyntaxError {
	return &SyntaxError{r.p.fileName, line, fmt.Sprintf(format, args...)}
}

// convert turns a top-level literal into a Record.
func (r *Reader) convert(lit literal, line int) (*Record, *SyntaxError) {
	rec := &Record{
		Name:   r.DefaultName,
		File:   r.p.fileName,
		Params: make(map[string]Value),
	}
	var points literal
	switch lit := lit.(type) {
	case []literal:
		points = lit
	case *dict:
		for _, key := range lit.keys {
			val, kline := lit.vals[key], lit.line[key]
			switch key {
			case "mapType":
				s, ok := val.(string)
				if !ok {
					return nil, r.errorAt(kline, "mapType must be a string")
				}
				rec.Name = s
			case "labels":
				seq, ok := val.([]literal)
				if !ok {
					return nil, r.errorAt(kline, "labels must be a tuple of strings")
				}
				for _, l := range seq {
					s, ok := l.(string)
					if !ok {
						return nil, r.errorAt(kline, "labels must be a tuple of strings")
					}
					rec.Labels = append(rec.Labels, s)
				}
			case "points":
				points = val
			default:
				switch v := val.(type) {
				case float64:
					rec.Params[key] = Number(v)
				case string:
					rec.Params[key] = String(v)
				default:
					return nil, r.errorAt(kline, "key %q: value must be a number or string", key)
				}
			}
		}
		if points == nil {
			return nil, r.errorAt(line, "record has no points")
		}
		line = lit.line["points"]
	default:
		return nil, r.errorAt(line, "expected dict or list of points")
	}

	seq, ok := points.([]literal)
	if !ok {
		return nil, r.errorAt(line, "points must be a list")
	}
	if rec.Labels == nil {
		rec.Labels = append([]string(nil), r.DefaultLabels...)
	}
	rec.Points = make([][]float64, 0, len(seq))
	for i, p := range seq {
		tuple, ok := p.([]literal)
		if !ok {
			return nil, r.errorAt(line, "point %d: not a tuple", i)
		}
		if len(rec.Labels) == 0 {
			// No names at all: name the fields by position.
			for j := range tuple {
				rec.Labels = append(rec.Labels, strconv.Itoa(j))
			}
		}
		if len(tuple) < len(rec.Labels) {
			return nil, r.errorAt(line, "point %d has %d fields, want %d (%s)", i, len(tuple), len(rec.Labels), strings.Join(rec.Labels, ", "))
		}
		// Extra fields beyond the labels are ignored.
		vals := make([]float64, len(rec.Labels))
		for j := range vals {
			f, ok := tuple[j].(float64)
			if !ok {
				return nil, r.errorAt(line, "point %d field %s: not a number", i, rec.Labels[j])
			}
			vals[j] = f
		}
		rec.Points = append(rec.Points, vals)
	}
	if rec.Name == "" {
		return nil, r.errorAt(line, "record has no mapType and no default name")
	}
	return rec, nil
}
