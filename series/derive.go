// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package series

import (
	"fmt"

	"github.com/aclements/go-gg/table"
	"github.com/mapbench/mapgraphs/results"
)

// A MissingDataError reports that a series, or a field of it, needed
// by a derivation is absent.
type MissingDataError struct {
	Series string
	Field  string // "" if the whole series is missing or empty
}

func (e *MissingDataError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("series %q: no data", e.Series)
	}
	return fmt.Sprintf("series %q: missing field %q", e.Series, e.Field)
}

// A Row gives named access to one tuple of a record. Fields are the
// record's labels and its numeric parameters.
type Row struct {
	series string
	t      *table.Table
	i      int
}

// Index returns the position of r within its record.
func (r Row) Index() int { return r.i }

// Get returns the named field of r.
func (r Row) Get(field string) (float64, error) {
	col, ok := r.t.Column(field).([]float64)
	if !ok {
		return 0, &MissingDataError{r.series, field}
	}
	return col[r.i], nil
}

// Require checks that rec has every one of fields, as a label or a
// numeric parameter.
func Require(rec *results.Record, fields ...string) error {
	t := rec.Table()
	for _, f := range fields {
		if _, ok := t.Column(f).([]float64); !ok {
			return &MissingDataError{rec.Name, f}
		}
	}
	return nil
}

// Extract maps every row of rec to a point with f.
func Extract(rec *results.Record, f func(Row) (Point, error)) ([]Point, error) {
	t := rec.Table()
	pts := make([]Point, 0, t.Len())
	for i := 0; i < t.Len(); i++ {
		p, err := f(Row{rec.Name, t, i})
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// Relative maps the rows of rec, paired by position with the rows of
// the baseline record base, to points with f. Pairing stops at the
// shorter of the two records. It fails with a *MissingDataError if
// base is nil or has no rows.
func Relative(rec, base *results.Record, f func(base, row Row) (Point, error)) ([]Point, error) {
	if base == nil {
		return nil, &MissingDataError{Series: "baseline"}
	}
	bt := base.Table()
	if bt.Len() == 0 {
		return nil, &MissingDataError{Series: base.Name}
	}
	t := rec.Table()
	n := t.Len()
	if bt.Len() < n {
		n = bt.Len()
	}
	pts := make([]Point, 0, n)
	for i := 0; i < n; i++ {
		p, err := f(Row{base.Name, bt, i}, Row{rec.Name, t, i})
		if err != nil {
			return nil, err
		}
		pts = append(pts, p)
	}
	return pts, nil
}

// A Derivation computes the points of one curve from a record and an
// optional baseline record.
type Derivation interface {
	Derive(rec, base *results.Record) ([]Point, error)

	// NeedsBaseline reports whether Derive requires a baseline.
	NeedsBaseline() bool
}

type throughput struct{}

// Throughput returns the derivation of the scalability chart: total
// map operations per second across all threads, in millions, against
// the thread count.
func Throughput() Derivation { return throughput{} }

func (throughput) NeedsBaseline() bool { return false }

func (throughput) Derive(rec, _ *results.Record) ([]Point, error) {
	if err := Require(rec, "numThreads", "mapOpsDone", "totalTime"); err != nil {
		return nil, err
	}
	return Extract(rec, func(r Row) (Point, error) {
		threads, _ := r.Get("numThreads")
		ops, _ := r.Get("mapOpsDone")
		sec, _ := r.Get("totalTime")
		return XY(threads, ops/sec*threads/1e6), nil
	})
}

type mapTimeFraction struct{}

// MapTimeFraction returns the derivation of the performance chart.
// The baseline record runs the same workload against a map that does
// nothing, which calibrates the cost of one unit of work and the work
// between map operations. Each point's X is the interval between map
// operations and its Y the fraction of the run's time spent inside
// the map.
func MapTimeFraction() Derivation { return mapTimeFraction{} }

func (mapTimeFraction) NeedsBaseline() bool { return true }

func (mapTimeFraction) Derive(rec, base *results.Record) ([]Point, error) {
	if base != nil {
		if err := Require(base, "workUnitsDone", "mapOpsDone", "totalTime"); err != nil {
			return nil, err
		}
	}
	if err := Require(rec, "workUnitsDone", "totalTime"); err != nil {
		return nil, err
	}
	return Relative(rec, base, func(b, r Row) (Point, error) {
		bWork, _ := b.Get("workUnitsDone")
		bOps, _ := b.Get("mapOpsDone")
		bTime, _ := b.Get("totalTime")
		work, _ := r.Get("workUnitsDone")
		total, _ := r.Get("totalTime")

		workPerOp := bWork / bOps
		timePerWork := bTime / bWork
		mapTime := total - work*timePerWork
		return XY(workPerOp*timePerWork, mapTime/total), nil
	})
}

type columns struct {
	x, y, high string
}

// Columns returns a derivation that plots field y against field x.
// If high is not empty, points are ranged from y to high.
func Columns(x, y, high string) Derivation { return columns{x, y, high} }

func (columns) NeedsBaseline() bool { return false }

func (c columns) Derive(rec, _ *results.Record) ([]Point, error) {
	fields := []string{c.x, c.y}
	if c.high != "" {
		fields = append(fields, c.high)
	}
	if err := Require(rec, fields...); err != nil {
		return nil, err
	}
	return Extract(rec, func(r Row) (Point, error) {
		x, _ := r.Get(c.x)
		y, _ := r.Get(c.y)
		if c.high == "" {
			return XY(x, y), nil
		}
		hi, _ := r.Get(c.high)
		return Range(x, y, hi), nil
	})
}
