// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package smooth implements subdivision smoothing of polylines.
//
// Both operators shorten the curve: Midpoint drops the endpoints and
// Quarter pulls them in by a quarter of the first and last segments.
// Smoothing is applied before mapping to pixel space, so it operates
// on data coordinates.
package smooth

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mapbench/mapgraphs/series"
)

// An InsufficientPointsError reports that a smoothing step was given
// fewer than the two points it needs.
type InsufficientPointsError struct {
	Step string
	N    int
}

func (e *InsufficientPointsError) Error() string {
	return fmt.Sprintf("smooth: %s needs at least 2 points, have %d", e.Step, e.N)
}

// lerp returns the point a fraction t of the way from a to b. The
// result is ranged only if both inputs are.
func lerp(a, b series.Point, t float64) series.Point {
	p := series.Point{
		X: a.X + (b.X-a.X)*t,
		Y: a.Y + (b.Y-a.Y)*t,
	}
	if a.Ranged && b.Ranged {
		p.High = a.High + (b.High-a.High)*t
		p.Ranged = true
	}
	return p
}

// Midpoint returns the midpoints of consecutive pairs of pts: n-1
// points for n inputs.
func Midpoint(pts []series.Point) ([]series.Point, error) {
	if len(pts) < 2 {
		return nil, &InsufficientPointsError{"midpoint", len(pts)}
	}
	out := make([]series.Point, len(pts)-1)
	for i := range out {
		out[i] = lerp(pts[i], pts[i+1], 0.5)
	}
	return out, nil
}

// Quarter performs one step of corner cutting: each consecutive pair
// of pts is replaced by the points a quarter and three quarters of the
// way along it, for 2(n-1) points.
func Quarter(pts []series.Point) ([]series.Point, error) {
	if len(pts) < 2 {
		return nil, &InsufficientPointsError{"quarter", len(pts)}
	}
	out := make([]series.Point, 0, 2*(len(pts)-1))
	for i := 0; i+1 < len(pts); i++ {
		out = append(out, lerp(pts[i], pts[i+1], 0.25), lerp(pts[i], pts[i+1], 0.75))
	}
	return out, nil
}

// A Step is one smoothing operator.
type Step func([]series.Point) ([]series.Point, error)

// A Pipeline applies a sequence of steps in order.
type Pipeline []Step

// Apply runs pts through every step of p. An empty pipeline returns
// pts unchanged.
func (p Pipeline) Apply(pts []series.Point) ([]series.Point, error) {
	for _, step := range p {
		var err error
		pts, err = step(pts)
		if err != nil {
			return nil, err
		}
	}
	return pts, nil
}

// Default returns the pipeline used for the performance chart: six
// midpoint passes, a quarter pass, and a final midpoint pass.
func Default() Pipeline {
	p, err := ParsePipeline("midpoint*6,quarter,midpoint")
	if err != nil {
		panic(err)
	}
	return p
}

var steps = map[string]Step{
	"midpoint": Midpoint,
	"quarter":  Quarter,
}

// ParsePipeline parses a comma-separated list of step names, each
// optionally followed by "*N" to repeat it N times, such as
// "midpoint*6,quarter". The empty string yields an empty pipeline.
func ParsePipeline(s string) (Pipeline, error) {
	var p Pipeline
	if strings.TrimSpace(s) == "" {
		return p, nil
	}
	for _, elem := range strings.Split(s, ",") {
		elem = strings.TrimSpace(elem)
		name, count := elem, 1
		if i := strings.Index(elem, "*"); i >= 0 {
			n, err := strconv.Atoi(strings.TrimSpace(elem[i+1:]))
			if err != nil || n < 1 {
				return nil, fmt.Errorf("smoothing step %q: bad repeat count", elem)
			}
			name, count = strings.TrimSpace(elem[:i]), n
		}
		step, ok := steps[name]
		if !ok {
			return nil, fmt.Errorf("unknown smoothing step %q", name)
		}
		for ; count > 0; count-- {
			p = append(p, step)
		}
	}
	return p, nil
}
