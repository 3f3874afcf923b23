// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package series turns result records into the point series drawn as
// chart curves.
package series

import (
	"sort"

	"github.com/aclements/go-moremath/stats"
)

// A Point is one vertex of a curve in data space. Ranged points also
// carry an upper Y value, as in the (population, loMem, hiMem) tuples
// of the memory benchmark.
type Point struct {
	X, Y   float64
	High   float64
	Ranged bool
}

// XY returns a plain two-component point.
func XY(x, y float64) Point { return Point{X: x, Y: y} }

// Range returns a point spanning [lo, hi] at x.
func Range(x, lo, hi float64) Point { return Point{X: x, Y: lo, High: hi, Ranged: true} }

// XBounds returns the smallest and largest X in pts. It panics if pts
// is empty.
func XBounds(pts []Point) (min, max float64) {
	xs := make([]float64, len(pts))
	for i, p := range pts {
		xs[i] = p.X
	}
	return stats.Bounds(xs)
}

// Collapse merges points that share an X value into one point whose Y
// is the mean of their Ys and whose High is the largest High. The
// result is sorted by X. Repeated runs of the harness at the same
// thread count produce such points.
func Collapse(pts []Point) []Point {
	if len(pts) == 0 {
		return nil
	}
	sorted := append([]Point(nil), pts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].X < sorted[j].X })

	var out []Point
	for i := 0; i < len(sorted); {
		j := i + 1
		for j < len(sorted) && sorted[j].X == sorted[i].X {
			j++
		}
		group := sorted[i:j]
		ys := make([]float64, len(group))
		p := Point{X: group[0].X, High: group[0].High, Ranged: true}
		for k, g := range group {
			ys[k] = g.Y
			if g.High > p.High {
				p.High = g.High
			}
			p.Ranged = p.Ranged && g.Ranged
		}
		p.Y = stats.Mean(ys)
		if !p.Ranged {
			p.High = 0
		}
		out = append(out, p)
		i = j
	}
	return out
}
