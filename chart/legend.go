// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"math"
)

// A Legend decides where each curve's label goes. The implementations
// are Stacked, AtCurveEnd and NoLegend.
type Legend interface {
	place(lc *legendContext) legendLayout
}

// legendContext is what a Legend may consult, in plot coordinates:
// the origin is the axis origin and y grows downward.
type legendContext struct {
	xSize, ySize float64
	avail        float64      // vertical space available to a legend
	last         [][2]float64 // last mapped point of each curve
	widths       []float64    // label width of each curve
}

type legendEntry struct {
	x, y   float64 // label baseline start
	swatch bool
}

type legendLayout struct {
	entries []legendEntry // one per curve, or nil
	frame   *box
}

type box struct {
	x, y, w, h float64
}

// An Anchor selects the end of the x axis a legend is positioned from.
type Anchor int

const (
	AnchorLeft Anchor = iota
	AnchorRight
)

// Stacked lists the curves in a column, each label preceded by a
// short line in the curve's color. Entry i of n has its baseline at
// Y + k*Pitch, where k is i, or n-1-i if Reverse is set. A negative
// Pitch stacks upward. If the column would be taller than the image,
// the pitch shrinks to fit.
type Stacked struct {
	X, Y    float64
	Pitch   float64
	Anchor  Anchor
	Reverse bool

	// Frame draws a box behind the entries.
	Frame bool
}

func (s Stacked) place(lc *legendContext) legendLayout {
	n := len(lc.widths)
	if n == 0 {
		return legendLayout{}
	}
	pitch := s.Pitch
	if math.Abs(pitch)*float64(n) > lc.avail {
		pitch = math.Copysign(lc.avail/float64(n), pitch)
	}
	x := s.X
	if s.Anchor == AnchorRight {
		x += lc.xSize
	}
	var l legendLayout
	top, maxW := math.Inf(1), 0.0
	for i := 0; i < n; i++ {
		k := i
		if s.Reverse {
			k = n - 1 - i
		}
		y := s.Y + float64(k)*pitch
		l.entries = append(l.entries, legendEntry{x, y, true})
		top = math.Min(top, y)
		maxW = math.Max(maxW, lc.widths[i])
	}
	if s.Frame {
		l.frame = &box{
			x: x - 30.5,
			y: top - 14.5,
			w: math.Ceil(40 + maxW),
			h: float64(n-1)*math.Abs(pitch) + 22,
		}
	}
	return l
}

// AtCurveEnd labels each curve just past its last point, offset by
// (DX, DY), without a swatch.
type AtCurveEnd struct {
	DX, DY float64
}

func (a AtCurveEnd) place(lc *legendContext) legendLayout {
	var l legendLayout
	for _, p := range lc.last {
		l.entries = append(l.entries, legendEntry{p[0] + a.DX, p[1] + a.DY, false})
	}
	return l
}

// NoLegend draws no curve labels.
type NoLegend struct{}

func (NoLegend) place(*legendContext) legendLayout { return legendLayout{} }
