// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package chart lays out and draws line charts of benchmark results.
//
// A Chart holds two axes and an ordered list of curves. Render draws
// it to a canvas.Canvas in the style described by a Style; WriteImage
// encodes it to an image file.
package chart

import (
	"fmt"
	"image/color"

	"github.com/aclements/go-moremath/stats"
	"github.com/mapbench/mapgraphs/axis"
	"github.com/mapbench/mapgraphs/series"
	"gonum.org/v1/plot/palette/brewer"
)

// A Curve is one named series of points.
type Curve struct {
	Name   string
	Points []series.Point

	// Color is the stroke color. If nil, AddCurve picks one from
	// the default palette.
	Color color.Color
}

// An EmptyCurveError reports an attempt to add a curve without points.
type EmptyCurveError struct {
	Name string
}

func (e *EmptyCurveError) Error() string {
	return fmt.Sprintf("chart: curve %q has no points", e.Name)
}

// A Chart is a pair of axes and the curves drawn against them.
type Chart struct {
	x, y   *axis.Axis
	curves []Curve
	fitX   bool

	xMin, xMax float64
}

// An Option configures a Chart.
type Option func(*Chart)

// FitX makes the x axis range fit the curves: at render time the
// configured bounds are replaced by the smallest and largest X drawn.
func FitX() Option {
	return func(c *Chart) { c.fitX = true }
}

// New returns an empty chart on the given axes.
func New(x, y *axis.Axis, opts ...Option) *Chart {
	c := &Chart{x: x, y: y}
	for _, o := range opts {
		o(c)
	}
	return c
}

// X returns the horizontal axis.
func (c *Chart) X() *axis.Axis { return c.x }

// Y returns the vertical axis.
func (c *Chart) Y() *axis.Axis { return c.y }

// FitsX reports whether the x range is fitted to the data.
func (c *Chart) FitsX() bool { return c.fitX }

var defaultColors = func() []color.Color {
	p, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 9)
	if err != nil {
		panic(err)
	}
	return p.Colors()
}()

// AddCurve appends cv to the chart. Curves are drawn, and listed in
// the legend, in the order they are added. The chart keeps its own
// copy of the points.
func (c *Chart) AddCurve(cv Curve) error {
	if len(cv.Points) == 0 {
		return &EmptyCurveError{cv.Name}
	}
	cv.Points = append([]series.Point(nil), cv.Points...)
	if cv.Color == nil {
		cv.Color = defaultColors[len(c.curves)%len(defaultColors)]
	}

	lo, hi := series.XBounds(cv.Points)
	if len(c.curves) == 0 {
		c.xMin, c.xMax = lo, hi
	} else {
		c.xMin, c.xMax = stats.Bounds([]float64{c.xMin, c.xMax, lo, hi})
	}
	c.curves = append(c.curves, cv)
	return nil
}

// Curves returns the chart's curves in insertion order.
func (c *Chart) Curves() []Curve {
	return c.curves
}

// ObservedX returns the smallest and largest X over all curves added
// so far. ok is false if there are no curves.
func (c *Chart) ObservedX() (min, max float64, ok bool) {
	return c.xMin, c.xMax, len(c.curves) > 0
}

// FinalizeXRange resets the x axis to the observed X range. It does
// nothing if the chart has no curves.
func (c *Chart) FinalizeXRange() error {
	if len(c.curves) == 0 {
		return nil
	}
	return c.x.Reset(c.xMin, c.xMax)
}
