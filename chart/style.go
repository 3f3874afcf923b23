// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"image/color"
	"math"

	"github.com/mapbench/mapgraphs/canvas"
	"github.com/mapbench/mapgraphs/smooth"
)

// Margins is the space around the plot area, in pixels.
type Margins struct {
	Left, Right, Top, Bottom float64
}

// A MarkerStyle selects the glyph drawn at each curve point.
type MarkerStyle int

const (
	NoMarker MarkerStyle = iota
	SquareMarker
)

// A Style describes how a chart is drawn.
type Style struct {
	XTitle, YTitle, YSubtitle string

	// XTitleY is the baseline of the x title below the x axis.
	// YTitleX and YSubtitleX are the baselines of the rotated y
	// title and subtitle, left of the y axis (negative).
	XTitleY, YTitleX, YSubtitleX float64

	Margins    Margins
	Background color.Color

	LabelFont, TitleFont, SubtitleFont canvas.Font

	AxisColor, GridColor      color.Color
	TitleColor, SubtitleColor color.Color

	CurveWidth float64

	// Curves whose index is in Dashed are stroked with Dash.
	Dashed []int
	Dash   []float64

	Marker     MarkerStyle
	MarkerSize float64

	// RangeBand fills the area between Y and High of ranged points.
	RangeBand bool

	// TickLabelRotation is the rotation of x tick labels in
	// radians. Rotated labels end at their tick; unrotated labels
	// are centered below it.
	TickLabelRotation float64

	XTickMarks, YTickMarks, YGrid bool

	Legend Legend

	// Legend labels of curves with one of BoldColors are bold.
	BoldColors []color.Color

	// Smooth is applied to every curve before mapping.
	Smooth smooth.Pipeline

	// Curves are clipped to the plot area extended ClipTop pixels
	// below the x axis and ClipOverflow pixels above the top of
	// the y axis.
	ClipTop, ClipOverflow float64
}

var (
	gray40 = color.RGBA{0x66, 0x66, 0x66, 0xff}
	gray94 = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	gray50 = color.RGBA{0x80, 0x80, 0x80, 0xff}
)

// DefaultStyle returns a style with rotated x labels, y gridlines, a
// framed legend in the top right corner and no titles.
func DefaultStyle() *Style {
	return &Style{
		XTitleY:           50,
		YTitleX:           -44,
		YSubtitleX:        -30,
		Margins:           Margins{Left: 58, Right: 92, Top: 11, Bottom: 54},
		Background:        color.White,
		LabelFont:         canvas.Font{Family: "Arial", Size: 11},
		TitleFont:         canvas.Font{Family: "Helvetica", Size: 16, Bold: true},
		SubtitleFont:      canvas.Font{Family: "Helvetica", Size: 13},
		AxisColor:         gray40,
		GridColor:         gray94,
		TitleColor:        color.Black,
		SubtitleColor:     gray50,
		CurveWidth:        2.5,
		Dash:              []float64{10, 1},
		MarkerSize:        5,
		TickLabelRotation: -math.Pi / 4,
		XTickMarks:        true,
		YGrid:             true,
		Legend:            Stacked{X: -40, Y: -220, Pitch: 12, Anchor: AnchorRight, Frame: true},
		ClipTop:           5,
		ClipOverflow:      10,
	}
}

// ImageSize returns the pixel size of an image holding axes of the
// given lengths.
func (st *Style) ImageSize(xSize, ySize float64) (w, h int) {
	w = int(st.Margins.Left + st.Margins.Right + math.Floor(xSize+0.5))
	h = int(st.Margins.Top + st.Margins.Bottom + math.Floor(ySize+0.5))
	return w, h
}

func (st *Style) isDashed(i int) bool {
	for _, d := range st.Dashed {
		if d == i {
			return true
		}
	}
	return false
}

func (st *Style) isBold(c color.Color) bool {
	r, g, b, a := c.RGBA()
	for _, bc := range st.BoldColors {
		r2, g2, b2, a2 := bc.RGBA()
		if r == r2 && g == g2 && b == b2 && a == a2 {
			return true
		}
	}
	return false
}
