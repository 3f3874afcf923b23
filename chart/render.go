// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/aclements/go-moremath/stats"
	"github.com/mapbench/mapgraphs/axis"
	"github.com/mapbench/mapgraphs/canvas"
	"github.com/mapbench/mapgraphs/series"
)

// A layout is everything computed about a chart before drawing
// starts. Computing it can fail; drawing it cannot.
//
// Coordinates are relative to the axis origin, with y growing
// downward, so points above the x axis have negative y.
type layout struct {
	w, h         int
	xSize, ySize float64

	xTicks, yTicks []axis.Tick

	curves []curveLayout
	legend legendLayout
}

type curveLayout struct {
	name   string
	color  color.Color
	pts    []mapped
	dashed bool
	font   canvas.Font
}

type mapped struct {
	x, y, hi float64
	ranged   bool
}

func (c *Chart) layout(st *Style, measure func(canvas.Font, string) canvas.Extents) (*layout, error) {
	pts := make([][]series.Point, len(c.curves))
	for i, cv := range c.curves {
		p, err := st.Smooth.Apply(cv.Points)
		if err != nil {
			return nil, fmt.Errorf("curve %q: %w", cv.Name, err)
		}
		pts[i] = p
	}

	switch {
	case !c.fitX:
	case len(st.Smooth) == 0:
		if err := c.FinalizeXRange(); err != nil {
			return nil, err
		}
	case len(pts) > 0:
		// Smoothing drops the end points, so fit to what is drawn.
		var bounds []float64
		for _, p := range pts {
			lo, hi := series.XBounds(p)
			bounds = append(bounds, lo, hi)
		}
		lo, hi := stats.Bounds(bounds)
		if err := c.x.Reset(lo, hi); err != nil {
			return nil, err
		}
	}

	l := &layout{xSize: c.x.Size(), ySize: c.y.Size()}
	l.w, l.h = st.ImageSize(l.xSize, l.ySize)
	var err error
	if l.xTicks, err = c.x.Ticks(); err != nil {
		return nil, err
	}
	if l.yTicks, err = c.y.Ticks(); err != nil {
		return nil, err
	}

	lc := &legendContext{xSize: l.xSize, ySize: l.ySize, avail: float64(l.h)}
	for i, cv := range c.curves {
		cl := curveLayout{
			name:   cv.Name,
			color:  cv.Color,
			dashed: st.isDashed(i),
			font:   st.LabelFont,
		}
		cl.font.Bold = cl.font.Bold || st.isBold(cv.Color)
		for _, p := range pts[i] {
			m, err := mapPoint(c.x, c.y, p)
			if err != nil {
				return nil, fmt.Errorf("curve %q: %w", cv.Name, err)
			}
			cl.pts = append(cl.pts, m)
		}
		last := cl.pts[len(cl.pts)-1]
		lc.last = append(lc.last, [2]float64{last.x, last.y})
		lc.widths = append(lc.widths, measure(cl.font, cv.Name).Width)
		l.curves = append(l.curves, cl)
	}
	if st.Legend != nil {
		l.legend = st.Legend.place(lc)
	}
	return l, nil
}

func mapPoint(x, y *axis.Axis, p series.Point) (mapped, error) {
	px, err := x.Map(p.X)
	if err != nil {
		return mapped{}, err
	}
	py, err := y.Map(p.Y)
	if err != nil {
		return mapped{}, err
	}
	m := mapped{x: px, y: -py}
	if p.Ranged {
		hi, err := y.Map(p.High)
		if err != nil {
			return mapped{}, err
		}
		m.hi, m.ranged = -hi, true
	}
	return m, nil
}

// Render draws ch on c in style st, which may be nil for
// DefaultStyle. All errors are detected before the first call on c,
// so a failed Render leaves c untouched.
func Render(c canvas.Canvas, ch *Chart, st *Style) error {
	if st == nil {
		st = DefaultStyle()
	}
	l, err := ch.layout(st, c.MeasureText)
	if err != nil {
		return err
	}
	l.draw(c, st)
	return nil
}

// Encode renders ch to an image in the given format and returns the
// encoded file contents.
func Encode(format canvas.Format, ch *Chart, st *Style) ([]byte, error) {
	if st == nil {
		st = DefaultStyle()
	}
	l, err := ch.layout(st, canvas.Measure)
	if err != nil {
		return nil, err
	}
	im, err := canvas.NewImage(format, l.w, l.h, st.Background)
	if err != nil {
		return nil, err
	}
	defer im.Release()
	l.draw(im, st)

	var buf bytes.Buffer
	if _, err := im.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding %v: %w", format, err)
	}
	return buf.Bytes(), nil
}

// WriteImage renders ch and writes it to w in the given format.
// Nothing is written to w if rendering fails.
func WriteImage(w io.Writer, format canvas.Format, ch *Chart, st *Style) error {
	data, err := Encode(format, ch, st)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

func (l *layout) draw(c canvas.Canvas, st *Style) {
	canvas.Saved(c, func() {
		l.setup(c, st)
		l.drawAxes(c, st)
		l.drawCurves(c, st)
		l.finalize(c, st)
	})
}

func (l *layout) setup(c canvas.Canvas, st *Style) {
	if st.Background != nil {
		c.SetColor(st.Background)
		c.Rectangle(0, 0, float64(l.w), float64(l.h))
		c.Fill()
	}
	c.Translate(st.Margins.Left, st.Margins.Top+l.ySize)
}

// skipY reports whether a y tick gets no gridline, tick mark or label.
func skipY(t axis.Tick) bool {
	return t.Label == "" || t.Label == "0"
}

func (l *layout) drawAxes(c canvas.Canvas, st *Style) {
	canvas.Saved(c, func() {
		c.SetLineWidth(1)
		c.SetColor(st.AxisColor)

		// Horizontal axis.
		c.MoveTo(0, -0.5)
		c.RelLineTo(l.xSize+1, 0)
		if st.XTickMarks {
			for _, t := range l.xTicks {
				c.MoveTo(math.Floor(t.Pos+0.5)+0.5, -1)
				c.RelLineTo(0, 4)
			}
		}
		c.Stroke()
		for _, t := range l.xTicks {
			if t.Label == "" {
				continue
			}
			x := math.Floor(t.Pos + 0.5)
			canvas.Saved(c, func() {
				if st.TickLabelRotation != 0 {
					c.Translate(x-1, 5)
					c.Rotate(st.TickLabelRotation)
					canvas.FillAlignedText(c, 0, 6, st.LabelFont, t.Label, canvas.AlignRight)
				} else {
					c.Translate(x, 9)
					canvas.FillAlignedText(c, 0, 6, st.LabelFont, t.Label, canvas.AlignCenter)
				}
			})
		}

		// Vertical axis.
		if st.YGrid {
			c.SetColor(st.GridColor)
			for _, t := range l.yTicks {
				if skipY(t) {
					continue
				}
				c.MoveTo(1, -math.Floor(t.Pos+0.5)-0.5)
				c.RelLineTo(l.xSize+1, 0)
			}
			c.Stroke()
			c.SetColor(st.AxisColor)
		}
		c.MoveTo(0.5, 0)
		c.RelLineTo(0, -l.ySize-0.5)
		if st.YTickMarks {
			for _, t := range l.yTicks {
				if skipY(t) {
					continue
				}
				c.MoveTo(1, -math.Floor(t.Pos+0.5)-0.5)
				c.RelLineTo(-4, 0)
			}
		}
		c.Stroke()
		for _, t := range l.yTicks {
			if skipY(t) {
				continue
			}
			canvas.FillAlignedText(c, -4, -t.Pos+4, st.LabelFont, t.Label, canvas.AlignRight)
		}
	})
}

func (l *layout) drawCurves(c canvas.Canvas, st *Style) {
	if f := l.legend.frame; f != nil {
		canvas.Saved(c, func() {
			c.Rectangle(f.x, f.y, f.w, f.h)
			c.SetColor(color.White)
			c.Fill()
			c.Rectangle(f.x, f.y, f.w, f.h)
			c.SetColor(st.GridColor)
			c.SetLineWidth(1)
			c.Stroke()
		})
	}

	for i, cl := range l.curves {
		canvas.Saved(c, func() {
			c.SetLineWidth(st.CurveWidth)
			c.SetColor(cl.color)
			if cl.dashed {
				c.SetDash(st.Dash...)
			}
			canvas.Saved(c, func() {
				c.ClipRect(0, st.ClipTop, l.xSize, -l.ySize-st.ClipTop-st.ClipOverflow)
				if st.RangeBand {
					l.drawBand(c, cl)
				}
				p0 := cl.pts[0]
				c.MoveTo(p0.x, p0.y)
				for _, p := range cl.pts[1:] {
					c.LineTo(p.x+0.5, p.y-0.5)
				}
				c.Stroke()
			})

			if st.Marker == SquareMarker {
				s := st.MarkerSize
				for _, p := range cl.pts {
					c.Rectangle(p.x-s/2, p.y-s/2, s, s)
				}
				c.Fill()
			}

			if i < len(l.legend.entries) {
				e := l.legend.entries[i]
				if e.swatch {
					c.MoveTo(e.x-4.5, e.y-4.5)
					c.RelLineTo(-21, 0)
					c.Stroke()
				}
				canvas.FillAlignedText(c, e.x, e.y, cl.font, cl.name, canvas.AlignLeft)
			}
		})
	}
}

// drawBand fills the area between the low and high values of each run
// of ranged points in a translucent version of the curve color.
func (l *layout) drawBand(c canvas.Canvas, cl curveLayout) {
	r, g, b, _ := cl.color.RGBA()
	c.SetColor(color.NRGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), 0x40})
	for i := 0; i < len(cl.pts); {
		if !cl.pts[i].ranged {
			i++
			continue
		}
		j := i
		for j < len(cl.pts) && cl.pts[j].ranged {
			j++
		}
		run := cl.pts[i:j]
		c.MoveTo(run[0].x, run[0].y)
		for _, p := range run[1:] {
			c.LineTo(p.x, p.y)
		}
		for k := len(run) - 1; k >= 0; k-- {
			c.LineTo(run[k].x, run[k].hi)
		}
		i = j
	}
	c.Fill()
	c.SetColor(cl.color)
}

func (l *layout) finalize(c canvas.Canvas, st *Style) {
	c.SetColor(st.TitleColor)
	if st.YTitle != "" {
		canvas.Saved(c, func() {
			c.Translate(st.YTitleX, -l.ySize/2)
			c.Rotate(-math.Pi / 2)
			canvas.FillAlignedText(c, 0, 0, st.TitleFont, st.YTitle, canvas.AlignCenter)
		})
	}
	if st.YSubtitle != "" {
		canvas.Saved(c, func() {
			c.Translate(st.YSubtitleX, -l.ySize/2)
			c.Rotate(-math.Pi / 2)
			c.SetColor(st.SubtitleColor)
			canvas.FillAlignedText(c, 0, 0, st.SubtitleFont, st.YSubtitle, canvas.AlignCenter)
		})
	}
	if st.XTitle != "" {
		canvas.FillAlignedText(c, l.xSize/2, st.XTitleY, st.TitleFont, st.XTitle, canvas.AlignCenter)
	}
}
