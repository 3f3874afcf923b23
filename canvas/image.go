// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	xfont "golang.org/x/image/font"
	"golang.org/x/image/math/f64"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgeps"
	"gonum.org/v1/plot/vg/vgimg"
	"gonum.org/v1/plot/vg/vgpdf"
	"gonum.org/v1/plot/vg/vgsvg"
)

// An Image is a Canvas backed by a gonum plot vg canvas, which it
// encodes in one of the supported file formats.
//
// vg canvases put the origin at the bottom left and have no clipping,
// so Image keeps its own transform and clips paths geometrically
// before handing them to vg.
type Image struct {
	format Format
	w, h   float64
	out    vg.CanvasWriterTo

	st    gstate
	stack []gstate

	path     []subpath
	cur      f64.Vec2 // current point, device space
	hasCur   bool
	released bool
}

type gstate struct {
	m     f64.Aff3 // user to device
	clip  *rect    // device space
	color color.Color
	width float64
	dash  []float64
}

type rect struct {
	x0, y0, x1, y1 float64
}

type subpath struct {
	pts    []f64.Vec2
	closed bool
}

var identity = f64.Aff3{1, 0, 0, 0, 1, 0}

// NewImage returns a blank width×height pixel image to be encoded in
// format. Raster images start out filled with bg; vector images start
// out empty.
func NewImage(format Format, width, height int, bg color.Color) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("canvas: bad image size %dx%d", width, height)
	}
	if bg == nil {
		bg = color.White
	}
	w, h := vg.Length(width), vg.Length(height)
	var out vg.CanvasWriterTo
	switch format {
	case PNG, JPEG:
		// At 72 dpi one vg point is one pixel.
		c := vgimg.NewWith(vgimg.UseWH(w, h), vgimg.UseDPI(72), vgimg.UseBackgroundColor(bg))
		if format == PNG {
			out = vgimg.PngCanvas{Canvas: c}
		} else {
			out = vgimg.JpegCanvas{Canvas: c}
		}
	case SVG:
		out = vgsvg.New(w, h)
	case PDF:
		c := vgpdf.New(w, h)
		c.EmbedFonts(true)
		out = c
	case EPS:
		out = vgeps.New(w, h)
	default:
		return nil, fmt.Errorf("canvas: unsupported format %v", format)
	}
	return &Image{
		format: format,
		w:      float64(width),
		h:      float64(height),
		out:    out,
		st:     gstate{m: identity, color: color.Black, width: 1},
	}, nil
}

// Size returns the size of im in pixels.
func (im *Image) Size() (w, h float64) { return im.w, im.h }

// Format returns the format im encodes to.
func (im *Image) Format() Format { return im.format }

var errReleased = errors.New("canvas: image already released")

// WriteTo encodes im to w.
func (im *Image) WriteTo(w io.Writer) (int64, error) {
	if im.released {
		return 0, errReleased
	}
	return im.out.WriteTo(w)
}

// Release drops the backing canvas. A released image can no longer
// be drawn to or written.
func (im *Image) Release() {
	im.released = true
	im.out = nil
	im.path = nil
	im.stack = nil
}

func (im *Image) apply(x, y float64) f64.Vec2 {
	m := &im.st.m
	return f64.Vec2{m[0]*x + m[1]*y + m[2], m[3]*x + m[4]*y + m[5]}
}

// vgPoint converts a device point to vg's bottom-left origin.
func (im *Image) vgPoint(p f64.Vec2) vg.Point {
	return vg.Point{X: vg.Length(p[0]), Y: vg.Length(im.h - p[1])}
}

func (im *Image) MoveTo(x, y float64) {
	im.cur, im.hasCur = im.apply(x, y), true
	im.path = append(im.path, subpath{pts: []f64.Vec2{im.cur}})
}

func (im *Image) LineTo(x, y float64) {
	if !im.hasCur {
		im.MoveTo(x, y)
		return
	}
	im.lineToDevice(im.apply(x, y))
}

func (im *Image) RelLineTo(dx, dy float64) {
	if !im.hasCur {
		return
	}
	m := &im.st.m
	im.lineToDevice(f64.Vec2{im.cur[0] + m[0]*dx + m[1]*dy, im.cur[1] + m[3]*dx + m[4]*dy})
}

func (im *Image) lineToDevice(p f64.Vec2) {
	sp := &im.path[len(im.path)-1]
	if sp.closed {
		im.path = append(im.path, subpath{pts: []f64.Vec2{sp.pts[0]}})
		sp = &im.path[len(im.path)-1]
	}
	sp.pts = append(sp.pts, p)
	im.cur = p
}

func (im *Image) Rectangle(x, y, w, h float64) {
	im.path = append(im.path, subpath{
		pts:    []f64.Vec2{im.apply(x, y), im.apply(x+w, y), im.apply(x+w, y+h), im.apply(x, y+h)},
		closed: true,
	})
	im.cur, im.hasCur = im.apply(x, y), true
}

func (im *Image) clipper() *draw.Canvas {
	c := im.st.clip
	if c == nil {
		return nil
	}
	return &draw.Canvas{
		Canvas: im.out,
		Rectangle: vg.Rectangle{
			Min: vg.Point{X: vg.Length(c.x0), Y: vg.Length(im.h - c.y1)},
			Max: vg.Point{X: vg.Length(c.x1), Y: vg.Length(im.h - c.y0)},
		},
	}
}

func (im *Image) setPen() {
	im.out.SetColor(im.st.color)
	im.out.SetLineWidth(vg.Length(im.st.width))
	var dashes []vg.Length
	for _, d := range im.st.dash {
		dashes = append(dashes, vg.Length(d))
	}
	im.out.SetLineDash(dashes, 0)
}

func (im *Image) Stroke() {
	if im.released {
		return
	}
	im.setPen()
	dc := im.clipper()
	for _, sp := range im.path {
		if len(sp.pts) < 2 {
			continue
		}
		line := make([]vg.Point, 0, len(sp.pts)+1)
		for _, p := range sp.pts {
			line = append(line, im.vgPoint(p))
		}
		if dc == nil {
			var p vg.Path
			p.Move(line[0])
			for _, pt := range line[1:] {
				p.Line(pt)
			}
			if sp.closed {
				p.Close()
			}
			im.out.Stroke(p)
			continue
		}
		if sp.closed {
			line = append(line, line[0])
		}
		for _, l := range dc.ClipLinesXY(line) {
			if len(l) < 2 {
				continue
			}
			var p vg.Path
			p.Move(l[0])
			for _, pt := range l[1:] {
				p.Line(pt)
			}
			im.out.Stroke(p)
		}
	}
	im.newPath()
}

func (im *Image) Fill() {
	if im.released {
		return
	}
	im.out.SetColor(im.st.color)
	dc := im.clipper()
	for _, sp := range im.path {
		if len(sp.pts) < 3 {
			continue
		}
		poly := make([]vg.Point, 0, len(sp.pts))
		for _, p := range sp.pts {
			poly = append(poly, im.vgPoint(p))
		}
		if dc != nil {
			poly = dc.ClipPolygonXY(poly)
			if len(poly) < 3 {
				continue
			}
		}
		var p vg.Path
		p.Move(poly[0])
		for _, pt := range poly[1:] {
			p.Line(pt)
		}
		p.Close()
		im.out.Fill(p)
	}
	im.newPath()
}

func (im *Image) newPath() {
	im.path = im.path[:0]
	im.hasCur = false
}

func (im *Image) SetLineWidth(w float64) { im.st.width = w }

func (im *Image) SetDash(pattern ...float64) {
	im.st.dash = append([]float64(nil), pattern...)
}

func (im *Image) SetColor(c color.Color) { im.st.color = c }

func (im *Image) ClipRect(x, y, w, h float64) {
	r := rect{math.Inf(1), math.Inf(1), math.Inf(-1), math.Inf(-1)}
	for _, p := range []f64.Vec2{im.apply(x, y), im.apply(x+w, y), im.apply(x+w, y+h), im.apply(x, y+h)} {
		r.x0, r.x1 = math.Min(r.x0, p[0]), math.Max(r.x1, p[0])
		r.y0, r.y1 = math.Min(r.y0, p[1]), math.Max(r.y1, p[1])
	}
	if c := im.st.clip; c != nil {
		r.x0, r.y0 = math.Max(r.x0, c.x0), math.Max(r.y0, c.y0)
		r.x1, r.y1 = math.Min(r.x1, c.x1), math.Min(r.y1, c.y1)
		if r.x1 < r.x0 {
			r.x1 = r.x0
		}
		if r.y1 < r.y0 {
			r.y1 = r.y0
		}
	}
	im.st.clip = &r
}

func (im *Image) Translate(dx, dy float64) {
	m := &im.st.m
	m[2] += m[0]*dx + m[1]*dy
	m[5] += m[3]*dx + m[4]*dy
}

func (im *Image) Rotate(rad float64) {
	s, c := math.Sincos(rad)
	m := &im.st.m
	a, b, d, e := m[0], m[1], m[3], m[4]
	m[0], m[1] = a*c+b*s, b*c-a*s
	m[3], m[4] = d*c+e*s, e*c-d*s
}

func (im *Image) Push() {
	im.stack = append(im.stack, im.st)
}

func (im *Image) Pop() {
	if len(im.stack) == 0 {
		panic("canvas: Pop without Push")
	}
	im.st = im.stack[len(im.stack)-1]
	im.stack = im.stack[:len(im.stack)-1]
}

func (im *Image) MeasureText(f Font, s string) Extents {
	return Measure(f, s)
}

func (im *Image) DrawText(f Font, x, y float64, s string) {
	if im.released || s == "" {
		return
	}
	p := im.apply(x, y)
	// Angle of the user x axis in device space. vg's y axis points
	// up, which reverses the sense of rotation.
	angle := math.Atan2(im.st.m[3], im.st.m[0])
	im.out.Push()
	im.out.Translate(im.vgPoint(p))
	if angle != 0 {
		im.out.Rotate(-angle)
	}
	im.out.SetColor(im.st.color)
	face := Face(f)
	if im.format == PDF {
		face = pdfFace(face)
	}
	im.out.FillString(face, vg.Point{}, s)
	im.out.Pop()
}

// pdfFace returns a bold face renamed as a regular one. vgpdf adds
// every face to the document with an empty style but selects bold
// faces with style "B", which the document then cannot find.
func pdfFace(face font.Face) font.Face {
	if face.Font.Weight != xfont.WeightBold {
		return face
	}
	face.Font.Variant += "Bold"
	face.Font.Weight = xfont.WeightNormal
	return face
}
