// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package canvas defines the drawing surface charts are rendered to,
// with backends for image files and for recording drawing commands.
//
// Coordinates follow the usual raster convention: the origin is the
// top left corner of the surface and y grows downward. Positive
// rotations turn the x axis toward the y axis. Lengths are in pixels.
package canvas

import (
	"fmt"
	"image/color"
	"math"
	"path/filepath"
	"strings"
)

// A Canvas is a stateful 2D drawing surface in the manner of cairo.
// Path construction accumulates into a current path, which Stroke and
// Fill consume. Push and Pop save and restore the graphics state: the
// transform, clip region, color, line width and dash pattern.
type Canvas interface {
	MoveTo(x, y float64)
	LineTo(x, y float64)
	RelLineTo(dx, dy float64)
	Rectangle(x, y, w, h float64)

	Stroke()
	Fill()

	SetLineWidth(w float64)
	SetDash(pattern ...float64)
	SetColor(c color.Color)

	// ClipRect intersects the clip region with a rectangle in
	// user space.
	ClipRect(x, y, w, h float64)

	Translate(dx, dy float64)
	Rotate(rad float64)

	Push()
	Pop()

	MeasureText(f Font, s string) Extents
	// DrawText draws s with its baseline starting at (x, y).
	DrawText(f Font, x, y float64, s string)
}

// A Font selects a typeface. Family names such as "Arial" and
// "Helvetica" resolve to the closest available face.
type Font struct {
	Family string
	Size   float64
	Bold   bool
}

func (f Font) String() string {
	s := fmt.Sprintf("%s %g", f.Family, f.Size)
	if f.Bold {
		s += " bold"
	}
	return s
}

// Extents describes the size of a piece of text.
type Extents struct {
	Width   float64
	Ascent  float64
	Descent float64
}

// Saved runs f between c.Push and c.Pop. The state is restored even
// if f panics.
func Saved(c Canvas, f func()) {
	c.Push()
	defer c.Pop()
	f()
}

// Text alignments for FillAlignedText.
const (
	AlignLeft   = 0
	AlignCenter = 0.5
	AlignRight  = 1
)

// FillAlignedText draws s with its baseline at y, aligned on x: align
// is 0 to start at x, 0.5 to center on x and 1 to end at x. The
// starting point is rounded to whole pixels.
func FillAlignedText(c Canvas, x, y float64, f Font, s string, align float64) {
	ext := c.MeasureText(f, s)
	c.DrawText(f, math.Floor(x+0.5-ext.Width*align), math.Floor(y+0.5), s)
}

// A Format is an image file format.
type Format int

const (
	PNG Format = iota
	JPEG
	SVG
	PDF
	EPS
)

var formatNames = []string{"png", "jpeg", "svg", "pdf", "eps"}

func (f Format) String() string {
	if f >= 0 && int(f) < len(formatNames) {
		return formatNames[f]
	}
	return fmt.Sprintf("Format(%d)", int(f))
}

// IsVector reports whether f stores drawing commands rather than
// pixels.
func (f Format) IsVector() bool {
	return f == SVG || f == PDF || f == EPS
}

// ParseFormat returns the format with the given name. "jpg" is
// accepted for JPEG.
func ParseFormat(name string) (Format, error) {
	name = strings.ToLower(name)
	if name == "jpg" {
		return JPEG, nil
	}
	for i, n := range formatNames {
		if n == name {
			return Format(i), nil
		}
	}
	return 0, fmt.Errorf("unknown image format %q", name)
}

// FormatFromPath picks a format from the extension of path.
func FormatFromPath(path string) (Format, error) {
	ext := filepath.Ext(path)
	if ext == "" {
		return 0, fmt.Errorf("%s: no file extension to pick an image format", path)
	}
	f, err := ParseFormat(ext[1:])
	if err != nil {
		return 0, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}
