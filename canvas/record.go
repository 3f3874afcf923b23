// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"fmt"
	"image/color"
	"io"
	"strconv"
	"strings"
)

// A Recorder is a Canvas that records the calls made to it.
type Recorder struct {
	// Measure measures text. If nil, the Recorder measures with
	// the same fonts as Image.
	Measure func(f Font, s string) Extents

	Ops []Op

	depth int
}

// An Op is one recorded Canvas call.
type Op struct {
	Name  string
	Args  []float64
	Text  string      // DrawText
	Font  Font        // DrawText
	Color color.Color // SetColor
}

func (op Op) String() string {
	var b strings.Builder
	b.WriteString(op.Name)
	b.WriteByte('(')
	var args []string
	for _, a := range op.Args {
		args = append(args, strconv.FormatFloat(a, 'g', -1, 64))
	}
	switch op.Name {
	case "SetColor":
		r, g, bl, a := op.Color.RGBA()
		args = append(args, fmt.Sprintf("#%02x%02x%02x%02x", r>>8, g>>8, bl>>8, a>>8))
	case "DrawText":
		args = append([]string{op.Font.String()}, args...)
		args = append(args, strconv.Quote(op.Text))
	}
	b.WriteString(strings.Join(args, ", "))
	b.WriteByte(')')
	return b.String()
}

func (r *Recorder) add(name string, args ...float64) {
	r.Ops = append(r.Ops, Op{Name: name, Args: args})
}

// Depth returns the number of unmatched Push calls.
func (r *Recorder) Depth() int { return r.depth }

// Count returns the number of recorded calls to the named method.
func (r *Recorder) Count(name string) int {
	n := 0
	for _, op := range r.Ops {
		if op.Name == name {
			n++
		}
	}
	return n
}

// WriteTo writes the recorded calls to w, one per line, indented by
// save depth.
func (r *Recorder) WriteTo(w io.Writer) (int64, error) {
	var b strings.Builder
	depth := 0
	for _, op := range r.Ops {
		if op.Name == "Pop" {
			depth--
		}
		b.WriteString(strings.Repeat("\t", depth))
		b.WriteString(op.String())
		b.WriteByte('\n')
		if op.Name == "Push" {
			depth++
		}
	}
	n, err := io.WriteString(w, b.String())
	return int64(n), err
}

func (r *Recorder) MoveTo(x, y float64)      { r.add("MoveTo", x, y) }
func (r *Recorder) LineTo(x, y float64)      { r.add("LineTo", x, y) }
func (r *Recorder) RelLineTo(dx, dy float64) { r.add("RelLineTo", dx, dy) }

func (r *Recorder) Rectangle(x, y, w, h float64) { r.add("Rectangle", x, y, w, h) }

func (r *Recorder) Stroke() { r.add("Stroke") }
func (r *Recorder) Fill()   { r.add("Fill") }

func (r *Recorder) SetLineWidth(w float64)     { r.add("SetLineWidth", w) }
func (r *Recorder) SetDash(pattern ...float64) { r.add("SetDash", pattern...) }

func (r *Recorder) SetColor(c color.Color) {
	r.Ops = append(r.Ops, Op{Name: "SetColor", Color: c})
}

func (r *Recorder) ClipRect(x, y, w, h float64) { r.add("ClipRect", x, y, w, h) }

func (r *Recorder) Translate(dx, dy float64) { r.add("Translate", dx, dy) }
func (r *Recorder) Rotate(rad float64)       { r.add("Rotate", rad) }

func (r *Recorder) Push() {
	r.depth++
	r.add("Push")
}

func (r *Recorder) Pop() {
	r.depth--
	r.add("Pop")
}

func (r *Recorder) MeasureText(f Font, s string) Extents {
	if r.Measure != nil {
		return r.Measure(f, s)
	}
	return Measure(f, s)
}

func (r *Recorder) DrawText(f Font, x, y float64, s string) {
	r.Ops = append(r.Ops, Op{Name: "DrawText", Args: []float64{x, y}, Text: s, Font: f})
}
