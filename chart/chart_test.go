// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package chart

import (
	"bytes"
	"errors"
	"image/color"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/mapbench/mapgraphs/axis"
	"github.com/mapbench/mapgraphs/canvas"
	"github.com/mapbench/mapgraphs/series"
	"github.com/mapbench/mapgraphs/smooth"
)

func fixedWidth(f canvas.Font, s string) canvas.Extents {
	return canvas.Extents{Width: float64(len(s)) * f.Size / 2, Ascent: f.Size, Descent: f.Size / 4}
}

func mustAxis(t *testing.T, cfg axis.Config) *axis.Axis {
	t.Helper()
	a, err := axis.New(cfg)
	if err != nil {
		t.Fatal(err)
	}
	return a
}

// square returns a chart with 100 pixel axes over [0,2]×[0,4].
func square(t *testing.T, opts ...Option) *Chart {
	x := mustAxis(t, axis.Config{Size: 100, Min: 0, Max: 2, Step: 1})
	y := mustAxis(t, axis.Config{Size: 100, Min: 0, Max: 4, Step: 1})
	return New(x, y, opts...)
}

func pts(xy ...float64) []series.Point {
	var out []series.Point
	for i := 0; i+1 < len(xy); i += 2 {
		out = append(out, series.XY(xy[i], xy[i+1]))
	}
	return out
}

func TestLayout(t *testing.T) {
	ch := square(t)
	if err := ch.AddCurve(Curve{Name: "a", Points: pts(0, 0, 1, 1, 2, 4)}); err != nil {
		t.Fatal(err)
	}
	l, err := ch.layout(DefaultStyle(), fixedWidth)
	if err != nil {
		t.Fatal(err)
	}
	want := []mapped{{x: 0, y: 0}, {x: 50, y: -25}, {x: 100, y: -100}}
	if diff := cmp.Diff(want, l.curves[0].pts, cmp.AllowUnexported(mapped{})); diff != "" {
		t.Errorf("mapped points mismatch (-want +got):\n%s", diff)
	}
	if l.w != 250 || l.h != 165 {
		t.Errorf("image size = %dx%d, want 250x165", l.w, l.h)
	}
	if len(l.xTicks) != 2 || len(l.yTicks) != 4 {
		t.Errorf("got %d x ticks and %d y ticks, want 2 and 4", len(l.xTicks), len(l.yTicks))
	}
}

func TestRenderNoCurves(t *testing.T) {
	r := &canvas.Recorder{Measure: fixedWidth}
	if err := Render(r, square(t), nil); err != nil {
		t.Fatal(err)
	}
	if r.Depth() != 0 {
		t.Errorf("unbalanced Push/Pop: depth %d", r.Depth())
	}
	// Two x labels, and y labels "1" to "4".
	if n := r.Count("DrawText"); n != 6 {
		t.Errorf("drew %d strings, want 6", n)
	}
	if n := r.Count("ClipRect"); n != 0 {
		t.Errorf("got %d clips without curves", n)
	}
}

func TestRenderErrorsDrawNothing(t *testing.T) {
	x := mustAxis(t, axis.Config{Size: 100, Min: 0, Max: 2, Step: 1})
	y := mustAxis(t, axis.Config{Size: 100, Min: 3, Max: 3, Step: 1})
	ch := New(x, y)
	if err := ch.AddCurve(Curve{Name: "a", Points: pts(0, 3, 1, 3)}); err != nil {
		t.Fatal(err)
	}
	r := &canvas.Recorder{Measure: fixedWidth}
	err := Render(r, ch, nil)
	var de *axis.DegenerateRangeError
	if !errors.As(err, &de) {
		t.Fatalf("Render error = %v, want DegenerateRangeError", err)
	}
	if len(r.Ops) != 0 {
		t.Errorf("failed Render made %d canvas calls", len(r.Ops))
	}

	// A smoothing failure is also reported before drawing.
	ch = square(t)
	if err := ch.AddCurve(Curve{Name: "short", Points: pts(0, 0, 1, 1, 2, 2)}); err != nil {
		t.Fatal(err)
	}
	st := DefaultStyle()
	st.Smooth = smooth.Default()
	err = Render(r, ch, st)
	var ie *smooth.InsufficientPointsError
	if !errors.As(err, &ie) {
		t.Fatalf("Render error = %v, want InsufficientPointsError", err)
	}
	if len(r.Ops) != 0 {
		t.Errorf("failed Render made %d canvas calls", len(r.Ops))
	}
}

func TestRenderOrder(t *testing.T) {
	ch := square(t)
	red := color.RGBA{0xff, 0, 0, 0xff}
	blue := color.RGBA{0, 0, 0xff, 0xff}
	for _, cv := range []Curve{
		{Name: "first", Points: pts(0, 1, 2, 3), Color: red},
		{Name: "second", Points: pts(0, 2, 2, 2), Color: blue},
	} {
		if err := ch.AddCurve(cv); err != nil {
			t.Fatal(err)
		}
	}
	st := DefaultStyle()
	st.XTitle, st.YTitle = "Threads", "Ops"
	st.Dashed = []int{1}

	r := &canvas.Recorder{Measure: fixedWidth}
	if err := Render(r, ch, st); err != nil {
		t.Fatal(err)
	}

	var texts []string
	for _, op := range r.Ops {
		if op.Name == "DrawText" {
			texts = append(texts, op.Text)
		}
	}
	want := []string{"1", "2", "1", "2", "3", "4", "first", "second", "Ops", "Threads"}
	if diff := cmp.Diff(want, texts); diff != "" {
		t.Errorf("text order mismatch (-want +got):\n%s", diff)
	}

	var clips []canvas.Op
	for _, op := range r.Ops {
		if op.Name == "ClipRect" {
			clips = append(clips, op)
		}
	}
	if len(clips) != 2 {
		t.Fatalf("got %d clips, want one per curve", len(clips))
	}
	if diff := cmp.Diff([]float64{0, 5, 100, -115}, clips[0].Args); diff != "" {
		t.Errorf("clip mismatch (-want +got):\n%s", diff)
	}
	if n := r.Count("SetDash"); n != 1 {
		t.Errorf("SetDash called %d times, want 1", n)
	}
	if r.Depth() != 0 {
		t.Errorf("unbalanced Push/Pop: depth %d", r.Depth())
	}
}

func TestStackedLegend(t *testing.T) {
	lc := &legendContext{xSize: 550, ySize: 240, avail: 305, widths: []float64{10, 30}}
	s := Stacked{X: -40, Y: -220, Pitch: 12, Anchor: AnchorRight, Frame: true}
	l := s.place(lc)
	want := legendLayout{
		entries: []legendEntry{{510, -220, true}, {510, -208, true}},
		frame:   &box{479.5, -234.5, 70, 34},
	}
	if diff := cmp.Diff(want, l, cmp.AllowUnexported(legendLayout{}, legendEntry{}, box{})); diff != "" {
		t.Errorf("layout mismatch (-want +got):\n%s", diff)
	}

	// Upward, reversed, and squeezed to fit.
	lc.avail = 20
	s = Stacked{X: 40, Y: -50, Pitch: -14, Anchor: AnchorRight, Reverse: true}
	l = s.place(lc)
	want = legendLayout{entries: []legendEntry{{590, -60, true}, {590, -50, true}}}
	if diff := cmp.Diff(want, l, cmp.AllowUnexported(legendLayout{}, legendEntry{}, box{})); diff != "" {
		t.Errorf("squeezed layout mismatch (-want +got):\n%s", diff)
	}
}

func TestAtCurveEnd(t *testing.T) {
	lc := &legendContext{last: [][2]float64{{100, -100}}, widths: []float64{5}}
	l := AtCurveEnd{DX: 3, DY: 4}.place(lc)
	want := []legendEntry{{103, -96, false}}
	if diff := cmp.Diff(want, l.entries, cmp.AllowUnexported(legendEntry{})); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	if l := (NoLegend{}).place(lc); l.entries != nil {
		t.Errorf("NoLegend placed %d entries", len(l.entries))
	}
}

func TestAddCurve(t *testing.T) {
	ch := square(t)
	err := ch.AddCurve(Curve{Name: "empty"})
	var ee *EmptyCurveError
	if !errors.As(err, &ee) || ee.Name != "empty" {
		t.Errorf("AddCurve(empty) = %v, want EmptyCurveError", err)
	}
	if _, _, ok := ch.ObservedX(); ok {
		t.Errorf("ObservedX ok with no curves")
	}
	if err := ch.FinalizeXRange(); err != nil {
		t.Errorf("FinalizeXRange with no curves: %v", err)
	}

	p := pts(0.5, 1, 1.5, 2)
	if err := ch.AddCurve(Curve{Name: "a", Points: p}); err != nil {
		t.Fatal(err)
	}
	p[0].X = 100
	if err := ch.AddCurve(Curve{Name: "b", Points: pts(1, 1, 1.75, 2)}); err != nil {
		t.Fatal(err)
	}
	cs := ch.Curves()
	if cs[0].Points[0].X != 0.5 {
		t.Errorf("chart shares caller's points")
	}
	if cs[0].Color == nil || cs[1].Color == nil || cs[0].Color == cs[1].Color {
		t.Errorf("default colors = %v, %v; want two distinct colors", cs[0].Color, cs[1].Color)
	}
	if lo, hi, _ := ch.ObservedX(); lo != 0.5 || hi != 1.75 {
		t.Errorf("ObservedX = %v, %v; want 0.5, 1.75", lo, hi)
	}
	if err := ch.FinalizeXRange(); err != nil {
		t.Fatal(err)
	}
	if lo, hi := ch.X().Bounds(); lo != 0.5 || hi != 1.75 {
		t.Errorf("x bounds after FinalizeXRange = %v, %v", lo, hi)
	}
}

func TestFitX(t *testing.T) {
	x := mustAxis(t, axis.Config{Size: 100, Min: 1, Max: 1, Step: 1})
	y := mustAxis(t, axis.Config{Size: 100, Min: 0, Max: 10, Step: 5})
	ch := New(x, y, FitX())
	if !ch.FitsX() {
		t.Fatalf("FitsX() = false")
	}
	if err := ch.AddCurve(Curve{Name: "a", Points: pts(2, 1, 4, 2, 6, 3)}); err != nil {
		t.Fatal(err)
	}
	st := DefaultStyle()
	st.Smooth = smooth.Pipeline{smooth.Midpoint}
	r := &canvas.Recorder{Measure: fixedWidth}
	if err := Render(r, ch, st); err != nil {
		t.Fatal(err)
	}
	// The range fits the smoothed points, not the raw ones.
	if lo, hi := ch.X().Bounds(); lo != 3 || hi != 5 {
		t.Errorf("fitted x range = [%v, %v], want [3, 5]", lo, hi)
	}

	// Without smoothing the range is the observed one.
	x = mustAxis(t, axis.Config{Size: 100, Min: 1, Max: 1, Step: 1})
	ch = New(x, y, FitX())
	if err := ch.AddCurve(Curve{Name: "a", Points: pts(2, 1, 4, 2, 6, 3)}); err != nil {
		t.Fatal(err)
	}
	if err := ch.AddCurve(Curve{Name: "b", Points: pts(1.5, 1, 3, 2)}); err != nil {
		t.Fatal(err)
	}
	if err := Render(&canvas.Recorder{Measure: fixedWidth}, ch, nil); err != nil {
		t.Fatal(err)
	}
	if lo, hi := ch.X().Bounds(); lo != 1.5 || hi != 6 {
		t.Errorf("fitted x range = [%v, %v], want [1.5, 6]", lo, hi)
	}
}

func TestWriteImage(t *testing.T) {
	ch := square(t)
	if err := ch.AddCurve(Curve{Name: "a", Points: pts(0, 0, 1, 1, 2, 4)}); err != nil {
		t.Fatal(err)
	}
	st := DefaultStyle()
	st.XTitle = "Population"
	var buf bytes.Buffer
	if err := WriteImage(&buf, canvas.PNG, ch, st); err != nil {
		t.Fatal(err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 250 || b.Dy() != 165 {
		t.Errorf("image is %dx%d, want 250x165", b.Dx(), b.Dy())
	}

	for _, f := range []canvas.Format{canvas.SVG, canvas.PDF, canvas.EPS} {
		data, err := Encode(f, ch, st)
		if err != nil {
			t.Errorf("Encode(%v): %v", f, err)
			continue
		}
		if len(data) == 0 {
			t.Errorf("Encode(%v) returned no data", f)
		}
	}
}
