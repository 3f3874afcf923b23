// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config reads YAML chart descriptions.
//
// A description names the two axes, how points are derived from
// result records, which map configurations to plot in which colors,
// and how the chart is styled. Keys that are omitted keep the values
// of the default description, which match the performance chart.
//
// Three descriptions are built in, one for each benchmark suite:
// "performance", "scalability" and "memory". See Preset.
package config

import (
	"embed"
	"errors"
	"fmt"
	"image/color"
	"io"
	"io/fs"
	"math"
	"os"
	"path"
	"sort"
	"strconv"
	"strings"

	"github.com/mapbench/mapgraphs/axis"
	"github.com/mapbench/mapgraphs/canvas"
	"github.com/mapbench/mapgraphs/chart"
	"github.com/mapbench/mapgraphs/series"
	"github.com/mapbench/mapgraphs/smooth"
	"gopkg.in/yaml.v3"
)

//go:embed presets/*.yaml
var presets embed.FS

// A Chart is a chart description.
type Chart struct {
	Name string `yaml:"name"`

	// Output is the default output file name.
	Output string `yaml:"output"`

	X Axis `yaml:"x"`
	Y Axis `yaml:"y"`

	Margins chart.Margins `yaml:"margins"`

	Derive Derive `yaml:"derive"`

	// Baseline is the configuration whose results the others are
	// measured against, for derivations that need one.
	Baseline string `yaml:"baseline"`

	// Labels names the tuple fields of records that carry no
	// labels of their own.
	Labels []string `yaml:"labels"`

	// Maps lists the configurations to plot, in drawing order. If
	// empty, every build-* directory is plotted.
	Maps []Map `yaml:"maps"`

	// Palette colors curves whose configuration is not in Maps,
	// cycling by curve index.
	Palette []string `yaml:"palette"`

	Appearance Style `yaml:"style"`
}

// An Axis describes one chart axis.
type Axis struct {
	Size float64 `yaml:"size"`
	Min  float64 `yaml:"min"`
	Max  float64 `yaml:"max"`
	Step float64 `yaml:"step"`
	Log  bool    `yaml:"log"`

	// Fit replaces Min and Max with the range of the data.
	// Only the x axis supports it.
	Fit bool `yaml:"fit"`

	// Label names a tick label format; see axis.ParseFormatter.
	Label string `yaml:"label"`

	Title       string  `yaml:"title"`
	TitlePos    float64 `yaml:"title-pos"`
	Subtitle    string  `yaml:"subtitle"`
	SubtitlePos float64 `yaml:"subtitle-pos"`
}

// Derive selects how points are computed from result tuples.
//
// Kind is one of "throughput", "map-time-fraction" or "columns". The
// columns kind plots field X against field Y, with High as the upper
// bound of a range if set.
type Derive struct {
	Kind string `yaml:"kind"`
	X    string `yaml:"x"`
	Y    string `yaml:"y"`
	High string `yaml:"high"`
}

// A Map assigns a curve color to a map configuration.
type Map struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Style is the YAML form of chart.Style.
type Style struct {
	CurveWidth float64   `yaml:"curve-width"`
	Dashed     []int     `yaml:"dashed"`
	Dash       []float64 `yaml:"dash"`

	// Markers is "none" or "square".
	Markers    string  `yaml:"markers"`
	MarkerSize float64 `yaml:"marker-size"`
	RangeBand  bool    `yaml:"range-band"`

	// LabelAngle is the rotation of x tick labels in degrees.
	LabelAngle float64 `yaml:"label-angle"`

	XTickMarks bool `yaml:"x-tick-marks"`
	YTickMarks bool `yaml:"y-tick-marks"`
	Grid       bool `yaml:"grid"`

	LabelFont    canvas.Font `yaml:"label-font"`
	TitleFont    canvas.Font `yaml:"title-font"`
	SubtitleFont canvas.Font `yaml:"subtitle-font"`

	SubtitleColor string   `yaml:"subtitle-color"`
	BoldColors    []string `yaml:"bold-colors"`

	Legend Legend `yaml:"legend"`

	// Smooth is a smoothing pipeline; see smooth.ParsePipeline.
	Smooth string `yaml:"smooth"`

	ClipTop      float64 `yaml:"clip-top"`
	ClipOverflow float64 `yaml:"clip-overflow"`
}

// Legend describes the legend layout. Kind is "stacked",
// "curve-end" or "none". Stacked legends use X, Y, Pitch, Anchor
// ("left" or "right"), Reverse and Frame; curve-end legends use DX
// and DY.
type Legend struct {
	Kind    string  `yaml:"kind"`
	X       float64 `yaml:"x"`
	Y       float64 `yaml:"y"`
	Pitch   float64 `yaml:"pitch"`
	Anchor  string  `yaml:"anchor"`
	Reverse bool    `yaml:"reverse"`
	Frame   bool    `yaml:"frame"`
	DX      float64 `yaml:"dx"`
	DY      float64 `yaml:"dy"`
}

// Default returns the description every loaded description starts
// from.
func Default() *Chart {
	return &Chart{
		X:       Axis{Label: "integer", TitlePos: 50},
		Y:       Axis{Label: "integer", TitlePos: -44, SubtitlePos: -30},
		Margins: chart.Margins{Left: 58, Right: 92, Top: 11, Bottom: 54},
		Appearance: Style{
			CurveWidth:    2.5,
			Dash:          []float64{10, 1},
			Markers:       "none",
			MarkerSize:    5,
			LabelAngle:    -45,
			XTickMarks:    true,
			Grid:          true,
			LabelFont:     canvas.Font{Family: "Arial", Size: 11},
			TitleFont:     canvas.Font{Family: "Helvetica", Size: 16, Bold: true},
			SubtitleFont:  canvas.Font{Family: "Helvetica", Size: 13},
			SubtitleColor: "808080",
			Legend:        Legend{Kind: "stacked", X: -40, Y: -220, Pitch: 12, Anchor: "right", Frame: true},
			ClipTop:       5,
			ClipOverflow:  10,
		},
	}
}

// Load reads a chart description from r.
func Load(r io.Reader) (*Chart, error) {
	c := Default()
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty chart description")
		}
		return nil, err
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// LoadFile reads a chart description from the named file.
func LoadFile(name string) (*Chart, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return c, nil
}

// Preset returns the built-in description with the given name.
func Preset(name string) (*Chart, error) {
	f, err := presets.Open("presets/" + name + ".yaml")
	if err != nil {
		return nil, fmt.Errorf("unknown preset %q (have %s)", name, strings.Join(Presets(), ", "))
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("preset %s: %w", name, err)
	}
	return c, nil
}

// Presets returns the names of the built-in descriptions.
func Presets() []string {
	files, _ := fs.Glob(presets, "presets/*.yaml")
	var names []string
	for _, f := range files {
		names = append(names, strings.TrimSuffix(path.Base(f), ".yaml"))
	}
	sort.Strings(names)
	return names
}

// validate checks everything that can be checked without data, so
// that a bad description fails before any results are read.
func (c *Chart) validate() error {
	if _, _, err := c.Axes(); err != nil {
		return err
	}
	if _, err := c.Style(); err != nil {
		return err
	}
	if _, err := c.Deriver(); err != nil {
		return err
	}
	if c.Y.Fit {
		return fmt.Errorf("y.fit: only the x axis can be fitted")
	}
	for i, m := range c.Maps {
		if m.Name == "" {
			return fmt.Errorf("maps[%d]: missing name", i)
		}
		if _, err := parseColor(m.Color); err != nil {
			return fmt.Errorf("maps[%d] (%s).color: %w", i, m.Name, err)
		}
	}
	for i, p := range c.Palette {
		if _, err := parseColor(p); err != nil {
			return fmt.Errorf("palette[%d]: %w", i, err)
		}
	}
	return nil
}

// Axes returns the x and y axes of the chart.
func (c *Chart) Axes() (x, y *axis.Axis, err error) {
	if x, err = c.X.axis(); err != nil {
		return nil, nil, fmt.Errorf("x: %w", err)
	}
	if y, err = c.Y.axis(); err != nil {
		return nil, nil, fmt.Errorf("y: %w", err)
	}
	return x, y, nil
}

func (a Axis) axis() (*axis.Axis, error) {
	label, err := axis.ParseFormatter(a.Label)
	if err != nil {
		return nil, fmt.Errorf("label: %w", err)
	}
	return axis.New(axis.Config{
		Size:  a.Size,
		Min:   a.Min,
		Max:   a.Max,
		Step:  a.Step,
		Log:   a.Log,
		Label: label,
	})
}

// NewChart returns an empty chart on the described axes.
func (c *Chart) NewChart() (*chart.Chart, error) {
	x, y, err := c.Axes()
	if err != nil {
		return nil, err
	}
	var opts []chart.Option
	if c.X.Fit {
		opts = append(opts, chart.FitX())
	}
	return chart.New(x, y, opts...), nil
}

// Style returns the chart style.
func (c *Chart) Style() (*chart.Style, error) {
	s := &c.Appearance
	st := chart.DefaultStyle()
	st.XTitle = c.X.Title
	st.YTitle = c.Y.Title
	st.YSubtitle = c.Y.Subtitle
	st.XTitleY = c.X.TitlePos
	st.YTitleX = c.Y.TitlePos
	st.YSubtitleX = c.Y.SubtitlePos
	st.Margins = c.Margins
	st.LabelFont = s.LabelFont
	st.TitleFont = s.TitleFont
	st.SubtitleFont = s.SubtitleFont
	st.CurveWidth = s.CurveWidth
	st.Dashed = s.Dashed
	st.Dash = s.Dash
	st.MarkerSize = s.MarkerSize
	st.RangeBand = s.RangeBand
	st.TickLabelRotation = s.LabelAngle * math.Pi / 180
	st.XTickMarks = s.XTickMarks
	st.YTickMarks = s.YTickMarks
	st.YGrid = s.Grid
	st.ClipTop = s.ClipTop
	st.ClipOverflow = s.ClipOverflow

	if !(s.CurveWidth > 0) {
		return nil, fmt.Errorf("style.curve-width: must be positive")
	}
	for _, d := range s.Dash {
		if !(d > 0) {
			return nil, fmt.Errorf("style.dash: lengths must be positive")
		}
	}
	if len(s.Dashed) > 0 && len(s.Dash) == 0 {
		return nil, fmt.Errorf("style.dashed: no dash pattern")
	}

	switch s.Markers {
	case "", "none":
		st.Marker = chart.NoMarker
	case "square":
		st.Marker = chart.SquareMarker
	default:
		return nil, fmt.Errorf("style.markers: unknown marker %q", s.Markers)
	}

	col, err := parseColor(s.SubtitleColor)
	if err != nil {
		return nil, fmt.Errorf("style.subtitle-color: %w", err)
	}
	st.SubtitleColor = col
	for i, b := range s.BoldColors {
		col, err := parseColor(b)
		if err != nil {
			return nil, fmt.Errorf("style.bold-colors[%d]: %w", i, err)
		}
		st.BoldColors = append(st.BoldColors, col)
	}

	if st.Smooth, err = smooth.ParsePipeline(s.Smooth); err != nil {
		return nil, fmt.Errorf("style.smooth: %w", err)
	}

	if st.Legend, err = s.Legend.legend(); err != nil {
		return nil, fmt.Errorf("style.legend: %w", err)
	}
	return st, nil
}

func (l Legend) legend() (chart.Legend, error) {
	switch l.Kind {
	case "stacked":
		var anchor chart.Anchor
		switch l.Anchor {
		case "", "left":
			anchor = chart.AnchorLeft
		case "right":
			anchor = chart.AnchorRight
		default:
			return nil, fmt.Errorf("anchor: must be left or right, not %q", l.Anchor)
		}
		if l.Pitch == 0 {
			return nil, fmt.Errorf("pitch: must be non-zero")
		}
		return chart.Stacked{X: l.X, Y: l.Y, Pitch: l.Pitch, Anchor: anchor, Reverse: l.Reverse, Frame: l.Frame}, nil
	case "curve-end":
		return chart.AtCurveEnd{DX: l.DX, DY: l.DY}, nil
	case "none":
		return chart.NoLegend{}, nil
	}
	return nil, fmt.Errorf("kind: unknown legend %q", l.Kind)
}

// Deriver returns the derivation of curve points from records.
func (c *Chart) Deriver() (series.Derivation, error) {
	var d series.Derivation
	switch c.Derive.Kind {
	case "throughput":
		d = series.Throughput()
	case "map-time-fraction":
		d = series.MapTimeFraction()
	case "columns":
		if c.Derive.X == "" || c.Derive.Y == "" {
			return nil, fmt.Errorf("derive: columns needs x and y")
		}
		d = series.Columns(c.Derive.X, c.Derive.Y, c.Derive.High)
	case "":
		return nil, fmt.Errorf("derive.kind: missing")
	default:
		return nil, fmt.Errorf("derive.kind: unknown derivation %q", c.Derive.Kind)
	}
	if d.NeedsBaseline() && c.Baseline == "" {
		return nil, fmt.Errorf("baseline: derivation %s needs a baseline configuration", c.Derive.Kind)
	}
	return d, nil
}

// MapNames returns the configured map names in drawing order.
func (c *Chart) MapNames() []string {
	var names []string
	for _, m := range c.Maps {
		names = append(names, m.Name)
	}
	return names
}

// Color returns the color of the i'th curve, which comes from map
// configuration name. It returns nil if neither Maps nor Palette
// assign one, leaving the choice to the chart.
func (c *Chart) Color(name string, i int) color.Color {
	for _, m := range c.Maps {
		if m.Name == name {
			col, _ := parseColor(m.Color)
			return col
		}
	}
	if len(c.Palette) > 0 {
		col, _ := parseColor(c.Palette[i%len(c.Palette)])
		return col
	}
	return nil
}

// parseColor parses a hex color of the form "rrggbb", optionally
// preceded by "#".
func parseColor(s string) (color.Color, error) {
	h := strings.TrimPrefix(s, "#")
	if len(h) != 6 {
		return nil, fmt.Errorf("bad color %q: want rrggbb", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return nil, fmt.Errorf("bad color %q: want rrggbb", s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 0xff}, nil
}
