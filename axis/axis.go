// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package axis maps benchmark values onto one dimension of a chart.
//
// An Axis is either linear or logarithmic. Its bounds and tick step
// are stored in transformed space (the natural logarithm of the raw
// value for logarithmic axes, the raw value itself otherwise), so
// that mapping, tick placement and the tick-boundary tolerance work
// identically for both kinds of axis.
//
// The tick step is always supplied by the caller as a raw value: an
// additive step for linear axes and a multiplicative step for
// logarithmic axes. It is transformed exactly once, by New. Reset
// changes only the bounds.
package axis

import (
	"fmt"
	"math"
)

// tickEpsilon absorbs floating-point error when a bound falls exactly
// on a tick boundary, so that such a tick is always included.
const tickEpsilon = 1e-9

// maxTicks bounds the number of ticks on one axis.
const maxTicks = 10000

// Config describes an axis to construct with New.
type Config struct {
	// Size is the length of the axis in pixels. It must be positive.
	Size float64

	// Min and Max are the raw domain bounds. Min may equal Max
	// when the range will be Reset once data is known.
	Min, Max float64

	// Step is the raw distance between ticks. For logarithmic
	// axes it is a multiplicative factor and must exceed 1.
	Step float64

	// Log selects a logarithmic axis.
	Log bool

	// Label formats a raw tick value. If nil, Integer is used.
	Label Formatter
}

// An Axis maps raw domain values to pixel offsets along one chart
// dimension and generates its tick marks.
type Axis struct {
	size  float64
	log   bool
	label Formatter

	// min, max and step are in transformed space.
	min, max, step float64
}

// A Tick is one labeled graduation of an axis.
type Tick struct {
	Pos   float64 // Pixel offset from the axis origin
	Value float64 // Raw domain value
	Label string
}

// A DomainError reports an invalid axis parameter, such as a
// non-positive bound on a logarithmic axis.
type DomainError struct {
	Param string
	Value float64
	Msg   string
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("axis: invalid %s %v: %s", e.Param, e.Value, e.Msg)
}

// A DegenerateRangeError reports an attempt to map values onto an
// axis whose bounds are equal.
type DegenerateRangeError struct {
	Min, Max float64 // Raw bounds
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("axis: degenerate range [%v, %v]", e.Min, e.Max)
}

// New returns a new Axis described by cfg.
func New(cfg Config) (*Axis, error) {
	if !(cfg.Size > 0) || math.IsInf(cfg.Size, 0) {
		return nil, &DomainError{"size", cfg.Size, "must be positive"}
	}
	a := &Axis{size: cfg.Size, log: cfg.Log, label: cfg.Label}
	if a.label == nil {
		a.label = Integer
	}
	step, err := a.transform("step", cfg.Step)
	if err != nil {
		return nil, err
	}
	if !(step > 0) {
		msg := "must be positive"
		if a.log {
			msg = "must be greater than 1 on a logarithmic axis"
		}
		return nil, &DomainError{"step", cfg.Step, msg}
	}
	a.step = step
	if err := a.Reset(cfg.Min, cfg.Max); err != nil {
		return nil, err
	}
	return a, nil
}

// transform maps a raw value into the axis' internal space.
func (a *Axis) transform(param string, v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, &DomainError{param, v, "must be finite"}
	}
	if !a.log {
		return v, nil
	}
	if v <= 0 {
		return 0, &DomainError{param, v, "must be positive on a logarithmic axis"}
	}
	return math.Log(v), nil
}

func (a *Axis) inverse(v float64) float64 {
	if a.log {
		return math.Exp(v)
	}
	return v
}

// Reset replaces the domain bounds of a. The tick step is unchanged.
func (a *Axis) Reset(min, max float64) error {
	tmin, err := a.transform("min", min)
	if err != nil {
		return err
	}
	tmax, err := a.transform("max", max)
	if err != nil {
		return err
	}
	if tmin > tmax {
		return &DomainError{"min", min, fmt.Sprintf("exceeds max %v", max)}
	}
	a.min, a.max = tmin, tmax
	return nil
}

// Size returns the length of a in pixels.
func (a *Axis) Size() float64 { return a.size }

// IsLog reports whether a is logarithmic.
func (a *Axis) IsLog() bool { return a.log }

// Bounds returns the raw domain bounds of a.
func (a *Axis) Bounds() (min, max float64) {
	return a.inverse(a.min), a.inverse(a.max)
}

// Map returns the pixel offset of raw value v from the axis origin.
func (a *Axis) Map(v float64) (float64, error) {
	if a.max == a.min {
		return 0, a.degenerate()
	}
	tv, err := a.transform("value", v)
	if err != nil {
		return 0, err
	}
	return a.mapTransformed(tv), nil
}

func (a *Axis) mapTransformed(tv float64) float64 {
	return (tv - a.min) / (a.max - a.min) * a.size
}

func (a *Axis) degenerate() error {
	min, max := a.Bounds()
	return &DegenerateRangeError{min, max}
}

// Ticks returns the ticks of a in increasing order.
//
// Ticks fall on integer multiples of the step in transformed space.
// When the transformed minimum is exactly zero, the tick at zero is
// omitted, since it coincides with the perpendicular axis.
//
// Ticks has no side effects; every call computes the same sequence.
func (a *Axis) Ticks() ([]Tick, error) {
	if a.max == a.min {
		return nil, a.degenerate()
	}
	flo := math.Floor(a.min/a.step + 1 - tickEpsilon)
	fhi := math.Floor(a.max/a.step + tickEpsilon)
	if fhi < flo {
		return nil, nil
	}
	if n := fhi - flo + 1; n > maxTicks {
		min, max := a.Bounds()
		return nil, &DomainError{
			Param: "step",
			Value: a.inverse(a.step),
			Msg:   fmt.Sprintf("gives %g ticks over [%v, %v], more than %d", n, min, max, maxTicks),
		}
	}
	lo, hi := int(flo), int(fhi)
	ticks := make([]Tick, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		if a.min == 0 && i == 0 {
			continue
		}
		raw := a.inverse(float64(i) * a.step)
		// Map the round-tripped raw value, as a caller would.
		tv, err := a.transform("tick", raw)
		if err != nil {
			return nil, err
		}
		ticks = append(ticks, Tick{Pos: a.mapTransformed(tv), Value: raw, Label: a.label(raw)})
	}
	return ticks, nil
}
