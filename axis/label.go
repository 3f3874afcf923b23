// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// A Formatter renders a raw axis value as a tick label.
type Formatter func(v float64) string

// Integer formats v rounded to the nearest integer.
func Integer(v float64) string {
	return strconv.FormatInt(int64(math.Floor(v+0.5)), 10)
}

// Blank formats every value as the empty string. Ticks with empty
// labels get no gridlines.
func Blank(v float64) string { return "" }

// Duration formats a number of seconds with a unit chosen so that the
// value is at least 0.9 of that unit, such as "250 ns" or "3 ms".
func Duration(sec float64) string {
	switch {
	case sec < 0.9e-6:
		return fmt.Sprintf("%d ns", int64(sec*1e9+0.5))
	case sec < 0.9e-3:
		return fmt.Sprintf("%d µs", int64(sec*1e6+0.5))
	case sec < 0.9:
		return fmt.Sprintf("%d ms", int64(sec*1e3+0.5))
	}
	return fmt.Sprintf("%d s", int64(sec+0.5))
}

// Percent formats a fraction as a whole percentage: 0.25 is "25%".
func Percent(v float64) string {
	return fmt.Sprintf("%d%%", int64(v*100+0.5))
}

// Suffixed returns a Formatter that labels only the multiples of
// every, rendering them as integers followed by suffix. Other values
// get an empty label. Suffixed("M", 50) labels 50 as "50M" and 60 as "".
func Suffixed(suffix string, every float64) Formatter {
	return func(v float64) string {
		if every > 0 && math.Abs(math.Remainder(v, every)) > every*1e-9 {
			return ""
		}
		return Integer(v) + suffix
	}
}

// A Class specifies what class of unit prefixes SI formatting uses.
type Class int

const (
	// Decimal scales by powers of 1000 with SI prefixes ("k", "M").
	Decimal Class = iota
	// Binary scales by powers of 1024 with IEC prefixes ("Ki", "Mi").
	Binary
)

func (c Class) String() string {
	switch c {
	case Decimal:
		return "Decimal"
	case Binary:
		return "Binary"
	}
	return fmt.Sprintf("Class(%d)", int(c))
}

type prefix struct {
	factor float64
	prefix string
}

var siPrefixes = mkPrefixes(1000, []string{"T", "G", "M", "k"})
var iecPrefixes = mkPrefixes(1024, []string{"Ti", "Gi", "Mi", "Ki"})

func mkPrefixes(base float64, names []string) []prefix {
	var ps []prefix
	for i, p := range names {
		ps = append(ps, prefix{math.Pow(base, float64(len(names)-i)), p})
	}
	return ps
}

// SI returns a Formatter that scales values by the largest prefix of
// cls not exceeding them and prints up to four significant digits,
// such as "200k" or "1.5M". Values below the smallest prefix are
// printed unscaled.
func SI(cls Class) Formatter {
	prefixes := siPrefixes
	if cls == Binary {
		prefixes = iecPrefixes
	}
	return func(v float64) string {
		abs := math.Abs(v)
		for _, p := range prefixes {
			if abs >= p.factor {
				return strconv.FormatFloat(v/p.factor, 'g', 4, 64) + p.prefix
			}
		}
		return strconv.FormatFloat(v, 'g', 4, 64)
	}
}

// ParseFormatter returns the Formatter with the given name, as used
// in chart descriptions. The names are "integer", "blank", "duration",
// "percent", "si", "iec", and "suffix:S/N" for Suffixed(S, N).
func ParseFormatter(name string) (Formatter, error) {
	switch name {
	case "", "integer":
		return Integer, nil
	case "blank":
		return Blank, nil
	case "duration":
		return Duration, nil
	case "percent":
		return Percent, nil
	case "si":
		return SI(Decimal), nil
	case "iec":
		return SI(Binary), nil
	}
	if rest, ok := cutPrefix(name, "suffix:"); ok {
		suffix, every := rest, 0.0
		if i := strings.LastIndex(rest, "/"); i >= 0 {
			n, err := strconv.ParseFloat(rest[i+1:], 64)
			if err != nil || n <= 0 {
				return nil, fmt.Errorf("label format %q: bad interval %q", name, rest[i+1:])
			}
			suffix, every = rest[:i], n
		}
		return Suffixed(suffix, every), nil
	}
	return nil, fmt.Errorf("unknown label format %q", name)
}

func cutPrefix(s, prefix string) (string, bool) {
	if !strings.HasPrefix(s, prefix) {
		return s, false
	}
	return s[len(prefix):], true
}
