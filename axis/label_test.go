// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package axis

import "testing"

func TestFormatters(t *testing.T) {
	for _, test := range []struct {
		name string
		f    Formatter
		in   float64
		want string
	}{
		{"Integer", Integer, 2.5, "3"},
		{"Integer", Integer, 2.49, "2"},
		{"Integer", Integer, -3.7, "-4"},
		{"Integer", Integer, 150, "150"},
		{"Duration", Duration, 250e-9, "250 ns"},
		{"Duration", Duration, 0.95e-6, "1 µs"},
		{"Duration", Duration, 12e-3, "12 ms"},
		{"Duration", Duration, 0.95, "1 s"},
		{"Duration", Duration, 42, "42 s"},
		{"Percent", Percent, 0.1, "10%"},
		{"Percent", Percent, 1, "100%"},
		{"Suffixed", Suffixed("M", 50), 50, "50M"},
		{"Suffixed", Suffixed("M", 50), 150, "150M"},
		{"Suffixed", Suffixed("M", 50), 60, ""},
		{"Suffixed", Suffixed("M", 0), 60, "60M"},
		{"SI", SI(Decimal), 200000, "200k"},
		{"SI", SI(Decimal), 1e6, "1M"},
		{"SI", SI(Decimal), 1.5e6, "1.5M"},
		{"SI", SI(Decimal), 999, "999"},
		{"SI", SI(Binary), 1 << 20, "1Mi"},
		{"SI", SI(Binary), 3 << 29, "1.5Gi"},
		{"SI", SI(Binary), 512, "512"},
		{"Blank", Blank, 12, ""},
	} {
		if got := test.f(test.in); got != test.want {
			t.Errorf("%s(%v) = %q, want %q", test.name, test.in, got, test.want)
		}
	}
}

func TestParseFormatter(t *testing.T) {
	for _, test := range []struct {
		name string
		in   float64
		want string
	}{
		{"", 7.2, "7"},
		{"integer", 7.6, "8"},
		{"duration", 2e-3, "2 ms"},
		{"percent", 0.5, "50%"},
		{"si", 2e9, "2G"},
		{"iec", 2048, "2Ki"},
		{"suffix:M/50", 100, "100M"},
		{"suffix:M/50", 110, ""},
		{"suffix: ops", 3, "3 ops"},
		{"blank", 3, ""},
	} {
		f, err := ParseFormatter(test.name)
		if err != nil {
			t.Errorf("ParseFormatter(%q): %v", test.name, err)
			continue
		}
		if got := f(test.in); got != test.want {
			t.Errorf("ParseFormatter(%q)(%v) = %q, want %q", test.name, test.in, got, test.want)
		}
	}

	for _, bad := range []string{"hex", "suffix:M/x", "suffix:M/-5"} {
		if _, err := ParseFormatter(bad); err == nil {
			t.Errorf("ParseFormatter(%q) succeeded, want error", bad)
		}
	}
}
