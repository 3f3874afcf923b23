// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package results

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"
)

// A Writer writes records in the harness output format.
type Writer struct {
	w   io.Writer
	buf strings.Builder
}

// NewWriter returns a writer that writes records to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write writes a single record. The record's name is written as its
// "mapType" key and its parameters follow in sorted order.
func (w *Writer) Write(rec *Record) error {
	b := &w.buf
	b.Reset()
	b.WriteString("{\n")
	b.WriteString("'mapType': ")
	writeString(b, rec.Name)
	b.WriteString(",\n")
	for _, k := range rec.ParamKeys() {
		if k == "mapType" || k == "labels" || k == "points" {
			continue
		}
		writeString(b, k)
		b.WriteString(": ")
		if v := rec.Params[k]; v.IsNum {
			writeNumber(b, v.Num)
		} else {
			writeString(b, v.Str)
		}
		b.WriteString(",\n")
	}
	b.WriteString("'labels': (")
	for i, l := range rec.Labels {
		if i > 0 {
			b.WriteString(", ")
		}
		writeString(b, l)
	}
	if len(rec.Labels) == 1 {
		b.WriteByte(',')
	}
	b.WriteString("),\n")
	b.WriteString("'points': [\n")
	for _, p := range rec.Points {
		b.WriteString("    (")
		for i, v := range p {
			if i > 0 {
				b.WriteString(", ")
			}
			writeNumber(b, v)
		}
		if len(p) == 1 {
			b.WriteByte(',')
		}
		b.WriteString("),\n")
	}
	b.WriteString("],\n}\n")
	_, err := io.WriteString(w.w, b.String())
	return err
}

func writeString(b *strings.Builder, s string) {
	b.WriteByte('\'')
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '\'', '\\':
			b.WriteByte('\\')
			b.WriteByte(c)
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		default:
			b.WriteByte(c)
		}
	}
	b.WriteByte('\'')
}

func writeNumber(b *strings.Builder, v float64) {
	switch {
	case math.IsNaN(v):
		b.WriteString("nan")
	case math.IsInf(v, 1):
		b.WriteString("inf")
	case math.IsInf(v, -1):
		b.WriteString("-inf")
	case v == math.Trunc(v) && math.Abs(v) < 1e15:
		b.WriteString(strconv.FormatFloat(v, 'f', 0, 64))
	default:
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
}

// WriteAll writes recs to w, one after another.
func WriteAll(w io.Writer, recs []*Record) error {
	bw := bufio.NewWriter(w)
	rw := NewWriter(bw)
	for _, rec := range recs {
		if err := rw.Write(rec); err != nil {
			return err
		}
	}
	return bw.Flush()
}
