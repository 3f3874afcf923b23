// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package canvas

import (
	"strings"
	"sync"

	xfont "golang.org/x/image/font"
	"gonum.org/v1/plot/font"
	"gonum.org/v1/plot/font/liberation"
)

var (
	fontCacheOnce sync.Once
	fontCache     *font.Cache
)

func fonts() *font.Cache {
	fontCacheOnce.Do(func() {
		fontCache = font.NewCache(liberation.Collection())
	})
	return fontCache
}

// variant maps a family name to a Liberation variant.
func variant(family string) font.Variant {
	switch strings.ToLower(family) {
	case "times", "times new roman", "serif":
		return "Serif"
	case "courier", "courier new", "mono", "monospace":
		return "Mono"
	}
	return "Sans"
}

// Face returns the font face used to draw f.
func Face(f Font) font.Face {
	fnt := font.Font{
		Typeface: "Liberation",
		Variant:  variant(f.Family),
		Style:    xfont.StyleNormal,
		Weight:   xfont.WeightNormal,
	}
	if f.Bold {
		fnt.Weight = xfont.WeightBold
	}
	return fonts().Lookup(fnt, font.Length(f.Size))
}

// Measure returns the extents of s drawn in f.
func Measure(f Font, s string) Extents {
	face := Face(f)
	ext := face.Extents()
	return Extents{
		Width:   float64(face.Width(s)),
		Ascent:  float64(ext.Ascent),
		Descent: float64(ext.Descent),
	}
}
