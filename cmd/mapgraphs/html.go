// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"strings"

	"github.com/google/safehtml/template"
	"github.com/mapbench/mapgraphs/config"
	"github.com/mapbench/mapgraphs/output"
)

// A page is an HTML page showing one chart and the curves on it.
type page struct {
	Title         string
	Image         string
	Width, Height int
	Curves        []pageCurve
}

type pageCurve struct {
	Name, Config string
	Points       int
}

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
</head>
<body>
<h1>{{.Title}}</h1>
<p><img src="{{.Image}}" alt="{{.Title}}"></p>
<p>{{.Width}}&times;{{.Height}} pixels</p>
<table class="curves">
<tr><th>curve<th>configuration<th>points
{{range .Curves -}}
<tr><td>{{.Name}}<td>{{.Config}}<td>{{.Points}}
{{end -}}
</table>
</body>
</html>
`))

func pageTitle(cfg *config.Chart) string {
	if cfg.Name == "" {
		return "Map benchmarks"
	}
	return strings.ToUpper(cfg.Name[:1]) + cfg.Name[1:]
}

// writePage renders p and writes it to path.
func writePage(ctx context.Context, path string, p *page) error {
	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, p); err != nil {
		return err
	}
	return output.WriteFile(ctx, path, buf.Bytes())
}
