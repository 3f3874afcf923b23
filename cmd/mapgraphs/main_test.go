// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapbench/mapgraphs/series"
	"github.com/mapbench/mapgraphs/store/storetest"
	"golang.org/x/net/html"
)

const linearResults = `{
'mapType': 'Linear Map',
'labels': ('numThreads', 'mapOpsDone', 'totalTime'),
'points': [
    (1, 10000000, 1.0),
    (2, 18000000, 1.0),
    (3, 24000000, 1.0),
],
}
`

const tbbResults = `{
'mapType': 'TBB concurrent_hash_map',
'labels': ('numThreads', 'mapOpsDone', 'totalTime'),
'points': [
    (1, 8000000, 1.0),
    (2, 12000000, 1.0),
    (3, 15000000, 1.0),
],
}
`

const grampaMemory = `[
    (100000, 4000000, 6000000),
    (500000, 15000000, 21000000),
    (1000000, 30000000, 41000000),
]`

// writeBuild writes a results file for the named build under dir.
func writeBuild(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, "build-"+name, "results.txt")
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScalability(t *testing.T) {
	dir := t.TempDir()
	writeBuild(t, dir, "linear", linearResults)
	writeBuild(t, dir, "tbb", tbbResults)

	out := filepath.Join(dir, "scalability.png")
	page := filepath.Join(dir, "index.html")
	opts := &options{preset: "scalability", dir: dir, out: out, html: page}
	var stdout bytes.Buffer
	if err := run(context.Background(), opts, &stdout); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(stdout.String(), "wrote "+out) {
		t.Errorf("stdout = %q, want it to name %s", stdout.String(), out)
	}

	f, err := os.Open(out)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 580 || b.Dy() != 295 {
		t.Errorf("image is %dx%d, want 580x295", b.Dx(), b.Dy())
	}

	data, err := os.ReadFile(page)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"Scalability", "Linear Map", "tbb"} {
		if !bytes.Contains(data, []byte(want)) {
			t.Errorf("page does not contain %q:\n%s", want, data)
		}
	}
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	if src := imageSource(doc); src != "scalability.png" {
		t.Errorf("page shows image %q, want scalability.png", src)
	}
}

// imageSource returns the src attribute of the first img element
// under n.
func imageSource(n *html.Node) string {
	if n.Type == html.ElementNode && n.Data == "img" {
		for _, a := range n.Attr {
			if a.Key == "src" {
				return a.Val
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if src := imageSource(c); src != "" {
			return src
		}
	}
	return ""
}

func TestDryRun(t *testing.T) {
	dir := t.TempDir()
	linear := writeBuild(t, dir, "linear", linearResults)
	opts := &options{preset: "scalability", dryRun: true, paths: []string{"mine=" + linear}}
	var stdout bytes.Buffer
	if err := run(context.Background(), opts, &stdout); err != nil {
		t.Fatal(err)
	}
	got := stdout.String()
	for _, want := range []string{`"mine")`, `"Threads")`, "ClipRect("} {
		if !strings.Contains(got, want) {
			t.Errorf("dry run output does not contain %q", want)
		}
	}
	// The labelled curve is still colored by its build configuration.
	if !strings.Contains(got, "SetColor(#ff4040ff)") {
		t.Errorf("dry run output does not use the linear map color")
	}
	if entries, _ := os.ReadDir(dir); len(entries) != 1 {
		t.Errorf("dry run wrote files: %v", entries)
	}
}

func TestMemory(t *testing.T) {
	dir := t.TempDir()
	writeBuild(t, dir, "grampa", grampaMemory)
	out := filepath.Join(dir, "memory.svg")
	opts := &options{preset: "memory", dir: dir, out: out}
	if err := run(context.Background(), opts, &bytes.Buffer{}); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte("<svg")) {
		t.Errorf("%s is not an SVG file", out)
	}
}

func TestErrors(t *testing.T) {
	dir := t.TempDir()
	writeBuild(t, dir, "linear", linearResults)
	for _, test := range []struct {
		name string
		opts options
		want string
	}{
		{"no chart", options{dir: dir}, "no chart given"},
		{"both", options{preset: "memory", config: "x.yaml", dir: dir}, "mutually exclusive"},
		{"unknown preset", options{preset: "latency", dir: dir}, "unknown preset"},
		{"missing baseline", options{preset: "performance", dir: dir}, `baseline: series "null": no data`},
		{"no results", options{preset: "scalability", dir: t.TempDir()}, "no results"},
		{"wrong fields", options{preset: "memory", dir: dir}, "build-linear"},
		{"format", options{preset: "scalability", dir: dir, out: filepath.Join(dir, "chart.bmp")}, "bmp"},
	} {
		t.Run(test.name, func(t *testing.T) {
			opts := test.opts
			err := run(context.Background(), &opts, &bytes.Buffer{})
			if err == nil {
				t.Fatalf("run succeeded, want error containing %q", test.want)
			}
			if !strings.Contains(err.Error(), test.want) {
				t.Errorf("run error = %q, want it to contain %q", err, test.want)
			}
		})
	}
}

func TestMissingBaseline(t *testing.T) {
	dir := t.TempDir()
	writeBuild(t, dir, "linear", linearResults)
	err := run(context.Background(), &options{preset: "performance", dir: dir}, &bytes.Buffer{})
	var me *series.MissingDataError
	if !errors.As(err, &me) {
		t.Fatalf("run error = %v, want *series.MissingDataError", err)
	}
	if me.Series != "null" || me.Field != "" {
		t.Errorf("MissingDataError = %+v, want the whole null series", me)
	}
}

func TestStoreInput(t *testing.T) {
	db, dsn := storetest.NewDB(t)
	storetest.Upload(t, db,
		storetest.Throughput("linear", "Junction Linear map", 10e6, 9e6),
		storetest.Throughput("tbb", "TBB concurrent_hash_map", 8e6, 6e6))
	// A later upload replaces the earlier linear results.
	storetest.Upload(t, db, storetest.Throughput("linear", "Junction Linear map v2", 12e6, 11e6))

	opts := &options{preset: "scalability", db: dsn, driver: "sqlite3", dryRun: true}
	var stdout bytes.Buffer
	if err := run(context.Background(), opts, &stdout); err != nil {
		t.Fatal(err)
	}
	got := stdout.String()
	for _, want := range []string{`"Junction Linear map v2")`, `"TBB concurrent_hash_map")`} {
		if !strings.Contains(got, want) {
			t.Errorf("dry run output does not contain %q", want)
		}
	}
	if strings.Contains(got, `"Junction Linear map")`) {
		t.Errorf("dry run output draws the replaced linear results")
	}
}

func TestRelativeTo(t *testing.T) {
	for _, test := range []struct {
		page, target, want string
	}{
		{"out/index.html", "out/perf.png", "perf.png"},
		{"index.html", "perf.png", "perf.png"},
		{"gs://b/site/index.html", "gs://b/site/perf.png", "perf.png"},
		{"site/index.html", "gs://b/perf.png", "gs://b/perf.png"},
	} {
		if got := relativeTo(test.page, test.target); got != test.want {
			t.Errorf("relativeTo(%q, %q) = %q, want %q", test.page, test.target, got, test.want)
		}
	}
}
