// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Mapgraphs draws a chart of map benchmark results.
//
// Usage:
//
//	mapgraphs [flags] [label=]path...
//
// The chart is described by a built-in preset (-preset performance,
// scalability or memory) or a YAML file (-config). Results are read
// from the given files, or, if there are none, from a result store
// (-db) or from the build-<name>/results.txt files of the configured
// maps under -dir.
//
// The image format follows the extension of the output path, which
// may be a gs://bucket/object path. With -dry-run, mapgraphs prints
// the drawing commands instead of writing an image.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path"
	"strings"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/mapbench/mapgraphs/canvas"
	"github.com/mapbench/mapgraphs/chart"
	"github.com/mapbench/mapgraphs/config"
	"github.com/mapbench/mapgraphs/output"
	"github.com/mapbench/mapgraphs/results"
	"github.com/mapbench/mapgraphs/series"
	"github.com/mapbench/mapgraphs/store"
	_ "github.com/mapbench/mapgraphs/store/sqlite3"
)

type options struct {
	preset, config string
	out, html      string
	dir            string
	db, driver     string
	dryRun         bool
	paths          []string
}

func main() {
	log.SetPrefix("mapgraphs: ")
	log.SetFlags(0)

	var opts options
	flag.StringVar(&opts.preset, "preset", "", "draw the built-in chart `name` ("+strings.Join(config.Presets(), ", ")+")")
	flag.StringVar(&opts.config, "config", "", "read the chart description from `file`")
	flag.StringVar(&opts.out, "o", "", "write the chart to `path`, a file or gs://bucket/object (default from the chart description)")
	flag.StringVar(&opts.html, "html", "", "also write an HTML page showing the chart to `path`")
	flag.StringVar(&opts.dir, "dir", ".", "find build-<name>/results.txt files under `dir`")
	flag.StringVar(&opts.db, "db", "", "read results from the store at `dsn`")
	flag.StringVar(&opts.driver, "driver", "sqlite3", "database `driver` for -db (sqlite3 or mysql)")
	flag.BoolVar(&opts.dryRun, "dry-run", false, "print drawing commands instead of writing an image")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: mapgraphs [flags] [label=]path...\n")
		flag.PrintDefaults()
		os.Exit(2)
	}
	flag.Parse()
	opts.paths = flag.Args()

	if err := run(context.Background(), &opts, os.Stdout); err != nil {
		fail("%v\n", err)
	}
}

func fail(format string, args ...interface{}) {
	log.Printf(format, args...)
	os.Exit(1)
}

func warn(format string, args ...interface{}) {
	log.Printf(format, args...)
}

func run(ctx context.Context, opts *options, stdout io.Writer) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}
	derive, err := cfg.Deriver()
	if err != nil {
		return err
	}
	recs, err := readRecords(ctx, opts, cfg)
	if err != nil {
		return err
	}

	var base *results.Record
	if derive.NeedsBaseline() {
		var rest []*results.Record
		for _, rec := range recs {
			if rec.Config() == cfg.Baseline && base == nil {
				base = rec
			} else {
				rest = append(rest, rec)
			}
		}
		if base == nil {
			return fmt.Errorf("baseline: %w", &series.MissingDataError{Series: cfg.Baseline})
		}
		recs = rest
	}
	if len(recs) == 0 {
		return fmt.Errorf("no results to plot")
	}

	ch, err := cfg.NewChart()
	if err != nil {
		return err
	}
	for i, rec := range recs {
		pts, err := derive.Derive(rec, base)
		if err != nil {
			return fmt.Errorf("%s: %w", source(rec), err)
		}
		err = ch.AddCurve(chart.Curve{Name: rec.Name, Points: pts, Color: cfg.Color(rec.Config(), i)})
		if err != nil {
			return fmt.Errorf("%s: %w", source(rec), err)
		}
	}
	st, err := cfg.Style()
	if err != nil {
		return err
	}

	if opts.dryRun {
		r := &canvas.Recorder{}
		if err := chart.Render(r, ch, st); err != nil {
			return err
		}
		_, err := r.WriteTo(stdout)
		return err
	}

	out := opts.out
	if out == "" {
		out = cfg.Output
	}
	if out == "" {
		out = cfg.Name + ".png"
	}
	format, err := canvas.FormatFromPath(out)
	if err != nil {
		return err
	}
	data, err := chart.Encode(format, ch, st)
	if err != nil {
		return err
	}
	if err := output.WriteFile(ctx, out, data); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "wrote %s\n", out)

	if opts.html != "" {
		w, h := st.ImageSize(ch.X().Size(), ch.Y().Size())
		p := &page{
			Title:  pageTitle(cfg),
			Image:  relativeTo(opts.html, out),
			Width:  w,
			Height: h,
		}
		for _, rec := range recs {
			p.Curves = append(p.Curves, pageCurve{Name: rec.Name, Config: rec.Config(), Points: len(rec.Points)})
		}
		if err := writePage(ctx, opts.html, p); err != nil {
			return err
		}
		fmt.Fprintf(stdout, "wrote %s\n", opts.html)
	}
	return nil
}

func loadConfig(opts *options) (*config.Chart, error) {
	switch {
	case opts.preset != "" && opts.config != "":
		return nil, fmt.Errorf("-preset and -config are mutually exclusive")
	case opts.config != "":
		return config.LoadFile(opts.config)
	case opts.preset != "":
		return config.Preset(opts.preset)
	}
	return nil, fmt.Errorf("no chart given; use -preset or -config")
}

// readRecords returns the records to plot, including the baseline.
func readRecords(ctx context.Context, opts *options, cfg *config.Chart) ([]*results.Record, error) {
	if len(opts.paths) > 0 {
		files := &results.Files{Paths: opts.paths, AllowLabels: true, DefaultLabels: cfg.Labels}
		return files.ReadAll()
	}

	var names []string
	if len(cfg.Maps) > 0 {
		names = cfg.MapNames()
		if cfg.Baseline != "" && !contains(names, cfg.Baseline) {
			names = append([]string{cfg.Baseline}, names...)
		}
	}

	if opts.db != "" {
		db, err := store.OpenSQL(opts.driver, opts.db)
		if err != nil {
			return nil, err
		}
		defer db.Close()
		recs, err := db.Records(ctx, names...)
		if err != nil {
			return nil, err
		}
		for _, name := range names {
			if !hasConfig(recs, name) {
				warn("no stored results for %s\n", name)
			}
		}
		return recs, nil
	}

	paths, err := results.Discover(opts.dir, names, func(format string, args ...interface{}) {
		warn(format+"\n", args...)
	})
	if err != nil {
		return nil, err
	}
	files := &results.Files{Paths: paths, DefaultLabels: cfg.Labels}
	return files.ReadAll()
}

func source(rec *results.Record) string {
	if rec.File != "" {
		return rec.File
	}
	return rec.Name
}

func contains(list []string, s string) bool {
	for _, x := range list {
		if x == s {
			return true
		}
	}
	return false
}

func hasConfig(recs []*results.Record, name string) bool {
	for _, rec := range recs {
		if rec.Config() == name {
			return true
		}
	}
	return false
}

// relativeTo returns the path of target as seen from a page at
// pagePath, when both are in the same local directory or bucket.
// Otherwise it returns target unchanged.
func relativeTo(pagePath, target string) string {
	pageDir, targetDir := path.Dir(toSlash(pagePath)), path.Dir(toSlash(target))
	if pageDir == targetDir {
		return path.Base(toSlash(target))
	}
	return target
}

func toSlash(p string) string {
	return strings.ReplaceAll(p, string(os.PathSeparator), "/")
}
