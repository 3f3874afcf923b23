// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package storetest provides result stores and records for tests.
package storetest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mapbench/mapgraphs/results"
	"github.com/mapbench/mapgraphs/store"
	_ "github.com/mapbench/mapgraphs/store/sqlite3"
)

// NewDB returns an empty sqlite store in a temporary directory and
// the data source name that opens it again. The store is closed when
// the test finishes.
func NewDB(t *testing.T) (db *store.DB, dsn string) {
	t.Helper()
	dsn = filepath.Join(t.TempDir(), "results.db")
	db, err := store.OpenSQL("sqlite3", dsn)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Error(err)
		}
	})
	return db, dsn
}

// Throughput returns a scalability record of the named build
// configuration. Run i has i+1 threads completing ops[i] map
// operations in one second.
func Throughput(config, mapType string, ops ...float64) *results.Record {
	rec := &results.Record{
		Name:   mapType,
		File:   filepath.Join("build-"+config, results.ResultsFile),
		Labels: []string{"numThreads", "mapOpsDone", "totalTime"},
	}
	for i, n := range ops {
		rec.Points = append(rec.Points, []float64{float64(i + 1), n, 1})
	}
	return rec
}

// Upload stores recs in db as one committed upload and returns the
// upload ID.
func Upload(t *testing.T, db *store.DB, recs ...*results.Record) string {
	t.Helper()
	u, err := db.NewUpload(context.Background())
	if err != nil {
		t.Fatalf("NewUpload: %v", err)
	}
	for _, rec := range recs {
		if err := u.InsertRecord(rec); err != nil {
			u.Abort()
			t.Fatalf("InsertRecord(%s): %v", rec.Name, err)
		}
	}
	if err := u.Commit(); err != nil {
		t.Fatalf("Commit: %v", err)
	}
	return u.ID
}
