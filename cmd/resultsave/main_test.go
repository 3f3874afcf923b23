// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mapbench/mapgraphs/results"
	"github.com/mapbench/mapgraphs/store/storetest"
)

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0777); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0666); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestSave(t *testing.T) {
	db, _ := storetest.NewDB(t)
	ctx := context.Background()

	dir := t.TempDir()
	grampa := writeFile(t, filepath.Join(dir, "build-grampa", "results.txt"), `[
    (1000, 52000, 64000),
    (2000, 104000, 128000),
]`)
	files := &results.Files{Paths: []string{grampa}, DefaultLabels: []string{"population", "bytesInUse", "bytesHigh"}}
	id, err := save(ctx, db, files)
	if err != nil {
		t.Fatal(err)
	}
	if id != "1" {
		t.Errorf("upload ID = %q, want 1", id)
	}

	recs, err := db.Records(ctx, "grampa")
	if err != nil {
		t.Fatal(err)
	}
	if len(recs) != 1 || len(recs[0].Points) != 2 || recs[0].Field("bytesHigh") != 2 {
		t.Errorf("stored records = %v", recs)
	}

	// A parse error stores nothing.
	bad := writeFile(t, filepath.Join(dir, "build-tbb", "results.txt"), "{'points': [(1, 2,")
	if _, err := save(ctx, db, &results.Files{Paths: []string{bad}}); err == nil {
		t.Errorf("save of a malformed file succeeded")
	}
	if _, err := save(ctx, db, &results.Files{}); err == nil || !strings.Contains(err.Error(), "no records") {
		t.Errorf("save of no files = %v, want no records error", err)
	}
	if n, err := db.CountUploads(); err != nil || n != 1 {
		t.Errorf("CountUploads() = %d, %v; want 1", n, err)
	}
}
