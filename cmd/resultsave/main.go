// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Resultsave stores map benchmark results in a result store.
//
// Usage:
//
//	resultsave [-db dsn] [-driver name] [-labels a,b,c] file...
//
// Each input file holds the results.txt output of one harness build.
// All records of one invocation form a single upload; resultsave
// prints the upload's ID. Mapgraphs -db draws the latest stored
// record of each build configuration.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"github.com/mapbench/mapgraphs/results"
	"github.com/mapbench/mapgraphs/store"
	_ "github.com/mapbench/mapgraphs/store/sqlite3"
)

var (
	dsn    = flag.String("db", "results.db", "store results in the database at `dsn`")
	driver = flag.String("driver", "sqlite3", "database `driver` (sqlite3 or mysql)")
	labels = flag.String("labels", "", "comma-separated field `names` for files holding bare point lists")
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage of resultsave:
	resultsave [flags] file...
`)
	flag.PrintDefaults()
	os.Exit(2)
}

func main() {
	log.SetPrefix("resultsave: ")
	log.SetFlags(0)
	flag.Usage = usage
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no files to save")
	}
	var defaultLabels []string
	if *labels != "" {
		defaultLabels = strings.Split(*labels, ",")
	}

	db, err := store.OpenSQL(*driver, *dsn)
	if err != nil {
		log.Fatal(err)
	}
	defer db.Close()

	id, err := save(context.Background(), db, &results.Files{Paths: files, DefaultLabels: defaultLabels})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("upload %s\n", id)
}

// save stores every record of files as one upload and returns the
// upload ID. Nothing is stored if any file fails to parse.
func save(ctx context.Context, db *store.DB, files *results.Files) (string, error) {
	u, err := db.NewUpload(ctx)
	if err != nil {
		return "", err
	}
	n := 0
	for files.Scan() {
		if err := u.InsertRecord(files.Record()); err != nil {
			u.Abort()
			return "", err
		}
		n++
	}
	if err := files.Err(); err != nil {
		u.Abort()
		return "", err
	}
	if n == 0 {
		u.Abort()
		return "", fmt.Errorf("no records in %s", strings.Join(files.Paths, ", "))
	}
	if err := u.Commit(); err != nil {
		return "", err
	}
	return u.ID, nil
}
