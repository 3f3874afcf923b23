// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store keeps benchmark result records in a SQL database, so
// that charts can be drawn from runs made on other machines.
//
// Records are stored in uploads. An upload is written in a single
// transaction, and a chart drawn from the store uses, for each map
// configuration, the record from the most recent upload that has one.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"

	"github.com/mapbench/mapgraphs/results"
)

// DB is a result store backed by a SQL database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertUpload *sql.Stmt
	insertRecord *sql.Stmt
	latest       *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(driverName); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a
// connection to driverName. The sqlite3 package uses it to turn on
// foreign keys. It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Uploads (
	UploadID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}}
);
CREATE TABLE IF NOT EXISTS Records (
	UploadID BIGINT UNSIGNED,
	RecordID BIGINT UNSIGNED,
	Config VARCHAR(255),
	File VARCHAR(1024),
	Content BLOB,
	PRIMARY KEY (UploadID, RecordID),
{{if not .sqlite3}}
	INDEX (Config),
{{end}}
	FOREIGN KEY (UploadID) REFERENCES Uploads(UploadID) ON UPDATE CASCADE ON DELETE CASCADE
);
{{if .sqlite3}}
CREATE INDEX IF NOT EXISTS RecordsConfig ON Records(Config);
{{end}}
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements(driverName string) error {
	var err error
	q := "INSERT INTO Uploads() VALUES ()"
	if driverName == "sqlite3" {
		q = "INSERT INTO Uploads DEFAULT VALUES"
	}
	db.insertUpload, err = db.sql.Prepare(q)
	if err != nil {
		return err
	}
	db.insertRecord, err = db.sql.Prepare("INSERT INTO Records(UploadID, RecordID, Config, File, Content) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	db.latest, err = db.sql.Prepare("SELECT File, Content FROM Records WHERE Config = ? ORDER BY UploadID DESC, RecordID DESC LIMIT 1")
	if err != nil {
		return err
	}
	return nil
}

// An Upload is a set of records stored together. Nothing in an
// upload is visible until Commit.
type Upload struct {
	// ID identifies the upload.
	ID string

	// id is the numeric value used as the primary key.
	id int64
	// recordid is the index of the next record to insert.
	recordid int64
	db       *DB
	tx       *sql.Tx
}

// NewUpload starts a new upload. The caller must call Commit or
// Abort on the result. The upload is aborted if ctx is canceled
// before Commit.
func (db *DB) NewUpload(ctx context.Context) (*Upload, error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	res, err := tx.StmtContext(ctx, db.insertUpload).ExecContext(ctx)
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	i, err := res.LastInsertId()
	if err != nil {
		tx.Rollback()
		return nil, err
	}
	return &Upload{
		ID: fmt.Sprint(i),
		id: i,
		db: db,
		tx: tx,
	}, nil
}

// InsertRecord adds rec to the upload. The record is stored in the
// harness output format, under the build configuration it came from.
func (u *Upload) InsertRecord(rec *results.Record) error {
	var buf bytes.Buffer
	if err := results.NewWriter(&buf).Write(rec); err != nil {
		return err
	}
	if _, err := u.tx.Stmt(u.db.insertRecord).Exec(u.id, u.recordid, rec.Config(), rec.File, buf.Bytes()); err != nil {
		return err
	}
	u.recordid++
	return nil
}

// Commit makes the upload's records visible.
func (u *Upload) Commit() error {
	return u.tx.Commit()
}

// Abort discards the upload.
func (u *Upload) Abort() error {
	return u.tx.Rollback()
}

// Records returns, for each named build configuration, its record
// from the most recent upload that has one. Configurations with no
// records are skipped. If no names are given, Records returns the
// latest record of every stored configuration, sorted by name.
func (db *DB) Records(ctx context.Context, names ...string) ([]*results.Record, error) {
	if len(names) == 0 {
		var err error
		if names, err = db.configs(ctx); err != nil {
			return nil, err
		}
	}
	var recs []*results.Record
	for _, name := range names {
		var file string
		var content []byte
		err := db.latest.QueryRowContext(ctx, name).Scan(&file, &content)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return nil, err
		}
		r := results.NewReader(bytes.NewReader(content), file)
		if !r.Scan() {
			if err := r.Err(); err != nil {
				return nil, fmt.Errorf("stored record for %s: %w", name, err)
			}
			return nil, fmt.Errorf("stored record for %s is empty", name)
		}
		recs = append(recs, r.Record())
	}
	return recs, nil
}

func (db *DB) configs(ctx context.Context) ([]string, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT DISTINCT Config FROM Records ORDER BY Config")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CountUploads returns the number of committed uploads.
func (db *DB) CountUploads() (int, error) {
	var uploads int
	err := db.sql.QueryRow("SELECT COUNT(*) FROM Uploads").Scan(&uploads)
	return uploads, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	for _, stmt := range []*sql.Stmt{db.insertUpload, db.insertRecord, db.latest} {
		if err := stmt.Close(); err != nil {
			return err
		}
	}
	return db.sql.Close()
}
