// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package output writes rendered charts to local files or to Google
// Cloud Storage.
//
// A path of the form gs://bucket/object names a Cloud Storage object.
// Any other path is a local file.
package output

import (
	"context"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
)

// ParseGS splits a gs://bucket/object path. ok is false if path is
// not a Cloud Storage path.
func ParseGS(path string) (bucket, object string, ok bool, err error) {
	rest := strings.TrimPrefix(path, "gs://")
	if rest == path {
		return "", "", false, nil
	}
	i := strings.Index(rest, "/")
	if i <= 0 || i == len(rest)-1 {
		return "", "", true, fmt.Errorf("bad Cloud Storage path %q: want gs://bucket/object", path)
	}
	return rest[:i], rest[i+1:], true, nil
}

// Create opens path for writing. Cloud Storage objects are created
// when the returned writer is closed. If no options are given,
// Cloud Storage is accessed with the application default
// credentials.
func Create(ctx context.Context, path string, opts ...option.ClientOption) (io.WriteCloser, error) {
	bucket, object, isGS, err := ParseGS(path)
	if err != nil {
		return nil, err
	}
	if !isGS {
		return os.Create(path)
	}
	if len(opts) == 0 {
		ts, err := google.DefaultTokenSource(ctx, storage.ScopeReadWrite)
		if err != nil {
			return nil, fmt.Errorf("finding credentials for %s: %w", path, err)
		}
		opts = []option.ClientOption{option.WithTokenSource(ts)}
	}
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, err
	}
	ctx, cancel := context.WithCancel(ctx)
	w := client.Bucket(bucket).Object(object).NewWriter(ctx)
	w.ContentType = contentType(path)
	return &gsWriter{w: w, client: client, cancel: cancel}, nil
}

func contentType(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ext == ".eps" {
		return "application/postscript"
	}
	if t := mime.TypeByExtension(ext); t != "" {
		return t
	}
	return "application/octet-stream"
}

type gsWriter struct {
	w      *storage.Writer
	client *storage.Client
	cancel context.CancelFunc
	err    error
}

func (g *gsWriter) Write(p []byte) (int, error) {
	n, err := g.w.Write(p)
	if err != nil && g.err == nil {
		g.err = err
	}
	return n, err
}

// Close finishes the upload. After a failed Write, Close abandons
// the object instead.
func (g *gsWriter) Close() error {
	if g.err != nil {
		g.cancel()
	}
	err := g.w.Close()
	g.cancel()
	if cerr := g.client.Close(); err == nil {
		err = cerr
	}
	if g.err != nil {
		return g.err
	}
	return err
}

// WriteFile writes data to path. A local file is written under a
// temporary name and renamed into place, so path is either left
// unchanged or holds all of data.
func WriteFile(ctx context.Context, path string, data []byte, opts ...option.ClientOption) error {
	if _, _, isGS, err := ParseGS(path); err != nil {
		return err
	} else if isGS {
		w, err := Create(ctx, path, opts...)
		if err != nil {
			return err
		}
		if _, err := w.Write(data); err != nil {
			w.Close()
			return err
		}
		return w.Close()
	}

	f, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Chmod(tmp, 0644); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}
