// Package iox opens and creates files with transparent gzip handling, keyed
// off the .gz extension. Archived delivery logs are usually gzipped in place.
package iox

import (
	"compress/gzip"
	"io"
	"os"
	"strings"
)

type stacked struct {
	io.Reader
	io.Writer
	closers []io.Closer
}

func (s *stacked) Close() error {
	var first error
	for _, c := range s.closers {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func gzipped(path string) bool {
	return strings.HasSuffix(strings.ToLower(path), ".gz")
}

// OpenAuto opens path for reading, decompressing when the name ends in .gz.
func OpenAuto(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	if !gzipped(path) {
		return f, nil
	}
	gr, err := gzip.NewReader(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return &stacked{Reader: gr, closers: []io.Closer{gr, f}}, nil
}

// CreateAuto creates path for writing, compressing when the name ends in .gz.
func CreateAuto(path string) (io.WriteCloser, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if !gzipped(path) {
		return f, nil
	}
	gw := gzip.NewWriter(f)
	return &stacked{Writer: gw, closers: []io.Closer{gw, f}}, nil
}
