// Package zwrap wraps a ReadCloser so that reads come from a gzip
// decompressor if the source is compressed, and Close closes the
// decompressor before the underlying source. Files from the
// structure archives come both ways, so most callers want WrapMaybe.
package zwrap

// 15 Mar 2026

import (
	"compress/gzip"
	"errors"
	"io"
)

// FpGzip is a ReadCloser over a possibly compressed source.
type FpGzip struct {
	fp   io.ReadCloser
	zrdr *gzip.Reader // nil when the source was not compressed
}

// Read reads from the decompressed stream if there is one.
func (fc *FpGzip) Read(p []byte) (int, error) {
	if fc.zrdr != nil {
		return fc.zrdr.Read(p)
	}
	return fc.fp.Read(p)
}

// Close closes the decompressor, then the source. Both errors are
// worth reporting, so they get joined.
func (fc *FpGzip) Close() error {
	if fc.zrdr == nil {
		return fc.fp.Close()
	}
	var s string
	if e := fc.zrdr.Close(); e != nil {
		s = e.Error()
	}
	if e := fc.fp.Close(); e != nil {
		s = s + " " + e.Error()
	}
	if s == "" {
		return nil
	}
	return errors.New(s)
}

// Wrap treats the source as gzip compressed. It works as happily on
// an http body as on a file.
func Wrap(fp io.ReadCloser) (*FpGzip, error) {
	z, err := gzip.NewReader(fp)
	return &FpGzip{fp: fp, zrdr: z}, err
}

// ReadSeekCloser is what WrapMaybe needs: it has to rewind if the
// source turns out not to be compressed.
type ReadSeekCloser interface {
	io.Reader
	io.Seeker
	io.Closer
}

// WrapMaybe sniffs whether the source is compressed. If not, it
// rewinds and hands back a plain wrapper. Seeking is lost either
// way, which is the price of maybe reading through a decompressor.
func WrapMaybe(fp ReadSeekCloser) (*FpGzip, error) {
	if out, err := Wrap(fp); err == nil {
		return out, nil
	}
	_, err := fp.Seek(0, io.SeekStart)
	return &FpGzip{fp: fp}, err
}
