package blobstore

import (
	"bytes"
	"context"
	"errors"
	"io"
)

// ErrClosed is returned when writing to a blob that was already committed or aborted.
var ErrClosed = errors.New("blob already closed")

// CommitFunc persists the complete contents of a buffered blob.
type CommitFunc func(ctx context.Context, data []byte) error

// BufferedBlob is a WritableBlob that collects writes in memory and hands the
// complete contents to a CommitFunc on Close. Remote stores use it to turn a
// streamed write into a single object upload.
type BufferedBlob struct {
	ctx    context.Context
	commit CommitFunc
	buf    bytes.Buffer
	closed bool
}

// NewBufferedBlob returns a BufferedBlob that commits through fn.
func NewBufferedBlob(ctx context.Context, fn CommitFunc) *BufferedBlob {
	return &BufferedBlob{ctx: ctx, commit: fn}
}

// Write implements io.Writer.
func (b *BufferedBlob) Write(p []byte) (int, error) {
	if b.closed {
		return 0, ErrClosed
	}
	return b.buf.Write(p)
}

// Sync is a no-op; data is only committed on Close.
func (b *BufferedBlob) Sync() error {
	if b.closed {
		return ErrClosed
	}
	return nil
}

// Close commits the buffered contents.
func (b *BufferedBlob) Close() error {
	if b.closed {
		return ErrClosed
	}
	b.closed = true
	return b.commit(b.ctx, b.buf.Bytes())
}

// Abort discards the buffered contents without committing.
func (b *BufferedBlob) Abort() error {
	b.closed = true
	b.buf.Reset()
	return nil
}

// BytesBlob is a read-only Blob over an in-memory byte slice.
type BytesBlob struct {
	data []byte
}

// NewBytesBlob returns a Blob reading from data. The slice is not copied.
func NewBytesBlob(data []byte) *BytesBlob {
	return &BytesBlob{data: data}
}

// ReadAt implements Blob.
func (b *BytesBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 || off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

// Close implements Blob.
func (b *BytesBlob) Close() error { return nil }

// Size implements Blob.
func (b *BytesBlob) Size() int64 { return int64(len(b.data)) }

// Bytes implements Mappable.
func (b *BytesBlob) Bytes() ([]byte, error) { return b.data, nil }
