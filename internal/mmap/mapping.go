package mmap

import (
	"errors"
	"io"
	"os"
	"sync/atomic"
)

var (
	// ErrClosed is returned by reads on a closed Mapping.
	ErrClosed = errors.New("mmap: mapping is closed")
	// ErrInvalidSize is returned when a file is too large to map.
	ErrInvalidSize = errors.New("mmap: invalid file size")
	// ErrInvalidOffset is returned for a negative offset or a range past the end.
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)

// Mapping is a read-only view of a whole file.
type Mapping struct {
	data    []byte
	closed  atomic.Bool
	release func() error
}

// Open maps the file at path. The descriptor is closed before Open returns;
// the view stays valid until Close.
func Open(path string) (*Mapping, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, err
	}
	n := fi.Size()
	if int64(int(n)) != n {
		return nil, ErrInvalidSize
	}
	if n == 0 {
		return &Mapping{}, nil
	}

	data, release, err := mapFile(f.Fd(), int(n))
	if err != nil {
		return nil, err
	}
	return &Mapping{data: data, release: release}, nil
}

// Close releases the view. Calling it again is a no-op.
func (m *Mapping) Close() error {
	if m.closed.Swap(true) {
		return nil
	}
	m.data = nil
	if m.release == nil {
		return nil
	}
	return m.release()
}

// Bytes returns the mapped file, or nil once closed.
func (m *Mapping) Bytes() []byte {
	if m.closed.Load() {
		return nil
	}
	return m.data
}

// Size is the length of the mapped file.
func (m *Mapping) Size() int { return len(m.data) }

// Slice returns n bytes at off without copying. The range must lie inside
// the file.
func (m *Mapping) Slice(off int64, n int) ([]byte, error) {
	if m.closed.Load() {
		return nil, ErrClosed
	}
	if off < 0 || n < 0 || off+int64(n) > int64(len(m.data)) {
		return nil, ErrInvalidOffset
	}
	return m.data[off : off+int64(n) : off+int64(n)], nil
}

// ReadAt copies from the view. Reads that run past the end return io.EOF
// with the bytes that were available.
func (m *Mapping) ReadAt(p []byte, off int64) (int, error) {
	if m.closed.Load() {
		return 0, ErrClosed
	}
	if off < 0 {
		return 0, ErrInvalidOffset
	}
	if off >= int64(len(m.data)) {
		return 0, io.EOF
	}
	n := copy(p, m.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}
