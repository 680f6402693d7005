package block

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/nvram/blobstore"
)

var (
	// ErrStoreUnavailable is returned when the store cannot be opened or a write cannot be committed.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrShortTransfer is returned when fewer bytes than requested were moved.
	ErrShortTransfer = errors.New("short transfer")
	// ErrInvalidArgument is returned for an empty name or an undersized buffer.
	ErrInvalidArgument = errors.New("invalid argument")
)

// Direction selects a load or a save.
type Direction int

const (
	Read Direction = iota
	Write
)

// Op returns "load" or "save".
func (d Direction) Op() string {
	if d == Write {
		return "save"
	}
	return "load"
}

// Verb returns "read" or "wrote".
func (d Direction) Verb() string {
	if d == Write {
		return "wrote"
	}
	return "read"
}

func (d Direction) String() string { return d.Op() }

// Error describes a failed transfer.
type Error struct {
	Dir      Direction
	Name     string
	Expected int
	Actual   int
	Kind     error // ErrStoreUnavailable or ErrShortTransfer
	Err      error // underlying cause, may be nil
}

func (e *Error) Error() string {
	if e.Kind == ErrShortTransfer {
		msg := fmt.Sprintf("partial block operation on %q (%d/%d bytes %s)", e.Name, e.Actual, e.Expected, e.Dir.Verb())
		if e.Err != nil {
			msg += ": " + e.Err.Error()
		}
		return msg
	}
	msg := fmt.Sprintf("block %s from %q failed", e.Dir.Op(), e.Name)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap exposes both the kind and the cause to errors.Is.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

// Transfer moves exactly length bytes between buf and the blob called name.
//
// For Read the first length bytes of the blob are read into buf. For Write
// the blob is created or truncated and buf[:length] becomes its whole
// content. Any count other than length is an error; nothing is retried.
func Transfer(ctx context.Context, store blobstore.BlobStore, buf []byte, length int, name string, dir Direction) error {
	if store == nil || name == "" || length < 0 || len(buf) < length {
		return fmt.Errorf("%w: block %s of %d bytes into %d-byte buffer named %q", ErrInvalidArgument, dir.Op(), length, len(buf), name)
	}
	if dir == Write {
		return save(ctx, store, buf[:length], name)
	}
	return load(ctx, store, buf[:length], name)
}

func load(ctx context.Context, store blobstore.BlobStore, buf []byte, name string) error {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return &Error{Dir: Read, Name: name, Expected: len(buf), Kind: ErrStoreUnavailable, Err: err}
	}
	defer blob.Close()

	n, err := blob.ReadAt(ctx, buf, 0)
	if n < len(buf) {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return &Error{Dir: Read, Name: name, Expected: len(buf), Actual: n, Kind: ErrShortTransfer, Err: err}
	}
	if err != nil && !errors.Is(err, io.EOF) {
		return &Error{Dir: Read, Name: name, Expected: len(buf), Actual: n, Kind: ErrShortTransfer, Err: err}
	}
	return nil
}

func save(ctx context.Context, store blobstore.BlobStore, buf []byte, name string) error {
	w, err := store.Create(ctx, name)
	if err != nil {
		return &Error{Dir: Write, Name: name, Expected: len(buf), Kind: ErrStoreUnavailable, Err: err}
	}

	n, err := w.Write(buf)
	if n != len(buf) || err != nil {
		if err == nil {
			err = io.ErrShortWrite
		}
		discard(w)
		return &Error{Dir: Write, Name: name, Expected: len(buf), Actual: n, Kind: ErrShortTransfer, Err: err}
	}

	if err := w.Sync(); err != nil {
		discard(w)
		return &Error{Dir: Write, Name: name, Expected: len(buf), Actual: n, Kind: ErrStoreUnavailable, Err: err}
	}
	if err := w.Close(); err != nil {
		return &Error{Dir: Write, Name: name, Expected: len(buf), Actual: n, Kind: ErrStoreUnavailable, Err: err}
	}
	return nil
}

// discard drops a partially written blob.
func discard(w blobstore.WritableBlob) {
	if a, ok := w.(blobstore.Aborter); ok {
		_ = a.Abort()
		return
	}
	_ = w.Close()
}
