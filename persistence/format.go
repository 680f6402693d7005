package persistence

import (
	"errors"
	"fmt"
	"math/bits"
)

const (
	// FormatTag identifies an nvram block (ASCII "NVRAM", 0x00, then the
	// byte-order marker 0x1234).
	FormatTag uint64 = 0x4E5652414D001234

	// HeaderSize is the encoded size of a Header in bytes.
	HeaderSize = 16
)

var (
	// ErrFormatMismatch is returned when the stored format tag differs from FormatTag.
	ErrFormatMismatch = errors.New("format mismatch")
	// ErrVersionMismatch is returned when the stored version differs from the expected one.
	ErrVersionMismatch = errors.New("version mismatch")
	// ErrInvalidLayout is returned when a region type cannot be stored byte-exact.
	ErrInvalidLayout = errors.New("invalid region layout")
	// ErrShortBuffer is returned when a buffer is smaller than the value it should hold.
	ErrShortBuffer = errors.New("buffer too short")
)

// Header is the schema descriptor at the start of every region.
type Header struct {
	Format  uint64 // FormatTag
	Version uint64 // Bumped whenever the region layout changes
}

// NewHeader returns the header of the current build for the given version.
func NewHeader(version uint64) Header {
	return Header{Format: FormatTag, Version: version}
}

// DecodeHeader decodes the header at the start of buf.
func DecodeHeader(buf []byte) (Header, error) {
	var h Header
	if len(buf) < HeaderSize {
		return h, fmt.Errorf("%w: header needs %d bytes, have %d", ErrShortBuffer, HeaderSize, len(buf))
	}
	order := NativeByteOrder()
	h.Format = order.Uint64(buf[0:8])
	h.Version = order.Uint64(buf[8:16])
	return h, nil
}

// MismatchError reports a header field that differs from the expected value.
type MismatchError struct {
	Field    string // "format" or "version"
	Expected uint64
	Actual   uint64
}

func (e *MismatchError) Error() string {
	msg := fmt.Sprintf("%s mismatch: expected 0x%x, got 0x%x", e.Field, e.Expected, e.Actual)
	if e.Swapped() {
		msg += " (stored by a host with the opposite byte order)"
	}
	return msg
}

// Swapped reports whether a format mismatch is the expected tag in the
// opposite byte order.
func (e *MismatchError) Swapped() bool {
	return e.Field == "format" && e.Actual == bits.ReverseBytes64(e.Expected)
}

// Unwrap returns ErrFormatMismatch or ErrVersionMismatch.
func (e *MismatchError) Unwrap() error {
	if e.Field == "format" {
		return ErrFormatMismatch
	}
	return ErrVersionMismatch
}

// Validate compares a loaded header against the expected one.
// The format is checked first, so a block that differs in both reports a
// format mismatch. There is no migration: any version difference is fatal.
func Validate(expected, loaded Header) error {
	if loaded.Format != expected.Format {
		return &MismatchError{Field: "format", Expected: expected.Format, Actual: loaded.Format}
	}
	if loaded.Version != expected.Version {
		return &MismatchError{Field: "version", Expected: expected.Version, Actual: loaded.Version}
	}
	return nil
}
