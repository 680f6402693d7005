package persistence

import (
	"encoding/binary"
	"fmt"
	"runtime"
)

// NativeByteOrder returns the byte order of the running host.
func NativeByteOrder() binary.ByteOrder {
	if ByteOrderName() == "big-endian" {
		return binary.BigEndian
	}
	return binary.LittleEndian
}

// ByteOrderName returns "little-endian" or "big-endian".
func ByteOrderName() string {
	var b [2]byte
	binary.NativeEndian.PutUint16(b[:], 0x1234)
	if b[0] == 0x12 {
		return "big-endian"
	}
	return "little-endian"
}

// PlatformInfo returns information about the current platform.
func PlatformInfo() string {
	return fmt.Sprintf("GOOS=%s GOARCH=%s endianness=%s", runtime.GOOS, runtime.GOARCH, ByteOrderName())
}

// Encode writes the native-order image of v into buf and returns the number
// of bytes written. v must be a pointer to (or a value of) a fixed-size type.
func Encode(v any, buf []byte) (int, error) {
	size := binary.Size(v)
	if size < 0 {
		return 0, fmt.Errorf("%w: %T is not fixed-size", ErrInvalidLayout, v)
	}
	if len(buf) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, size, len(buf))
	}
	return binary.Encode(buf, NativeByteOrder(), v)
}

// Decode fills the value v points to from the native-order image in buf.
// Blank (_) fields are skipped.
func Decode(buf []byte, v any) (int, error) {
	size := binary.Size(v)
	if size < 0 {
		return 0, fmt.Errorf("%w: %T is not fixed-size", ErrInvalidLayout, v)
	}
	if len(buf) < size {
		return 0, fmt.Errorf("%w: need %d bytes, have %d", ErrShortBuffer, size, len(buf))
	}
	return binary.Decode(buf, NativeByteOrder(), v)
}
