package nvram

import (
	"errors"
	"fmt"

	"github.com/hupe1980/nvram/internal/block"
	"github.com/hupe1980/nvram/persistence"
)

var (
	// ErrStoreUnavailable is returned when the backing store cannot be opened or committed.
	ErrStoreUnavailable = block.ErrStoreUnavailable
	// ErrShortTransfer is returned when fewer bytes than the region length were moved.
	ErrShortTransfer = block.ErrShortTransfer
	// ErrFormatMismatch is returned when the stored format tag is not persistence.FormatTag.
	ErrFormatMismatch = persistence.ErrFormatMismatch
	// ErrVersionMismatch is returned when the stored version differs from the compiled-in one.
	ErrVersionMismatch = persistence.ErrVersionMismatch
	// ErrInvalidLayout is returned by New when the region type cannot be stored byte-exact.
	ErrInvalidLayout = persistence.ErrInvalidLayout
	// ErrInvalidArgument is returned for a nil store, an empty store name or
	// defaults whose header does not carry persistence.FormatTag.
	ErrInvalidArgument = block.ErrInvalidArgument

	// ErrHookRegistration is returned when an exit hook cannot be registered.
	ErrHookRegistration = errors.New("exit hook registration failed")
	// ErrInvalidState is returned when an operation is not allowed in the current state.
	ErrInvalidState = errors.New("invalid state")
)

// MismatchError reports which header field failed validation.
type MismatchError = persistence.MismatchError

// TransferError describes a failed load or save of the region.
//
// The original underlying error can be accessed via errors.Unwrap, so
// errors.Is(err, ErrShortTransfer) and errors.Is(err, ErrStoreUnavailable)
// work on it.
type TransferError struct {
	Op       string // "load" or "save"
	Store    string
	Expected int
	Actual   int
	cause    error
}

func (e *TransferError) Error() string {
	return fmt.Sprintf("nvram %s of %q (%d/%d bytes): %v", e.Op, e.Store, e.Actual, e.Expected, e.cause)
}

func (e *TransferError) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	var be *block.Error
	if errors.As(err, &be) {
		return &TransferError{
			Op:       be.Dir.Op(),
			Store:    be.Name,
			Expected: be.Expected,
			Actual:   be.Actual,
			cause:    err,
		}
	}

	return err
}
