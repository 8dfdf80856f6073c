package mpegctx

import (
	"errors"
	"fmt"
)

var (
	// ErrOpen matches every *OpenError.
	ErrOpen = errors.New("mpegctx: couldn't open stream")

	// ErrInvalidContext is returned when a Context was not created by Open or was already released.
	ErrInvalidContext = errors.New("mpegctx: context is invalid or already released")

	// ErrMissingBuffer is returned when a live Context has no raster attached.
	ErrMissingBuffer = errors.New("mpegctx: raster buffer is not attached to context")

	errNoEngine          = errors.New("opener returned no engine")
	errInvalidDimensions = errors.New("invalid video dimensions")
)

// OpenError reports a failed Open together with the offending path.
type OpenError struct {
	Path string
	Err  error
}

func (e *OpenError) Error() string {
	return fmt.Sprintf("mpegctx: couldn't open file %s: %v", e.Path, e.Err)
}

func (e *OpenError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrOpen.
func (e *OpenError) Is(target error) bool {
	return target == ErrOpen
}
