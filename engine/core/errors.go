package core

import (
	"errors"
)

var (
	// ErrInvalidArgument flags programmer errors such as an out-of-range
	// texture or image unit. Continuing would read past valid state, so
	// these calls fail hard instead of degrading.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrOutOfRange flags a draw or access range exceeding the bounds of
	// the underlying data.
	ErrOutOfRange = errors.New("out of range")
	// ErrResourceCreation flags a failed device buffer or handle creation.
	ErrResourceCreation = errors.New("resource creation failed")
	// ErrUnsupported flags a device feature that is not available.
	ErrUnsupported = errors.New("unsupported device feature")
	ErrUnknown     = errors.New("unknown")
)
