package valobj

import "errors"

// Input-class sentinels (spec.md §7).
var (
	ErrMissingValue  = errors.New("missing value")
	ErrInvalidType   = errors.New("invalid type")
	ErrInvalidFormat = errors.New("invalid format")
	ErrInvalidChars  = errors.New("invalid characters")
	ErrOutOfRange    = errors.New("out of range")
)
