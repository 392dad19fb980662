package colors

import "errors"

var (
	// ErrInvalidInput reports malformed user input such as a bad hex string
	// or an out-of-range channel value.
	ErrInvalidInput = errors.New("invalid input")

	// ErrEmptySample reports that sampling produced no usable points.
	ErrEmptySample = errors.New("no opaque pixels sampled")

	// ErrConfiguration reports an unknown option name or an invalid setting.
	ErrConfiguration = errors.New("invalid configuration")
)
