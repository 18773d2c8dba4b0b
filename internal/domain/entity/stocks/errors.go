package stocks

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is returned when a stock, trade or index is built from malformed input.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMissingValue is a required input that was not provided. It matches ErrInvalidArgument.
	ErrMissingValue = fmt.Errorf("%w: missing value", ErrInvalidArgument)
)
