package service

import (
	"errors"
	"strings"
)

// ErrInvalidRange indicates an unparsable or inverted date range.
var ErrInvalidRange = errors.New("invalid date range")

// ValidationError lists the required fields missing from a request. It is a
// client error; nothing is written to the store when it is returned.
type ValidationError struct {
	Missing []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Missing, ", ")
}
