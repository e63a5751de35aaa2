// Package finerrors defines the error taxonomy shared by the stores, the
// analyzer and the presentation layer.
package finerrors

import (
	"errors"
	"fmt"
)

// ErrNoData signals that there are no transactions to analyze. It is an
// expected empty state, not a failure.
var ErrNoData = errors.New("no transactions to analyze")

// ValidationError represents a record that failed validation
type ValidationError struct {
	Record string
	Index  int
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s #%d: field %s %s", e.Record, e.Index, e.Field, e.Reason)
}

// DecodeError represents a failure to decode a stored value
type DecodeError struct {
	Source string
	Key    string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: failed to decode '%s': %v", e.Source, e.Key, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError represents a request for a format or backend
// that is not implemented, or an input file that does not match the
// expected format.
type UnsupportedFormatError struct {
	Kind     string
	Format   string
	Expected []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Expected) > 0 {
		return fmt.Sprintf("unsupported %s: %s (expected one of %v)", e.Kind, e.Format, e.Expected)
	}
	return fmt.Sprintf("unsupported %s: %s", e.Kind, e.Format)
}

// IsNoData reports whether err is, or wraps, ErrNoData.
func IsNoData(err error) bool {
	return errors.Is(err, ErrNoData)
}
