package fixture

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter marks a synthesis input outside its allowed range.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrIO marks a failed write of the PCM artifact.
	ErrIO = errors.New("fixture I/O failure")
)

// InvalidParameterError names the offending synthesis field.
type InvalidParameterError struct {
	Field  string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: %s=%v %s", ErrInvalidParameter, e.Field, e.Value, e.Reason)
}

func (e *InvalidParameterError) Is(target error) bool { return target == ErrInvalidParameter }

// IOError wraps a filesystem failure with the path involved.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrIO, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

func (e *IOError) Is(target error) bool { return target == ErrIO }
