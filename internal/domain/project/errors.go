package project

import (
	"errors"
	"fmt"
)

var (
	// ErrSuperseded is returned by a load whose result was discarded because
	// a newer load started after it.
	ErrSuperseded = errors.New("load superseded by a newer load")
	// ErrNilSource indicates Load was called without a source.
	ErrNilSource = errors.New("nil project source")
)

// LoadError reports a failed fetch or decode of the project list.
type LoadError struct {
	Err error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loading projects: %v", e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError reports whether err is or wraps a LoadError.
func IsLoadError(err error) bool {
	var loadErr *LoadError
	return errors.As(err, &loadErr)
}
