// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure classes of a run. The concrete error types
// below unwrap to these so callers can match with errors.Is.
var (
	// ErrTransport marks network or HTTP status failures.
	ErrTransport = errors.New("transport error")

	// ErrFormat marks a response body that cannot be parsed.
	ErrFormat = errors.New("format error")

	// ErrIO marks an export destination that cannot be written.
	ErrIO = errors.New("io error")

	// ErrEmptyQuery is returned before any network call when the query is blank.
	ErrEmptyQuery = errors.New("query is empty")
)

// TransportError describes a failed request to a remote service.
type TransportError struct {
	Op         string
	URL        string
	StatusCode int
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s returned HTTP %d", e.Op, e.URL, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.URL, e.Err)
}

// Is reports ErrTransport as a match.
func (e *TransportError) Is(target error) bool { return target == ErrTransport }

func (e *TransportError) Unwrap() error { return e.Err }

// FormatError describes a response that does not have the expected structure.
type FormatError struct {
	Op  string
	Err error
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: unexpected response format: %v", e.Op, e.Err)
}

// Is reports ErrFormat as a match.
func (e *FormatError) Is(target error) bool { return target == ErrFormat }

func (e *FormatError) Unwrap() error { return e.Err }

// IOError describes an export destination that could not be written.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("writing %s: %v", e.Path, e.Err)
}

// Is reports ErrIO as a match.
func (e *IOError) Is(target error) bool { return target == ErrIO }

func (e *IOError) Unwrap() error { return e.Err }
