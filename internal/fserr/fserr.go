// Package fserr defines the engine's error taxonomy. Handlers collapse kinds
// to message strings at the wire boundary, so kinds matter internally only.
package fserr

import (
	"errors"
	"fmt"
	"os"
	"syscall"
)

// Kind classifies an engine failure.
type Kind string

const (
	NotFound         Kind = "not_found"
	NotADirectory    Kind = "not_a_directory"
	NotEmpty         Kind = "not_empty"
	AlreadyExists    Kind = "already_exists"
	PermissionDenied Kind = "permission_denied"
	UnknownCommand   Kind = "unknown_command"
	InvalidArgument  Kind = "invalid_argument"
	Unavailable      Kind = "unavailable"
	IOFailure        Kind = "io_failure"
)

// Error carries a kind plus a human-readable message, optionally wrapping
// the underlying OS error.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an error of the given kind.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates an error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// FromOS classifies an OS-level error, keeping its text attached.
func FromOS(msg string, err error) error {
	return &Error{Kind: classify(err), Msg: msg, Err: err}
}

// KindOf extracts the kind from err, or IOFailure for unclassified errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return classify(err)
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}

func classify(err error) Kind {
	switch {
	case err == nil:
		return IOFailure
	case os.IsNotExist(err):
		return NotFound
	case os.IsExist(err):
		return AlreadyExists
	case os.IsPermission(err):
		return PermissionDenied
	case errors.Is(err, syscall.ENOTEMPTY):
		return NotEmpty
	case errors.Is(err, syscall.ENOTDIR):
		return NotADirectory
	default:
		return IOFailure
	}
}
