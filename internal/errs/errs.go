// Package errs classifies failures by cause rather than by Go type, so
// callers across the codec, the stream, and the CLI can all ask "is this
// corrupt input, or unsupported, or a filter mistake" without type-asserting
// concrete error structs.
package errs

import (
	"errors"
	"fmt"
)

// Kind is the cause of a failure.
type Kind int

const (
	// IO marks a source or sink I/O failure.
	IO Kind = iota
	// Corrupt marks malformed or internally inconsistent input bytes.
	Corrupt
	// Unsupported marks a well-formed request the codec declines to honor.
	Unsupported
	// Filter marks a malformed filter expression or unreadable filter file.
	Filter
	// Config marks conflicting or invalid CLI configuration.
	Config
)

func (k Kind) String() string {
	switch k {
	case IO:
		return "io"
	case Corrupt:
		return "corrupt"
	case Unsupported:
		return "unsupported"
	case Filter:
		return "filter"
	case Config:
		return "config"
	default:
		return "unknown"
	}
}

// Error is a cause-tagged error. It wraps an optional underlying error so
// errors.Is/As still see through to it.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func (e *Error) Unwrap() error { return e.Err }

func newf(k Kind, format string, args ...interface{}) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...)}
}

func wrapf(k Kind, err error, format string, args ...interface{}) error {
	return &Error{Kind: k, Msg: fmt.Sprintf(format, args...), Err: err}
}

// IOf reports an I/O failure.
func IOf(format string, args ...interface{}) error { return newf(IO, format, args...) }

// WrapIO wraps err as an I/O failure.
func WrapIO(err error, format string, args ...interface{}) error {
	return wrapf(IO, err, format, args...)
}

// Corruptf reports corrupt input.
func Corruptf(format string, args ...interface{}) error { return newf(Corrupt, format, args...) }

// WrapCorrupt wraps err as corrupt input.
func WrapCorrupt(err error, format string, args ...interface{}) error {
	return wrapf(Corrupt, err, format, args...)
}

// Unsupportedf reports a well-formed but unsupported request.
func Unsupportedf(format string, args ...interface{}) error { return newf(Unsupported, format, args...) }

// Filterf reports a malformed filter expression or file.
func Filterf(format string, args ...interface{}) error { return newf(Filter, format, args...) }

// WrapFilter wraps err as a filter-configuration failure.
func WrapFilter(err error, format string, args ...interface{}) error {
	return wrapf(Filter, err, format, args...)
}

// Configf reports invalid or conflicting configuration.
func Configf(format string, args ...interface{}) error { return newf(Config, format, args...) }

// Is reports whether err (or something it wraps) carries the given Kind.
func Is(err error, k Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == k
	}
	return false
}
