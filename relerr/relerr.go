// Package relerr defines the error taxonomy for misuse of the relation
// trie and its collaborators: an out-of-range dimension, a malformed
// matcher slice, or an out-of-range indexed access. None of these are
// recoverable runtime conditions -- they are all programmer errors, so
// they are raised by panic rather than threaded through every call as
// a returned error. Callers that want an error value back can recover
// and type-assert, the same way one recovers from a slice index panic.
package relerr

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind identifies which misuse an Error represents.
type Kind int

const (
	// InvalidArgument covers a nil adapter, a mismatched matcher slice
	// length, or any other malformed call argument.
	InvalidArgument Kind = iota
	// InvalidDimension covers an adapter method called with dim outside
	// [0, Rank()).
	InvalidDimension
	// IndexOutOfRange covers Relation.At(i) with i outside [0, Count()).
	IndexOutOfRange
)

func (k Kind) String() string {
	switch k {
	case InvalidArgument:
		return "InvalidArgument"
	case InvalidDimension:
		return "InvalidDimension"
	case IndexOutOfRange:
		return "IndexOutOfRange"
	default:
		return "Unknown"
	}
}

// Error describes every misuse condition in this module. The value
// actually raised by panic is an error wrapping an *Error with a stack
// trace (github.com/pkg/errors.WithStack), so callers test it with Is
// or errors.As rather than a direct type assertion to *Error.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func newf(kind Kind, format string, args ...interface{}) error {
	return errors.WithStack(&Error{Kind: kind, Msg: fmt.Sprintf(format, args...)})
}

// InvalidArgumentf builds an InvalidArgument error.
func InvalidArgumentf(format string, args ...interface{}) error {
	return newf(InvalidArgument, format, args...)
}

// InvalidDimensionf builds an InvalidDimension error.
func InvalidDimensionf(format string, args ...interface{}) error {
	return newf(InvalidDimension, format, args...)
}

// IndexOutOfRangef builds an IndexOutOfRange error.
func IndexOutOfRangef(format string, args ...interface{}) error {
	return newf(IndexOutOfRange, format, args...)
}

// Is reports whether err is a *Error of the given Kind, unwrapping
// github.com/pkg/errors-style wrapped errors along the way.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}
