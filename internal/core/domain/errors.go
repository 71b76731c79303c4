// internal/core/domain/errors.go
package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorKind classifies store failures
type ErrorKind string

// Error kinds
const (
	KindValidation ErrorKind = "validation"
	KindParse      ErrorKind = "parse"
	KindIO         ErrorKind = "io"
	KindNotFound   ErrorKind = "not_found"
)

// Sentinels matched by errors.Is against an *Error of the same kind
var (
	ErrValidation = errors.New("validation error")
	ErrParse      = errors.New("parse error")
	ErrIO         = errors.New("io error")
	ErrNotFound   = errors.New("not found")
)

var kindSentinels = map[ErrorKind]error{
	KindValidation: ErrValidation,
	KindParse:      ErrParse,
	KindIO:         ErrIO,
	KindNotFound:   ErrNotFound,
}

// Error describes a failed store operation
type Error struct {
	Kind ErrorKind
	Op   string
	Item string
	Path string
	Err  error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Op)
	b.WriteString(": ")
	b.WriteString(string(e.Kind))
	if e.Item != "" {
		fmt.Fprintf(&b, " item %q", e.Item)
	}
	if e.Path != "" {
		fmt.Fprintf(&b, " path %s", e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind
func (e *Error) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]
	return ok && target == sentinel
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// NewValidationError creates a validation failure for an item
func NewValidationError(op, item string, err error) *Error {
	return &Error{Kind: KindValidation, Op: op, Item: item, Err: err}
}

// NewParseError creates a parse failure for a persisted resource
func NewParseError(op, path string, err error) *Error {
	return &Error{Kind: KindParse, Op: op, Path: path, Err: err}
}

// NewIOError creates a read or write failure for a persisted resource
func NewIOError(op, path string, err error) *Error {
	return &Error{Kind: KindIO, Op: op, Path: path, Err: err}
}

// NewNotFoundError creates a soft not-found failure
func NewNotFoundError(op, path string, err error) *Error {
	return &Error{Kind: KindNotFound, Op: op, Path: path, Err: err}
}
