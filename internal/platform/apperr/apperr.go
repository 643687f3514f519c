// Package apperr defines the error kinds the client distinguishes when a
// call against the remote API fails, and the conversion to the single
// user-facing message surfaced at the controller boundary.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindValidation is a locally detected input problem. It never reaches
	// the network.
	KindValidation Kind = iota
	// KindAuth is a missing or rejected credential.
	KindAuth
	// KindNetwork is a transport or server failure.
	KindNetwork
	// KindNotFound is a lookup for an id the server does not know.
	KindNotFound
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuth:
		return "auth"
	case KindNetwork:
		return "network"
	case KindNotFound:
		return "not_found"
	}
	return "unknown"
}

// Error carries a kind, a user-presentable message and an optional cause.
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

// Validation builds a KindValidation error.
func Validation(format string, args ...any) error {
	return &Error{Kind: KindValidation, Msg: fmt.Sprintf(format, args...)}
}

// Auth builds a KindAuth error.
func Auth(msg string, cause error) error {
	return &Error{Kind: KindAuth, Msg: msg, Err: cause}
}

// Network builds a KindNetwork error.
func Network(msg string, cause error) error {
	return &Error{Kind: KindNetwork, Msg: msg, Err: cause}
}

// NotFound builds a KindNotFound error.
func NotFound(msg string) error {
	return &Error{Kind: KindNotFound, Msg: msg}
}

// KindOf reports the kind of err, if it carries one.
func KindOf(err error) (Kind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// Is reports whether err carries the given kind.
func Is(err error, k Kind) bool {
	kind, ok := KindOf(err)
	return ok && kind == k
}

// Message converts any error into the string shown to the user. Errors
// without a kind get a generic message so internals never leak into the
// presentation layer.
func Message(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Msg
	}
	return "request failed"
}
