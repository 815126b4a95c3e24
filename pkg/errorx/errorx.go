// Package errorx provides coded errors for uniform API error reporting.
//
// An error created by WithCode or WrapC carries an integer business code.
// Codes are registered once (usually from an init function of the handler
// package that owns them) together with an HTTP status and a user-facing
// message; ParseCoder recovers the registration from any wrapped error.
package errorx

import (
	"fmt"
	"sync"
)

// Coder describes a registered error code.
type Coder interface {
	// Code returns the integer business code.
	Code() int
	// HTTPStatus returns the HTTP status associated with the code.
	HTTPStatus() int
	// String returns the user-facing message for the code.
	String() string
	// Reference returns an optional documentation link.
	Reference() string
}

type defaultCoder struct {
	code int
	http int
	msg  string
	ref  string
}

func (c defaultCoder) Code() int         { return c.code }
func (c defaultCoder) HTTPStatus() int   { return c.http }
func (c defaultCoder) String() string    { return c.msg }
func (c defaultCoder) Reference() string { return c.ref }

// NewCoder creates a Coder with the given code, HTTP status and message.
func NewCoder(code, httpStatus int, msg string) Coder {
	return defaultCoder{code: code, http: httpStatus, msg: msg}
}

// unknownCoder is returned by ParseCoder for errors that carry no code.
var unknownCoder = defaultCoder{code: 1, http: 500, msg: "An internal server error occurred"}

var (
	codesMu sync.Mutex
	codes   = map[int]Coder{}
)

// Register registers a Coder, replacing any previous registration.
func Register(coder Coder) {
	if coder.Code() == unknownCoder.Code() {
		panic("code '1' is reserved as the unknown error code")
	}
	codesMu.Lock()
	defer codesMu.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister registers a Coder and panics if the code is already taken.
func MustRegister(coder Coder) {
	if coder.Code() == unknownCoder.Code() {
		panic("code '1' is reserved as the unknown error code")
	}
	codesMu.Lock()
	defer codesMu.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("code %d already registered", coder.Code()))
	}
	codes[coder.Code()] = coder
}

type withCode struct {
	msg   string
	code  int
	cause error
}

func (w *withCode) Error() string {
	if w.cause != nil {
		return w.msg + ": " + w.cause.Error()
	}
	return w.msg
}

func (w *withCode) Unwrap() error { return w.cause }

// WithCode creates a new coded error.
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		msg:  fmt.Sprintf(format, args...),
		code: code,
	}
}

// WrapC wraps an existing error with a code and an annotation message.
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{
		msg:   fmt.Sprintf(format, args...),
		code:  code,
		cause: err,
	}
}

// ParseCoder returns the Coder registered for err's code, walking the wrap
// chain for the outermost coded error. Uncoded errors map to the unknown
// coder (code 1, HTTP 500).
func ParseCoder(err error) Coder {
	for err != nil {
		if w, ok := err.(*withCode); ok {
			codesMu.Lock()
			coder, registered := codes[w.code]
			codesMu.Unlock()
			if registered {
				return coder
			}
			return unknownCoder
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return unknownCoder
}

// IsCode reports whether any error in err's chain carries the given code.
func IsCode(err error, code int) bool {
	for err != nil {
		if w, ok := err.(*withCode); ok && w.code == code {
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
