// Package errors carries the coded failures of the artwork composer.
//
// Every error raised by the library is an [*Error] with a [Code]. The CLI
// prints "CODE: message"; the HTTP server sends the code in the body and
// picks the status from [IsValidation]. Nothing is retried or downgraded
// to a warning.
//
//	err := errors.New(errors.ErrCodeUnsupportedFormat, "unknown export type %q", typ)
//	if errors.Is(err, errors.ErrCodeUnsupportedFormat) {
//	    ...
//	}
//	return errors.Wrap(errors.ErrCodeCompilation, cause, "compile %s", name)
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure class. Codes are stable across releases.
type Code string

const (
	// Composition errors
	ErrCodeCompilation       Code = "COMPILATION_FAILED"
	ErrCodeUnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	ErrCodeEmptyWorkspace    Code = "EMPTY_WORKSPACE"
	ErrCodeEmptyScene        Code = "EMPTY_SCENE"
	ErrCodeConfigCount       Code = "CONFIG_COUNT"
	ErrCodeDocumentDerived   Code = "DOCUMENT_DERIVED_EXPORT"
	ErrCodeContextAcquire    Code = "CONTEXT_ACQUISITION"

	// Registry and element errors
	ErrCodeDuplicateMethod Code = "DUPLICATE_METHOD"
	ErrCodeUnknownMethod   Code = "UNKNOWN_METHOD"
	ErrCodeInvalidProps    Code = "INVALID_PROPS"
	ErrCodeForeignElement  Code = "FOREIGN_ELEMENT"

	// Input validation errors
	ErrCodeInvalidInput Code = "INVALID_INPUT"
	ErrCodeInvalidPath  Code = "INVALID_PATH"

	// Collaborator errors
	ErrCodeDocument Code = "DOCUMENT"
	ErrCodeRaster   Code = "RASTER"

	// Internal errors
	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded failure with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// New returns an error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap returns an error that unwraps to cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns err's text without the code prefix.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return fmt.Sprintf("%s: %v", e.Message, e.Cause)
		}
		return e.Message
	}
	return err.Error()
}

// validation marks the codes raised for caller mistakes. The rest report
// collaborator or internal failures.
var validation = map[Code]bool{
	ErrCodeCompilation:       true,
	ErrCodeUnsupportedFormat: true,
	ErrCodeEmptyWorkspace:    true,
	ErrCodeEmptyScene:        true,
	ErrCodeConfigCount:       true,
	ErrCodeDocumentDerived:   true,
	ErrCodeContextAcquire:    false,
	ErrCodeDuplicateMethod:   true,
	ErrCodeUnknownMethod:     true,
	ErrCodeInvalidProps:      true,
	ErrCodeForeignElement:    true,
	ErrCodeInvalidInput:      true,
	ErrCodeInvalidPath:       true,
	ErrCodeDocument:          false,
	ErrCodeRaster:            false,
	ErrCodeInternal:          false,
	ErrCodeUnsupported:       false,
}

// Codes returns every defined code.
func Codes() []Code {
	out := make([]Code, 0, len(validation))
	for c := range validation {
		out = append(out, c)
	}
	return out
}

// IsValidation reports whether err carries a caller-mistake code.
func IsValidation(err error) bool {
	return validation[GetCode(err)]
}
