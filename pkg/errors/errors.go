package errors

import (
	stderrors "errors"
	"fmt"
)

// ErrorType represents different types of errors that can occur
type ErrorType string

const (
	// ErrorTypeNavigation covers failures to load a page or pages that do
	// not have the structure of a Flickr album or photo page
	ErrorTypeNavigation ErrorType = "navigation"

	// ErrorTypeExtraction covers a loaded photo page whose embed affordance
	// cannot be found, activated, or read
	ErrorTypeExtraction ErrorType = "extraction"

	// ErrorTypeIO covers output file write failures
	ErrorTypeIO ErrorType = "io"

	// ErrorTypeTimeout covers page-load and element waits that exceeded
	// their deadline
	ErrorTypeTimeout ErrorType = "timeout"

	ErrorTypeUnknown ErrorType = "unknown"
)

// Error represents an extraction pipeline error with type information
// and the URL that was being processed when it occurred.
type Error struct {
	Type    ErrorType
	Message string
	URL     string
	Cause   error
}

func (e *Error) Error() string {
	if e.URL != "" {
		return fmt.Sprintf("%s error at %s: %s", e.Type, e.URL, e.Message)
	}
	return fmt.Sprintf("%s error: %s", e.Type, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// NewNavigation creates a navigation error for the given URL
func NewNavigation(url, message string, cause error) *Error {
	return &Error{Type: ErrorTypeNavigation, Message: message, URL: url, Cause: cause}
}

// NewExtraction creates an extraction error for the given photo page URL
func NewExtraction(url, message string, cause error) *Error {
	return &Error{Type: ErrorTypeExtraction, Message: message, URL: url, Cause: cause}
}

// NewIO creates an output error for the given file path
func NewIO(path, message string, cause error) *Error {
	return &Error{Type: ErrorTypeIO, Message: message, URL: path, Cause: cause}
}

// NewTimeout creates a timeout error for the given URL
func NewTimeout(url, message string, cause error) *Error {
	return &Error{Type: ErrorTypeTimeout, Message: message, URL: url, Cause: cause}
}

// typeOf returns the ErrorType of err, or ErrorTypeUnknown when err is not
// an *Error anywhere in its chain.
func typeOf(err error) ErrorType {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Type
	}
	return ErrorTypeUnknown
}

// IsNavigation reports whether err is a navigation error
func IsNavigation(err error) bool {
	return typeOf(err) == ErrorTypeNavigation
}

// IsExtraction reports whether err is an extraction error
func IsExtraction(err error) bool {
	return typeOf(err) == ErrorTypeExtraction
}

// IsIO reports whether err is an output write error
func IsIO(err error) bool {
	return typeOf(err) == ErrorTypeIO
}

// IsTimeout reports whether err is a deadline error
func IsTimeout(err error) bool {
	return typeOf(err) == ErrorTypeTimeout
}
