package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind identifies which pipeline stage an error belongs to.
type Kind int

const (
	KindUnknown Kind = iota
	KindValidation
	KindClassification
	KindRetrieval
	KindExtraction
	KindSynthesis
)

// String returns the kind name used in logs and responses.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindClassification:
		return "classification"
	case KindRetrieval:
		return "retrieval"
	case KindExtraction:
		return "extraction"
	case KindSynthesis:
		return "synthesis"
	default:
		return "unknown"
	}
}

// HTTPStatus maps a kind to the status returned at the API boundary.
// Only validation is a hard rejection; every other kind still yields
// a degraded answer and never reaches the HTTP error path directly.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// AppError is a structured error carrying the pipeline stage it came from.
type AppError struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the given kind.
func New(kind Kind, message string) *AppError {
	return &AppError{Kind: kind, Message: message}
}

// Wrap attaches a kind to an existing error. A nil error stays nil;
// an error that already carries a kind keeps it.
func Wrap(err error, kind Kind, message string) *AppError {
	if err == nil {
		return nil
	}
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return &AppError{Kind: kind, Message: message, Err: err}
}

// Wrapf wraps an error with a formatted message.
func Wrapf(err error, kind Kind, format string, args ...interface{}) *AppError {
	return Wrap(err, kind, fmt.Sprintf(format, args...))
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}

// ExtractKind returns the kind carried by err, or KindUnknown.
func ExtractKind(err error) Kind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
