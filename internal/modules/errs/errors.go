package errs

import (
	"errors"
	"fmt"
)

// Kind classifies pipeline failures for targeted handling by callers.
type Kind string

const (
	KindValidationFailed  Kind = "validation_failed"
	KindCompressionFailed Kind = "compression_failed"
	KindRatioRejected     Kind = "ratio_rejected"
	KindPartialWrite      Kind = "partial_write_failure"
	KindUnexpected        Kind = "unexpected"
)

// ProcessingError is the structured error type used throughout the pipeline.
// Message is user-displayable; Context carries diagnostics (filename, size,
// level, MIME) without leaking the underlying error type to callers.
type ProcessingError struct {
	Kind    Kind
	Message string
	Context map[string]any
	Err     error
}

func (e *ProcessingError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *ProcessingError) Unwrap() error { return e.Err }

// UserMessage is the displayable text, without the kind prefix or the
// wrapped error chain.
func (e *ProcessingError) UserMessage() string {
	return e.Message
}

func New(kind Kind, message string) *ProcessingError {
	return &ProcessingError{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *ProcessingError {
	return &ProcessingError{Kind: kind, Message: message, Err: err}
}

// With attaches a context value and returns the error for chaining.
func (e *ProcessingError) With(key string, value any) *ProcessingError {
	if e.Context == nil {
		e.Context = make(map[string]any)
	}
	e.Context[key] = value
	return e
}

// IsKind reports whether err is a ProcessingError of the given kind.
func IsKind(err error, kind Kind) bool {
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe.Kind == kind
	}
	return false
}

// Normalize returns err as a ProcessingError, wrapping anything else as
// KindUnexpected with the original message text preserved.
func Normalize(err error) *ProcessingError {
	if err == nil {
		return nil
	}
	var pe *ProcessingError
	if errors.As(err, &pe) {
		return pe
	}
	return Wrap(KindUnexpected, fmt.Sprintf("unexpected error: %s", err.Error()), err)
}

// Validation sub-reasons, wrapped under KindValidationFailed.
var (
	ErrFileTooLarge      = errors.New("file too large")
	ErrUndecodableImage  = errors.New("undecodable image")
	ErrUnsupportedFormat = errors.New("unsupported format")
)
