package offset

import (
	"errors"
	"fmt"
)

// Error kinds. An invocation fails with an *OperationError that unwraps to
// exactly one of these.
var (
	// ErrNoElements is returned when there is nothing to offset.
	// It raises no alert.
	ErrNoElements = errors.New("offset: no elements to offset")

	// ErrUnsupportedElement is returned when an element has no outline
	// that can be offset, such as a raster image.
	ErrUnsupportedElement = errors.New("offset: unsupported element")

	// ErrProcessingFailed is returned when extraction, submission or the
	// offset computation fails, or when geometry is degenerate.
	ErrProcessingFailed = errors.New("offset: processing failed")

	// ErrUnionFailed is returned when merging the results or building the
	// path data yields nothing usable.
	ErrUnionFailed = errors.New("offset: union failed")
)

// ErrInvalidRequest is returned for malformed requests before any stage runs.
var ErrInvalidRequest = errors.New("offset: invalid request")

// ErrMissingDependency is returned by New when a required collaborator is nil.
var ErrMissingDependency = errors.New("offset: missing dependency")

var (
	errDegenerate  = errors.New("all subpaths are degenerate")
	errEmptyResult = errors.New("empty result")
	errNoConverter = errors.New("no text converter configured")
)

// OperationError describes a failed invocation.
type OperationError struct {
	Kind      error  // one of the error kind sentinels
	ElementID string // element that caused the failure, if any
	Err       error  // underlying cause, may be nil
}

func (e *OperationError) Error() string {
	msg := e.Kind.Error()
	if e.ElementID != "" {
		msg += fmt.Sprintf(": element %q", e.ElementID)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns both the kind and the cause, so errors.Is matches either.
func (e *OperationError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func opError(kind error, id string, err error) *OperationError {
	return &OperationError{Kind: kind, ElementID: id, Err: err}
}

// alertMessage returns the user-facing message for a failed invocation,
// or "" when none is shown.
func alertMessage(err error) string {
	switch {
	case errors.Is(err, ErrNoElements):
		return ""
	case errors.Is(err, ErrUnsupportedElement):
		return "Offset is not supported for one or more of the selected elements."
	default:
		return "Failed to offset the selected elements."
	}
}
