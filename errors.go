package diffinsight

import (
	"context"
	"errors"
	"fmt"
)

// Session errors.
var (
	// ErrEmptyInput is returned when analysis is requested for a blank buffer.
	ErrEmptyInput = errors.New("empty input: enter a code diff to analyze")

	// ErrBusy is returned when analysis is requested while one is outstanding.
	ErrBusy = errors.New("analysis already running")

	// ErrSessionClosed is returned when analysis is requested after teardown.
	ErrSessionClosed = errors.New("session closed")

	// ErrMalformedResponse is wrapped by analyzers whose service returned a
	// payload that does not match the expected shape.
	ErrMalformedResponse = errors.New("malformed analysis response")
)

// ErrorKind identifies why an analysis call failed.
type ErrorKind string

// Analysis failure kinds.
const (
	KindService           ErrorKind = "service"
	KindTimeout           ErrorKind = "timeout"
	KindCanceled          ErrorKind = "canceled"
	KindMalformedResponse ErrorKind = "malformed_response"
)

// AnalysisError describes a failed analysis call.
type AnalysisError struct {
	Kind ErrorKind
	Err  error
}

// Error implements the error interface.
func (e *AnalysisError) Error() string {
	switch e.Kind {
	case KindTimeout:
		return fmt.Sprintf("analysis timed out: %v", e.Err)
	case KindCanceled:
		return "analysis canceled"
	case KindMalformedResponse:
		return fmt.Sprintf("analysis returned a malformed response: %v", e.Err)
	default:
		return fmt.Sprintf("analysis service error: %v", e.Err)
	}
}

// Unwrap returns the underlying error.
func (e *AnalysisError) Unwrap() error {
	return e.Err
}

// NewAnalysisError classifies err into an AnalysisError. An error that already
// is an AnalysisError is returned unchanged.
func NewAnalysisError(err error) *AnalysisError {
	var ae *AnalysisError
	if errors.As(err, &ae) {
		return ae
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &AnalysisError{Kind: KindTimeout, Err: err}
	case errors.Is(err, context.Canceled):
		return &AnalysisError{Kind: KindCanceled, Err: err}
	case errors.Is(err, ErrMalformedResponse):
		return &AnalysisError{Kind: KindMalformedResponse, Err: err}
	default:
		return &AnalysisError{Kind: KindService, Err: err}
	}
}
