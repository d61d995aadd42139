package domain

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrAllocation is returned when the response buffer cannot grow to hold
	// the next chunk of the body.
	ErrAllocation = errors.New("response buffer allocation failed")

	// ErrEmptyResponse is returned when the request completed but the body
	// carried no bytes.
	ErrEmptyResponse = errors.New("empty response")

	// ErrURLTooLong is returned when the formatted request URL exceeds the
	// length bound.
	ErrURLTooLong = errors.New("request url too long")
)

// TransportError reports an HTTP request that did not complete with 200 OK.
// StatusCode is zero when no response was received at all.
type TransportError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("foursquare API error: status %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("venue search request: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ParseError reports a body that is not valid JSON. Line and Column are 1-based.
type ParseError struct {
	Line    int
	Column  int
	Message string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("on line %d: %s", e.Line, e.Message)
}

// StructuralError reports valid JSON that does not have the venue-search shape.
type StructuralError struct {
	Message string
}

func (e *StructuralError) Error() string { return e.Message }

func structuralf(format string, args ...any) error {
	return &StructuralError{Message: fmt.Sprintf(format, args...)}
}

// Outcome labels used for metrics and logs.
const (
	OutcomeSuccess    = "success"
	OutcomeTransport  = "transport"
	OutcomeEmpty      = "empty"
	OutcomeParse      = "parse"
	OutcomeStructure  = "structure"
	OutcomeAllocation = "allocation"
	OutcomeURL        = "url"
	OutcomeCanceled   = "canceled"
	OutcomeUnknown    = "unknown"
)

// Outcome classifies a query error into one of the Outcome* labels.
func Outcome(err error) string {
	var (
		transportErr *TransportError
		parseErr     *ParseError
		structErr    *StructuralError
	)
	switch {
	case err == nil:
		return OutcomeSuccess
	case errors.Is(err, context.Canceled):
		return OutcomeCanceled
	case errors.Is(err, ErrAllocation):
		return OutcomeAllocation
	case errors.Is(err, ErrEmptyResponse):
		return OutcomeEmpty
	case errors.Is(err, ErrURLTooLong):
		return OutcomeURL
	case errors.As(err, &transportErr):
		return OutcomeTransport
	case errors.As(err, &parseErr):
		return OutcomeParse
	case errors.As(err, &structErr):
		return OutcomeStructure
	default:
		return OutcomeUnknown
	}
}
