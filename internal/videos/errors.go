package videos

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrConnection indicates the provider could not be reached.
	ErrConnection = errors.New("provider connection failed")
	// ErrTimeout indicates the provider did not answer in time.
	ErrTimeout = errors.New("provider timeout")
	// ErrMalformedResponse indicates the provider answered with an unparseable payload.
	ErrMalformedResponse = errors.New("malformed provider response")
	// ErrNotFound indicates the provider has no video with the requested id.
	ErrNotFound = errors.New("video not found")
	// ErrProviderUnavailable indicates no provider client is configured.
	ErrProviderUnavailable = errors.New("video provider unavailable")
)

const notFoundMessage = "Video not found"

// ErrorMessage converts a pipeline failure into the message returned to
// callers. provider names the upstream in malformed-response messages.
func ErrorMessage(provider string, err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrTimeout), errors.Is(err, context.DeadlineExceeded):
		return "Timeout."
	case errors.Is(err, ErrConnection):
		return "Connection failed."
	case errors.Is(err, ErrMalformedResponse):
		return fmt.Sprintf("Invalid JSON response from %s.", provider)
	default:
		return "Unknown error: " + unwrapMessage(err)
	}
}

// detailErrorMessage is ErrorMessage plus the not-found case of FetchByID.
func detailErrorMessage(provider string, err error) string {
	if errors.Is(err, ErrNotFound) {
		return notFoundMessage
	}
	return ErrorMessage(provider, err)
}

// unwrapMessage strips the provider-call wrapping so the caller sees the
// upstream message rather than our call-site prefix.
func unwrapMessage(err error) string {
	var call *callError
	if errors.As(err, &call) && call.err != nil {
		return call.err.Error()
	}
	return err.Error()
}

// callError wraps a failure returned by the provider client with the
// operation that produced it, for logging.
type callError struct {
	op  string
	err error
}

func (e *callError) Error() string {
	return fmt.Sprintf("%s: %v", e.op, e.err)
}

func (e *callError) Unwrap() error {
	return e.err
}

// panicError carries a recovered panic value through the error path.
type panicError struct {
	value any
}

func (e *panicError) Error() string {
	return fmt.Sprint(e.value)
}
