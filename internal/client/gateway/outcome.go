package gateway

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
)

// ErrUnauthorized matches every failure of kind KindUnauthorized.
var ErrUnauthorized = errors.New("unauthorized")

// Kind tags the outcome of a request.
type Kind int

const (
	KindOK Kind = iota
	KindUnauthorized
	KindRequestFailed
)

func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindUnauthorized:
		return "unauthorized"
	case KindRequestFailed:
		return "request_failed"
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Failure is the error returned for every non-OK outcome.
type Failure struct {
	Kind Kind
	// StatusCode is the HTTP status, or 0 when no response was received.
	StatusCode int
	// Payload is set when the response body carried the normalized error
	// shape.
	Payload *models.ErrorResponse
	// Err is the underlying transport, status or body error, if any.
	Err error
}

func (f *Failure) Error() string {
	switch {
	case f.Payload != nil:
		return fmt.Sprintf("%s: %s (status %d)", f.Kind, f.Payload.Message, f.Payload.StatusCode)
	case f.Err != nil:
		return fmt.Sprintf("%s: %v", f.Kind, f.Err)
	case f.StatusCode != 0:
		return fmt.Sprintf("%s: %s", f.Kind, http.StatusText(f.StatusCode))
	}
	return f.Kind.String()
}

func (f *Failure) Unwrap() error {
	return f.Err
}

// Is reports whether target is ErrUnauthorized and f is an authorization
// failure.
func (f *Failure) Is(target error) bool {
	return target == ErrUnauthorized && f.Kind == KindUnauthorized
}

// KindOf classifies err. A nil error is KindOK; errors that are not a
// *Failure are KindRequestFailed.
func KindOf(err error) Kind {
	if err == nil {
		return KindOK
	}
	var f *Failure
	if errors.As(err, &f) {
		return f.Kind
	}
	return KindRequestFailed
}

// PayloadOf returns the normalized error payload carried by err, if any.
func PayloadOf(err error) (*models.ErrorResponse, bool) {
	var f *Failure
	if errors.As(err, &f) && f.Payload != nil {
		return f.Payload, true
	}
	return nil, false
}
