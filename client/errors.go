package client

import (
	"errors"
	"fmt"
)

// ErrUnauthenticated reports a missing app token or user id. It is raised
// before any network call is issued.
var ErrUnauthenticated = errors.New("app token and user id required")

// ErrAPIStatus reports a non-success HTTP status from the vendor API.
var ErrAPIStatus = errors.New("unexpected API status")

// ErrAPICode reports a success HTTP status whose JSON body carries a
// vendor-level error code.
var ErrAPICode = errors.New("API error code")

// APIStatusError carries diagnostics while satisfying errors.Is(_, ErrAPIStatus).
type APIStatusError struct {
	Label      string // which fetch failed, e.g. "stress" or "band data"
	StatusCode int
	Body       string
}

func (e *APIStatusError) Error() string {
	return fmt.Sprintf("failed to get %s data: %d - %s", e.Label, e.StatusCode, e.Body)
}

func (e *APIStatusError) Is(target error) bool { return target == ErrAPIStatus }

// APICodeError carries the vendor's in-band error code and message.
type APICodeError struct {
	Label   string
	Code    int
	Message string
}

func (e *APICodeError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "Unknown error"
	}
	return fmt.Sprintf("%s: API error: %s", e.Label, msg)
}

func (e *APICodeError) Is(target error) bool { return target == ErrAPICode }
