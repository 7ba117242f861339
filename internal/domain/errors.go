package domain

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedURL = errors.New("nyt: malformed request url")
	ErrRateLimited  = errors.New("nyt: rate limited")
)

// RateLimitMessage is what a view shows when the upstream answers 429.
const RateLimitMessage = "Rate limit reached - rerun app"

type TransportError struct {
	Err error
}

func (e *TransportError) Error() string { return "nyt: transport: " + e.Err.Error() }
func (e *TransportError) Unwrap() error { return e.Err }

type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("nyt: bad status %d", e.Code)
	}
	return fmt.Sprintf("nyt: bad status %d: %s", e.Code, e.Body)
}

type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string { return "nyt: decode: " + e.Err.Error() }
func (e *DecodeError) Unwrap() error { return e.Err }

// UserMessage turns any client error into the text shown to the user.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		te *TransportError
		se *StatusError
		de *DecodeError
	)
	switch {
	case errors.Is(err, ErrRateLimited):
		return RateLimitMessage
	case errors.Is(err, ErrMalformedURL):
		return "Could not build request"
	case errors.As(err, &te):
		return "Network unavailable - check your connection"
	case errors.As(err, &se):
		return fmt.Sprintf("Server error (%d)", se.Code)
	case errors.As(err, &de):
		return "Unexpected response from server"
	default:
		return err.Error()
	}
}
