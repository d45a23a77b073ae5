// Package apperrors classifies failures from the remote translation endpoint
// so callers can tell transient network trouble from requests that will never
// succeed.
package apperrors

import (
	"errors"
	"strings"
)

type Kind string

const (
	// KindTransport covers network and TLS failures before a response arrived.
	KindTransport Kind = "transport"
	// KindRateLimit marks HTTP 429 and similar throttling responses.
	KindRateLimit Kind = "rate_limit"
	// KindBadRequest marks responses the endpoint rejected outright.
	KindBadRequest Kind = "bad_request"
	// KindParse marks response bodies the scraper could not make sense of.
	KindParse Kind = "parse"
)

type Error struct {
	Kind Kind
	// SafeMessage is intended for user-facing output and logs.
	SafeMessage string
	// Cause keeps the original internal error for troubleshooting.
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if msg := strings.TrimSpace(e.SafeMessage); msg != "" {
		return msg
	}
	if e.Cause != nil {
		return e.Cause.Error()
	}
	return "unknown error"
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Cause
}

func defaultSafeMessage(kind Kind) string {
	switch kind {
	case KindTransport:
		return "Could not reach the translation endpoint."
	case KindRateLimit:
		return "Translation endpoint is throttling requests. Please try again later."
	case KindBadRequest:
		return "Request rejected by the translation endpoint."
	case KindParse:
		return "Could not parse the translation response."
	default:
		return "Request failed."
	}
}

func New(kind Kind, safeMessage string, cause error) error {
	msg := strings.TrimSpace(safeMessage)
	if msg == "" {
		msg = defaultSafeMessage(kind)
	}
	return &Error{
		Kind:        kind,
		SafeMessage: msg,
		Cause:       cause,
	}
}

func Transport(err error) error {
	return New(KindTransport, "", err)
}

func RateLimit(err error) error {
	return New(KindRateLimit, "", err)
}

func BadRequest(err error) error {
	return New(KindBadRequest, "", err)
}

func Parse(err error) error {
	return New(KindParse, "", err)
}

func KindOf(err error) (Kind, bool) {
	var e *Error
	if !errors.As(err, &e) {
		return "", false
	}
	return e.Kind, true
}

func PublicMessage(err error) string {
	if err == nil {
		return ""
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Error()
	}
	return err.Error()
}

// IsRetryable reports whether a request with the same payload could
// plausibly succeed on a later attempt.
func IsRetryable(err error) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == KindTransport || e.Kind == KindRateLimit
}
