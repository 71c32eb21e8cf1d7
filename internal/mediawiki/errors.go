package mediawiki

import (
	"errors"
	"fmt"
)

// ErrHasBacklinks is returned by Delete when the page still has incoming
// links. No request is sent in that case.
var ErrHasBacklinks = errors.New("page has backlinks")

// AuthError reports a rejected login. Reason carries the server-provided
// failure reason verbatim. It is never retried automatically.
type AuthError struct {
	Reason string
}

func (e *AuthError) Error() string {
	return "login failed: " + e.Reason
}

// TransportError reports a network-level failure reaching the API.
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: transport: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// ProtocolError reports a response whose shape does not match the API
// contract (missing keys, undecodable JSON). It is fatal to the current
// operation; accumulated partial results are discarded.
type ProtocolError struct {
	Op     string
	Detail string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("%s: unexpected response: %s", e.Op, e.Detail)
}

// PermissionError reports a mutation denied by the server for lack of
// rights. Info is the server's message verbatim.
type PermissionError struct {
	Info string
}

func (e *PermissionError) Error() string {
	return "permission denied: " + e.Info
}

// RateLimitError reports that the server rate-limited a request twice in
// a row; the single delayed retry already happened.
type RateLimitError struct {
	Op string
}

func (e *RateLimitError) Error() string {
	return e.Op + ": rate limited after retry"
}

// ValidationError reports an invalid call by the caller (missing page
// identity, oversized batch). These are programming errors and are never
// retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

// apiError is the error object MediaWiki embeds in a JSON response.
type apiError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *apiError) Error() string {
	return fmt.Sprintf("api error %s: %s", e.Code, e.Info)
}
