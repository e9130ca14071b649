package models

import "fmt"

// ValidationError reports bad or missing caller input, detected before any
// network call is made.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// AuthConfigurationError reports a misconfigured credential scheme.
type AuthConfigurationError struct {
	Scheme string
	Reason string
}

func (e *AuthConfigurationError) Error() string {
	return fmt.Sprintf("auth configuration (%s): %s", e.Scheme, e.Reason)
}

// AuthUpstreamError reports a failed OAuth token acquisition.
type AuthUpstreamError struct {
	Err error
}

func (e *AuthUpstreamError) Error() string {
	return fmt.Sprintf("token acquisition failed: %v", e.Err)
}

func (e *AuthUpstreamError) Unwrap() error {
	return e.Err
}

// UpstreamRequestError reports a failed Table API request: transport error,
// timeout, non-2xx status or a malformed response body.
type UpstreamRequestError struct {
	Table  string
	Status int
	Err    error
}

func (e *UpstreamRequestError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("table %s request returned HTTP %d", e.Table, e.Status)
	}
	return fmt.Sprintf("table %s request failed: %v", e.Table, e.Err)
}

func (e *UpstreamRequestError) Unwrap() error {
	return e.Err
}
