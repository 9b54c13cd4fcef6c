// Copyright ClearInsights and each contributor to zoomreport.
// SPDX-License-Identifier: MIT

package zoomapi

import (
	"errors"
	"fmt"
)

// ErrorType represents the semantic category of an error
type ErrorType int

const (
	ErrorTypeConfiguration ErrorType = iota // Invalid operation name or caller-supplied parameter; never retried
	ErrorTypeAuth                           // Credential exchange rejected by the vendor
	ErrorTypeUpstream                       // Resource fetch returned a non-success, non-transient status
)

// Error represents a Zoom API client error with semantic type information
type Error struct {
	Type       ErrorType
	StatusCode int // vendor HTTP status when known, 0 otherwise
	Message    string
	Err        error // underlying error for wrapping
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// GetErrorType returns the semantic type of an error
func GetErrorType(err error) ErrorType {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Type
	}
	return ErrorTypeUpstream // default fallback
}

// Error constructors for different types
func NewConfigurationError(message string, err ...error) *Error {
	return &Error{Type: ErrorTypeConfiguration, Message: message, Err: errors.Join(err...)}
}

func NewAuthError(statusCode int, message string, err ...error) *Error {
	return &Error{Type: ErrorTypeAuth, StatusCode: statusCode, Message: message, Err: errors.Join(err...)}
}

func NewUpstreamError(statusCode int, message string, err ...error) *Error {
	return &Error{Type: ErrorTypeUpstream, StatusCode: statusCode, Message: message, Err: errors.Join(err...)}
}

// knownStatusCauses maps vendor HTTP status codes seen on report endpoints to
// human-readable causes.
var knownStatusCauses = map[int]string{
	300: "invalid resource identifier",
	400: "bad request - a query or path parameter is malformed",
	401: "access token is invalid, expired, or missing a required scope",
	403: "forbidden - the account plan does not include this report",
	404: "resource not found - check the webinar or meeting ID",
	429: "rate limit exceeded",
}

// statusCause returns the known cause text for a vendor status code, or a
// generic diagnostic including the raw status and body.
func statusCause(statusCode int, body []byte) string {
	if cause, ok := knownStatusCauses[statusCode]; ok {
		return cause
	}
	return fmt.Sprintf("unexpected status %d (%s) - please open an issue at github.com/clearinsights/zoomreport with this message", statusCode, string(body))
}
