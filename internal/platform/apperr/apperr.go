// Copyright (c) 2026 Kiji. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package apperr defines the centralized error handling framework for Kiji.

It provides a rich error type that bridges the gap between raw HTTP failures
and the local failure policy of the session and list stores.

Architecture:

  - AppError: A struct containing machine-readable ErrorCode and user-friendly messages.
  - Taxonomy: Network / Server / SessionExpired / Validation, classified by the transport.
  - Details: Explicitly decoded field-level validation errors (no duck typing).

Every error that leaves the transport layer is an [AppError] so stores can
apply their local policy without inspecting HTTP internals.
*/
package apperr

import (
	"errors"
	"net/http"
)

// AppError is the canonical error type for the Kiji client.
//
// It carries the HTTP status of the failed call (zero for network failures),
// a machine-readable code, a human-readable message suitable for direct
// display, and an optional slice of field-level validation errors.
type AppError struct {
	// Code is a machine-readable error identifier (e.g. "SESSION_EXPIRED").
	Code string `json:"code"`
	// Message is a human-readable description safe to show to the user.
	Message string `json:"error"`
	// HTTPStatus is the response status of the failed call, or 0 if no
	// response was received.
	HTTPStatus int `json:"-"`
	// Cause is the underlying error, used for logging only.
	Cause error `json:"-"`
	// Details holds per-field validation errors for VALIDATION_FAILURE responses.
	Details []FieldError `json:"details,omitempty"`
}

// FieldError represents a single field-level validation failure.
type FieldError struct {
	// Field is the JSON field name that failed validation.
	Field string `json:"field"`
	// Message is the human-readable description of the failure.
	Message string `json:"message"`
}

// Error implements the error interface. It returns the displayable message.
func (e *AppError) Error() string { return e.Message }

// Unwrap allows [errors.Is] and [errors.As] to traverse the cause chain.
func (e *AppError) Unwrap() error { return e.Cause }

// # Taxonomy Constructors

// Network creates an [AppError] for a call that produced no response at all
// (connection refused, DNS failure, timeout abort).
func Network(cause error) *AppError {
	return &AppError{
		Code:       "NETWORK_FAILURE",
		Message:    "Request failed",
		HTTPStatus: 0,
		Cause:      cause,
	}
}

// SessionExpiredMessage is the generic re-login prompt shown when a 401
// carries no server detail.
const SessionExpiredMessage = "Session expired. Please login again."

// SessionExpired creates a 401 [AppError]. The server's decoded detail
// becomes the displayable message when present (a credentials endpoint
// answers 401 with its own bad-credentials text); the generic prompt is the
// fallback only. The transport clears the durable token slot before raising it.
func SessionExpired(detail string) *AppError {
	message := SessionExpiredMessage
	if detail != "" {
		message = detail
	}
	return &AppError{
		Code:       "SESSION_EXPIRED",
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// Validation creates an [AppError] for a structured-detail failure
// (typically 422) with optional per-field details.
func Validation(status int, msg string, details ...FieldError) *AppError {
	return &AppError{
		Code:       "VALIDATION_FAILURE",
		Message:    msg,
		HTTPStatus: status,
		Details:    details,
	}
}

// Server creates an [AppError] for any other non-2xx response carrying a body.
func Server(status int, msg string) *AppError {
	return &AppError{
		Code:       "SERVER_ERROR",
		Message:    msg,
		HTTPStatus: status,
	}
}

// Decode creates an [AppError] for a 2xx response whose payload could not be
// decoded into the expected shape.
func Decode(cause error) *AppError {
	return &AppError{
		Code:    "DECODE_FAILURE",
		Message: "Malformed server response",
		Cause:   cause,
	}
}

// # Helpers

// IsAppError reports whether err (or any error in its chain) is an [*AppError].
func IsAppError(err error) bool {
	var ae *AppError
	return errors.As(err, &ae)
}

// As extracts the [*AppError] from err's chain. It returns nil if not found.
func As(err error) *AppError {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return nil
}

// IsSessionExpired reports whether err represents an invalidated session.
func IsSessionExpired(err error) bool {
	ae := As(err)
	return ae != nil && ae.Code == "SESSION_EXPIRED"
}
