// ABOUTME: Error taxonomy for upstream catalog calls and request validation
// ABOUTME: Provides coded errors that travel inside Result values instead of panics

package errors

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Error codes carried by UpstreamError
const (
	// CodeNetwork marks a transport or payload decoding failure
	CodeNetwork = "NETWORK_ERROR"

	// CodeAborted marks a call canceled by its caller; never shown to users
	CodeAborted = "ABORTED"

	// codeHTTPPrefix prefixes non-2xx statuses, e.g. HTTP_404
	codeHTTPPrefix = "HTTP_"
)

// DefaultNetworkMessage is used when a transport failure carries no message
const DefaultNetworkMessage = "Network error occurred"

// UpstreamError is the error half of a Result
type UpstreamError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *UpstreamError) Error() string {
	return e.Message
}

// HTTPStatus builds the error for a non-success upstream status
func HTTPStatus(status int) *UpstreamError {
	return &UpstreamError{
		Code:    fmt.Sprintf("%s%d", codeHTTPPrefix, status),
		Message: fmt.Sprintf("Request failed with status %d", status),
	}
}

// Aborted builds the error reported for a canceled call
func Aborted() *UpstreamError {
	return &UpstreamError{Code: CodeAborted, Message: "Request was aborted"}
}

// Network wraps a transport failure. Cancellation is detected and reported as Aborted.
func Network(err error) *UpstreamError {
	if err == nil {
		return &UpstreamError{Code: CodeNetwork, Message: DefaultNetworkMessage}
	}
	if errors.Is(err, context.Canceled) {
		return Aborted()
	}
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream
	}
	msg := strings.TrimSpace(err.Error())
	if msg == "" {
		msg = DefaultNetworkMessage
	}
	return &UpstreamError{Code: CodeNetwork, Message: msg}
}

// StatusCode extracts the HTTP status from an HTTP_<status> code, or 0
func (e *UpstreamError) StatusCode() int {
	if e == nil || !strings.HasPrefix(e.Code, codeHTTPPrefix) {
		return 0
	}
	var status int
	if _, err := fmt.Sscanf(e.Code[len(codeHTTPPrefix):], "%d", &status); err != nil {
		return 0
	}
	return status
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Message
}

// IsAborted checks if an error is a canceled upstream call
func IsAborted(err error) bool {
	var upstream *UpstreamError
	if errors.As(err, &upstream) {
		return upstream.Code == CodeAborted
	}
	return errors.Is(err, context.Canceled)
}

// IsNotFound checks if the upstream answered 404
func IsNotFound(err error) bool {
	var upstream *UpstreamError
	return errors.As(err, &upstream) && upstream.StatusCode() == 404
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
