// ABOUTME: Error handling utilities for API handlers
// ABOUTME: Every error response, including huma's own, is rendered as {"error": message}

package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"recipe-finder-api/core/errors"
)

// UnknownErrorMessage is returned for failures with no safe message
const UnknownErrorMessage = "Unknown error"

// ErrorBody is the JSON shape of every error response
type ErrorBody struct {
	status  int
	Message string `json:"error" doc:"Human readable error message"`
}

// Error implements error
func (e *ErrorBody) Error() string {
	return e.Message
}

// GetStatus implements huma.StatusError
func (e *ErrorBody) GetStatus() int {
	return e.status
}

// NewErrorBody builds an error response with status and message
func NewErrorBody(status int, message string) *ErrorBody {
	return &ErrorBody{status: status, Message: message}
}

func init() {
	huma.NewError = func(status int, msg string, errs ...error) huma.StatusError {
		return NewErrorBody(status, msg)
	}
}

// toHumaError converts domain errors to HTTP errors
func toHumaError(err error) error {
	if err == nil {
		return nil
	}

	if errors.IsValidation(err) {
		return NewErrorBody(http.StatusBadRequest, err.Error())
	}

	if errors.IsNotFound(err) {
		return NewErrorBody(http.StatusNotFound, err.Error())
	}

	var upstream *errors.UpstreamError
	if stderrors.As(err, &upstream) && upstream.Message != "" {
		return NewErrorBody(http.StatusInternalServerError, upstream.Message)
	}

	return NewErrorBody(http.StatusInternalServerError, UnknownErrorMessage)
}
