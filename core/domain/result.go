// ABOUTME: Result is the success-or-error value returned by catalog operations
// ABOUTME: Failures travel as data so callers decide how to degrade

package domain

import (
	apperrors "recipe-finder-api/core/errors"
)

// Result carries either Data (OK true) or Err (OK false)
type Result[T any] struct {
	OK   bool
	Data T
	Err  *apperrors.UpstreamError
}

// Ok wraps a successful value
func Ok[T any](data T) Result[T] {
	return Result[T]{OK: true, Data: data}
}

// Fail wraps an error
func Fail[T any](err *apperrors.UpstreamError) Result[T] {
	if err == nil {
		err = apperrors.Network(nil)
	}
	return Result[T]{Err: err}
}

// Aborted reports whether the call was canceled by its caller
func (r Result[T]) Aborted() bool {
	return !r.OK && r.Err != nil && r.Err.Code == apperrors.CodeAborted
}

// Error returns the failure as an error, or nil on success
func (r Result[T]) Error() error {
	if r.OK {
		return nil
	}
	if r.Err == nil {
		return apperrors.Network(nil)
	}
	return r.Err
}
