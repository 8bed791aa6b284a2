// Copyright (c) 2024 Behnam Momeni
// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at https://mozilla.org/MPL/2.0/.

// Package cerr contains the core errors which may be returned by the
// use cases layer. Each Error carries a Kind which tells the caller
// how the failure may be recovered and the HTTP status code which is
// expected to be reported by the REST adapters. The wrapped error
// describes the failure itself and its message is the one which is
// shown to the end users.
package cerr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind enumerates the categories of the core errors.
type Kind int

// Supported error kinds. The zero value is reserved for errors which
// are not produced by this package.
const (
	KindUnknown Kind = iota

	// KindValidation indicates that an input failed a business rule.
	// Caller may retry after correcting the input.
	KindValidation

	// KindNotFound indicates that a referenced book, user, or loan does
	// not exist (or is already inactive when that matters).
	KindNotFound

	// KindConflict indicates that a uniqueness constraint would be
	// violated, e.g., a duplicate title, email, or ISBN.
	KindConflict

	// KindUnprocessableEntity indicates that the request is well-formed
	// and all referenced entities exist, but their current state
	// forbids the operation.
	KindUnprocessableEntity

	// KindAuthentication and KindAuthorization are kept for the boundary
	// layers which authenticate their clients.
	KindAuthentication
	KindAuthorization
)

// String returns the kind name, so it may be logged.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not-found"
	case KindConflict:
		return "conflict"
	case KindUnprocessableEntity:
		return "unprocessable-entity"
	case KindAuthentication:
		return "authentication"
	case KindAuthorization:
		return "authorization"
	default:
		return "unknown"
	}
}

// Error is the core error type. It wraps the Err error and keeps its
// Kind and the HTTPStatusCode which corresponds to that Kind.
type Error struct {
	Kind           Kind
	Err            error
	HTTPStatusCode int
}

func (e *Error) Unwrap() error {
	return e.Err
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%d] %s", e.HTTPStatusCode, e.Err.Error())
}

func newError(k Kind, code int, err error) *Error {
	return &Error{Kind: k, Err: err, HTTPStatusCode: code}
}

// BadRequest wraps err as a KindValidation error.
func BadRequest(err error) *Error {
	return newError(KindValidation, http.StatusBadRequest, err)
}

// Validationf creates a KindValidation error with a formatted message.
func Validationf(format string, args ...any) *Error {
	return BadRequest(fmt.Errorf(format, args...))
}

func Authentication(err error) *Error {
	return newError(KindAuthentication, http.StatusUnauthorized, err)
}

func Authorization(err error) *Error {
	return newError(KindAuthorization, http.StatusForbidden, err)
}

func NotFound(err error) *Error {
	return newError(KindNotFound, http.StatusNotFound, err)
}

// NotFoundf creates a KindNotFound error with a formatted message.
func NotFoundf(format string, args ...any) *Error {
	return NotFound(fmt.Errorf(format, args...))
}

func Conflict(err error) *Error {
	return newError(KindConflict, http.StatusConflict, err)
}

// Conflictf creates a KindConflict error with a formatted message.
func Conflictf(format string, args ...any) *Error {
	return Conflict(fmt.Errorf(format, args...))
}

func UnprocessableEntity(err error) *Error {
	return newError(
		KindUnprocessableEntity, http.StatusUnprocessableEntity, err,
	)
}

// UnprocessableEntityf creates a KindUnprocessableEntity error with a
// formatted message.
func UnprocessableEntityf(format string, args ...any) *Error {
	return UnprocessableEntity(fmt.Errorf(format, args...))
}

// KindOf finds the first *Error in the err chain and returns its Kind.
// KindUnknown is returned if err is nil or contains no *Error.
func KindOf(err error) Kind {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindUnknown
}

// Is reports whether err wraps an *Error with the k kind.
func Is(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}
