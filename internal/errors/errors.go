// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package errors

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// Precondition violations. These are programmer errors and are returned before
// any comparison work starts.
var (
	ErrNilDelegate   = errors.New("comparator requires a non-nil delegate")
	ErrNilEnumerator = errors.New("composite comparator requires a non-nil member enumerator")
	ErrNilRegistry   = errors.New("leaf comparator requires a non-nil equality registry")
	ErrNoValues      = errors.New("at least one of working and base must be present")
)

// WithStackTrace wraps err in an Error that carries the caller's stack trace.
// A nil err returns nil.
func WithStackTrace(err error) error {
	if err == nil {
		return nil
	}

	return goerrors.Wrap(err, 1)
}

// Errorf formats a new error and wraps it with a stack trace.
func Errorf(format string, args ...any) error {
	return goerrors.Wrap(fmt.Errorf(format, args...), 1)
}

// IsError reports whether actual is, or wraps, expected.
func IsError(actual, expected error) bool {
	return goerrors.Is(actual, expected)
}

// StackTrace renders err with its stack trace when one is attached.
func StackTrace(err error) string {
	if err == nil {
		return ""
	}

	var goErr *goerrors.Error
	if errors.As(err, &goErr) {
		return goErr.ErrorStack()
	}

	return err.Error()
}
