// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package errors holds the precondition errors raised by the diff engine and
// helpers for wrapping errors with a stack trace.
package errors
