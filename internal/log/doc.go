// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package log is a thin wrapper over apex/log. The level comes from the
// OBJDIFF_LOG environment variable; "trace" enables Tracef output on top of
// debug.
package log
