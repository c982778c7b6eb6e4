// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package output turns a comparison tree into change records and emits them
// as a marked text list, JSON or YAML, optionally followed by a summary.
package output
