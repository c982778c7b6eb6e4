// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package picker is the terminal prompt used to choose two versions of an S3
// document to diff.
package picker
