// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package source loads the documents handed to the diff command. A document
// reference is a file path, "-" for stdin or an s3:// URI. Content is decoded
// from JSON, YAML or HCL (including .tfvars) into plain maps, slices and
// scalars so that documents of different formats compare cleanly.
package source
