// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package cacheutil keeps immutable downloads, such as versioned S3 objects,
// on local disk keyed by a hash of their location.
package cacheutil
