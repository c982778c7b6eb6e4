// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package identity derives the keys used to match collection items and map
// entries across two versions of an object graph, and owns the equality rules
// used to compare leaf values.
//
// A value's identity key is, in order of preference:
//   - the key returned by its Identity method when it implements Identifiable,
//   - the value itself when it is comparable with ==,
//   - a structural fingerprint of the value otherwise.
//
// Keys are always safe to use as map keys.
package identity
