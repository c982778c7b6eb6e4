// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package differ is the recursive comparison engine. A Differ classifies each
// (working, base) pair by shape and hands it to the leaf, map, collection or
// composite comparator, which recurse back through the Differ for every child.
// The result is a node.Node tree addressed by path.Path.
//
// Shapes are decided per value:
//
//   - nil, types with a registered equality, []byte and structs without
//     members are leaves
//   - Collection implementers, slices, arrays and map[K]struct{} sets are
//     collections whose items are matched by identity, not position
//   - other maps are maps whose entries are matched by key
//   - structs with members are composites
//
// Each Compare runs in its own Session, which owns the cycle guard and the
// identity resolver. A Differ may be shared between goroutines.
package differ
