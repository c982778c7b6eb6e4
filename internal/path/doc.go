// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package path addresses nodes in a diff tree. A Path is an immutable sequence
// of Elements, each naming a composite member, a map key or a collection item.
// Paths compare element by element, independent of how they were built.
//
// String forms:
//
//	/                      root
//	/address/street        composite members
//	/labels{env}           map key
//	/tags[go]              collection item
package path
