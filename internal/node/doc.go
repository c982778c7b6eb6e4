// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package node defines the tree produced by a comparison. Each Node carries a
// State, the working and base values it compared, its path element and its
// children in insertion order. Parents own their children; the parent pointer
// on a child is only used to rebuild paths.
package node
