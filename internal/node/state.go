// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"fmt"
	"strings"
)

// State classifies a node.
type State int

const (
	Untouched State = iota
	Added
	Removed
	Changed
	Circular
	Ignored
)

var stateNames = [...]string{
	Untouched: "untouched",
	Added:     "added",
	Removed:   "removed",
	Changed:   "changed",
	Circular:  "circular",
	Ignored:   "ignored",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("state(%d)", int(s))
	}
	return stateNames[s]
}

// IsChange reports whether s describes a difference. Circular and Ignored are
// markers, not differences.
func (s State) IsChange() bool {
	return s == Added || s == Removed || s == Changed
}

// ParseState maps a case-insensitive state name to its State.
func ParseState(name string) (State, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range stateNames {
		if n == name {
			return State(i), nil
		}
	}
	return Untouched, fmt.Errorf("unknown node state: %q", name)
}
