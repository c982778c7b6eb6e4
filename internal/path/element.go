// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package path

import (
	"fmt"

	"github.com/tfctl/objdiff/internal/identity"
)

// Kind identifies what an Element addresses.
type Kind int

const (
	RootKind Kind = iota
	MemberKind
	KeyKind
	ItemKind
)

func (k Kind) String() string {
	switch k {
	case RootKind:
		return "root"
	case MemberKind:
		return "member"
	case KeyKind:
		return "key"
	case ItemKind:
		return "item"
	default:
		return "unknown"
	}
}

// Element is one step in a Path. The zero Element addresses the root.
type Element struct {
	kind  Kind
	name  string
	value any
	key   any
}

// ID is the comparable form of an Element.
type ID struct {
	kind Kind
	name string
	key  any
}

// Member addresses a named member of a composite.
func Member(name string) Element {
	return Element{kind: MemberKind, name: name}
}

// Key addresses a map entry.
func Key(k any) Element {
	return Element{kind: KeyKind, value: k, key: identity.KeyOf(k)}
}

// Item addresses a collection item by its identity.
func Item(v any) Element {
	return Element{kind: ItemKind, value: v, key: identity.KeyOf(v)}
}

// ItemWithKey addresses a collection item whose identity key was resolved
// elsewhere. key must be comparable.
func ItemWithKey(v, key any) Element {
	return Element{kind: ItemKind, value: v, key: key}
}

func (e Element) Kind() Kind { return e.kind }

// Name returns the member name; empty for other kinds.
func (e Element) Name() string { return e.name }

// Value returns the map key or collection item the element was built from.
func (e Element) Value() any { return e.value }

func (e Element) IsRoot() bool { return e.kind == RootKind }

func (e Element) ID() ID {
	return ID{kind: e.kind, name: e.name, key: e.key}
}

// Equal reports whether e and o address the same position.
func (e Element) Equal(o Element) bool {
	return e.ID() == o.ID()
}

func (e Element) String() string {
	switch e.kind {
	case MemberKind:
		return e.name
	case KeyKind:
		return fmt.Sprintf("{%v}", e.value)
	case ItemKind:
		return fmt.Sprintf("[%v]", e.value)
	default:
		return ""
	}
}
