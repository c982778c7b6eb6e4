// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package members

import (
	"strings"

	"github.com/fatih/structs"
)

// TagName is the struct tag consulted by StructEnumerator.
const TagName = "diff"

// Member is a named, readable part of a composite.
type Member struct {
	Name  string
	Value any
}

// Enumerator lists the members of v. ok is false when v is not a composite
// the enumerator understands.
type Enumerator interface {
	Members(v any) (members []Member, ok bool)
}

// EnumeratorFunc adapts a function to Enumerator.
type EnumeratorFunc func(v any) ([]Member, bool)

func (f EnumeratorFunc) Members(v any) ([]Member, bool) { return f(v) }

// StructEnumerator enumerates exported fields of structs and pointers to
// structs.
type StructEnumerator struct{}

func (StructEnumerator) Members(v any) ([]Member, bool) {
	if !structs.IsStruct(v) {
		return nil, false
	}

	s := structs.New(v)
	s.TagName = TagName

	fields := s.Fields()
	out := make([]Member, 0, len(fields))
	for _, f := range fields {
		name := f.Name()
		if alias, _, _ := strings.Cut(f.Tag(TagName), ","); alias != "" {
			name = alias
		}
		out = append(out, Member{Name: name, Value: f.Value()})
	}
	return out, true
}

// Chain tries each enumerator in order and returns the first that accepts v.
func Chain(enumerators ...Enumerator) Enumerator {
	return EnumeratorFunc(func(v any) ([]Member, bool) {
		for _, e := range enumerators {
			if m, ok := e.Members(v); ok {
				return m, true
			}
		}
		return nil, false
	})
}
