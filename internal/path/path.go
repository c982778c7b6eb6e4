// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package path

import (
	"fmt"
	"strings"
)

// Path is an immutable, root-relative sequence of Elements. The zero Path is
// the root.
type Path struct {
	elems []Element
}

// New returns a Path over elems. Root elements are dropped.
func New(elems ...Element) Path {
	p := Path{elems: make([]Element, 0, len(elems))}
	for _, e := range elems {
		if !e.IsRoot() {
			p.elems = append(p.elems, e)
		}
	}
	return p
}

func (p Path) Len() int { return len(p.elems) }

func (p Path) IsRoot() bool { return len(p.elems) == 0 }

// Elements returns a copy of the elements.
func (p Path) Elements() []Element {
	return append([]Element(nil), p.elems...)
}

// Last returns the final element; false at the root.
func (p Path) Last() (Element, bool) {
	if len(p.elems) == 0 {
		return Element{}, false
	}
	return p.elems[len(p.elems)-1], true
}

// Parent drops the last element. The parent of the root is the root.
func (p Path) Parent() Path {
	if len(p.elems) == 0 {
		return p
	}
	return Path{elems: p.elems[:len(p.elems)-1:len(p.elems)-1]}
}

// Append returns a new Path with elems added.
func (p Path) Append(elems ...Element) Path {
	out := make([]Element, 0, len(p.elems)+len(elems))
	out = append(out, p.elems...)
	return New(append(out, elems...)...)
}

func (p Path) Equal(o Path) bool {
	if len(p.elems) != len(o.elems) {
		return false
	}
	for i := range p.elems {
		if !p.elems[i].Equal(o.elems[i]) {
			return false
		}
	}
	return true
}

// HasPrefix reports whether prefix addresses p or one of its ancestors.
func (p Path) HasPrefix(prefix Path) bool {
	if len(prefix.elems) > len(p.elems) {
		return false
	}
	for i := range prefix.elems {
		if !p.elems[i].Equal(prefix.elems[i]) {
			return false
		}
	}
	return true
}

// Rel returns the elements of p below prefix; false when prefix is not a
// prefix of p.
func (p Path) Rel(prefix Path) ([]Element, bool) {
	if !p.HasPrefix(prefix) {
		return nil, false
	}
	return append([]Element(nil), p.elems[len(prefix.elems):]...), true
}

func (p Path) String() string {
	var sb strings.Builder
	for _, e := range p.elems {
		if e.kind == MemberKind || sb.Len() == 0 {
			sb.WriteByte('/')
		}
		sb.WriteString(e.String())
	}
	if sb.Len() == 0 {
		return "/"
	}
	return sb.String()
}

// Segments renders each element without decoration: member names, map keys
// and item values in their %v form.
func (p Path) Segments() []string {
	out := make([]string, len(p.elems))
	for i, e := range p.elems {
		if e.kind == MemberKind {
			out[i] = e.name
		} else {
			out[i] = fmt.Sprint(e.value)
		}
	}
	return out
}

// Plain joins Segments with slashes, e.g. /metadata/labels/app. It is the form
// glob patterns are matched against.
func (p Path) Plain() string {
	return "/" + strings.Join(p.Segments(), "/")
}

// Builder assembles a Path from the root down.
type Builder struct {
	elems []Element
}

func NewBuilder() *Builder {
	return &Builder{}
}

// WithRoot starts over at the root.
func (b *Builder) WithRoot() *Builder {
	b.elems = b.elems[:0]
	return b
}

// WithMember appends one member element per name.
func (b *Builder) WithMember(names ...string) *Builder {
	for _, n := range names {
		b.elems = append(b.elems, Member(n))
	}
	return b
}

func (b *Builder) WithMapKey(k any) *Builder {
	b.elems = append(b.elems, Key(k))
	return b
}

func (b *Builder) WithCollectionItem(v any) *Builder {
	b.elems = append(b.elems, Item(v))
	return b
}

func (b *Builder) WithElement(e Element) *Builder {
	b.elems = append(b.elems, e)
	return b
}

// Build returns the Path. The Builder may keep being used afterwards without
// affecting the returned Path.
func (b *Builder) Build() Path {
	return New(b.elems...)
}
