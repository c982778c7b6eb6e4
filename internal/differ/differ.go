// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"reflect"
	"time"

	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/identity"
	"github.com/tfctl/objdiff/internal/log"
	"github.com/tfctl/objdiff/internal/members"
	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/path"
)

// Delegate dispatches a child pair back into the engine. Comparators recurse
// only through a Delegate.
type Delegate interface {
	Dispatch(s *Session, parent *node.Node, elem path.Element, working, base node.Value) *node.Node
}

// Collection is implemented by container types that want their contents
// compared as an unordered set of identities.
type Collection interface {
	Items() []any
}

// Option configures a Differ.
type Option func(*Differ)

// WithRegistry replaces the equality registry. The registry may be shared
// with other Differs.
func WithRegistry(r *identity.Registry) Option {
	return func(d *Differ) {
		if r != nil {
			d.registry = r
		}
	}
}

// WithEquality registers an equality override for t. Values of t become
// leaves and collection items of t are matched with fn.
func WithEquality(t reflect.Type, fn identity.EqualFunc) Option {
	return func(d *Differ) { d.pending = append(d.pending, override{t, fn}) }
}

// WithEqualityFor is the typed form of WithEquality.
func WithEqualityFor[T any](fn func(a, b T) bool) Option {
	return WithEquality(reflect.TypeFor[T](), func(a, b any) bool {
		return fn(a.(T), b.(T))
	})
}

// WithEnumerator sets the member enumerator used for composites.
func WithEnumerator(e members.Enumerator) Option {
	return func(d *Differ) { d.enumerator = e }
}

// WithInclusion installs a predicate over child paths. Children it rejects
// are reported as Ignored. The root is always included.
func WithInclusion(fn func(path.Path) bool) Option {
	return func(d *Differ) { d.include = fn }
}

// WithMaxDepth limits container recursion. Containers at depth n or deeper
// are compared as leaves. Zero means unlimited.
func WithMaxDepth(n int) Option {
	return func(d *Differ) {
		if n >= 0 {
			d.maxDepth = n
		}
	}
}

// WithOmittedStates keeps children in any of states out of the result tree.
// Parents are classified before omission, so a Changed parent stays Changed
// even when every changed child is omitted.
func WithOmittedStates(states ...node.State) Option {
	return func(d *Differ) {
		for _, s := range states {
			d.omit[s] = true
		}
	}
}

type override struct {
	typ reflect.Type
	fn  identity.EqualFunc
}

// Differ compares object graphs.
type Differ struct {
	registry   *identity.Registry
	enumerator members.Enumerator
	include    func(path.Path) bool
	maxDepth   int
	omit       map[node.State]bool
	pending    []override

	leaf       *LeafComparator
	maps       *MapComparator
	collection *CollectionComparator
	composite  *CompositeComparator
}

// New builds a Differ. Without options it uses a fresh registry, the
// struct-tag member enumerator, no inclusion rules and unlimited depth.
func New(opts ...Option) *Differ {
	d := &Differ{omit: map[node.State]bool{}}
	for _, opt := range opts {
		opt(d)
	}
	if d.registry == nil {
		d.registry = identity.NewRegistry()
	}
	if d.enumerator == nil {
		d.enumerator = members.StructEnumerator{}
	}
	for _, o := range d.pending {
		d.registry.Register(o.typ, o.fn)
	}
	d.pending = nil

	// Collaborators are non-nil here, so construction cannot fail.
	d.leaf, _ = NewLeafComparator(d.registry)
	d.maps, _ = NewMapComparator(d)
	d.collection, _ = NewCollectionComparator(d)
	d.composite, _ = NewCompositeComparator(d, d.enumerator)
	return d
}

// Registry returns the equality registry backing d.
func (d *Differ) Registry() *identity.Registry { return d.registry }

// NewSession returns a Session configured with d's registry and omissions.
func (d *Differ) NewSession() *Session {
	s := NewSession(d.registry)
	s.omit = d.omit
	return s
}

// Compare diffs working against base. Either may be nil, but not both.
func (d *Differ) Compare(working, base any) (*node.Node, error) {
	w, b := node.ValueOf(working), node.ValueOf(base)
	if !w.IsPresent() && !b.IsPresent() {
		return nil, errors.WithStackTrace(errors.ErrNoValues)
	}

	start := time.Now()
	root := d.Dispatch(d.NewSession(), nil, path.Element{}, w, b)
	log.Debugf("compare: %T vs %T -> %s in %s", working, base, root.State(), time.Since(start))

	return root, nil
}

// Dispatch classifies the pair and returns the node describing it. The node
// is not attached to parent.
func (d *Differ) Dispatch(s *Session, parent *node.Node, elem path.Element, working, base node.Value) *node.Node {
	n := node.New(parent, elem, working, base)
	w, wok := working.Get()
	b, bok := base.Get()

	switch {
	case !wok && !bok:
		return n
	case parent != nil && d.include != nil && !d.include(n.Path()):
		n.SetState(node.Ignored)
		return n
	case !bok:
		n.SetState(node.Added)
		return n
	case !wok:
		n.SetState(node.Removed)
		return n
	}

	ws, bs := d.shapeOf(w), d.shapeOf(b)
	if log.TraceEnabled() {
		log.Tracef("dispatch %s: %s/%s", n.Path(), ws, bs)
	}

	if ws != bs {
		n.SetState(node.Changed)
		return n
	}

	if ws == leafShape || (d.maxDepth > 0 && s.depth >= d.maxDepth) {
		d.leaf.compare(n)
		return n
	}

	if !s.guard.enter(w, b) {
		n.SetState(node.Circular)
		return n
	}
	defer s.guard.exit()

	s.depth++
	defer func() { s.depth-- }()

	switch ws {
	case mapShape:
		d.maps.compare(s, n, w, b)
	case collectionShape:
		d.collection.compare(s, n, w, b)
	case compositeShape:
		d.composite.compare(s, n, w, b)
	}

	return n
}
