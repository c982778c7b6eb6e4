// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"reflect"

	"github.com/google/go-cmp/cmp"
	"github.com/puzpuzpuz/xsync/v3"
)

// EqualFunc reports whether two values of the same type are equal.
type EqualFunc func(a, b any) bool

// exportAll lets the default equality look at unexported struct fields.
var exportAll = cmp.Exporter(func(reflect.Type) bool { return true })

// Equal is the default structural equality. Types with an Equal method (such as
// time.Time) are compared with it.
func Equal(a, b any) bool {
	return cmp.Equal(a, b, exportAll)
}

// Registry holds per-type equality overrides. It is safe for concurrent use, so
// one Registry may back any number of comparisons running at the same time.
type Registry struct {
	overrides *xsync.MapOf[reflect.Type, EqualFunc]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{overrides: xsync.NewMapOf[reflect.Type, EqualFunc]()}
}

// Register installs fn as the equality for values of type t, replacing any
// earlier override. A nil fn removes the override.
func (r *Registry) Register(t reflect.Type, fn EqualFunc) {
	if fn == nil {
		r.overrides.Delete(t)
		return
	}
	r.overrides.Store(t, fn)
}

// RegisterFor installs a typed equality override for T.
func RegisterFor[T any](r *Registry, fn func(a, b T) bool) {
	r.Register(reflect.TypeFor[T](), func(a, b any) bool {
		return fn(a.(T), b.(T))
	})
}

// Lookup returns the override registered for t.
func (r *Registry) Lookup(t reflect.Type) (EqualFunc, bool) {
	if t == nil {
		return nil, false
	}
	return r.overrides.Load(t)
}

// Overrides reports whether values of type t use a registered equality.
func (r *Registry) Overrides(t reflect.Type) bool {
	_, ok := r.Lookup(t)
	return ok
}

// Equal compares a and b with the override registered for their common type,
// falling back to the default structural equality.
func (r *Registry) Equal(a, b any) bool {
	ta, tb := reflect.TypeOf(a), reflect.TypeOf(b)
	if ta == tb {
		if fn, ok := r.Lookup(ta); ok {
			return fn(a, b)
		}
	}
	return Equal(a, b)
}

// NewResolver returns a Resolver bound to this registry. Resolvers carry state
// and belong to a single comparison.
func (r *Registry) NewResolver() *Resolver {
	return &Resolver{registry: r, reps: make(map[reflect.Type][]any)}
}

// Resolver assigns identity keys to collection items. For types with an
// equality override, every item equal to an earlier one under that override
// shares the earlier item's key.
type Resolver struct {
	registry *Registry
	reps     map[reflect.Type][]any
}

// Key returns the identity key for v.
func (r *Resolver) Key(v any) any {
	if v == nil {
		return nil
	}

	t := reflect.TypeOf(v)
	fn, ok := r.registry.Lookup(t)
	if !ok {
		return KeyOf(v)
	}

	for _, rep := range r.reps[t] {
		if fn(rep, v) {
			return KeyOf(rep)
		}
	}
	r.reps[t] = append(r.reps[t], v)
	return KeyOf(v)
}
