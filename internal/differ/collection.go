// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"reflect"

	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/path"
)

// CollectionComparator matches collection items by identity. Position and
// container type play no part: a slice and a set holding the same items are
// equal.
type CollectionComparator struct {
	delegate Delegate
}

func NewCollectionComparator(d Delegate) (*CollectionComparator, error) {
	if d == nil {
		return nil, errors.WithStackTrace(errors.ErrNilDelegate)
	}
	return &CollectionComparator{delegate: d}, nil
}

// Compare diffs two collections. Anything else is handed to the delegate.
func (c *CollectionComparator) Compare(working, base any) *node.Node {
	return standalone(c.delegate, working, base, isCollection, c.compare)
}

func isCollection(v any) bool {
	if _, ok := v.(Collection); ok {
		return true
	}
	rv, ok := deref(v)
	if !ok {
		return false
	}
	switch rv.Kind() {
	case reflect.Map:
		return rv.Type().Elem() == emptyStruct
	case reflect.Slice, reflect.Array:
		return true
	}
	return false
}

func (c *CollectionComparator) compare(s *Session, n *node.Node, working, base any) {
	wKeys, wItems := s.index(itemsOf(working))
	bKeys, bItems := s.index(itemsOf(base))

	changed := false
	for _, k := range wKeys {
		wi := wItems[k]
		var child *node.Node
		if bi, ok := bItems[k]; ok {
			child = c.delegate.Dispatch(s, n, path.ItemWithKey(bi, k), node.Present(wi), node.Present(bi))
		} else {
			child = c.delegate.Dispatch(s, n, path.ItemWithKey(wi, k), node.Present(wi), node.Absent)
		}
		changed = s.attach(n, child) || changed
	}
	for _, k := range bKeys {
		if _, ok := wItems[k]; ok {
			continue
		}
		bi := bItems[k]
		child := c.delegate.Dispatch(s, n, path.ItemWithKey(bi, k), node.Absent, node.Present(bi))
		changed = s.attach(n, child) || changed
	}

	if changed {
		n.SetState(node.Changed)
	}
}

// index keys items by identity. Keys keep the position of their first
// occurrence; a later duplicate replaces the stored item.
func (s *Session) index(items []any) ([]any, map[any]any) {
	keys := make([]any, 0, len(items))
	byKey := make(map[any]any, len(items))
	for _, it := range items {
		k := s.resolver.Key(it)
		if _, seen := byKey[k]; !seen {
			keys = append(keys, k)
		}
		byKey[k] = it
	}
	return keys, byKey
}

func itemsOf(v any) []any {
	if c, ok := v.(Collection); ok {
		return c.Items()
	}
	rv, ok := deref(v)
	if !ok {
		return nil
	}

	switch rv.Kind() {
	case reflect.Map:
		keys := sortedKeys(rv)
		out := make([]any, len(keys))
		for i, k := range keys {
			out[i] = k.Interface()
		}
		return out
	case reflect.Slice, reflect.Array:
		out := make([]any, rv.Len())
		for i := range out {
			out[i] = rv.Index(i).Interface()
		}
		return out
	}
	return nil
}
