// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"cmp"
	"fmt"
	"reflect"
	"slices"

	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/identity"
	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/path"
)

// MapComparator pairs map entries by key.
type MapComparator struct {
	delegate Delegate
}

func NewMapComparator(d Delegate) (*MapComparator, error) {
	if d == nil {
		return nil, errors.WithStackTrace(errors.ErrNilDelegate)
	}
	return &MapComparator{delegate: d}, nil
}

// Compare diffs two maps. Anything else is handed to the delegate.
func (c *MapComparator) Compare(working, base any) *node.Node {
	return standalone(c.delegate, working, base, isMap, c.compare)
}

func isMap(v any) bool {
	rv, ok := deref(v)
	return ok && rv.Kind() == reflect.Map
}

func (c *MapComparator) compare(s *Session, n *node.Node, working, base any) {
	wm, _ := deref(working)
	bm, _ := deref(base)
	wKeys, wEntries := entriesOf(wm)
	bKeys, bEntries := entriesOf(bm)

	changed := false
	for _, id := range wKeys {
		we := wEntries[id]
		bv := node.Absent
		if be, ok := bEntries[id]; ok {
			bv = node.Present(be.value)
		}
		child := c.delegate.Dispatch(s, n, path.Key(we.key), node.Present(we.value), bv)
		changed = s.attach(n, child) || changed
	}
	for _, id := range bKeys {
		if _, ok := wEntries[id]; ok {
			continue
		}
		be := bEntries[id]
		child := c.delegate.Dispatch(s, n, path.Key(be.key), node.Absent, node.Present(be.value))
		changed = s.attach(n, child) || changed
	}

	if changed {
		n.SetState(node.Changed)
	}
}

type mapEntry struct {
	key   any
	value any
}

// entriesOf indexes m by the identity of its keys so maps with different key
// types still pair up. The returned ids are in sorted key order.
func entriesOf(m reflect.Value) ([]any, map[any]mapEntry) {
	keys := sortedKeys(m)
	ids := make([]any, 0, len(keys))
	byID := make(map[any]mapEntry, len(keys))
	for _, k := range keys {
		kv := k.Interface()
		id := identity.KeyOf(kv)
		if _, seen := byID[id]; !seen {
			ids = append(ids, id)
		}
		byID[id] = mapEntry{key: kv, value: m.MapIndex(k).Interface()}
	}
	return ids, byID
}

// sortedKeys orders map keys so comparisons are deterministic. Strings,
// numbers and bools sort naturally; everything else by its %v form.
func sortedKeys(m reflect.Value) []reflect.Value {
	keys := m.MapKeys()
	slices.SortStableFunc(keys, compareKeys)
	return keys
}

func compareKeys(a, b reflect.Value) int {
	for a.Kind() == reflect.Interface && !a.IsNil() {
		a = a.Elem()
	}
	for b.Kind() == reflect.Interface && !b.IsNil() {
		b = b.Elem()
	}
	if ca, cb := keyClass(a), keyClass(b); ca != cb {
		return cmp.Compare(ca, cb)
	}

	switch keyClass(a) {
	case 1:
		return cmp.Compare(a.String(), b.String())
	case 2:
		return cmp.Compare(a.Int(), b.Int())
	case 3:
		return cmp.Compare(a.Uint(), b.Uint())
	case 4:
		return cmp.Compare(a.Float(), b.Float())
	case 5:
		return cmp.Compare(boolRank(a.Bool()), boolRank(b.Bool()))
	}
	return cmp.Compare(fmt.Sprintf("%T:%v", a.Interface(), a.Interface()),
		fmt.Sprintf("%T:%v", b.Interface(), b.Interface()))
}

func keyClass(v reflect.Value) int {
	switch v.Kind() {
	case reflect.String:
		return 1
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return 2
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return 3
	case reflect.Float32, reflect.Float64:
		return 4
	case reflect.Bool:
		return 5
	}
	return 6
}

func boolRank(b bool) int {
	if b {
		return 1
	}
	return 0
}
