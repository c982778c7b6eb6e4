// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"reflect"
)

type shape int

const (
	leafShape shape = iota
	compositeShape
	mapShape
	collectionShape
)

func (s shape) String() string {
	switch s {
	case compositeShape:
		return "composite"
	case mapShape:
		return "map"
	case collectionShape:
		return "collection"
	default:
		return "leaf"
	}
}

var emptyStruct = reflect.TypeFor[struct{}]()

func (d *Differ) shapeOf(v any) shape {
	if v == nil || d.registry.Overrides(reflect.TypeOf(v)) {
		return leafShape
	}
	if _, ok := v.(Collection); ok {
		return collectionShape
	}

	rv, ok := deref(v)
	if !ok {
		return leafShape
	}
	if rv.Type() != reflect.TypeOf(v) && d.registry.Overrides(rv.Type()) {
		return leafShape
	}

	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Elem() == emptyStruct {
			return collectionShape
		}
		return mapShape
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return leafShape
		}
		return collectionShape
	}

	if ms, ok := d.enumerator.Members(v); ok && len(ms) > 0 {
		return compositeShape
	}
	return leafShape
}

// deref follows pointers and interfaces. ok is false when it hits nil.
func deref(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return reflect.Value{}, false
		}
		rv = rv.Elem()
	}
	return rv, rv.IsValid()
}
