// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package node

import "reflect"

// Value is one side of a compared pair. A Value is either present (possibly
// holding nil, e.g. a map entry whose value is nil) or absent.
type Value struct {
	data    any
	present bool
}

// Absent is the missing side of an addition or removal.
var Absent = Value{}

// Present wraps v as a present value, even when v is nil.
func Present(v any) Value {
	return Value{data: v, present: true}
}

// ValueOf wraps v, treating nil and typed nil pointers, maps, slices,
// interfaces, funcs and chans as absent.
func ValueOf(v any) Value {
	if IsNil(v) {
		return Absent
	}
	return Present(v)
}

func (v Value) Get() (any, bool) { return v.data, v.present }

func (v Value) IsPresent() bool { return v.present }

// Interface returns the wrapped value, nil when absent.
func (v Value) Interface() any { return v.data }

// IsNil reports whether v is nil or a typed nil.
func IsNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
