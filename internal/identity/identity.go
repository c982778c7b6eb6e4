// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package identity

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"reflect"
	"slices"
	"strconv"
)

// Identifiable is implemented by values that define their own identity for
// collection matching. Two items with equal Identity keys are treated as the
// same item, even when their other fields differ.
type Identifiable interface {
	Identity() any
}

// typedKey scopes an Identity key to the type that produced it so that
// unrelated types returning the same key never match.
type typedKey struct {
	typ reflect.Type
	id  any
}

// fingerprint stands in for values that cannot be compared with ==.
type fingerprint struct {
	typ reflect.Type
	sum [sha256.Size]byte
}

// KeyOf returns the comparable identity key of v. A nil v yields nil.
func KeyOf(v any) any {
	if v == nil {
		return nil
	}

	if id, ok := v.(Identifiable); ok {
		return typedKey{typ: reflect.TypeOf(v), id: plainKey(id.Identity())}
	}

	return plainKey(v)
}

// plainKey ignores Identifiable so a self-referential Identity cannot recurse.
// Only values whose == compares content are their own key; anything holding
// a pointer or interface is keyed by what it points to.
func plainKey(v any) any {
	if v == nil {
		return nil
	}

	rv := reflect.ValueOf(v)
	if rv.Comparable() && !holdsReferences(rv.Type()) {
		return v
	}

	return fingerprintOf(rv)
}

// holdsReferences reports whether == on t may compare addresses rather than
// content. Channels keep reference identity and are not counted.
func holdsReferences(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.UnsafePointer:
		return true
	case reflect.Array:
		return holdsReferences(t.Elem())
	case reflect.Struct:
		for i := range t.NumField() {
			if holdsReferences(t.Field(i).Type) {
				return true
			}
		}
	}
	return false
}

func fingerprintOf(rv reflect.Value) fingerprint {
	w := &canonWriter{inProgress: make(map[uintptr]int, 8)}
	w.encode(rv)
	return fingerprint{typ: rv.Type(), sum: sha256.Sum256(w.buf.Bytes())}
}

// canonWriter renders a value into a canonical byte form. Reference values
// currently being encoded are tracked with their depth so cyclic graphs
// terminate; a back-reference is written as its distance from the current
// depth, which keeps the output independent of map iteration order.
type canonWriter struct {
	buf        bytes.Buffer
	inProgress map[uintptr]int
	depth      int
}

func (w *canonWriter) encode(v reflect.Value) {
	if !v.IsValid() {
		w.buf.WriteString("nil")
		return
	}

	w.depth++
	defer func() { w.depth-- }()

	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice:
		if v.IsNil() {
			fmt.Fprintf(&w.buf, "%s(nil)", v.Type())
			return
		}
		addr := v.Pointer()
		if addr != 0 && (v.Kind() != reflect.Slice || v.Len() > 0) {
			if at, ok := w.inProgress[addr]; ok {
				fmt.Fprintf(&w.buf, "cycle^%d", w.depth-at)
				return
			}
			w.inProgress[addr] = w.depth
			defer delete(w.inProgress, addr)
		}
	}

	switch v.Kind() {
	case reflect.Interface:
		if v.IsNil() {
			w.buf.WriteString("nil")
			return
		}
		w.encode(v.Elem())
	case reflect.Pointer:
		w.buf.WriteByte('&')
		w.encode(v.Elem())
	case reflect.Slice, reflect.Array:
		fmt.Fprintf(&w.buf, "%s[", v.Type())
		for i := range v.Len() {
			w.encode(v.Index(i))
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte(']')
	case reflect.Map:
		// Entries are encoded separately and sorted so iteration order does not
		// leak into the fingerprint.
		entries := make([][]byte, 0, v.Len())
		iter := v.MapRange()
		for iter.Next() {
			sub := &canonWriter{inProgress: w.inProgress, depth: w.depth}
			sub.encode(iter.Key())
			sub.buf.WriteByte(':')
			sub.encode(iter.Value())
			entries = append(entries, sub.buf.Bytes())
		}
		slices.SortFunc(entries, bytes.Compare)
		fmt.Fprintf(&w.buf, "%s{", v.Type())
		for _, e := range entries {
			w.buf.Write(e)
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('}')
	case reflect.Struct:
		t := v.Type()
		fmt.Fprintf(&w.buf, "%s{", t)
		for i := range v.NumField() {
			w.buf.WriteString(t.Field(i).Name)
			w.buf.WriteByte('=')
			w.encode(v.Field(i))
			w.buf.WriteByte(',')
		}
		w.buf.WriteByte('}')
	case reflect.String:
		w.buf.WriteString(strconv.Quote(v.String()))
	case reflect.Bool:
		w.buf.WriteString(strconv.FormatBool(v.Bool()))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		w.buf.WriteString(strconv.FormatInt(v.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		w.buf.WriteString(strconv.FormatUint(v.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		w.buf.WriteString(strconv.FormatFloat(v.Float(), 'g', -1, 64))
	case reflect.Complex64, reflect.Complex128:
		w.buf.WriteString(strconv.FormatComplex(v.Complex(), 'g', -1, 128))
	default:
		// Funcs, chans and unsafe pointers only have reference identity.
		fmt.Fprintf(&w.buf, "%s@%x", v.Type(), v.Pointer())
	}
}
