// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package identity

import (
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type keyed struct {
	Key   string
	Value string
}

func (k keyed) Identity() any { return k.Key }

type selfish struct{ Name string }

func (s selfish) Identity() any { return s }

type hidden struct {
	name  string
	count int
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		a, b any
		same bool
	}{
		{"equal strings", "foo", "foo", true},
		{"different strings", "foo", "bar", false},
		{"int vs float", 1, 1.0, false},
		{"equal slices", []string{"a", "b"}, []string{"a", "b"}, true},
		{"reordered slices", []string{"a", "b"}, []string{"b", "a"}, false},
		{"equal maps", map[string]int{"a": 1, "b": 2}, map[string]int{"b": 2, "a": 1}, true},
		{"different maps", map[string]int{"a": 1}, map[string]int{"a": 2}, false},
		{"identifiable same key", keyed{"foo", "1"}, keyed{"foo", "2"}, true},
		{"identifiable different key", keyed{"foo", "1"}, keyed{"bar", "1"}, false},
		{"identifiable vs raw key", keyed{"foo", "1"}, "foo", false},
		{"self identity", selfish{"x"}, selfish{"x"}, true},
		{"nested any slices", []any{1, []any{"x"}}, []any{1, []any{"x"}}, true},
		{"equal pointees", &hidden{"x", 1}, &hidden{"x", 1}, true},
		{"different pointees", &hidden{"x", 1}, &hidden{"x", 2}, false},
		{"pointer vs value", &hidden{"x", 1}, hidden{"x", 1}, false},
		{"struct with equal pointer fields", labelled{"a", strPtr("x")}, labelled{"a", strPtr("x")}, true},
		{"struct with different pointer fields", labelled{"a", strPtr("x")}, labelled{"a", strPtr("y")}, false},
		{"struct with nil pointer field", labelled{"a", nil}, labelled{"a", nil}, true},
		{"arrays of pointers", [1]*string{strPtr("x")}, [1]*string{strPtr("x")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := KeyOf(tt.a), KeyOf(tt.b)
			assert.Equal(t, tt.same, ka == kb)
		})
	}
}

func TestKeyOfNil(t *testing.T) {
	assert.Nil(t, KeyOf(nil))
}

type labelled struct {
	Name  string
	Value *string
}

func strPtr(s string) *string { return &s }

func TestKeyOfFollowsReferences(t *testing.T) {
	a, b := &keyed{Key: "x"}, &keyed{Key: "x"}
	// *keyed still implements Identifiable through the value receiver.
	assert.Equal(t, KeyOf(a), KeyOf(b))

	p, q := &hidden{name: "x"}, &hidden{name: "x"}
	assert.True(t, KeyOf(p) == KeyOf(q), "equal pointees share a key")
	assert.True(t, KeyOf(p) == KeyOf(p))

	// Pointer-free comparable values stay their own key.
	assert.Equal(t, hidden{"x", 1}, KeyOf(hidden{"x", 1}))
	assert.IsType(t, fingerprint{}, KeyOf(labelled{Name: "a"}))
}

func TestHoldsReferences(t *testing.T) {
	tests := []struct {
		v    any
		want bool
	}{
		{"s", false},
		{hidden{}, false},
		{[2]int{}, false},
		{&hidden{}, true},
		{labelled{}, true},
		{[1]*string{}, true},
		{struct{ V any }{}, true},
		{struct{ C chan int }{}, false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, holdsReferences(reflect.TypeOf(tt.v)), "%T", tt.v)
	}
}

func TestKeyOfCyclicValueTerminates(t *testing.T) {
	m := map[string]any{}
	m["self"] = m
	n := map[string]any{}
	n["self"] = n

	require.NotPanics(t, func() { _ = KeyOf(m) })
	assert.Equal(t, KeyOf(m), KeyOf(n))

	s := []any{nil}
	s[0] = s
	require.NotPanics(t, func() { _ = KeyOf(s) })
}

func TestKeyOfIsUsableAsMapKey(t *testing.T) {
	seen := map[any]int{}
	for _, v := range []any{[]int{1}, map[string]any{"a": []int{2}}, keyed{"k", "v"}, "s"} {
		seen[KeyOf(v)]++
	}
	assert.Len(t, seen, 4)
}

func TestEqual(t *testing.T) {
	now := time.Now()

	assert.True(t, Equal(hidden{"a", 1}, hidden{"a", 1}))
	assert.False(t, Equal(hidden{"a", 1}, hidden{"a", 2}))
	assert.True(t, Equal(now, now.In(time.UTC)), "time.Time uses its Equal method")
	assert.True(t, Equal(nil, nil))
	assert.False(t, Equal(nil, "x"))
	assert.False(t, Equal(1, int64(1)))
}

func TestRegistryEqual(t *testing.T) {
	reg := NewRegistry()
	assert.False(t, reg.Equal(1.0, 1.0001))

	RegisterFor(reg, func(a, b float64) bool { return math.Abs(a-b) < 0.01 })
	assert.True(t, reg.Overrides(reflect.TypeFor[float64]()))
	assert.True(t, reg.Equal(1.0, 1.0001))
	assert.False(t, reg.Equal(1.0, 1.1))
	assert.False(t, reg.Equal(float32(1.0), float32(1.0001)), "float32 has no override")

	reg.Register(reflect.TypeFor[float64](), nil)
	assert.False(t, reg.Overrides(reflect.TypeFor[float64]()))
	assert.False(t, reg.Equal(1.0, 1.0001))
}

func TestRegistryLookupNilType(t *testing.T) {
	_, ok := NewRegistry().Lookup(nil)
	assert.False(t, ok)
}

func TestResolverKey(t *testing.T) {
	reg := NewRegistry()
	RegisterFor(reg, func(a, b float64) bool { return math.Abs(a-b) < 0.01 })

	r := reg.NewResolver()
	base := r.Key(1.0)
	assert.Equal(t, base, r.Key(1.001))
	assert.NotEqual(t, base, r.Key(2.0))
	assert.Equal(t, KeyOf("plain"), r.Key("plain"))
	assert.Nil(t, r.Key(nil))
}
