// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import "reflect"

// instance identifies a value with reference semantics.
type instance struct {
	typ reflect.Type
	ptr uintptr
	len int
}

func instanceOf(v any) (instance, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map:
		if rv.IsNil() {
			return instance{}, false
		}
		return instance{typ: rv.Type(), ptr: rv.Pointer()}, true
	case reflect.Slice:
		if rv.IsNil() {
			return instance{}, false
		}
		return instance{typ: rv.Type(), ptr: rv.Pointer(), len: rv.Len()}, true
	}
	return instance{}, false
}

type pair struct {
	working instance
	base    instance
}

type frame struct {
	pair    pair
	tracked bool
}

// guard records the container pairs currently being compared. A pair seen
// again while still on the stack closes a cycle.
type guard struct {
	stack  []frame
	active map[pair]bool
}

func newGuard() *guard {
	return &guard{active: map[pair]bool{}}
}

// enter pushes the pair and reports false when it is already being compared.
// Pairs where either side lacks reference identity are never cycles.
func (g *guard) enter(working, base any) bool {
	wi, wok := instanceOf(working)
	bi, bok := instanceOf(base)
	if !wok || !bok {
		g.stack = append(g.stack, frame{})
		return true
	}

	p := pair{wi, bi}
	if g.active[p] {
		return false
	}
	g.active[p] = true
	g.stack = append(g.stack, frame{pair: p, tracked: true})
	return true
}

func (g *guard) exit() {
	if len(g.stack) == 0 {
		return
	}
	f := g.stack[len(g.stack)-1]
	g.stack = g.stack[:len(g.stack)-1]
	if f.tracked {
		delete(g.active, f.pair)
	}
}

func (g *guard) depth() int { return len(g.stack) }
