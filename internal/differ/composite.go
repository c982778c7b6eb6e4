// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/members"
	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/path"
)

// CompositeComparator pairs the named members of two composites.
type CompositeComparator struct {
	delegate   Delegate
	enumerator members.Enumerator
}

func NewCompositeComparator(d Delegate, e members.Enumerator) (*CompositeComparator, error) {
	if d == nil {
		return nil, errors.WithStackTrace(errors.ErrNilDelegate)
	}
	if e == nil {
		return nil, errors.WithStackTrace(errors.ErrNilEnumerator)
	}
	return &CompositeComparator{delegate: d, enumerator: e}, nil
}

// Compare diffs two composites. Values the enumerator rejects are handed to
// the delegate.
func (c *CompositeComparator) Compare(working, base any) *node.Node {
	accepts := func(v any) bool {
		_, ok := c.enumerator.Members(v)
		return ok
	}
	return standalone(c.delegate, working, base, accepts, c.compare)
}

func (c *CompositeComparator) compare(s *Session, n *node.Node, working, base any) {
	wm, _ := c.enumerator.Members(working)
	bm, _ := c.enumerator.Members(base)

	baseByName := make(map[string]any, len(bm))
	for _, m := range bm {
		baseByName[m.Name] = m.Value
	}

	changed := false
	seen := make(map[string]bool, len(wm))
	for _, m := range wm {
		seen[m.Name] = true
		bv, ok := baseByName[m.Name]
		bval := node.Absent
		if ok {
			bval = node.ValueOf(bv)
		}
		child := c.delegate.Dispatch(s, n, path.Member(m.Name), node.ValueOf(m.Value), bval)
		changed = s.attach(n, child) || changed
	}
	for _, m := range bm {
		if seen[m.Name] {
			continue
		}
		child := c.delegate.Dispatch(s, n, path.Member(m.Name), node.Absent, node.ValueOf(m.Value))
		changed = s.attach(n, child) || changed
	}

	if changed {
		n.SetState(node.Changed)
	}
}
