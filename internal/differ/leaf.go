// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/identity"
	"github.com/tfctl/objdiff/internal/node"
)

// LeafComparator compares values as opaque wholes.
type LeafComparator struct {
	registry *identity.Registry
}

func NewLeafComparator(reg *identity.Registry) (*LeafComparator, error) {
	if reg == nil {
		return nil, errors.WithStackTrace(errors.ErrNilRegistry)
	}
	return &LeafComparator{registry: reg}, nil
}

// Compare returns a childless root node for the pair.
func (c *LeafComparator) Compare(working, base any) *node.Node {
	n := node.NewRoot(node.ValueOf(working), node.ValueOf(base))
	c.compare(n)
	return n
}

func (c *LeafComparator) compare(n *node.Node) {
	w, wok := n.Working()
	b, bok := n.Base()

	switch {
	case !wok && !bok:
		n.SetState(node.Untouched)
	case !bok:
		n.SetState(node.Added)
	case !wok:
		n.SetState(node.Removed)
	case c.registry.Equal(w, b):
		n.SetState(node.Untouched)
	default:
		n.SetState(node.Changed)
	}
}
