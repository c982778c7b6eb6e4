// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package node

import (
	"github.com/speakeasy-api/openapi/sequencedmap"

	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/path"
)

// Node is one entry of a diff tree.
type Node struct {
	parent   *Node
	element  path.Element
	state    State
	working  Value
	base     Value
	children *sequencedmap.Map[path.ID, *Node]
}

// New creates a node below parent. It does not attach itself; the caller adds
// it with AddChild once its subtree is complete.
func New(parent *Node, elem path.Element, working, base Value) *Node {
	return &Node{parent: parent, element: elem, working: working, base: base}
}

// NewRoot creates a parentless node.
func NewRoot(working, base Value) *Node {
	return New(nil, path.Element{}, working, base)
}

// SetState records the node's classification.
func (n *Node) SetState(s State) { n.state = s }

// AddChild attaches c. Elements must be unique among siblings and c must have
// been created with n as its parent.
func (n *Node) AddChild(c *Node) error {
	if c.parent != n {
		return errors.Errorf("node %s is not a child of %s", c.Path(), n.Path())
	}
	if n.children == nil {
		n.children = sequencedmap.New[path.ID, *Node]()
	}
	id := c.element.ID()
	if _, exists := n.children.Get(id); exists {
		return errors.Errorf("duplicate child %s", c.Path())
	}
	n.children.Set(id, c)
	return nil
}

func (n *Node) State() State { return n.state }

func (n *Node) Element() path.Element { return n.element }

func (n *Node) Parent() *Node { return n.parent }

func (n *Node) IsRoot() bool { return n.parent == nil }

// Working returns the working value and whether it is present.
func (n *Node) Working() (any, bool) { return n.working.Get() }

// Base returns the base value and whether it is present.
func (n *Node) Base() (any, bool) { return n.base.Get() }

// Path rebuilds the node's address from the root.
func (n *Node) Path() path.Path {
	var elems []path.Element
	for cur := n; cur != nil && cur.parent != nil; cur = cur.parent {
		elems = append(elems, cur.element)
	}
	for i, j := 0, len(elems)-1; i < j; i, j = i+1, j-1 {
		elems[i], elems[j] = elems[j], elems[i]
	}
	return path.New(elems...)
}

func (n *Node) HasChildren() bool { return n.ChildCount() > 0 }

func (n *Node) ChildCount() int {
	if n.children == nil {
		return 0
	}
	return n.children.Len()
}

// Children returns the direct children in insertion order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.ChildCount())
	if n.children == nil {
		return out
	}
	for _, c := range n.children.All() {
		out = append(out, c)
	}
	return out
}

// ChildAt returns the direct child addressed by e.
func (n *Node) ChildAt(e path.Element) *Node {
	if n.children == nil {
		return nil
	}
	c, _ := n.children.Get(e.ID())
	return c
}

// Child resolves an absolute path. The path must run through n; nil is
// returned when it does not or when no node lives there.
func (n *Node) Child(p path.Path) *Node {
	rel, ok := p.Rel(n.Path())
	if !ok {
		return nil
	}
	cur := n
	for _, e := range rel {
		if cur = cur.ChildAt(e); cur == nil {
			return nil
		}
	}
	return cur
}

// HasChanges reports whether the node or anything below it was added, removed
// or changed. Circular and Ignored nodes are not changes, so a subtree holding
// only those reports false even though its states are not all Untouched.
func (n *Node) HasChanges() bool {
	if n.state.IsChange() {
		return true
	}
	for _, c := range n.Children() {
		if c.HasChanges() {
			return true
		}
	}
	return false
}

// Find returns every node in the subtree, n included, whose state is one of
// states, in depth-first order.
func (n *Node) Find(states ...State) []*Node {
	var found []*Node
	n.Visit(VisitorFunc(func(c *Node, _ *Visit) {
		for _, s := range states {
			if c.state == s {
				found = append(found, c)
				return
			}
		}
	}))
	return found
}
