// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package node

// Visit lets a Visitor steer the walk.
type Visit struct {
	stopped bool
	skip    bool
}

// Stop ends the walk after the current node.
func (v *Visit) Stop() { v.stopped = true }

// DontGoDeeper skips the current node's children.
func (v *Visit) DontGoDeeper() { v.skip = true }

func (v *Visit) IsStopped() bool { return v.stopped }

// Visitor is called once per node, parents before children.
type Visitor interface {
	Accept(n *Node, v *Visit)
}

// VisitorFunc adapts a function to Visitor.
type VisitorFunc func(n *Node, v *Visit)

func (f VisitorFunc) Accept(n *Node, v *Visit) { f(n, v) }

// Visit walks the subtree rooted at n depth first.
func (n *Node) Visit(visitor Visitor) {
	n.walk(visitor, &Visit{})
}

// VisitChildren walks the subtrees of n's children, skipping n itself.
func (n *Node) VisitChildren(visitor Visitor) {
	v := &Visit{}
	for _, c := range n.Children() {
		if c.walk(visitor, v); v.stopped {
			return
		}
	}
}

func (n *Node) walk(visitor Visitor, v *Visit) {
	visitor.Accept(n, v)
	if v.stopped {
		return
	}
	if v.skip {
		v.skip = false
		return
	}
	for _, c := range n.Children() {
		if c.walk(visitor, v); v.stopped {
			return
		}
	}
}
