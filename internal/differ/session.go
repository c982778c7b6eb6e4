// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package differ

import (
	"github.com/tfctl/objdiff/internal/identity"
	"github.com/tfctl/objdiff/internal/log"
	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/path"
)

// Session is the mutable state of one comparison. It is not safe for
// concurrent use.
type Session struct {
	guard    *guard
	resolver *identity.Resolver
	depth    int
	omit     map[node.State]bool
}

// NewSession returns a Session resolving identities against reg.
func NewSession(reg *identity.Registry) *Session {
	if reg == nil {
		reg = identity.NewRegistry()
	}
	return &Session{guard: newGuard(), resolver: reg.NewResolver()}
}

// Depth is the number of containers currently entered.
func (s *Session) Depth() int { return s.depth }

// attach adds child to parent unless its state is omitted and reports
// whether child carries changes. A child that cannot be attached reports none.
func (s *Session) attach(parent, child *node.Node) bool {
	changed := child.HasChanges()
	if s.omit[child.State()] {
		return changed
	}
	if err := parent.AddChild(child); err != nil {
		log.Warnf("dropping child: %v", err)
		return false
	}
	return changed
}

// sessionFor picks a Session for a standalone comparator run.
func sessionFor(d Delegate) *Session {
	switch src := d.(type) {
	case interface{ NewSession() *Session }:
		return src.NewSession()
	case interface{ Registry() *identity.Registry }:
		return NewSession(src.Registry())
	}
	return NewSession(nil)
}

// standalone runs compare on a root pair when both sides are present and
// accepted, and falls back to the delegate otherwise.
func standalone(d Delegate, working, base any, accepts func(any) bool, compare func(*Session, *node.Node, any, any)) *node.Node {
	s := sessionFor(d)
	w, b := node.ValueOf(working), node.ValueOf(base)
	if !w.IsPresent() || !b.IsPresent() || !accepts(working) || !accepts(base) {
		return d.Dispatch(s, nil, path.Element{}, w, b)
	}

	n := node.NewRoot(w, b)
	s.guard.enter(working, base)
	defer s.guard.exit()
	s.depth++
	compare(s, n, working, base)
	s.depth--
	return n
}
