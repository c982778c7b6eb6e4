// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/objdiff/internal/path"
)

// tree builds /name (changed) -> /name/first (added), /tags[go] (untouched).
func tree(t *testing.T) *Node {
	t.Helper()
	root := NewRoot(Present("w"), Present("b"))
	name := New(root, path.Member("name"), Present("w"), Present("b"))
	first := New(name, path.Member("first"), Present("Ann"), Absent)
	first.SetState(Added)
	require.NoError(t, name.AddChild(first))
	name.SetState(Changed)
	require.NoError(t, root.AddChild(name))
	tags := New(root, path.Member("tags"), Present(nil), Present(nil))
	goTag := New(tags, path.Item("go"), Present("go"), Present("go"))
	require.NoError(t, tags.AddChild(goTag))
	require.NoError(t, root.AddChild(tags))
	root.SetState(Changed)
	return root
}

func TestValueOf(t *testing.T) {
	var p *int
	var m map[string]int
	assert.False(t, ValueOf(nil).IsPresent())
	assert.False(t, ValueOf(p).IsPresent())
	assert.False(t, ValueOf(m).IsPresent())
	assert.True(t, ValueOf(0).IsPresent())
	assert.True(t, Present(nil).IsPresent())

	v, ok := Absent.Get()
	assert.Nil(t, v)
	assert.False(t, ok)
}

func TestStateNames(t *testing.T) {
	for _, s := range []State{Untouched, Added, Removed, Changed, Circular, Ignored} {
		got, err := ParseState(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	_, err := ParseState("bogus")
	assert.Error(t, err)
	assert.Equal(t, "state(42)", State(42).String())

	assert.True(t, Changed.IsChange())
	assert.False(t, Circular.IsChange())
	assert.False(t, Ignored.IsChange())
}

func TestAddChild(t *testing.T) {
	root := NewRoot(Absent, Absent)
	a := New(root, path.Member("a"), Absent, Absent)
	require.NoError(t, root.AddChild(a))

	dup := New(root, path.Member("a"), Absent, Absent)
	assert.Error(t, root.AddChild(dup))

	stray := New(a, path.Member("b"), Absent, Absent)
	assert.Error(t, root.AddChild(stray))
	assert.Equal(t, 1, root.ChildCount())
}

func TestPathsAndLookup(t *testing.T) {
	root := tree(t)

	first := root.Child(path.NewBuilder().WithMember("name", "first").Build())
	require.NotNil(t, first)
	assert.Equal(t, "/name/first", first.Path().String())
	assert.Equal(t, Added, first.State())

	goTag := root.Child(path.NewBuilder().WithMember("tags").WithCollectionItem("go").Build())
	require.NotNil(t, goTag)
	assert.Equal(t, "/tags[go]", goTag.Path().String())

	assert.Same(t, root, root.Child(path.New()))
	assert.Nil(t, root.Child(path.NewBuilder().WithMember("missing").Build()))

	name := root.ChildAt(path.Member("name"))
	require.NotNil(t, name)
	assert.Same(t, first, name.Child(first.Path()))
	assert.Nil(t, name.Child(goTag.Path()))
}

func TestChildrenKeepInsertionOrder(t *testing.T) {
	root := NewRoot(Absent, Absent)
	for _, n := range []string{"z", "a", "m"} {
		require.NoError(t, root.AddChild(New(root, path.Member(n), Absent, Absent)))
	}
	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Element().Name())
	}
	assert.Equal(t, []string{"z", "a", "m"}, names)
}

func TestHasChanges(t *testing.T) {
	root := tree(t)
	assert.True(t, root.HasChanges())
	assert.False(t, root.ChildAt(path.Member("tags")).HasChanges())

	c := NewRoot(Present(1), Present(1))
	c.SetState(Circular)
	assert.False(t, c.HasChanges())
}

func TestVisit(t *testing.T) {
	root := tree(t)

	var all []string
	root.Visit(VisitorFunc(func(n *Node, _ *Visit) {
		all = append(all, n.Path().String())
	}))
	assert.Equal(t, []string{"/", "/name", "/name/first", "/tags", "/tags[go]"}, all)

	var shallow []string
	root.VisitChildren(VisitorFunc(func(n *Node, v *Visit) {
		shallow = append(shallow, n.Path().String())
		v.DontGoDeeper()
	}))
	assert.Equal(t, []string{"/name", "/tags"}, shallow)

	var stopped []string
	root.Visit(VisitorFunc(func(n *Node, v *Visit) {
		stopped = append(stopped, n.Path().String())
		if n.State() == Added {
			v.Stop()
		}
	}))
	assert.Equal(t, []string{"/", "/name", "/name/first"}, stopped)
}

func TestFind(t *testing.T) {
	root := tree(t)
	found := root.Find(Added, Removed)
	require.Len(t, found, 1)
	assert.Equal(t, "/name/first", found[0].Path().String())
	assert.Len(t, root.Find(Untouched), 2)
}
