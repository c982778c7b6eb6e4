// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package differ

import (
	"embed"
	"math"
	"reflect"
	"testing"
	"time"

	"github.com/huandu/go-clone"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/objdiff/internal/errors"
	"github.com/tfctl/objdiff/internal/members"
	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/path"
)

//go:embed testdata/*.yaml
var testDataFS embed.FS

type compareTestCase struct {
	Name    string            `yaml:"name"`
	Working any               `yaml:"working"`
	Base    any               `yaml:"base"`
	Changes map[string]string `yaml:"changes"`
}

func loadTestData(filename string, v interface{}) error {
	data, err := testDataFS.ReadFile("testdata/" + filename)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, v)
}

// changes maps the path of every added, removed or changed node to its state.
func changes(root *node.Node) map[string]string {
	out := map[string]string{}
	for _, n := range root.Find(node.Added, node.Removed, node.Changed) {
		out[n.Path().String()] = n.State().String()
	}
	return out
}

// render lists every node as "path state" in tree order.
func render(root *node.Node) []string {
	var out []string
	root.Visit(node.VisitorFunc(func(n *node.Node, _ *node.Visit) {
		out = append(out, n.Path().String()+" "+n.State().String())
	}))
	return out
}

func TestCompareCases(t *testing.T) {
	var tests []compareTestCase
	require.NoError(t, loadTestData("compare_cases.yaml", &tests))
	require.NotEmpty(t, tests)

	for _, tt := range tests {
		t.Run(tt.Name, func(t *testing.T) {
			root, err := New().Compare(tt.Working, tt.Base)
			require.NoError(t, err)

			want := tt.Changes
			if want == nil {
				want = map[string]string{}
			}
			assert.Equal(t, want, changes(root))
			assert.Equal(t, len(want) > 0, root.HasChanges())
		})
	}
}

func TestRootPresence(t *testing.T) {
	d := New()

	root, err := d.Compare(map[string]int{"a": 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, node.Added, root.State())
	assert.False(t, root.HasChildren())

	var missing *struct{ A int }
	root, err = d.Compare(missing, []int{1})
	require.NoError(t, err)
	assert.Equal(t, node.Removed, root.State())

	_, err = d.Compare(nil, missing)
	require.Error(t, err)
	assert.True(t, errors.IsError(err, errors.ErrNoValues))
}

func TestEmptyContainers(t *testing.T) {
	d := New()
	for _, pair := range [][2]any{
		{map[string]int{}, map[string]int{}},
		{[]string{}, map[string]struct{}{}},
		{struct{}{}, struct{}{}},
	} {
		root, err := d.Compare(pair[0], pair[1])
		require.NoError(t, err)
		assert.Equal(t, node.Untouched, root.State(), "%T", pair[0])
		assert.False(t, root.HasChanges())
		assert.False(t, root.HasChildren())
	}
}

func TestDeterminism(t *testing.T) {
	working := map[string]any{"z": 1, "a": []any{"x", "y"}, "m": map[int]string{3: "c", 1: "a"}}
	base := map[string]any{"b": 2, "a": []any{"y"}, "m": map[int]string{2: "b", 1: "z"}}

	first, err := New().Compare(working, base)
	require.NoError(t, err)
	want := render(first)
	assert.Equal(t, []string{
		"/ changed",
		"/{a} changed",
		"/{a}[x] added",
		"/{a}[y] untouched",
		"/{m} changed",
		"/{m}{1} changed",
		"/{m}{3} added",
		"/{m}{2} removed",
		"/{z} added",
		"/{b} removed",
	}, want)

	for range 10 {
		again, err := New().Compare(working, base)
		require.NoError(t, err)
		assert.Equal(t, want, render(again))
	}
}

func TestContainerShapeIndependence(t *testing.T) {
	set := map[string]struct{}{"go": {}, "rust": {}}
	slice := []string{"rust", "go"}
	array := [2]string{"go", "rust"}

	d := New()
	for _, pair := range [][2]any{{set, slice}, {slice, set}, {array, set}} {
		root, err := d.Compare(pair[0], pair[1])
		require.NoError(t, err)
		assert.False(t, root.HasChanges(), "%T vs %T", pair[0], pair[1])
	}

	root, err := d.Compare([]string{"go", "zig"}, set)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/": "changed", "/[zig]": "added", "/[rust]": "removed"}, changes(root))
}

type pkg struct {
	Name string
}

type tag struct {
	Key   string
	Value *string
}

func strPtr(s string) *string { return &s }

func TestReferenceItems(t *testing.T) {
	d := New()

	root, err := d.Compare([]*pkg{{"a"}, {"b"}}, []*pkg{{"b"}, {"a"}})
	require.NoError(t, err)
	assert.False(t, root.HasChanges())
	assert.Equal(t, 2, root.ChildCount())

	root, err = d.Compare([]*pkg{{"a"}, {"c"}}, []*pkg{{"a"}})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/": "changed", "/[&{c}]": "added"}, changes(root))
	require.NotNil(t, root.ChildAt(path.Item(&pkg{"c"})))
	assert.Equal(t, node.Untouched, root.ChildAt(path.Item(&pkg{"a"})).State())

	root, err = d.Compare([]tag{{"env", strPtr("prod")}}, []tag{{"env", strPtr("prod")}})
	require.NoError(t, err)
	assert.False(t, root.HasChanges())
	assert.Equal(t, 1, root.ChildCount())

	root, err = d.Compare([]tag{{"env", strPtr("prod")}}, []tag{{"env", strPtr("dev")}})
	require.NoError(t, err)
	assert.Len(t, root.Find(node.Added), 1)
	assert.Len(t, root.Find(node.Removed), 1)
}

func TestMixedKeyTypes(t *testing.T) {
	d := New()

	root, err := d.Compare(map[string]any{"a": 1}, map[any]any{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"/ untouched", "/{a} untouched"}, render(root))

	root, err = d.Compare(map[any]any{"a": 1, "b": 2}, map[string]int{"a": 2, "c": 3})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/ changed",
		"/{a} changed",
		"/{b} added",
		"/{c} removed",
	}, render(root))

	type name string
	root, err = d.Compare(map[name]int{"a": 1}, map[string]int{"a": 1})
	require.NoError(t, err)
	assert.Equal(t, []string{"/ changed", "/{a} added", "/{a} removed"}, render(root))
}

func TestItemAddressable(t *testing.T) {
	root, err := New().Compare([]string{"foo", "bar"}, []string{"bar", "baz"})
	require.NoError(t, err)

	foo := root.Child(path.NewBuilder().WithRoot().WithCollectionItem("foo").Build())
	require.NotNil(t, foo)
	assert.Equal(t, node.Added, foo.State())
	assert.Equal(t, "/[foo]", foo.Path().String())

	baz := root.ChildAt(path.Item("baz"))
	require.NotNil(t, baz)
	assert.Equal(t, node.Removed, baz.State())
	_, ok := baz.Working()
	assert.False(t, ok)
}

type user struct {
	ID    int
	Name  string
	Email string `diff:"mail"`
	Roles []string
}

func (u user) Identity() any { return u.ID }

func TestIdentifiableItems(t *testing.T) {
	working := []user{{ID: 1, Name: "Ann", Roles: []string{"admin"}}, {ID: 3, Name: "Cy"}}
	base := []user{{ID: 2, Name: "Bo"}, {ID: 1, Name: "Anne", Roles: []string{"admin", "dev"}}}

	root, err := New().Compare(working, base)
	require.NoError(t, err)

	ann := root.Child(path.NewBuilder().WithCollectionItem(user{ID: 1}).Build())
	require.NotNil(t, ann)
	assert.Equal(t, node.Changed, ann.State())
	assert.Equal(t, base[1], ann.Element().Value())

	assert.Equal(t, node.Changed, ann.ChildAt(path.Member("Name")).State())
	assert.Equal(t, node.Untouched, ann.ChildAt(path.Member("mail")).State())

	roles := ann.ChildAt(path.Member("Roles"))
	require.NotNil(t, roles)
	assert.Equal(t, node.Removed, roles.ChildAt(path.Item("dev")).State())

	assert.Equal(t, node.Added, root.ChildAt(path.Item(user{ID: 3})).State())
	assert.Equal(t, node.Removed, root.ChildAt(path.Item(user{ID: 2})).State())
}

type ring struct {
	Name string
	Next *ring
}

func TestCycles(t *testing.T) {
	a := &ring{Name: "a"}
	a.Next = a
	b := &ring{Name: "a"}
	b.Next = b

	root, err := New().Compare(a, b)
	require.NoError(t, err)
	assert.Equal(t, node.Untouched, root.State())
	next := root.ChildAt(path.Member("Next"))
	require.NotNil(t, next)
	assert.Equal(t, node.Circular, next.State())
	assert.False(t, next.HasChildren())

	// Different cycle lengths still terminate.
	c1 := &ring{Name: "a"}
	c2 := &ring{Name: "b", Next: c1}
	c1.Next = c2
	root, err = New().Compare(a, c1)
	require.NoError(t, err)
	assert.True(t, root.HasChanges())
	assert.NotEmpty(t, root.Find(node.Circular))

	// Only one side has reference identity at the top.
	v := ring{Name: "a"}
	v.Next = &v
	root, err = New().Compare(v, b)
	require.NoError(t, err)
	assert.False(t, root.HasChanges())
	next = root.ChildAt(path.Member("Next"))
	require.NotNil(t, next)
	assert.Equal(t, node.Untouched, next.State())
	assert.Equal(t, node.Circular, next.ChildAt(path.Member("Next")).State())
}

func TestMapCycles(t *testing.T) {
	w := map[string]any{"name": "x"}
	w["self"] = w
	b := map[string]any{"name": "y"}
	b["self"] = b

	root, err := New().Compare(w, b)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"/": "changed", "/{name}": "changed"}, changes(root))
	assert.Equal(t, node.Circular, root.ChildAt(path.Key("self")).State())
}

func TestNoOpOverrideLeavesResultUnchanged(t *testing.T) {
	working := map[string]any{"tags": []string{"a", "b"}, "name": "x"}
	base := map[string]any{"tags": []string{"b", "c"}, "name": "y"}

	plain, err := New().Compare(working, base)
	require.NoError(t, err)

	overridden, err := New(WithEqualityFor(func(a, b string) bool { return a == b })).Compare(working, base)
	require.NoError(t, err)

	assert.Equal(t, render(plain), render(overridden))
}

func TestInputsNotMutated(t *testing.T) {
	working := map[string]any{"users": []user{{ID: 1, Name: "Ann"}}, "n": 1}
	base := map[string]any{"users": []user{{ID: 1, Name: "Bo"}}, "m": map[string]int{"a": 1}}
	wantW := clone.Clone(working).(map[string]any)
	wantB := clone.Clone(base).(map[string]any)

	_, err := New().Compare(working, base)
	require.NoError(t, err)

	assert.Equal(t, wantW, working)
	assert.Equal(t, wantB, base)
}

func TestOmittedStates(t *testing.T) {
	working := map[string]int{"a": 1, "b": 2, "c": 3}
	base := map[string]int{"a": 1, "b": 5}

	root, err := New(WithOmittedStates(node.Untouched)).Compare(working, base)
	require.NoError(t, err)
	assert.Equal(t, []string{"/ changed", "/{b} changed", "/{c} added"}, render(root))

	root, err = New(WithOmittedStates(node.Added, node.Changed)).Compare(working, base)
	require.NoError(t, err)
	assert.Equal(t, node.Changed, root.State())
	assert.Equal(t, []string{"/ changed", "/{a} untouched"}, render(root))
}

func TestInclusion(t *testing.T) {
	type creds struct {
		User     string
		Password string
	}
	include := func(p path.Path) bool { return p.String() != "/Password" }

	root, err := New(WithInclusion(include)).Compare(creds{"a", "x"}, creds{"a", "y"})
	require.NoError(t, err)
	assert.Equal(t, node.Untouched, root.State())
	assert.Equal(t, node.Ignored, root.ChildAt(path.Member("Password")).State())
	assert.False(t, root.HasChanges())
}

func TestMaxDepth(t *testing.T) {
	working := map[string]any{"db": map[string]any{"host": "x"}, "n": 1}
	base := map[string]any{"db": map[string]any{"host": "y"}, "n": 1}

	root, err := New(WithMaxDepth(1)).Compare(working, base)
	require.NoError(t, err)
	db := root.ChildAt(path.Key("db"))
	require.NotNil(t, db)
	assert.Equal(t, node.Changed, db.State())
	assert.False(t, db.HasChildren())

	root, err = New(WithMaxDepth(2)).Compare(working, base)
	require.NoError(t, err)
	assert.True(t, root.ChildAt(path.Key("db")).HasChildren())
}

func TestFloatTolerance(t *testing.T) {
	near := func(a, b float64) bool { return math.Abs(a-b) <= 0.01 }
	working := map[string]any{"cpu": 1.004, "samples": []float64{0.5, 2.0}}
	base := map[string]any{"cpu": 1.0, "samples": []float64{2.001, 0.499}}

	root, err := New().Compare(working, base)
	require.NoError(t, err)
	assert.True(t, root.HasChanges())

	root, err = New(WithEqualityFor(near)).Compare(working, base)
	require.NoError(t, err)
	assert.False(t, root.HasChanges(), "%v", changes(root))
}

func TestLeaves(t *testing.T) {
	type event struct {
		At   time.Time
		Body []byte
		Ref  *int
	}
	utc := time.Unix(0, 0).UTC()
	local := utc.In(time.FixedZone("x", 3600))

	root, err := New().Compare(event{At: utc, Body: []byte("ab")}, event{At: local, Body: []byte("ac")})
	require.NoError(t, err)

	assert.Equal(t, node.Untouched, root.ChildAt(path.Member("At")).State())
	body := root.ChildAt(path.Member("Body"))
	assert.Equal(t, node.Changed, body.State())
	assert.False(t, body.HasChildren())

	ref := root.ChildAt(path.Member("Ref"))
	require.NotNil(t, ref)
	assert.Equal(t, node.Untouched, ref.State())
	_, wok := ref.Working()
	_, bok := ref.Base()
	assert.False(t, wok || bok)
}

func TestCustomEnumerator(t *testing.T) {
	upper := members.EnumeratorFunc(func(v any) ([]members.Member, bool) {
		u, ok := v.(user)
		if !ok {
			return nil, false
		}
		return []members.Member{{Name: "id", Value: u.ID}}, true
	})

	root, err := New(WithEnumerator(upper)).Compare(user{ID: 1, Name: "a"}, user{ID: 1, Name: "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/ untouched", "/id untouched"}, render(root))
}

func TestSharedRegistry(t *testing.T) {
	d1 := New(WithEqualityFor(func(a, b int) bool { return a%10 == b%10 }))
	d2 := New(WithRegistry(d1.Registry()))
	assert.Same(t, d1.Registry(), d2.Registry())

	root, err := d2.Compare([]int{1, 12}, []int{21, 2})
	require.NoError(t, err)
	assert.False(t, root.HasChanges())

	d1.Registry().Register(reflect.TypeFor[int](), nil)
	root, err = d2.Compare([]int{1, 12}, []int{21, 2})
	require.NoError(t, err)
	assert.True(t, root.HasChanges())
}
