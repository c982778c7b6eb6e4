// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package picker

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/objdiff/internal/aws"
)

var (
	uri = aws.URI{Bucket: "cfg", Key: "app.yaml"}
	t0  = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	versions = []aws.Version{
		{ID: "v3", LastModified: t0.Add(2 * time.Hour), Size: 2048, Latest: true},
		{ID: "v2", LastModified: t0.Add(time.Hour), Size: 1024},
		{ID: "v1", LastModified: t0, Size: 512},
	}
)

var (
	up    = tea.KeyMsg{Type: tea.KeyUp}
	down  = tea.KeyMsg{Type: tea.KeyDown}
	space = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
	esc   = tea.KeyMsg{Type: tea.KeyEsc}
	quit  = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}}
)

// press feeds msgs to m and returns the final model and the last command.
func press(m model, msgs ...tea.Msg) (model, tea.Cmd) {
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(model)
	}
	return m, cmd
}

func isQuit(t *testing.T, cmd tea.Cmd) bool {
	t.Helper()
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestPickTwo(t *testing.T) {
	// Select v1 first, then v3; the result is still newer first.
	m, cmd := press(newModel(uri, versions), down, down, space, up, up, space, enter)
	require.True(t, isQuit(t, cmd))

	got := m.picked()
	require.Len(t, got, 2)
	assert.Equal(t, "v3", got[0].ID)
	assert.Equal(t, "v1", got[1].ID)
}

func TestEnterNeedsTwo(t *testing.T) {
	m, cmd := press(newModel(uri, versions), space, enter)
	assert.False(t, isQuit(t, cmd))
	assert.Nil(t, m.picked())
}

func TestToggle(t *testing.T) {
	m, _ := press(newModel(uri, versions), space, down, space, down, space)
	assert.Equal(t, []int{0, 1}, m.selected, "a third pick is refused")

	m, _ = press(m, up, space)
	assert.Equal(t, []int{0}, m.selected)
}

func TestCursorBounds(t *testing.T) {
	m, _ := press(newModel(uri, versions), up, up)
	assert.Equal(t, 0, m.cursor)

	m, _ = press(m, down, down, down, down)
	assert.Equal(t, len(versions)-1, m.cursor)
}

func TestCancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{esc, quit} {
		m, cmd := press(newModel(uri, versions), space, down, space, k)
		assert.True(t, isQuit(t, cmd), k.String())
		assert.Nil(t, m.picked(), k.String())
	}
}

func TestView(t *testing.T) {
	m, _ := press(newModel(uri, versions), down, space)
	view := m.View()

	assert.Contains(t, view, "Select two versions of s3://cfg/app.yaml:")
	assert.Contains(t, view, "[ ] v3  2026-03-01T14:00:00Z")
	assert.Contains(t, view, "(latest)")
	assert.Contains(t, view, "> [x] v2")
	assert.Contains(t, view, "1.0 kB")
	assert.Contains(t, view, "toggle")
}

func TestSelectVersionsNeedsTwo(t *testing.T) {
	_, err := SelectVersions(uri, versions[:1])
	assert.EqualError(t, err, "s3://cfg/app.yaml has 1 version(s), need at least 2")
}
