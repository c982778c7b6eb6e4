// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package picker

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/tfctl/objdiff/internal/aws"
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Toggle key.Binding
	Go     key.Binding
	Quit   key.Binding
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Go, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Toggle, k.Go, k.Quit}}
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Toggle: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "toggle")),
	Go:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "diff")),
	Quit:   key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q/esc", "quit")),
}

var cursorStyle = lipgloss.NewStyle().Bold(true)

// SelectVersions asks the user for two of versions, which must be sorted
// newest first. The pick comes back as working (newer) then base (older). A
// cancelled prompt returns nil.
func SelectVersions(u aws.URI, versions []aws.Version, opts ...tea.ProgramOption) ([]aws.Version, error) {
	if len(versions) < 2 {
		return nil, fmt.Errorf("%s has %d version(s), need at least 2", u, len(versions))
	}

	p := tea.NewProgram(newModel(u, versions), opts...)
	m, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("version picker failed: %w", err)
	}
	return m.(model).picked(), nil
}

type model struct {
	title    string
	items    []aws.Version
	cursor   int
	selected []int
	done     bool
	help     help.Model
}

func newModel(u aws.URI, versions []aws.Version) model {
	return model{
		title: fmt.Sprintf("Select two versions of %s:", u),
		items: versions,
		help:  help.New(),
	}
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(k, keys.Quit):
		m.selected = nil
		return m, tea.Quit
	case key.Matches(k, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(k, keys.Down):
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}
	case key.Matches(k, keys.Toggle):
		m.selected = m.toggle(m.cursor)
	case key.Matches(k, keys.Go):
		if len(m.selected) == 2 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// toggle returns a fresh selection so copies of the model never share it.
func (m model) toggle(i int) []int {
	if at := slices.Index(m.selected, i); at >= 0 {
		return slices.Delete(slices.Clone(m.selected), at, at+1)
	}
	if len(m.selected) == 2 {
		return m.selected
	}
	return append(slices.Clone(m.selected), i)
}

func (m model) View() string {
	var b strings.Builder
	b.WriteString(m.title + "\n\n")
	for i, v := range m.items {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		mark := " "
		if slices.Contains(m.selected, i) {
			mark = "x"
		}
		latest := ""
		if v.Latest {
			latest = " (latest)"
		}

		row := fmt.Sprintf("%s [%s] %s  %s  %8s%s", cursor, mark, v.ID,
			v.LastModified.UTC().Format(time.RFC3339), humanize.Bytes(uint64(max(v.Size, 0))), latest)
		if m.cursor == i {
			row = cursorStyle.Render(row)
		}
		b.WriteString(row + "\n")
	}
	b.WriteString("\n" + m.help.View(keys) + "\n")
	return b.String()
}

// picked orders the selection newest first. Items are listed newest first, so
// that is index order.
func (m model) picked() []aws.Version {
	if !m.done || len(m.selected) != 2 {
		return nil
	}
	idx := slices.Sorted(slices.Values(m.selected))
	return []aws.Version{m.items[idx[0]], m.items[idx[1]]}
}
