// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"gopkg.in/yaml.v3"

	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/node"
)

// Formats accepted by Options.Format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// Options controls SliceDiceSpit.
type Options struct {
	Format  string
	Color   bool
	Where   string
	Sort    string
	Summary bool
}

// entry fixes the key order of emitted JSON and YAML records.
type entry struct {
	Path    string      `json:"path" yaml:"path"`
	State   string      `json:"state" yaml:"state"`
	Working interface{} `json:"working,omitempty" yaml:"working,omitempty"`
	Base    interface{} `json:"base,omitempty" yaml:"base,omitempty"`
}

// SliceDiceSpit collects the change records under root, filters and sorts
// them and writes them to w in the requested format. The summary describes
// the records that were written.
func SliceDiceSpit(root *node.Node, opts Options, w io.Writer) (Summary, error) {
	if w == nil {
		w = os.Stdout
	}

	records := Where(Collect(root), opts.Where)
	SortDataset(records, opts.Sort)
	summary := Summarize(root, records)

	var err error
	switch opts.Format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		err = enc.Encode(entries(records))
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err = enc.Encode(entries(records)); err == nil {
			err = enc.Close()
		}
	case FormatText, "":
		err = TextWriter(records, opts.Color, w)
		if err == nil && opts.Summary {
			_, err = fmt.Fprintln(w, summary)
		}
	default:
		return summary, fmt.Errorf("unknown output format: %s", opts.Format)
	}
	if err != nil {
		return summary, fmt.Errorf("failed to write %s output: %w", opts.Format, err)
	}
	return summary, nil
}

func entries(records []map[string]interface{}) []entry {
	out := make([]entry, 0, len(records))
	for _, r := range records {
		e := entry{Working: r[KeyWorking], Base: r[KeyBase]}
		e.Path, _ = r[KeyPath].(string)
		e.State, _ = r[KeyState].(string)
		out = append(out, e)
	}
	return out
}

// TextWriter writes one line per record: a state marker, the path and, for
// leaves, the values involved.
func TextWriter(records []map[string]interface{}, color bool, w io.Writer) error {
	styles := newStyles(w, color)

	for _, r := range records {
		state, _ := r[KeyState].(string)
		st, _ := node.ParseState(state)
		path, _ := r[KeyPath].(string)

		marker := styles.render(st, markers[st])
		line := fmt.Sprintf("%s %s", marker, path)

		working, hasWorking := r[KeyWorking]
		base, hasBase := r[KeyBase]
		switch {
		case hasWorking && hasBase:
			line += fmt.Sprintf(": %s → %s", formatValue(base), styles.render(st, formatValue(working)))
		case hasWorking:
			line += ": " + styles.render(st, formatValue(working))
		case hasBase:
			line += ": " + styles.render(st, formatValue(base))
		}

		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

var markers = map[node.State]string{
	node.Untouched: " ",
	node.Added:     "+",
	node.Removed:   "-",
	node.Changed:   "~",
	node.Circular:  "↻",
	node.Ignored:   "!",
}

// formatValue quotes strings so that "1" and 1 read differently.
func formatValue(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(t)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	}
	if b, err := json.Marshal(v); err == nil {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

type styles struct {
	enabled bool
	byState map[node.State]lipgloss.Style
}

// newStyles builds per-state styles. Colors come from the "colors.<state>"
// config keys, falling back to defaults that suit light and dark terminals.
func newStyles(w io.Writer, enabled bool) styles {
	s := styles{enabled: enabled, byState: map[node.State]lipgloss.Style{}}
	if !enabled {
		return s
	}

	r := lipgloss.NewRenderer(w)
	r.SetColorProfile(termenv.ANSI256)

	defaults := map[node.State]lipgloss.AdaptiveColor{
		node.Added:    {Light: "#1a7f37", Dark: "#3fb950"},
		node.Removed:  {Light: "#cf222e", Dark: "#f85149"},
		node.Changed:  {Light: "#9a6700", Dark: "#d29922"},
		node.Circular: {Light: "#8250df", Dark: "#a371f7"},
		node.Ignored:  {Light: "#6e7781", Dark: "#8b949e"},
	}
	for st, def := range defaults {
		style := r.NewStyle()
		if c, err := config.GetString("colors." + st.String()); err == nil && c != "" {
			style = style.Foreground(lipgloss.Color(c))
		} else {
			style = style.Foreground(def)
		}
		s.byState[st] = style
	}
	return s
}

func (s styles) render(st node.State, text string) string {
	if !s.enabled {
		return text
	}
	style, ok := s.byState[st]
	if !ok {
		return text
	}
	return style.Render(text)
}
