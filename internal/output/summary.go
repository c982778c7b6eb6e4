// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/dustin/go-humanize/english"

	"github.com/tfctl/objdiff/internal/node"
)

// Summary counts records by state along with the size of the compared tree.
type Summary struct {
	Added    int
	Removed  int
	Changed  int
	Circular int
	Ignored  int
	Nodes    int
}

// Summarize counts the records and the nodes under root.
func Summarize(root *node.Node, records []map[string]interface{}) Summary {
	var s Summary
	root.Visit(node.VisitorFunc(func(*node.Node, *node.Visit) { s.Nodes++ }))

	for _, record := range records {
		state, _ := record[KeyState].(string)
		st, err := node.ParseState(state)
		if err != nil {
			continue
		}
		switch st {
		case node.Added:
			s.Added++
		case node.Removed:
			s.Removed++
		case node.Changed:
			s.Changed++
		case node.Circular:
			s.Circular++
		case node.Ignored:
			s.Ignored++
		}
	}
	return s
}

// Changes is the number of added, removed and changed records.
func (s Summary) Changes() int { return s.Added + s.Removed + s.Changed }

func (s Summary) String() string {
	counts := []struct {
		n     int
		label string
	}{
		{s.Added, "added"},
		{s.Removed, "removed"},
		{s.Changed, "changed"},
		{s.Circular, "circular"},
		{s.Ignored, "ignored"},
	}

	var parts []string
	for _, c := range counts {
		if c.n > 0 {
			parts = append(parts, humanize.Comma(int64(c.n))+" "+c.label)
		}
	}

	nodes := humanize.Comma(int64(s.Nodes)) + " " + english.PluralWord(s.Nodes, "node", "")
	if len(parts) == 0 {
		return "no differences across " + nodes
	}
	return strings.Join(parts, ", ") + " across " + nodes
}
