// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package output

import (
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/tfctl/objdiff/internal/filters"
	"github.com/tfctl/objdiff/internal/log"
	"github.com/tfctl/objdiff/internal/node"
)

// Record keys.
const (
	KeyPath    = "path"
	KeyState   = "state"
	KeyWorking = "working"
	KeyBase    = "base"
	KeyDepth   = "depth"
)

// Collect flattens the tree into change records in walk order. Every node
// whose state is not untouched yields a record, except a changed root, which
// only restates that something below it changed. Values are recorded for
// nodes without children; a side that is absent has no key.
func Collect(root *node.Node) []map[string]interface{} {
	var records []map[string]interface{}

	root.Visit(node.VisitorFunc(func(n *node.Node, _ *node.Visit) {
		if n.State() == node.Untouched || (n.IsRoot() && n.State() == node.Changed) {
			return
		}

		p := n.Path()
		record := map[string]interface{}{
			KeyPath:  p.String(),
			KeyState: n.State().String(),
			KeyDepth: p.Len(),
		}
		if !n.HasChildren() {
			if w, ok := n.Working(); ok {
				record[KeyWorking] = w
			}
			if b, ok := n.Base(); ok {
				record[KeyBase] = b
			}
		}
		records = append(records, record)
	}))

	return records
}

// Where keeps the records matching every filter in spec. Records are matched
// as JSON documents, so keys such as "working.port" reach into values.
func Where(records []map[string]interface{}, spec string) []map[string]interface{} {
	fs := filters.BuildFilters(spec)
	if len(fs) == 0 {
		return records
	}

	kept := records[:0:0]
	for _, record := range records {
		if filters.Apply(candidate(record), fs) {
			kept = append(kept, record)
		}
	}
	log.Debugf("where %q kept %d of %d records", spec, len(kept), len(records))
	return kept
}

// candidate renders a record for filter matching. Values json cannot encode
// fall back to their printed form.
func candidate(record map[string]interface{}) gjson.Result {
	b, err := json.Marshal(record)
	if err != nil {
		printable := make(map[string]interface{}, len(record))
		for k, v := range record {
			if _, err := json.Marshal(v); err != nil {
				v = fmt.Sprint(v)
			}
			printable[k] = v
		}
		b, _ = json.Marshal(printable)
	}
	return gjson.ParseBytes(b)
}
