// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package driller

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var segmentRegex = regexp.MustCompile(`^([a-zA-Z0-9_-]+)(\[(\d+|\*)?\])?$`)

// Driller navigates JSON using a flexible dot path supporting arrays. A
// segment may carry an index, e.g. "containers[1].image". A list holding a
// single element is stepped into without one.
func Driller(jsonData string, path string) gjson.Result {
	current := gjson.Parse(jsonData)
	if path == "" || path == "." {
		return current
	}

	for _, p := range strings.Split(path, ".") {
		matches := segmentRegex.FindStringSubmatch(p)
		if len(matches) == 0 {
			return gjson.Result{} // Invalid path segment
		}

		key := matches[1]

		// matches[2] is the [], which we can throw away.

		index := -1
		if matches[3] != "" && matches[3] != "*" {
			i, err := strconv.Atoi(matches[3])
			if err != nil {
				return gjson.Result{}
			}
			index = i
		}

		val := current.Get(key)
		if val.IsArray() {
			arr := val.Array()
			switch {
			case index == -1:
				if len(arr) == 1 && matches[3] != "*" {
					val = arr[0]
				}
				// Otherwise do nothing. We'll return the whole list.
			case index >= 0 && index < len(arr):
				val = arr[index]
			default:
				return gjson.Result{}
			}
		}

		current = val
	}

	return current
}

// Select narrows a decoded document to the value at path. The document is
// round-tripped through JSON, so the result is built from maps, slices and
// JSON scalars.
func Select(doc any, path string) (any, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document: %w", err)
	}

	result := Driller(string(raw), path)
	if !result.Exists() {
		return nil, fmt.Errorf("nothing found at %q", path)
	}
	return result.Value(), nil
}
