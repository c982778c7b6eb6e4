// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format identifies how a document is decoded.
type Format int

const (
	FormatAuto Format = iota
	FormatJSON
	FormatYAML
	FormatHCL
)

var formatNames = map[Format]string{
	FormatAuto: "auto",
	FormatJSON: "json",
	FormatYAML: "yaml",
	FormatHCL:  "hcl",
}

func (f Format) String() string {
	if name, ok := formatNames[f]; ok {
		return name
	}
	return fmt.Sprintf("format(%d)", int(f))
}

// ParseFormat maps a format name to a Format. "yml" and "tfvars" are accepted
// as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "auto":
		return FormatAuto, nil
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "hcl", "tfvars":
		return FormatHCL, nil
	}
	return FormatAuto, fmt.Errorf("unknown format: %s", name)
}

// FormatOf guesses a format from a document name's extension.
func FormatOf(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	case ".hcl", ".tfvars", ".tf":
		return FormatHCL
	}
	return FormatAuto
}

// Parse decodes data in the given format. FormatAuto uses the extension of
// name and falls back to sniffing the content: JSON when it opens with a
// brace or bracket, YAML otherwise.
func Parse(data []byte, name string, f Format) (any, error) {
	if f == FormatAuto {
		f = FormatOf(name)
	}
	if f == FormatAuto {
		f = sniff(data)
	}

	var (
		doc any
		err error
	)
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, &doc)
	case FormatYAML:
		doc, err = parseYAML(data)
	case FormatHCL:
		doc, err = parseHCL(data, name)
	default:
		err = fmt.Errorf("unsupported format %s", f)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s as %s: %w", name, f, err)
	}
	return doc, nil
}

func sniff(data []byte) Format {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && (trimmed[0] == '{' || trimmed[0] == '[') {
		return FormatJSON
	}
	return FormatYAML
}

func parseYAML(data []byte) (any, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return normalize(doc), nil
}

// normalize rewrites YAML decoding results into the same model JSON decoding
// produces: string-keyed maps and float64 numbers.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, e := range t {
			t[k] = normalize(e)
		}
		return t
	case map[any]any:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[fmt.Sprint(k)] = normalize(e)
		}
		return out
	case []any:
		for i, e := range t {
			t[i] = normalize(e)
		}
		return t
	case int:
		return float64(t)
	case int64:
		return float64(t)
	case uint64:
		return float64(t)
	}
	return v
}
