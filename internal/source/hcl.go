// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package source

import (
	"encoding/json"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// parseHCL decodes native HCL syntax. Attributes become map entries and
// blocks nest under their type and labels; repeated blocks at the same
// address become a list. Expressions that need an evaluation context, such
// as variable references or function calls, are kept as "${source}" strings.
func parseHCL(data []byte, name string) (any, error) {
	file, diags := hclsyntax.ParseConfig(data, name, hcl.InitialPos)
	if diags.HasErrors() {
		return nil, diags
	}

	body, ok := file.Body.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("unexpected body type %T", file.Body)
	}
	return bodyValue(body, data)
}

func bodyValue(body *hclsyntax.Body, src []byte) (map[string]any, error) {
	out := make(map[string]any, len(body.Attributes)+len(body.Blocks))

	for name, attr := range body.Attributes {
		v, err := exprValue(attr.Expr, src)
		if err != nil {
			return nil, fmt.Errorf("attribute %s: %w", name, err)
		}
		out[name] = v
	}

	for _, block := range body.Blocks {
		inner, err := bodyValue(block.Body, src)
		if err != nil {
			return nil, fmt.Errorf("block %s: %w", block.Type, err)
		}
		if err := insertBlock(out, append([]string{block.Type}, block.Labels...), inner); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func insertBlock(out map[string]any, keys []string, body map[string]any) error {
	m := out
	for _, k := range keys[:len(keys)-1] {
		next, ok := m[k]
		if !ok {
			nm := map[string]any{}
			m[k] = nm
			m = nm
			continue
		}
		nm, ok := next.(map[string]any)
		if !ok {
			return fmt.Errorf("block %v conflicts with attribute %s", keys, k)
		}
		m = nm
	}

	last := keys[len(keys)-1]
	switch existing := m[last].(type) {
	case nil:
		m[last] = body
	case []any:
		m[last] = append(existing, body)
	case map[string]any:
		m[last] = []any{existing, body}
	default:
		return fmt.Errorf("block %v conflicts with attribute %s", keys, last)
	}
	return nil
}

func exprValue(expr hclsyntax.Expression, src []byte) (any, error) {
	v, diags := expr.Value(nil)
	if diags.HasErrors() {
		rng := expr.Range()
		return "${" + string(rng.SliceBytes(src)) + "}", nil
	}
	return ctyValue(v)
}

func ctyValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, nil
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}
