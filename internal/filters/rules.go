// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package filters

import (
	"strings"

	"github.com/mattn/go-zglob"

	"github.com/tfctl/objdiff/internal/log"
	"github.com/tfctl/objdiff/internal/path"
)

// Rule includes or excludes the paths matching a glob Pattern. Patterns match
// the plain form of a path (see path.Path.Plain): "*" stays within a segment,
// "**" crosses segments.
type Rule struct {
	Pattern string `yaml:"pattern" json:"Pattern"`
	Exclude bool   `yaml:"exclude" json:"Exclude"`
}

// BuildRules parses a spec such as "!/metadata/*,/metadata/labels". A leading
// '!' excludes. Patterns that do not compile are logged and skipped.
func BuildRules(spec string) []Rule {
	var rules []Rule
	for _, s := range split(spec) {
		r := Rule{Pattern: s}
		if strings.HasPrefix(s, "!") {
			r = Rule{Pattern: strings.TrimPrefix(s, "!"), Exclude: true}
		}
		if !strings.HasPrefix(r.Pattern, "/") {
			r.Pattern = "/" + r.Pattern
		}
		if _, err := zglob.New(r.Pattern); err != nil {
			log.Errorf("invalid rule %q: %v", s, err)
			continue
		}
		rules = append(rules, r)
	}
	return rules
}

// Predicate returns an inclusion predicate for the differ. A path is included
// unless the last rule matching it excludes it. No rules means everything is
// included; nil is returned so the differ can skip the check.
func Predicate(rules []Rule) func(path.Path) bool {
	if len(rules) == 0 {
		return nil
	}
	return func(p path.Path) bool {
		plain := p.Plain()
		include := true
		for _, r := range rules {
			if ok, err := zglob.Match(r.Pattern, plain); err == nil && ok {
				include = !r.Exclude
			}
		}
		if !include {
			log.Tracef("excluded %s", plain)
		}
		return include
	}
}
