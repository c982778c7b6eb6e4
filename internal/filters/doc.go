// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package filters provides the two kinds of filtering objdiff offers.
//
// Rules decide which paths the differ descends into. They are glob patterns
// over plain paths such as /spec/containers/web/image, each optionally
// negated with a leading '!'. The last matching rule wins and unmatched paths
// are included. Excluded paths are reported as ignored.
//
//   - "!/status" : ignore the status member and everything below it
//   - "!/metadata/*,/metadata/labels" : ignore metadata except labels
//   - "!/**/password" : ignore every password member
//
// Filters select which change records are reported. They are
// key-operator-target expressions over a record's fields (path, state,
// working, base), combined with a configurable delimiter (default: comma).
//
// Operators include:
//
//   - = : exact match (supports negation with !=)
//   - ^ : prefix match (supports negation with !^)
//   - ~ : case-insensitive match (supports negation with !~)
//   - < : less than
//   - > : greater than
//   - @ : contains (supports negation with !@)
//   - / : regex match (supports negation with !/)
//
// Examples:
//
//   - "state=changed" : only changed values
//   - "path^/spec" : only changes under spec
//   - "working.replicas>3" : only changes whose new replicas exceed 3
//
// OBJDIFF_FILTER_DELIM replaces the comma for specs whose values contain one.
package filters
