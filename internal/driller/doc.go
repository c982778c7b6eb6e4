// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package driller extracts values from JSON documents with dotted paths. The
// CLI uses it to narrow a document to a sub-tree before comparing (--select)
// and the filters package uses it to read change record fields.
package driller
