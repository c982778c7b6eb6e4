// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package members enumerates the named members of composite values. The
// default StructEnumerator reads exported struct fields and honours a `diff`
// tag: `diff:"alias"` renames a member and `diff:"-"` hides it.
package members
