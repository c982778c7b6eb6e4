// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package config provides loading and typed accessors for objdiff's user
// configuration. The configuration is a YAML document named by OBJDIFF_CFG_FILE
// or located in the user's configuration directory, typically:
//   - Linux/macOS: $XDG_CONFIG_HOME/objdiff.yaml or $HOME/.config/objdiff.yaml
//   - Windows: %APPDATA%/objdiff.yaml
//
// The diff section holds Settings (see LoadSettings) alongside named argument
// sets that the CLI expands from @name arguments.
package config
