// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package meta

import (
	"context"
	"io"

	"github.com/tfctl/objdiff/internal/config"
)

// Meta contains runtime metadata shared by commands: the CLI arguments, the
// loaded configuration and the streams commands read from and write to.
type Meta struct {
	Args        []string
	Config      config.Type
	Context     context.Context
	StartingDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}
