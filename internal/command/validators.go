// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/node"
	"github.com/tfctl/objdiff/internal/output"
	"github.com/tfctl/objdiff/internal/source"
)

type FlagValidatorType func(any) error

func FlagValidators(value any, validators ...FlagValidatorType) error {
	for _, v := range validators {
		if err := v(value); err != nil {
			return err
		}
	}
	return nil
}

// GlobalFlagsValidator checks flag values that depend on the record model.
func GlobalFlagsValidator(_ context.Context, c *cli.Command) error {
	return FlagValidators(c.String("sort"), SortValidator)
}

// SortValidator accepts a sort spec naming only change record keys.
func SortValidator(value any) error {
	s, _ := value.(string)
	keys := []string{output.KeyPath, output.KeyState, output.KeyDepth, output.KeyWorking, output.KeyBase}
	for _, field := range splitList(s) {
		field = strings.TrimLeft(field, "-!")
		if !slices.Contains(keys, field) {
			return fmt.Errorf("cannot sort by %q, must be one of %v", field, keys)
		}
	}
	return nil
}

func oneOf(valid ...string) FlagValidatorType {
	return func(value any) error {
		s, _ := value.(string)
		if !slices.Contains(valid, s) {
			return fmt.Errorf("must be one of %v", valid)
		}
		return nil
	}
}

var (
	OutputValidator = oneOf("text", "json", "yaml")
	ColorValidator  = oneOf("auto", "always", "never")
)

// FormatValidator accepts the input format names source.ParseFormat knows.
func FormatValidator(value any) error {
	s, _ := value.(string)
	_, err := source.ParseFormat(s)
	return err
}

// StatesValidator accepts a comma-separated list of node state names.
func StatesValidator(value any) error {
	s, _ := value.(string)
	for _, name := range splitList(s) {
		if _, err := node.ParseState(name); err != nil {
			return err
		}
	}
	return nil
}
