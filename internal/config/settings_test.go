// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"testing"

	"github.com/hashicorp/go-multierror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tfctl/objdiff/internal/node"
)

func TestLoadSettings(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		s, err := LoadSettings()
		require.NoError(t, err)

		assert.Equal(t, 3, s.MaxDepth)
		assert.Equal(t, "yaml", s.Output)
		assert.Equal(t, "never", s.Color)
		assert.Equal(t, 48, s.Cache.Clean)
		assert.Equal(t, []string{"!/metadata/**", "/metadata/labels/**"}, s.Filters)

		states, err := s.OmittedStates()
		require.NoError(t, err)
		assert.Equal(t, []node.State{node.Untouched, node.Ignored}, states)
	})
}

func TestLoadSettings_Defaults(t *testing.T) {
	withConfig(t, "simple.yaml", func(t *testing.T) {
		s, err := LoadSettings()
		require.NoError(t, err)
		assert.Equal(t, DefaultSettings, s)
	})
}

func TestLoadSettings_ReportsEveryProblem(t *testing.T) {
	withConfig(t, "bad-settings.yaml", func(t *testing.T) {
		_, err := LoadSettings()
		require.Error(t, err)

		var merr *multierror.Error
		require.ErrorAs(t, err, &merr)
		assert.Len(t, merr.Errors, 4)
		assert.Contains(t, err.Error(), "max_depth")
		assert.Contains(t, err.Error(), "bogus")
	})
}

func TestDecodeSettings_WeakTypes(t *testing.T) {
	s, err := DecodeSettings(map[string]any{
		"max_depth":       "2",
		"float_tolerance": 0.5,
		"omit":            "untouched,circular",
	})
	require.NoError(t, err)
	assert.Equal(t, 2, s.MaxDepth)
	assert.InDelta(t, 0.5, s.FloatTolerance, 1e-9)
	assert.Equal(t, []string{"untouched", "circular"}, s.Omit)
	assert.Equal(t, "text", s.Output)

	_, err = DecodeSettings(map[string]any{"max_depth": map[string]any{"a": 1}})
	assert.Error(t, err)
}
