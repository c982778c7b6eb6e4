// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestConfig sets OBJDIFF_CFG_FILE to point to a test config file and
// resets the global Config so the next getter reloads.
func setupTestConfig(t *testing.T, testdataFile string) {
	t.Helper()

	absPath, err := filepath.Abs(filepath.Join("testdata", testdataFile))
	require.NoError(t, err, "failed to get absolute path for test config")

	t.Setenv(EnvFile, absPath)
	Config = Type{}
	t.Cleanup(func() { Config = Type{} })
}

// withConfig is a helper that sets up a test config and executes a test function.
func withConfig(t *testing.T, testFile string, fn func(t *testing.T)) {
	t.Helper()
	setupTestConfig(t, testFile)
	_, _ = Load()
	fn(t)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name      string
		testFile  string
		wantErr   bool
		checkFunc func(*testing.T, Type)
	}{
		{
			name:     "simple string values",
			testFile: "simple.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Equal(t, "us-east-1", cfg.Data["region"])
			},
		},
		{
			name:     "nested structure",
			testFile: "nested.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				diff, ok := cfg.Data["diff"].(map[string]interface{})
				require.True(t, ok, "diff should be a map")
				assert.Equal(t, "yaml", diff["output"])
			},
		},
		{
			name:     "empty file",
			testFile: "empty.yaml",
			checkFunc: func(t *testing.T, cfg Type) {
				assert.NotEmpty(t, cfg.Source)
				assert.Empty(t, cfg.Data)
			},
		},
		{
			name:     "invalid yaml",
			testFile: "invalid.yaml",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setupTestConfig(t, tt.testFile)

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}
}

func TestLoad_ExplicitPath(t *testing.T) {
	t.Setenv(EnvFile, "/nonexistent/path/objdiff.yaml")
	t.Cleanup(func() { Config = Type{} })

	cfg, err := Load(filepath.Join("testdata", "simple.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "my-bucket", cfg.Data["bucket"])
}

func TestLoad_NoConfigFile(t *testing.T) {
	t.Setenv(EnvFile, "/nonexistent/path/objdiff.yaml")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoad_CfgFileIsDirectory(t *testing.T) {
	t.Setenv(EnvFile, "testdata")
	Config = Type{}

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "points to a directory")
}

func TestGetters(t *testing.T) {
	withConfig(t, "mixed-types.yaml", func(t *testing.T) {
		s, err := GetString("name")
		require.NoError(t, err)
		assert.Equal(t, "test-project", s)

		_, err = GetString("version")
		assert.Error(t, err)

		s, err = GetString("missing", "fallback")
		require.NoError(t, err)
		assert.Equal(t, "fallback", s)

		i, err := GetInt("version")
		require.NoError(t, err)
		assert.Equal(t, 1, i)

		i, err = GetInt("timeout")
		require.NoError(t, err)
		assert.Equal(t, 30, i)

		b, err := GetBool("enabled")
		require.NoError(t, err)
		assert.True(t, b)

		b, err = GetBool("missing", true)
		require.NoError(t, err)
		assert.True(t, b)

		_, err = GetBool("name")
		assert.Error(t, err)

		list, err := GetStringSlice("nested.inner.list")
		require.NoError(t, err)
		assert.Equal(t, []string{"one", "two three"}, list)

		_, err = GetStringSlice("nonstring_list")
		assert.Error(t, err)
		_, err = GetStringSlice("name")
		assert.Error(t, err)
	})
}

func TestNamespaceFallback(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		Config.Namespace = Section

		s, err := GetString("output")
		require.NoError(t, err)
		assert.Equal(t, "yaml", s)

		i, err := GetInt("max_depth")
		require.NoError(t, err)
		assert.Equal(t, 3, i)

		args, err := GetStringSlice("prod")
		require.NoError(t, err)
		assert.Equal(t, []string{"--filter", "!/status/**", "--exit-code"}, args)

		// Fully-qualified keys work regardless of namespace.
		s, err = GetString("aws.region")
		require.NoError(t, err)
		assert.Equal(t, "us-west-2", s)
	})
}

func TestGetSection(t *testing.T) {
	withConfig(t, "nested.yaml", func(t *testing.T) {
		m, err := GetSection("diff")
		require.NoError(t, err)
		assert.Equal(t, 3, m["max_depth"])

		m, err = GetSection("missing")
		require.NoError(t, err)
		assert.Empty(t, m)

		_, err = GetSection("diff.output")
		assert.Error(t, err)
	})
}
