// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"fmt"
	"slices"

	"dario.cat/mergo"
	"github.com/hashicorp/go-multierror"
	"github.com/mitchellh/mapstructure"

	"github.com/tfctl/objdiff/internal/node"
)

// Section is the top-level key holding diff settings.
const Section = "diff"

// Settings are the engine and rendering defaults read from the diff section of
// the config file. CLI flags override them.
type Settings struct {
	MaxDepth       int           `mapstructure:"max_depth"`
	FloatTolerance float64       `mapstructure:"float_tolerance"`
	Filters        []string      `mapstructure:"filters"`
	Omit           []string      `mapstructure:"omit"`
	Output         string        `mapstructure:"output"`
	Color          string        `mapstructure:"color"`
	Cache          CacheSettings `mapstructure:"cache"`
}

// CacheSettings control the download cache for remote documents.
type CacheSettings struct {
	// Clean purges cache entries older than this many hours. Zero disables it.
	Clean int `mapstructure:"clean"`
}

// DefaultSettings are used for anything the config file leaves unset.
var DefaultSettings = Settings{
	Output: "text",
	Color:  "auto",
}

var (
	outputs = []string{"text", "json", "yaml"}
	colors  = []string{"auto", "always", "never"}
)

// LoadSettings decodes the diff section of the loaded config. A missing
// config file is not an error; the defaults are returned.
func LoadSettings() (Settings, error) {
	section, err := GetSection(Section)
	if err != nil {
		return Settings{}, err
	}
	return DecodeSettings(section)
}

// DecodeSettings turns a raw diff section into validated Settings. Keys that
// are not settings are left alone; the section also holds argument sets.
func DecodeSettings(raw map[string]any) (Settings, error) {
	var s Settings
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &s,
		WeaklyTypedInput: true,
		DecodeHook:       mapstructure.StringToSliceHookFunc(","),
	})
	if err != nil {
		return Settings{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Settings{}, fmt.Errorf("invalid %s settings: %w", Section, err)
	}

	if err := mergo.Merge(&s, DefaultSettings); err != nil {
		return Settings{}, err
	}

	return s, s.Validate()
}

// Validate reports every problem with s at once.
func (s Settings) Validate() error {
	var errs *multierror.Error

	if s.MaxDepth < 0 {
		errs = multierror.Append(errs, fmt.Errorf("max_depth must not be negative: %d", s.MaxDepth))
	}
	if s.FloatTolerance < 0 {
		errs = multierror.Append(errs, fmt.Errorf("float_tolerance must not be negative: %g", s.FloatTolerance))
	}
	if s.Cache.Clean < 0 {
		errs = multierror.Append(errs, fmt.Errorf("cache.clean must not be negative: %d", s.Cache.Clean))
	}
	if !slices.Contains(outputs, s.Output) {
		errs = multierror.Append(errs, fmt.Errorf("output must be one of %v: %q", outputs, s.Output))
	}
	if !slices.Contains(colors, s.Color) {
		errs = multierror.Append(errs, fmt.Errorf("color must be one of %v: %q", colors, s.Color))
	}
	if _, err := s.OmittedStates(); err != nil {
		errs = multierror.Append(errs, err)
	}

	return errs.ErrorOrNil()
}

// OmittedStates parses Omit.
func (s Settings) OmittedStates() ([]node.State, error) {
	states := make([]node.State, 0, len(s.Omit))
	for _, name := range s.Omit {
		st, err := node.ParseState(name)
		if err != nil {
			return nil, err
		}
		states = append(states, st)
	}
	return states, nil
}
