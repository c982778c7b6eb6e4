// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"errors"
	"fmt"
	"math"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/aws"
	"github.com/tfctl/objdiff/internal/cacheutil"
	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/differ"
	"github.com/tfctl/objdiff/internal/driller"
	"github.com/tfctl/objdiff/internal/filters"
	"github.com/tfctl/objdiff/internal/log"
	"github.com/tfctl/objdiff/internal/meta"
	"github.com/tfctl/objdiff/internal/output"
	"github.com/tfctl/objdiff/internal/picker"
	"github.com/tfctl/objdiff/internal/source"
)

// ErrDifferences is returned by diff when --exit-code is set and changes were
// reported.
var ErrDifferences = errors.New("differences found")

// diffCommandAction loads WORKING and BASE, compares them and emits the change
// records.
func diffCommandAction(ctx context.Context, cmd *cli.Command) error {
	m := GetMeta(cmd)
	log.Debugf("executing action for %v", m.Args)

	if ShortCircuitTLDR(ctx, cmd, "diff") {
		return nil
	}

	settings, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	refs, err := documentRefs(ctx, cmd)
	if err != nil {
		return err
	}
	if refs == nil {
		log.Debugf("no versions selected")
		return nil
	}

	if err := cacheutil.Purge(settings.Cache.Clean); err != nil {
		log.WithError(err).Warnf("cache purge failed")
	}

	stdin, stdout, stderr := streams(m)
	format, _ := source.ParseFormat(cmd.String("format"))
	loader := &source.Loader{
		Format: format,
		Stdin:  stdin,
		S3:     s3ClientFunc(cmd),
	}

	working, err := loadDocument(ctx, loader, refs[0], cmd.String("select"))
	if err != nil {
		return err
	}
	base, err := loadDocument(ctx, loader, refs[1], cmd.String("select"))
	if err != nil {
		return err
	}

	opts, err := differOptions(settings)
	if err != nil {
		return err
	}
	root, err := differ.New(opts...).Compare(working, base)
	if err != nil {
		return fmt.Errorf("failed to compare: %w", err)
	}

	summary, err := output.SliceDiceSpit(root, output.Options{
		Format:  settings.Output,
		Color:   useColor(settings.Color, stdout),
		Where:   cmd.String("where"),
		Sort:    cmd.String("sort"),
		Summary: cmd.Bool("summary"),
	}, stdout)
	if err != nil {
		return err
	}

	// Structured output stays parseable; the summary goes to stderr.
	if cmd.Bool("summary") && settings.Output != output.FormatText {
		fmt.Fprintln(stderr, summary)
	}

	if cmd.Bool("exit-code") && summary.Changes() > 0 {
		return ErrDifferences
	}
	return nil
}

// loadDocument loads ref and narrows it to the --select path, if any.
func loadDocument(ctx context.Context, loader *source.Loader, ref string, sel string) (any, error) {
	doc, err := loader.Load(ctx, ref)
	if err != nil {
		return nil, err
	}
	if sel == "" {
		return doc.Data, nil
	}

	data, err := driller.Select(doc.Data, sel)
	if err != nil {
		return nil, fmt.Errorf("failed to select %s from %s: %w", sel, ref, err)
	}
	return data, nil
}

// resolveSettings reads the diff section of the config file and lets any
// flag the user set override it.
func resolveSettings(cmd *cli.Command) (config.Settings, error) {
	s, err := config.LoadSettings()
	if err != nil {
		return s, fmt.Errorf("failed to load settings: %w", err)
	}

	if cmd.IsSet("max-depth") {
		s.MaxDepth = int(cmd.Int("max-depth"))
	}
	if cmd.IsSet("float-tolerance") {
		s.FloatTolerance = cmd.Float("float-tolerance")
	}
	if cmd.IsSet("filter") {
		s.Filters = []string{cmd.String("filter")}
	}
	if cmd.IsSet("omit") {
		s.Omit = splitList(cmd.String("omit"))
	}
	if cmd.IsSet("output") {
		s.Output = cmd.String("output")
	}
	if cmd.IsSet("color") {
		s.Color = cmd.String("color")
	}

	return s, s.Validate()
}

// differOptions maps settings onto differ options.
func differOptions(s config.Settings) ([]differ.Option, error) {
	omit, err := s.OmittedStates()
	if err != nil {
		return nil, err
	}

	var rules []filters.Rule
	for _, spec := range s.Filters {
		rules = append(rules, filters.BuildRules(spec)...)
	}

	opts := []differ.Option{
		differ.WithMaxDepth(s.MaxDepth),
		differ.WithOmittedStates(omit...),
		differ.WithInclusion(filters.Predicate(rules)),
	}
	if tol := s.FloatTolerance; tol > 0 {
		opts = append(opts, differ.WithEqualityFor(func(a, b float64) bool {
			return math.Abs(a-b) <= tol
		}))
	}
	return opts, nil
}

// documentRefs returns the WORKING and BASE references. A lone s3:// URI
// without a version lists the object's versions and asks for two; nil means
// the prompt was cancelled.
func documentRefs(ctx context.Context, cmd *cli.Command) ([]string, error) {
	args := cmd.Args().Slice()
	if len(args) == 1 && aws.IsURI(args[0]) {
		u, err := aws.ParseURI(args[0])
		if err != nil {
			return nil, err
		}
		if u.VersionID == "" {
			return pickVersions(ctx, cmd, u)
		}
	}

	if len(args) != 2 {
		return nil, fmt.Errorf("diff needs WORKING and BASE documents, got %d argument(s)", len(args))
	}
	return args, nil
}

func pickVersions(ctx context.Context, cmd *cli.Command, u aws.URI) ([]string, error) {
	client, err := newS3Client(ctx, cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to create s3 client: %w", err)
	}
	versions, err := aws.ListVersions(ctx, client, u)
	if err != nil {
		return nil, err
	}

	picked, err := selectVersions(ctx, cmd, u, versions)
	if err != nil || picked == nil {
		return nil, err
	}
	log.Debugf("picked versions: working=%s base=%s", picked[0].ID, picked[1].ID)
	return []string{u.WithVersion(picked[0].ID).String(), u.WithVersion(picked[1].ID).String()}, nil
}

// selectVersions prompts on the command's streams. The prompt draws on stderr
// so stdout carries only the diff.
var selectVersions = func(ctx context.Context, cmd *cli.Command, u aws.URI, versions []aws.Version) ([]aws.Version, error) {
	stdin, _, stderr := streams(GetMeta(cmd))
	return picker.SelectVersions(u, versions,
		tea.WithContext(ctx), tea.WithInput(stdin), tea.WithOutput(stderr))
}

// newS3Client builds a client from the --profile, --region and --s3-endpoint
// flags.
var newS3Client = func(ctx context.Context, cmd *cli.Command) (aws.Client, error) {
	cfg, err := aws.LoadAWSConfig(ctx,
		aws.WithProfile(cmd.String("profile")),
		aws.WithRegion(cmd.String("region")),
	)
	if err != nil {
		return nil, err
	}
	return aws.NewS3(cfg, aws.WithEndpoint(cmd.String("s3-endpoint"))), nil
}

// s3ClientFunc hands newS3Client to the document loader.
func s3ClientFunc(cmd *cli.Command) source.S3ClientFunc {
	return func(ctx context.Context) (aws.ObjectGetter, error) {
		client, err := newS3Client(ctx, cmd)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// diffCommandBuilder constructs the cli.Command for "diff".
func diffCommandBuilder(meta meta.Meta) *cli.Command {
	ns := config.Section
	return (&CommandBuilder{
		Name:  ns,
		Usage: "compare two documents",
		UsageText: `objdiff diff [options] WORKING BASE
objdiff diff [options] s3://bucket/key

WORKING and BASE are files, - for stdin, or s3://bucket/key[?versionId=ID].
A single s3:// document without a version prompts for two of its versions.
JSON, YAML and HCL (.hcl, .tfvars) are read.`,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "exit-code",
				Usage: "exit with status 1 when changes are reported",
				Value: false,
			},
			&cli.StringFlag{
				Name:    "filter",
				Aliases: []string{"f"},
				Usage:   "comma-separated path globs to compare, ! to exclude (last match wins)",
			},
			&cli.FloatFlag{
				Name:  "float-tolerance",
				Usage: "treat numbers within this distance as equal",
			},
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"F"},
				Usage:   "input format: auto, json, yaml or hcl",
				Value:   "auto",
				Validator: func(value string) error {
					return FlagValidators(value, FormatValidator)
				},
			},
			&cli.IntFlag{
				Name:  "max-depth",
				Usage: "compare containers at this depth as whole values, 0 for unlimited",
			},
			&cli.StringFlag{
				Name:  "omit",
				Usage: "comma-separated states to leave out of the result, e.g. untouched",
				Validator: func(value string) error {
					return FlagValidators(value, StatesValidator)
				},
			},
			&cli.StringFlag{
				Name:    "profile",
				Usage:   "AWS profile for s3:// documents",
				Sources: cli.EnvVars("AWS_PROFILE"),
			},
			&cli.StringFlag{
				Name:  "region",
				Usage: "AWS region for s3:// documents",
			},
			&cli.StringFlag{
				Name:    "s3-endpoint",
				Usage:   "custom S3 endpoint, e.g. for MinIO",
				Sources: cli.EnvVars("OBJDIFF_S3_ENDPOINT"),
			},
			&cli.StringFlag{
				Name:    "select",
				Usage:   "compare only the sub-document at this dotted path in both inputs",
				Sources: configSources(ns, meta.Config.Source, "select"),
			},
		},
		Action: diffCommandAction,
		Meta:   meta,
	}).Build()
}
