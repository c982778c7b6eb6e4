// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"os/exec"

	altsrc "github.com/urfave/cli-altsrc/v3"
	yaml "github.com/urfave/cli-altsrc/v3/yaml"
	"github.com/urfave/cli/v3"
)

var tldrFlag *cli.BoolFlag = &cli.BoolFlag{
	Name:        "tldr",
	Usage:       "show tldr page",
	Hidden:      !pathHas("tldr"),
	HideDefault: true,
}

// NewGlobalFlags returns the presentation flags shared by commands. params[0]
// is the command namespace and params[1] the config file; when both are given
// the flags fall back to "<ns>.<flag>" and then "<flag>" in that file.
func NewGlobalFlags(params ...string) (flags []cli.Flag) {
	where := &cli.StringFlag{
		Name:    "where",
		Aliases: []string{"w"},
		Usage:   "comma-separated list of filters over change records (path, state, working, base)",
	}
	sort := &cli.StringFlag{
		Name:    "sort",
		Aliases: []string{"s"},
		Usage:   "comma-separated list of record keys to sort by, - for descending",
	}
	summary := &cli.BoolFlag{
		Name:  "summary",
		Usage: "print a summary line after the changes",
		Value: false,
	}

	if len(params) == 2 && params[1] != "" {
		where = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], where)
		sort = NameSpacedValueChainFlagFromConfigFile(params[0], params[1], sort)
		summary.Sources = configSources(params[0], params[1], summary.Name)
	}

	flags = []cli.Flag{
		&cli.StringFlag{
			Name:    "color",
			Aliases: []string{"c"},
			Usage:   "colored text output: auto, always or never",
			Validator: func(value string) error {
				return FlagValidators(value, ColorValidator)
			},
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "output format: text, json or yaml",
			Validator: func(value string) error {
				return FlagValidators(value, OutputValidator)
			},
		},
		sort,
		summary,
		tldrFlag,
		where,
	}

	return
}

// NameSpacedValueChainFlagFromConfigFile adds namespaced and global config file
// sources to the given flag's Sources chain.
func NameSpacedValueChainFlagFromConfigFile(ns string, path string, flag *cli.StringFlag) *cli.StringFlag {
	src := yaml.YAML(ns+"."+flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	src = yaml.YAML(flag.Name, altsrc.StringSourcer(path))
	flag.Sources.Chain = append(flag.Sources.Chain, src)

	return flag
}

// configSources is the source chain NameSpacedValueChainFlagFromConfigFile
// builds, for flags that are not strings. No path means no sources.
func configSources(ns string, path string, name string) cli.ValueSourceChain {
	if path == "" {
		return cli.NewValueSourceChain()
	}
	return cli.NewValueSourceChain(
		yaml.YAML(ns+"."+name, altsrc.StringSourcer(path)),
		yaml.YAML(name, altsrc.StringSourcer(path)),
	)
}

// pathHas reports whether target is an executable on PATH.
func pathHas(target string) bool {
	_, err := exec.LookPath(target)
	return err == nil
}
