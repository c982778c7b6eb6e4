// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// docsgen renders markdown, man and tldr pages for every objdiff subcommand
// from the CLI definition itself. Usage: go run ./tools/docsgen <docsdir>
package main

import (
	"embed"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/command"
	"github.com/tfctl/objdiff/internal/meta"
)

//go:embed templates/*.tmpl
var templates embed.FS

type Flag struct {
	ID          string
	Syntax      string
	Description string
	Default     string
}

type Subcommand struct {
	ID    string
	Short string
	Usage string
	Flags []Flag
}

type TemplateData struct {
	Subcommand
	Date    string
	Version string
	IDUpper string
}

type Outputs struct {
	Template string
	Folder   string
	Prefix   string
	Suffix   string
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "usage: docsgen <docsdir>")
		os.Exit(1)
	}
	docs := os.Args[1]

	tmpl, err := template.ParseFS(templates, "templates/*.tmpl")
	if err != nil {
		panic(err)
	}

	types := []Outputs{
		{Template: "objdiff.md.tmpl", Folder: filepath.Join(docs, "commands"), Suffix: ".md"},
		{Template: "objdiff.man.tmpl", Folder: filepath.Join(docs, "man", "share", "man1"), Prefix: "objdiff-", Suffix: ".1"},
		{Template: "objdiff.tldr.tmpl", Folder: filepath.Join(docs, "tldr"), Prefix: "objdiff-", Suffix: ".md"},
	}

	version := getVersion()
	for _, sub := range subcommands(command.NewApp(meta.Meta{})) {
		metadata := TemplateData{
			Subcommand: sub,
			Date:       time.Now().Format("January 2, 2006"),
			Version:    version,
			IDUpper:    strings.ToUpper(sub.ID),
		}

		for _, t := range types {
			if err := os.MkdirAll(t.Folder, 0755); err != nil {
				panic(err)
			}

			name := filepath.Join(t.Folder, t.Prefix+sub.ID+t.Suffix)
			fmt.Println("Generating", name)
			file, err := os.Create(name)
			if err != nil {
				panic(err)
			}
			if err := render(file, tmpl, t.Template, metadata); err != nil {
				panic(err)
			}
			file.Close()
		}
	}
}

func render(w io.Writer, tmpl *template.Template, name string, data TemplateData) error {
	return tmpl.ExecuteTemplate(w, name, data)
}

// subcommands describes the app's subcommands with their flags sorted by name.
func subcommands(app *cli.Command) []Subcommand {
	var subs []Subcommand
	for _, cmd := range app.Commands {
		sub := Subcommand{ID: cmd.Name, Short: cmd.Usage, Usage: cmd.UsageText}
		for _, f := range cmd.Flags {
			if vf, ok := f.(cli.VisibleFlag); ok && !vf.IsVisible() {
				continue
			}
			sub.Flags = append(sub.Flags, describe(f))
		}
		sort.Slice(sub.Flags, func(i, j int) bool {
			return sub.Flags[i].ID < sub.Flags[j].ID
		})
		subs = append(subs, sub)
	}
	return subs
}

func describe(f cli.Flag) Flag {
	names := f.Names()
	syntax := make([]string, 0, len(names))
	for _, n := range names {
		if len(n) == 1 {
			syntax = append(syntax, "-"+n)
		} else {
			syntax = append(syntax, "--"+n)
		}
	}

	out := Flag{ID: names[0], Syntax: strings.Join(syntax, ", ")}
	if df, ok := f.(cli.DocGenerationFlag); ok {
		out.Description = df.GetUsage()
		if df.TakesValue() {
			out.Default = df.GetValue()
		}
	}
	return out
}

// getVersion returns the version string from git tags, stripping the leading
// "v" prefix. Falls back to "dev" if git describe fails.
func getVersion() string {
	out, err := exec.Command("git", "describe", "--tags", "--abbrev=0").Output()
	if err != nil {
		return "dev"
	}

	version := strings.TrimSpace(string(out))
	return strings.TrimPrefix(version, "v")
}
