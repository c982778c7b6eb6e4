// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/tfctl/objdiff/internal/command"
	"github.com/tfctl/objdiff/internal/config"
	"github.com/tfctl/objdiff/internal/log"
	"github.com/tfctl/objdiff/internal/version"
)

var ctx = context.Background()

// boolFlags never take a separate value, so the argument after them is left
// alone by deduplicateFlags.
var boolFlags = map[string]bool{
	"--exit-code": true,
	"--help":      true,
	"-h":          true,
	"--summary":   true,
	"--tldr":      true,
	"--version":   true,
	"-v":          true,
}

func main() {
	os.Exit(realMain())
}

// handleVersion checks for --version/-v and returns whether it was handled.
func handleVersion(args []string) bool {
	for _, a := range args {
		if a == "--version" || a == "-v" {
			fmt.Println(version.Version)
			return true
		}
	}
	return false
}

// handleNakedCommand appends --help if no command is provided.
func handleNakedCommand(args []string) []string {
	if len(args) <= 1 {
		return append(args, "--help")
	}
	return args
}

// processCommandArgs handles command-specific argument processing.
func processCommandArgs(args []string) []string {
	if len(args) > 1 && args[1] == "completion" {
		// Short-circuit completion: pass args directly.
		return args
	}

	args = injectConfigSet(args, args[1]+".defaults", 2)
	args = processSetOnly(args)
	args = deduplicateFlags(args)
	log.Debugf("args after set processing: args=%v", args)
	return args
}

// injectConfigSet inserts the entries of the config list at key into args at
// insertIdx. Each entry may hold several words, e.g. "--output json".
func injectConfigSet(args []string, key string, insertIdx int) []string {
	entries, err := config.GetStringSlice(key)
	if err != nil {
		return args
	}
	return injectEntries(args, entries, insertIdx)
}

func injectEntries(args []string, entries []string, insertIdx int) []string {
	if len(entries) == 0 || insertIdx > len(args) {
		return args
	}

	var expanded []string
	for _, entry := range entries {
		expanded = append(expanded, splitFields(entry)...)
	}

	out := make([]string, 0, len(args)+len(expanded))
	out = append(out, args[:insertIdx]...)
	out = append(out, expanded...)
	return append(out, args[insertIdx:]...)
}

// processSetOnly expands every @set argument, from index 2 on, into the
// entries of the "<command>.<set>" config list. Unknown sets are dropped.
func processSetOnly(args []string) []string {
	if len(args) < 3 {
		return args
	}

	out := append([]string(nil), args[:2]...)
	for _, a := range args[2:] {
		if !strings.HasPrefix(a, "@") || len(a) == 1 {
			out = append(out, a)
			continue
		}
		key := args[1] + "." + a[1:]
		entries, err := config.GetStringSlice(key)
		if err != nil {
			log.Warnf("argument set %s not found in config: %v", a, err)
			continue
		}
		out = injectEntries(out, entries, len(out))
	}
	return out
}

// deduplicateFlags keeps only the last occurrence of each flag, along with its
// value, so later arguments override earlier ones (including those injected
// from config sets). Positional arguments and "-" are kept in place.
func deduplicateFlags(args []string) []string {
	if len(args) <= 2 {
		return args
	}

	type token struct {
		key   string
		parts []string
	}

	var tokens []token
	rest := args[2:]
	for i := 0; i < len(rest); i++ {
		a := rest[i]
		switch {
		case a == "--":
			for _, p := range rest[i:] {
				tokens = append(tokens, token{parts: []string{p}})
			}
			i = len(rest)
		case a == "-" || !strings.HasPrefix(a, "-"):
			tokens = append(tokens, token{parts: []string{a}})
		case strings.Contains(a, "="):
			tokens = append(tokens, token{key: a[:strings.Index(a, "=")], parts: []string{a}})
		case !boolFlags[a] && i+1 < len(rest) && (rest[i+1] == "-" || !strings.HasPrefix(rest[i+1], "-")):
			tokens = append(tokens, token{key: a, parts: []string{a, rest[i+1]}})
			i++
		default:
			tokens = append(tokens, token{key: a, parts: []string{a}})
		}
	}

	last := map[string]int{}
	for i, t := range tokens {
		if t.key != "" {
			last[t.key] = i
		}
	}

	out := append([]string(nil), args[:2]...)
	for i, t := range tokens {
		if t.key == "" || last[t.key] == i {
			out = append(out, t.parts...)
		}
	}
	return out
}

// splitFields splits a config set entry into arguments.
func splitFields(entry string) []string {
	return strings.Fields(entry)
}

// initAndRunApp initializes the app and runs it, returning the exit code.
func initAndRunApp(args []string) int {
	app, err := command.InitApp(ctx, args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app init err: err=%v", err)
		return 2
	}

	if err := app.Run(ctx, args); err != nil {
		if errors.Is(err, command.ErrDifferences) {
			return 1
		}
		fmt.Fprintln(os.Stderr, err)
		log.Debugf("app run err: err=%v", err)
		return 2
	}

	return 0
}

func realMain() int {
	log.InitLogger()

	args := os.Args
	log.Debugf("args captured: args=%v", args)

	if handleVersion(args) {
		return 0
	}

	args = handleNakedCommand(args)

	// If --help appears anywhere, skip command processing and let the CLI handle it.
	helpFound := false
	for _, a := range args {
		if a == "--help" || a == "-h" {
			helpFound = true
			break
		}
	}

	if !helpFound {
		args = processCommandArgs(args)
	}

	return initAndRunApp(args)
}
