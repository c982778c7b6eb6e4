// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v3"

	"github.com/tfctl/objdiff/internal/meta"
)

const bashCompletionScript = `# bash completion for objdiff
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_objdiff()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "diff completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --output -o --sort -s --summary --tldr --where -w"

    case "$cmd" in
        diff)
            local opts="$common --exit-code --filter -f --float-tolerance --format -F --max-depth --omit --profile --region --s3-endpoint --select"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --color|-c)
            COMPREPLY=( $(compgen -W "auto always never" -- "$cur") )
            return 0
            ;;
        --format|-F)
            COMPREPLY=( $(compgen -W "auto json yaml hcl" -- "$cur") )
            return 0
            ;;
        --omit)
            COMPREPLY=( $(compgen -W "untouched added removed changed circular ignored" -- "$cur") )
            return 0
            ;;
    esac

    if [[ "$cur" == -* ]]; then
        COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
        return 0
    fi

    # WORKING and BASE are documents.
    COMPREPLY=( $(compgen -f -- "$cur") )
    return 0
}

complete -F _objdiff objdiff
`

const zshCompletionScript = `#compdef objdiff

_objdiff() {
  local -a cmds
  cmds=(
    'diff:compare two documents'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '(-c --color)'{-c,--color}'[colored text output]:mode:(auto always never)'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  '(-s --sort)'{-s,--sort}'[record keys to sort by]:keys'
  '--summary[print a summary line]'
  '--tldr[show tldr page]'
  '(-w --where)'{-w,--where}'[filters over change records]:filters'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'objdiff commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    diff)
      _arguments -C \
        $common \
        '--exit-code[exit 1 when changes are reported]' \
        '(-f --filter)'{-f,--filter}'[path globs to compare]:globs' \
        '--float-tolerance[numeric tolerance]:tolerance' \
        '(-F --format)'{-F,--format}'[input format]:format:(auto json yaml hcl)' \
        '--max-depth[recursion limit]:depth' \
        '--omit[states to leave out]:states' \
        '--profile[AWS profile]:profile' \
        '--region[AWS region]:region' \
        '--s3-endpoint[custom S3 endpoint]:url' \
        '--select[sub-document path]:path' \
        '1:WORKING:_files' \
        '2:BASE:_files'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common '*:file:_files'
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _objdiff objdiff
`

// completionCommandAction prints the script for the named shell, or for
// $SHELL when no shell is named.
func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	_, stdout, stderr := streams(GetMeta(cmd))

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	} else if sh := os.Getenv("SHELL"); sh != "" {
		shell = filepath.Base(sh)
	}

	switch shell {
	case "bash":
		fmt.Fprint(stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(stdout, zshCompletionScript)
	default:
		fmt.Fprintln(stderr, "usage: objdiff completion [bash|zsh]")
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "objdiff completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
