// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/staranto/pokedexgo/internal/meta"
)

const bashCompletionScript = `# bash completion for pokedex
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_pokedex()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    local common="--store --table --bucket --prefix --region --profile --endpoint --base-url --limit --retries --cache-hours --color -c --no-color --output -o"

    case "$prev" in
        --output|-o)
            COMPREPLY=( $(compgen -W "text json yaml" -- "$cur") )
            return 0
            ;;
        --store)
            COMPREPLY=( $(compgen -W "dynamodb s3 memory" -- "$cur") )
            return 0
            ;;
    esac

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "play get init-table completion --help --version $common" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    case "$cmd" in
        completion)
            COMPREPLY=( $(compgen -W "bash zsh" -- "$cur") )
            return 0
            ;;
        play|get|init-table)
            COMPREPLY=( $(compgen -W "$common --tldr" -- "$cur") )
            ;;
        *)
            COMPREPLY=( $(compgen -W "$common" -- "$cur") )
            ;;
    esac
    return 0
}

complete -F _pokedex pokedex
`

const zshCompletionScript = `#compdef pokedex

_pokedex() {
  local -a cmds
  cmds=(
    'play:interactive random Pokémon loop'
    'get:look up one Pokémon by name'
    'init-table:create the DynamoDB collection table'
    'completion:generate shell completion script'
  )

  local -a common
  common=(
  '--store[record store backend]:store:(dynamodb s3 memory)'
  '--table[DynamoDB table name]:table'
  '--bucket[S3 bucket]:bucket'
  '--prefix[S3 key prefix]:prefix'
  '--region[AWS region]:region'
  '--profile[AWS profile]:profile'
  '--endpoint[store endpoint]:url'
  '--base-url[catalog API base URL]:url'
  '--limit[listing size]:limit'
  '--retries[catalog retries]:retries'
  '--cache-hours[listing cache hours]:hours'
  '(-c --color --no-color)'{-c,--color}'[enable colored text]'
  '(-c --color --no-color)--no-color[disable colored text]'
  '(-o --output)'{-o,--output}'[output format]:format:(text json yaml)'
  )

  if (( CURRENT == 2 )); then
    _describe -t commands 'pokedex commands' cmds
    return
  fi

  local curcontext="$curcontext" state line
  case $words[2] in
    get)
      _arguments -C $common '--tldr[show tldr page]' '1:name'
      ;;
    play|init-table)
      _arguments -C $common '--tldr[show tldr page]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _pokedex pokedex
`

func CompletionCommandAction(ctx context.Context, cmd *cli.Command) error {
	out := GetMeta(cmd).Out
	if out == nil {
		out = os.Stdout
	}

	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(out, bashCompletionScript)
	case "zsh":
		fmt.Fprint(out, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		if strings.HasSuffix(sh, "zsh") {
			fmt.Fprint(out, zshCompletionScript)
		} else if strings.HasSuffix(sh, "bash") {
			fmt.Fprint(out, bashCompletionScript)
		} else {
			fmt.Fprintln(os.Stderr, "usage: pokedex completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func CompletionCommandBuilder(cmd *cli.Command, meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "pokedex completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: CompletionCommandAction,
	}
}
