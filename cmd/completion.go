package cmd

import (
	"fmt"
	"os"
)

// Completion outputs shell completion scripts
func Completion(shell string) {
	switch shell {
	case "bash":
		fmt.Print(bashCompletion)
	case "zsh":
		fmt.Print(zshCompletion)
	case "fish":
		fmt.Print(fishCompletion)
	default:
		fmt.Fprintf(os.Stderr, "Unknown shell: %s\nSupported: bash, zsh, fish\n", shell)
		os.Exit(1)
	}
}

// Entry names are only completed when the password comes from the keyring
// or PASSLOCK_PASSWORD; stdin is closed so ls never prompts.
const bashCompletion = `_passlock() {
    local cur prev words cword
    _init_completion || return

    local commands="init add ls show tags edit rm history gen snapshots restore diff verify compact keyring config help completion"

    if [[ $cword -eq 1 ]]; then
        COMPREPLY=($(compgen -W "$commands" -- "$cur"))
        return
    fi

    local cmd="${words[1]}"
    case "$cmd" in
        add)
            COMPREPLY=($(compgen -W "-vault -u -url -notes -tags -g -n" -- "$cur"))
            ;;
        show|edit|rm|history)
            if [[ "$cur" == -* ]]; then
                COMPREPLY=($(compgen -W "-vault -p -name -u -url -notes -tags -g -n" -- "$cur"))
            else
                local names
                names=$(passlock ls </dev/null 2>/dev/null | awk 'NR>1 {print $2}')
                COMPREPLY=($(compgen -W "$names" -- "$cur"))
            fi
            ;;
        ls)
            COMPREPLY=($(compgen -W "-vault -url -tag" -- "$cur"))
            ;;
        gen)
            COMPREPLY=($(compgen -W "-n" -- "$cur"))
            ;;
        config)
            COMPREPLY=($(compgen -W "show save" -- "$cur"))
            ;;
        restore|diff)
            COMPREPLY=($(compgen -W "-vault -id" -- "$cur"))
            ;;
        keyring)
            COMPREPLY=($(compgen -W "save delete status" -- "$cur"))
            ;;
        help)
            COMPREPLY=($(compgen -W "$commands" -- "$cur"))
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "$cur"))
            ;;
    esac
}

complete -F _passlock passlock
`

const zshCompletion = `#compdef passlock

_passlock() {
    local -a commands
    commands=(
        'init:Create a new vault'
        'add:Add an entry'
        'ls:List entries'
        'show:Show an entry'
        'tags:List tags by number of entries'
        'edit:Edit an entry'
        'rm:Remove entries'
        'history:Show password history of an entry'
        'gen:Generate a random password'
        'snapshots:List previous vault versions'
        'restore:Restore a previous vault version'
        'diff:Compare a previous version with the vault'
        'verify:Check the master password and vault integrity'
        'compact:Compact the side-store'
        'keyring:Manage password in OS keyring'
        'config:Show or write the configuration file'
        'help:Show help for a command'
        'completion:Generate shell completions'
    )

    _arguments -C \
        '1: :->command' \
        '*: :->args'

    case "$state" in
        command)
            _describe -t commands 'passlock commands' commands
            ;;
        args)
            case "${words[2]}" in
                add)
                    _arguments \
                        '-u[Username]:username:' \
                        '-url[URL]:url:' \
                        '-notes[Notes]:notes:' \
                        '-tags[Comma separated tags]:tags:' \
                        '-g[Generate the password]' \
                        '-n[Generated password length]:length:'
                    ;;
                show|history)
                    _arguments \
                        '-p[Reveal passwords]' \
                        '*:entry:_passlock_entries'
                    ;;
                edit|rm)
                    _arguments '*:entry:_passlock_entries'
                    ;;
                restore|diff)
                    _arguments '-id[Snapshot ID]:id:'
                    ;;
                keyring)
                    _values 'subcommand' save delete status
                    ;;
                ls)
                    _arguments \
                        '-url[Entries for this site]:url:' \
                        '-tag[Entries with this tag]:tag:'
                    ;;
                config)
                    _values 'subcommand' show save
                    ;;
                help)
                    _describe -t commands 'passlock commands' commands
                    ;;
                completion)
                    _values 'shell' bash zsh fish
                    ;;
            esac
            ;;
    esac
}

_passlock_entries() {
    local -a names
    names=(${(f)"$(passlock ls </dev/null 2>/dev/null | awk 'NR>1 {print $2}')"})
    _describe -t entries 'vault entries' names
}

_passlock "$@"
`

const fishCompletion = `# passlock fish completions

set -l commands init add ls show tags edit rm history gen snapshots restore diff verify compact keyring config help completion

complete -c passlock -f

# Commands
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a init -d 'Create a new vault'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a add -d 'Add an entry'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a ls -d 'List entries'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a show -d 'Show an entry'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a tags -d 'List tags'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a config -d 'Show or write config'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a edit -d 'Edit an entry'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a rm -d 'Remove entries'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a history -d 'Show password history'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a gen -d 'Generate a password'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a snapshots -d 'List previous versions'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a restore -d 'Restore a previous version'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a diff -d 'Compare with a previous version'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a verify -d 'Verify the vault'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a compact -d 'Compact the side-store'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a keyring -d 'Manage password in OS keyring'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a help -d 'Show help'
complete -c passlock -n "not __fish_seen_subcommand_from $commands" -a completion -d 'Generate completions'

# entry names
complete -c passlock -n "__fish_seen_subcommand_from show edit rm history" -a "(passlock ls </dev/null 2>/dev/null | awk 'NR>1 {print \$2}')"
complete -c passlock -n "__fish_seen_subcommand_from show history" -o p -d 'Reveal passwords'

# ls filters
complete -c passlock -n "__fish_seen_subcommand_from ls" -o url -d 'Entries for this site'
complete -c passlock -n "__fish_seen_subcommand_from ls" -o tag -d 'Entries with this tag'

# config subcommands
complete -c passlock -n "__fish_seen_subcommand_from config" -a "show save"

# keyring subcommands
complete -c passlock -n "__fish_seen_subcommand_from keyring" -a "save delete status"

# help completions
complete -c passlock -n "__fish_seen_subcommand_from help" -a "$commands"

# completion completions
complete -c passlock -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
