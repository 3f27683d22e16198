package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/rokybeast/passlock/cmd"
	"github.com/rokybeast/passlock/internal/core"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "init":
		runInit(ctx, os.Args[2:])
	case "add":
		runAdd(ctx, os.Args[2:])
	case "ls", "list":
		runLs(ctx, os.Args[2:])
	case "show":
		runShow(ctx, os.Args[2:])
	case "tags":
		runTags(ctx, os.Args[2:])
	case "config":
		runConfig(ctx, os.Args[2:])
	case "edit":
		runEdit(ctx, os.Args[2:])
	case "rm":
		runRm(ctx, os.Args[2:])
	case "history":
		runHistory(ctx, os.Args[2:])
	case "gen":
		runGen(ctx, os.Args[2:])
	case "snapshots":
		runSnapshots(ctx, os.Args[2:])
	case "restore":
		runRestore(ctx, os.Args[2:])
	case "diff":
		runDiff(ctx, os.Args[2:])
	case "verify":
		runVerify(ctx, os.Args[2:])
	case "compact":
		runCompact(ctx, os.Args[2:])
	case "keyring":
		runKeyring(ctx, os.Args[2:])
	case "completion":
		runCompletion(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

// newFlagSet returns a flag set carrying the shared -vault flag
func newFlagSet(name string) (*flag.FlagSet, *cmd.Options) {
	fs := flag.NewFlagSet(name, flag.ExitOnError)
	opts := &cmd.Options{}
	fs.StringVar(&opts.Vault, "vault", "", "Vault file (overrides PASSLOCK_VAULT and config)")
	return fs, opts
}

func parse(fs *flag.FlagSet, args []string) {
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func runInit(ctx context.Context, args []string) {
	fs, opts := newFlagSet("init")
	parse(fs, args)

	cmd.Init(ctx, *opts)
}

func runAdd(ctx context.Context, args []string) {
	fs, opts := newFlagSet("add")
	var fields cmd.EntryFields
	fs.StringVar(&fields.Username, "u", "", "Username")
	fs.StringVar(&fields.URL, "url", "", "URL")
	fs.StringVar(&fields.Notes, "notes", "", "Notes")
	fs.StringVar(&fields.Tags, "tags", "", "Comma separated tags")
	fs.BoolVar(&fields.Generate, "g", false, "Generate the password instead of prompting")
	fs.IntVar(&fields.Length, "n", core.DefaultGenLen, "Generated password length")
	parse(fs, args)

	cmd.Add(ctx, *opts, fs.Arg(0), fields)
}

func runLs(ctx context.Context, args []string) {
	fs, opts := newFlagSet("ls")
	rawURL := fs.String("url", "", "List entries stored for this site")
	tag := fs.String("tag", "", "List entries carrying this tag")
	parse(fs, args)

	cmd.List(ctx, *opts, cmd.ListFilter{Query: fs.Arg(0), URL: *rawURL, Tag: *tag})
}

func runTags(ctx context.Context, args []string) {
	fs, opts := newFlagSet("tags")
	parse(fs, args)

	cmd.Tags(ctx, *opts)
}

func runConfig(_ context.Context, args []string) {
	fs, opts := newFlagSet("config")
	parse(fs, args)

	switch fs.Arg(0) {
	case "show", "":
		cmd.ConfigShow(*opts)
	case "save":
		cmd.ConfigSave(*opts)
	default:
		fmt.Fprintln(os.Stderr, "Usage: passlock config <show|save>")
		os.Exit(1)
	}
}

func runShow(ctx context.Context, args []string) {
	fs, opts := newFlagSet("show")
	reveal := fs.Bool("p", false, "Reveal the password")
	parse(fs, args)

	cmd.Show(ctx, *opts, fs.Arg(0), *reveal)
}

func runEdit(ctx context.Context, args []string) {
	fs, opts := newFlagSet("edit")
	name := fs.String("name", "", "New name")
	username := fs.String("u", "", "Username")
	url := fs.String("url", "", "URL")
	notes := fs.String("notes", "", "Notes")
	tags := fs.String("tags", "", "Comma separated tags")
	newPassword := fs.Bool("p", false, "Prompt for a new password")
	generate := fs.Bool("g", false, "Generate a new password")
	length := fs.Int("n", core.DefaultGenLen, "Generated password length")
	parse(fs, args)

	fields := cmd.EditFields{NewPassword: *newPassword, Generate: *generate, Length: *length}
	// only flags given on the command line change the entry
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "name":
			fields.Name = name
		case "u":
			fields.Username = username
		case "url":
			fields.URL = url
		case "notes":
			fields.Notes = notes
		case "tags":
			fields.Tags = tags
		}
	})

	cmd.Edit(ctx, *opts, fs.Arg(0), fields)
}

func runRm(ctx context.Context, args []string) {
	fs, opts := newFlagSet("rm")
	parse(fs, args)

	cmd.Remove(ctx, *opts, fs.Args())
}

func runHistory(ctx context.Context, args []string) {
	fs, opts := newFlagSet("history")
	reveal := fs.Bool("p", false, "Reveal previous passwords")
	parse(fs, args)

	cmd.History(ctx, *opts, fs.Arg(0), *reveal)
}

func runGen(_ context.Context, args []string) {
	fs := flag.NewFlagSet("gen", flag.ExitOnError)
	length := fs.Int("n", core.DefaultGenLen, "Password length")
	parse(fs, args)

	cmd.Generate(*length)
}

func runSnapshots(ctx context.Context, args []string) {
	fs, opts := newFlagSet("snapshots")
	parse(fs, args)

	cmd.Snapshots(ctx, *opts)
}

func runRestore(ctx context.Context, args []string) {
	fs, opts := newFlagSet("restore")
	id := fs.Uint64("id", 0, "Snapshot ID (default: newest)")
	parse(fs, args)
	snapshotArg(fs, id)

	cmd.Restore(ctx, *opts, *id)
}

func runDiff(ctx context.Context, args []string) {
	fs, opts := newFlagSet("diff")
	id := fs.Uint64("id", 0, "Snapshot ID (default: newest)")
	parse(fs, args)
	snapshotArg(fs, id)

	cmd.Diff(ctx, *opts, *id)
}

// snapshotArg accepts the snapshot ID as a positional argument too
func snapshotArg(fs *flag.FlagSet, id *uint64) {
	if fs.NArg() == 0 {
		return
	}
	n, err := strconv.ParseUint(fs.Arg(0), 10, 64)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid snapshot ID %q\n", fs.Arg(0))
		os.Exit(1)
	}
	*id = n
}

func runVerify(ctx context.Context, args []string) {
	fs, opts := newFlagSet("verify")
	parse(fs, args)

	cmd.Verify(ctx, *opts)
}

func runCompact(ctx context.Context, args []string) {
	fs, opts := newFlagSet("compact")
	parse(fs, args)

	cmd.Compact(ctx, *opts)
}

func runKeyring(ctx context.Context, args []string) {
	fs, opts := newFlagSet("keyring")
	parse(fs, args)

	switch fs.Arg(0) {
	case "save":
		cmd.KeyringSave(ctx, *opts)
	case "delete":
		cmd.KeyringDelete(ctx, *opts)
	case "status", "":
		cmd.KeyringStatus(ctx, *opts)
	default:
		fmt.Fprintln(os.Stderr, "Usage: passlock keyring <save|delete|status>")
		os.Exit(1)
	}
}

func runCompletion(_ context.Context, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(os.Stderr, "Usage: passlock completion <bash|zsh|fish>")
		os.Exit(1)
	}
	cmd.Completion(args[0])
}

func printUsage() {
	fmt.Println("passlock - Encrypted password vault for the command line")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  passlock <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  init        Create a new vault")
	fmt.Println("  add         Add an entry")
	fmt.Println("  ls          List entries, optionally filtered")
	fmt.Println("  show        Show an entry")
	fmt.Println("  tags        List tags by number of entries")
	fmt.Println("  edit        Change fields of an entry")
	fmt.Println("  rm          Remove entries")
	fmt.Println("  history     Show previous passwords of an entry")
	fmt.Println("  gen         Generate a random password")
	fmt.Println("  snapshots   List previous vault versions")
	fmt.Println("  restore     Restore a previous vault version")
	fmt.Println("  diff        Compare a previous version with the vault")
	fmt.Println("  verify      Check the master password and vault integrity")
	fmt.Println("  compact     Compact the side-store to reclaim disk space")
	fmt.Println("  keyring     Manage the master password in the OS keyring")
	fmt.Println("  config      Show or write the configuration file")
	fmt.Println("  completion  Generate shell completions")
	fmt.Println("  help        Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  passlock init                     # Create new vault")
	fmt.Println("  passlock add -u me@mail.com email # Add an entry")
	fmt.Println("  passlock show -p email            # Show entry with password")
	fmt.Println("  passlock keyring save             # Remember master password")
	fmt.Println()
	fmt.Println("Environment:")
	fmt.Println("  PASSLOCK_VAULT      Vault file path")
	fmt.Println("  PASSLOCK_PASSWORD   Master password (skips prompt)")
	fmt.Println("  PASSLOCK_CONFIG     Config file path")
	fmt.Println("  PASSLOCK_LOG_LEVEL  debug, info, warn, error or off")
	fmt.Println()
	fmt.Println("Use 'passlock help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "init":
		fmt.Println("passlock init [-vault <file>]")
		fmt.Println()
		fmt.Println("Creates a new empty vault and its side-store (<vault>.db).")
		fmt.Println("Prompts for a master password twice.")
		fmt.Println("The password is not stored anywhere - you must remember it.")
	case "add":
		fmt.Println("passlock add [-u user] [-url url] [-notes text] [-tags a,b] [-g] [-n length] <name>")
		fmt.Println()
		fmt.Println("Adds an entry. Prompts for the entry password; an empty answer")
		fmt.Println("or -g generates one.")
		fmt.Println()
		fmt.Println("Examples:")
		fmt.Println("  passlock add -u me@mail.com email")
		fmt.Println("  passlock add -g -n 32 -tags work vpn")
	case "ls", "list":
		fmt.Println("passlock ls [-url <url> | -tag <tag>] [query]")
		fmt.Println()
		fmt.Println("Lists entries whose name, username, URL or tags contain query.")
		fmt.Println("With -url, lists entries for the same site (registrable domain).")
		fmt.Println("With -tag, lists entries carrying exactly that tag.")
		fmt.Println("Passwords are never listed.")
	case "tags":
		fmt.Println("passlock tags")
		fmt.Println()
		fmt.Println("Lists every tag with the number of entries carrying it, most used first.")
	case "config":
		fmt.Println("passlock config <show|save>")
		fmt.Println()
		fmt.Println("show prints the effective configuration (file plus environment).")
		fmt.Println("save writes it to the config file (PASSLOCK_CONFIG or the default path).")
		fmt.Println("The cipher setting applies to new vaults; existing vaults keep theirs.")
	case "show":
		fmt.Println("passlock show [-p] <name|id>")
		fmt.Println()
		fmt.Println("Shows an entry. Use -p to reveal the password.")
	case "edit":
		fmt.Println("passlock edit [-name n] [-u user] [-url url] [-notes text] [-tags a,b] [-p|-g] <name|id>")
		fmt.Println()
		fmt.Println("Changes only the fields given. -p prompts for a new password,")
		fmt.Println("-g generates one. The old password is kept in the entry history.")
	case "rm":
		fmt.Println("passlock rm <name|id> [name|id...]")
		fmt.Println()
		fmt.Println("Removes entries from the vault.")
	case "history":
		fmt.Println("passlock history [-p] <name|id>")
		fmt.Println()
		fmt.Println("Lists previous passwords of an entry, newest first.")
	case "gen":
		fmt.Println("passlock gen [-n length]")
		fmt.Println()
		fmt.Println("Prints a random password. Does not need a vault.")
	case "snapshots":
		fmt.Println("passlock snapshots")
		fmt.Println()
		fmt.Println("Lists previous encrypted versions of the vault kept in the side-store.")
		fmt.Println("Does not require a password.")
	case "restore":
		fmt.Println("passlock restore [-id n | n]")
		fmt.Println()
		fmt.Println("Replaces the vault with a snapshot (newest by default).")
		fmt.Println("The current vault becomes a snapshot, so a restore can be undone.")
	case "diff":
		fmt.Println("passlock diff [-id n | n]")
		fmt.Println()
		fmt.Println("Shows what changed between a snapshot (newest by default) and the vault.")
		fmt.Println("Passwords are never printed.")
	case "verify":
		fmt.Println("passlock verify")
		fmt.Println()
		fmt.Println("Decrypts the vault and checks that its contents are readable.")
		fmt.Println("Prints the cipher, creation date and snapshot count.")
	case "compact":
		fmt.Println("passlock compact")
		fmt.Println()
		fmt.Println("Compacts the side-store database to reclaim unused disk space.")
		fmt.Println("Does not require a password.")
	case "keyring":
		fmt.Println("passlock keyring <save|delete|status>")
		fmt.Println()
		fmt.Println("Stores the master password in the OS keyring so commands do not prompt.")
		fmt.Println("A stored password that no longer opens the vault is removed automatically.")
	case "completion":
		fmt.Println("passlock completion <bash|zsh|fish>")
		fmt.Println()
		fmt.Println("Outputs shell completion script for the specified shell.")
		fmt.Println()
		fmt.Println("Setup:")
		fmt.Println("  # Bash - add to ~/.bashrc")
		fmt.Println("  eval \"$(passlock completion bash)\"")
		fmt.Println()
		fmt.Println("  # Zsh - add to ~/.zshrc")
		fmt.Println("  eval \"$(passlock completion zsh)\"")
		fmt.Println()
		fmt.Println("  # Fish - add to ~/.config/fish/config.fish")
		fmt.Println("  passlock completion fish | source")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
