package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"
)

// Shell represents a supported shell for completion generation.
type Shell string

// Supported shells for completion.
const (
	ShellBash Shell = "bash"
	ShellZsh  Shell = "zsh"
	ShellFish Shell = "fish"
)

// ErrUnsupportedShell is returned when an unknown shell is requested.
var ErrUnsupportedShell = fmt.Errorf("unsupported shell")

// flagType represents the completion type for a flag.
type flagType int

const (
	flagString flagType = iota // default
	flagBool
	flagInt
	flagEnum // has predefined values
	flagFile // file with glob pattern
	flagDir  // directory
)

// flagDef describes a flag for completion purposes.
type flagDef struct {
	Long     string   // --output
	Short    string   // -o (empty if none)
	Type     flagType // completion type
	Desc     string   // help text
	Values   []string // for enum flags
	FileGlob string   // for file flags
}

// commandDef describes a command for completion.
type commandDef struct {
	Name  string
	Desc  string
	Flags []flagDef
	Args  []string // fixed positional values, e.g. shell names
}

// completionMeta holds completion-specific metadata for flags.
// This is the ONLY place where completion hints are defined.
// Flag names, types, and descriptions come from the FlagSet.
type completionMeta struct {
	Values   []string // enum values
	FileGlob string   // file glob pattern
	IsDir    bool     // directory completion
}

// flagCompletionMeta maps flag names to their completion metadata.
var flagCompletionMeta = map[string]completionMeta{
	// Enum flags
	"on-repair-error": {Values: []string{"fail", "skip"}},
	"on-duplicate":    {Values: []string{"overwrite", "error"}},
	"style":           {Values: []string{"normal", "italic", "oblique"}},

	// File flags with glob patterns
	"config":  {FileGlob: "*.yaml,*.yml"},
	"mapping": {FileGlob: "*.yaml,*.yml,*.json"},

	// Directory flags
	"source": {IsDir: true},
	"output": {IsDir: true},
}

// buildBuildFlagSet creates a FlagSet with all build command flags.
// This reuses the same flag registration as parseBuildFlags.
func buildBuildFlagSet() *flag.FlagSet {
	return newBuildFlagSet(&buildFlags{})
}

// extractFlagsFromFlagSet extracts flag definitions from a pflag.FlagSet.
// Enriches with completion metadata from flagCompletionMeta.
func extractFlagsFromFlagSet(fs *flag.FlagSet) []flagDef {
	var flags []flagDef

	fs.VisitAll(func(f *flag.Flag) {
		fd := flagDef{
			Long:  f.Name,
			Short: f.Shorthand,
			Desc:  f.Usage,
		}

		// Determine base type from pflag type
		switch f.Value.Type() {
		case "bool":
			fd.Type = flagBool
		case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
			fd.Type = flagInt
		default:
			fd.Type = flagString
		}

		// Override type based on completion metadata
		if meta, ok := flagCompletionMeta[f.Name]; ok {
			if len(meta.Values) > 0 {
				fd.Type = flagEnum
				fd.Values = meta.Values
			} else if meta.FileGlob != "" {
				fd.Type = flagFile
				fd.FileGlob = meta.FileGlob
			} else if meta.IsDir {
				fd.Type = flagDir
			}
		}

		flags = append(flags, fd)
	})

	return flags
}

// commandNames lists the top-level commands in registry order.
var commandNames = []string{"build", "version", "help", "completion"}

// getCommands returns the command registry for completion.
// Flags are extracted from the actual FlagSet - single source of truth.
func getCommands() []commandDef {
	return []commandDef{
		{
			Name:  "build",
			Desc:  "Build a WOFF icon font and its JSON descriptor",
			Flags: extractFlagsFromFlagSet(buildBuildFlagSet()),
		},
		{
			Name: "version",
			Desc: "Show version information",
		},
		{
			Name: "help",
			Desc: "Show help for a command",
			Args: commandNames,
		},
		{
			Name: "completion",
			Desc: "Generate shell completion script",
			Args: []string{string(ShellBash), string(ShellZsh), string(ShellFish)},
		},
	}
}

// GenerateCompletion writes shell completion script to w.
// Returns error if shell is unsupported or write fails.
func GenerateCompletion(w io.Writer, shell Shell) error {
	switch shell {
	case ShellBash:
		return generateBash(w)
	case ShellZsh:
		return generateZsh(w)
	case ShellFish:
		return generateFish(w)
	default:
		return fmt.Errorf("%w: %q (supported: bash, zsh, fish)", ErrUnsupportedShell, shell)
	}
}

// generateBash writes a bash completion function driven by getCommands.
func generateBash(w io.Writer) error {
	bw := bufio.NewWriter(w)
	commands := getCommands()

	fmt.Fprintln(bw, "# bash completion for iconfont")
	fmt.Fprintln(bw, "_iconfont_completions() {")
	fmt.Fprintln(bw, "    local cur prev cmd")
	fmt.Fprintln(bw, `    cur="${COMP_WORDS[COMP_CWORD]}"`)
	fmt.Fprintln(bw, `    prev="${COMP_WORDS[COMP_CWORD-1]}"`)
	fmt.Fprintln(bw, `    cmd="${COMP_WORDS[1]}"`)
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "    if [[ ${COMP_CWORD} -eq 1 ]]; then")
	fmt.Fprintf(bw, "        COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(commandNames, " "))
	fmt.Fprintln(bw, "        return 0")
	fmt.Fprintln(bw, "    fi")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, `    case "${cmd}" in`)

	for _, cmd := range commands {
		if len(cmd.Flags) == 0 && len(cmd.Args) == 0 {
			continue
		}
		fmt.Fprintf(bw, "        %s)\n", cmd.Name)

		if len(cmd.Flags) > 0 {
			fmt.Fprintln(bw, `            case "${prev}" in`)
			var words []string
			for _, f := range cmd.Flags {
				words = append(words, "--"+f.Long)
				if f.Short != "" {
					words = append(words, "-"+f.Short)
				}

				var action string
				switch f.Type {
				case flagEnum:
					action = fmt.Sprintf("compgen -W %q -- \"${cur}\"", strings.Join(f.Values, " "))
				case flagFile:
					action = `compgen -f -- "${cur}"`
				case flagDir:
					action = `compgen -d -- "${cur}"`
				default:
					continue
				}
				fmt.Fprintf(bw, "                %s)\n", bashFlagPattern(f))
				fmt.Fprintf(bw, "                    COMPREPLY=( $(%s) )\n", action)
				fmt.Fprintln(bw, "                    return 0")
				fmt.Fprintln(bw, "                    ;;")
			}
			fmt.Fprintln(bw, "            esac")
			fmt.Fprintf(bw, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(words, " "))
		} else {
			fmt.Fprintf(bw, "            COMPREPLY=( $(compgen -W %q -- \"${cur}\") )\n", strings.Join(cmd.Args, " "))
		}
		fmt.Fprintln(bw, "            ;;")
	}

	fmt.Fprintln(bw, "    esac")
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw, "complete -F _iconfont_completions iconfont")

	return bw.Flush()
}

// bashFlagPattern returns the case pattern matching a flag's spellings.
func bashFlagPattern(f flagDef) string {
	if f.Short != "" {
		return "-" + f.Short + "|--" + f.Long
	}
	return "--" + f.Long
}

// generateZsh writes a zsh completion function driven by getCommands.
func generateZsh(w io.Writer) error {
	bw := bufio.NewWriter(w)
	commands := getCommands()

	fmt.Fprintln(bw, "#compdef iconfont")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "_iconfont() {")
	fmt.Fprintln(bw, "    local -a commands")
	fmt.Fprintln(bw, "    commands=(")
	for _, cmd := range commands {
		fmt.Fprintf(bw, "        '%s:%s'\n", cmd.Name, zshEscape(cmd.Desc))
	}
	fmt.Fprintln(bw, "    )")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "    if (( CURRENT == 2 )); then")
	fmt.Fprintln(bw, "        _describe 'command' commands")
	fmt.Fprintln(bw, "        return")
	fmt.Fprintln(bw, "    fi")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, `    case "${words[2]}" in`)

	for _, cmd := range commands {
		if len(cmd.Flags) == 0 && len(cmd.Args) == 0 {
			continue
		}
		fmt.Fprintf(bw, "        %s)\n", cmd.Name)
		if len(cmd.Flags) > 0 {
			fmt.Fprint(bw, "            _arguments")
			for _, f := range cmd.Flags {
				fmt.Fprintf(bw, " \\\n                %s", zshFlagSpec(f))
			}
			fmt.Fprintln(bw)
		} else {
			fmt.Fprintf(bw, "            _values '%s' %s\n", cmd.Name, strings.Join(cmd.Args, " "))
		}
		fmt.Fprintln(bw, "            ;;")
	}

	fmt.Fprintln(bw, "    esac")
	fmt.Fprintln(bw, "}")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "compdef _iconfont iconfont")

	return bw.Flush()
}

// zshFlagSpec renders one _arguments specification.
func zshFlagSpec(f flagDef) string {
	desc := "[" + zshEscape(f.Desc) + "]"

	var action string
	switch f.Type {
	case flagBool:
		action = ""
	case flagEnum:
		action = ":" + f.Long + ":(" + strings.Join(f.Values, " ") + ")"
	case flagFile:
		globs := strings.ReplaceAll(f.FileGlob, ",", " ")
		action = ":file:_files -g \"" + globs + "\""
	case flagDir:
		action = ":directory:_files -/"
	default:
		action = ":" + f.Long + ":"
	}

	if f.Short != "" {
		return fmt.Sprintf("'(-%s --%s)'{-%s,--%s}'%s%s'", f.Short, f.Long, f.Short, f.Long, desc, action)
	}
	return fmt.Sprintf("'--%s%s%s'", f.Long, desc, action)
}

// zshEscape makes s safe inside a single-quoted zsh spec.
func zshEscape(s string) string {
	r := strings.NewReplacer(`'`, `'\''`, `[`, `\[`, `]`, `\]`, `:`, `\:`)
	return r.Replace(s)
}

// generateFish writes fish completions driven by getCommands.
func generateFish(w io.Writer) error {
	bw := bufio.NewWriter(w)
	commands := getCommands()

	fmt.Fprintln(bw, "# fish completion for iconfont")
	fmt.Fprintln(bw, "function __fish_iconfont_needs_command")
	fmt.Fprintln(bw, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(bw, "    test (count $cmd) -eq 1")
	fmt.Fprintln(bw, "end")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "function __fish_iconfont_using_command")
	fmt.Fprintln(bw, "    set -l cmd (commandline -opc)")
	fmt.Fprintln(bw, "    test (count $cmd) -gt 1; and test $cmd[2] = $argv[1]")
	fmt.Fprintln(bw, "end")
	fmt.Fprintln(bw)
	fmt.Fprintln(bw, "complete -c iconfont -f")

	for _, cmd := range commands {
		fmt.Fprintf(bw, "complete -c iconfont -n __fish_iconfont_needs_command -a %s -d '%s'\n", cmd.Name, fishEscape(cmd.Desc))
	}

	for _, cmd := range commands {
		cond := fmt.Sprintf("'__fish_iconfont_using_command %s'", cmd.Name)
		if len(cmd.Args) > 0 {
			fmt.Fprintf(bw, "complete -c iconfont -n %s -a '%s'\n", cond, strings.Join(cmd.Args, " "))
		}
		for _, f := range cmd.Flags {
			var b strings.Builder
			fmt.Fprintf(&b, "complete -c iconfont -n %s", cond)
			if f.Short != "" {
				fmt.Fprintf(&b, " -s %s", f.Short)
			}
			fmt.Fprintf(&b, " -l %s", f.Long)
			switch f.Type {
			case flagBool:
			case flagEnum:
				fmt.Fprintf(&b, " -r -f -a '%s'", strings.Join(f.Values, " "))
			case flagFile:
				b.WriteString(" -r -F")
			case flagDir:
				b.WriteString(" -r -f -a '(__fish_complete_directories)'")
			default:
				b.WriteString(" -r")
			}
			fmt.Fprintf(&b, " -d '%s'", fishEscape(f.Desc))
			fmt.Fprintln(bw, b.String())
		}
	}

	return bw.Flush()
}

// fishEscape makes s safe inside a single-quoted fish string.
func fishEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `'`, `\'`).Replace(s)
}

// runCompletion handles the completion command.
func runCompletion(args []string, env *Environment) error {
	if len(args) == 0 {
		printCompletionUsage(env.Stdout)
		return nil
	}

	shell := Shell(args[0])
	return GenerateCompletion(env.Stdout, shell)
}

// printCompletionUsage prints help for the completion command.
func printCompletionUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: iconfont completion <shell>")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Generate shell completion script for the specified shell.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Supported shells:")
	fmt.Fprintln(w, "  bash        Bash completion script")
	fmt.Fprintln(w, "  zsh         Zsh completion script")
	fmt.Fprintln(w, "  fish        Fish completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Installation:")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Bash:")
	fmt.Fprintln(w, "    # Add to ~/.bashrc:")
	fmt.Fprintln(w, "    eval \"$(iconfont completion bash)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Zsh:")
	fmt.Fprintln(w, "    # Add to ~/.zshrc (after compinit):")
	fmt.Fprintln(w, "    eval \"$(iconfont completion zsh)\"")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  Fish:")
	fmt.Fprintln(w, "    iconfont completion fish > ~/.config/fish/completions/iconfont.fish")
}
