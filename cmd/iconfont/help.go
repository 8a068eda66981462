package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: iconfont <command> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build a WOFF icon font and its JSON descriptor")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'iconfont help <command>' for details on a specific command.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: iconfont build [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Repair every mapped SVG icon, merge them into one font with")
	fmt.Fprintln(w, "private-use code points and write <name>.woff and <name>.json.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -m, --mapping <file>         Mapping of glyph names to vector ids (YAML or JSON)")
	fmt.Fprintln(w, "  -s, --source <dir>           Directory holding <id>.svg files")
	fmt.Fprintln(w, "  -o, --output <dir>           Output directory (default: dist)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Font:")
	fmt.Fprintln(w, "  -n, --name <name>            Font name and output file stem (default: icons)")
	fmt.Fprintln(w, "      --prefix <prefix>        Namespace stripped from glyph names (default: codicon:)")
	fmt.Fprintln(w, "      --code-point-base <cp>   First code point (default: 0xE000)")
	fmt.Fprintln(w, "      --units-per-em <n>       Em square size (default: 1000)")
	fmt.Fprintln(w, "      --descent <n>            Font units below the baseline (default: 0)")
	fmt.Fprintln(w, "      --weight <weight>        Font weight (default: normal)")
	fmt.Fprintln(w, "      --style <style>          Font style (default: normal)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Pipeline:")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel repair workers (default: auto)")
	fmt.Fprintln(w, "      --on-repair-error <p>    fail or skip (default: fail)")
	fmt.Fprintln(w, "      --on-duplicate <p>       overwrite or error (default: overwrite)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration:")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show glyph assignments and timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  ICONFONT_CONFIG, ICONFONT_MAPPING, ICONFONT_SOURCE_DIR, ICONFONT_OUTPUT_DIR,")
	fmt.Fprintln(w, "  ICONFONT_FONT_NAME, ICONFONT_PREFIX, ICONFONT_WORKERS, ICONFONT_ON_REPAIR_ERROR")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  iconfont build -m mapping.yaml -s icons -n lucide-icons")
	fmt.Fprintln(w, "  iconfont build -c iconfont --on-repair-error=skip")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: iconfont version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: iconfont help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	case "completion":
		printCompletionUsage(env.Stdout)
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
	}
}
