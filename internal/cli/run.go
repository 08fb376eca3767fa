package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/calvinalkan/docweave/internal/compose"
)

const (
	minArgs      = 2
	consumedOne  = 1
	consumedTwo  = 2
	consumedNone = 0
	helpFlag     = "--help"
)

// Flag parsing errors.
var (
	errFlagRequiresArg = fmt.Errorf("flag requires an argument")
	errUnknownFlag     = fmt.Errorf("unknown flag")
)

// Run is the main entry point. Returns exit code.
func Run(in io.Reader, out io.Writer, errOut io.Writer, args []string, env map[string]string, sigCh <-chan os.Signal) int {
	if len(args) < minArgs {
		printUsage(out)

		return 0
	}

	flags, err := parseGlobalFlags(args[1:])
	if err != nil {
		fprintln(errOut, "error:", err)

		return 1
	}

	cfg, err := compose.LoadConfig(compose.LoadConfigInput{
		WorkDirOverride: flags.workDir,
		ConfigPath:      flags.configPath,
		DocsDirOverride: flags.docsDir,
		Env:             env,
	})
	if err != nil {
		fprintln(errOut, "error:", err)
		printUsage(errOut)

		return 1
	}

	if len(flags.remaining) == 0 {
		printUsage(out)

		return 0
	}

	cmd := flags.remaining[0]
	rest := flags.remaining[1:]

	if cmd == "-h" || cmd == helpFlag {
		printUsage(out)

		return 0
	}

	ioCtx := NewIO(out, errOut)

	var cmdErr error

	switch cmd {
	case "compose":
		cmdErr = cmdCompose(ioCtx, cfg, rest)
	case "build":
		cmdErr = cmdBuild(ioCtx, cfg, rest)
	case "check":
		cmdErr = cmdCheck(ioCtx, cfg, rest)
	case "ls":
		cmdErr = cmdLs(ioCtx, cfg, rest)
	case "render":
		cmdErr = cmdRender(ioCtx, cfg, rest)
	case "preview":
		cmdErr = cmdPreview(ioCtx, cfg, rest)
	case "watch":
		cmdErr = cmdWatch(ioCtx, cfg, rest, sigCh)
	case "init":
		cmdErr = cmdInit(ioCtx, in, cfg, rest)
	case "print-config":
		cmdErr = cmdPrintConfig(ioCtx, cfg)
	default:
		fprintln(errOut, "error: unknown command:", cmd)
		printUsage(errOut)

		return 1
	}

	if cmdErr != nil {
		fprintln(errOut, "error:", cmdErr)

		return 1
	}

	// Finish handles warnings and exit code
	return ioCtx.Finish()
}

type globalFlags struct {
	workDir    string
	configPath string
	docsDir    string
	remaining  []string
}

func parseGlobalFlags(args []string) (globalFlags, error) {
	var flags globalFlags

	idx := 0
	for idx < len(args) {
		consumed, err := parseFlag(args, idx, &flags)
		if err != nil {
			return globalFlags{}, err
		}

		if consumed == 0 {
			// Not a flag, this is the command
			flags.remaining = args[idx:]

			break
		}

		idx += consumed
	}

	return flags, nil
}

// parseFlag tries to parse a flag at args[idx]. Returns number of args consumed (0 if not a flag).
func parseFlag(args []string, idx int, flags *globalFlags) (int, error) {
	arg := args[idx]

	// -C/--cwd flag (work directory)
	if (arg == "-C" || arg == "--cwd") && idx+1 < len(args) {
		flags.workDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "-C"); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	if after, ok := strings.CutPrefix(arg, "--cwd="); ok {
		flags.workDir = after

		return consumedOne, nil
	}

	// -c/--config flag
	if arg == "-c" || arg == "--config" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.configPath = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--config="); ok {
		flags.configPath = after

		return consumedOne, nil
	}

	// --docs-dir flag
	if arg == "--docs-dir" {
		if idx+1 >= len(args) {
			return consumedNone, fmt.Errorf("%w: %s", errFlagRequiresArg, arg)
		}

		flags.docsDir = args[idx+1]

		return consumedTwo, nil
	}

	if after, ok := strings.CutPrefix(arg, "--docs-dir="); ok {
		flags.docsDir = after

		return consumedOne, nil
	}

	// -h/--help flags
	if arg == "-h" || arg == helpFlag {
		flags.remaining = []string{helpFlag}

		return len(args) - idx, nil
	}

	// Unknown flag
	if strings.HasPrefix(arg, "-") && arg != "-" {
		return consumedNone, fmt.Errorf("%w: %s", errUnknownFlag, arg)
	}

	// Not a flag
	return consumedNone, nil
}

func cmdPrintConfig(o *IO, cfg compose.Config) error {
	formatted, err := compose.FormatConfig(cfg)
	if err != nil {
		return err
	}

	o.Println(formatted)

	o.Println("")
	o.Println("# Sources:")

	if cfg.Sources.Global != "" {
		o.Println("#   global:", cfg.Sources.Global)
	}

	if cfg.Sources.Project != "" {
		o.Println("#   project:", cfg.Sources.Project)
	}

	if cfg.Sources.Global == "" && cfg.Sources.Project == "" {
		o.Println("#   (using defaults only)")
	}

	return nil
}

func fprintln(w io.Writer, a ...any) {
	_, _ = fmt.Fprintln(w, a...)
}

func hasHelpFlag(args []string) bool {
	for _, arg := range args {
		if arg == "-h" || arg == helpFlag {
			return true
		}
	}

	return false
}

func printUsage(writer io.Writer) {
	fprintln(writer, `dw - compose topic guides from markdown fragments

Usage: dw [options] <command> [args]

Options:
  -C, --cwd <dir>     Run as if started in <dir>
  -c, --config        Use specified config file
      --docs-dir      Override the docs root directory

Commands:`)
	fprintln(writer, composeHelp)
	fprintln(writer, buildHelp)
	fprintln(writer, checkHelp)
	fprintln(writer, lsHelp)
	fprintln(writer, renderHelp)
	fprintln(writer, previewHelp)
	fprintln(writer, watchHelp)
	fprintln(writer, initHelp)
	fprintln(writer, `  print-config            Show resolved configuration`)
}
