package main

import (
	"fmt"
	"os"

	"go.uber.org/automaxprocs/maxprocs"
)

// Version is set at build time via ldflags.
var Version = "dev"

func main() {
	// Configure GOMAXPROCS quietly.
	// Error ignored: maxprocs.Set only fails if GOMAXPROCS env is invalid,
	// in which case Go runtime defaults apply and the program continues safely.
	_, _ = maxprocs.Set(maxprocs.Logger(func(string, ...interface{}) {}))

	deps := defaultDependencies()
	code := run(os.Args[1:], deps)
	os.Exit(code)
}

// run dispatches the subcommand and returns the process exit code.
func run(args []string, deps *Dependencies) int {
	if len(args) == 0 {
		printUsage(deps.Stderr)
		return ExitUsage
	}

	switch args[0] {
	case "convert":
		return runConvertCommand(args[1:], deps)
	case "version":
		fmt.Fprintf(deps.Stdout, "html2md %s\n", Version)
		return ExitSuccess
	case "help":
		runHelp(args[1:], deps)
		return ExitSuccess
	case "-h", "--help":
		printUsage(deps.Stdout)
		return ExitSuccess
	case "--version":
		fmt.Fprintf(deps.Stdout, "html2md %s\n", Version)
		return ExitSuccess
	default:
		// Bare argument: treat as "convert <arg>" for the common case.
		return runConvertCommand(args, deps)
	}
}

func runConvertCommand(args []string, deps *Dependencies) int {
	flags, positional, err := parseConvertFlags(args)
	if err != nil {
		fmt.Fprintln(deps.Stderr, err)
		return ExitUsage
	}

	if err := runConvert(positional, flags, deps); err != nil {
		fmt.Fprintln(deps.Stderr, "error:", err)
		return exitCodeFor(err)
	}
	return ExitSuccess
}
