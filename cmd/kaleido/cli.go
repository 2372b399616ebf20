package main

import (
	"fmt"
	"os"

	"github.com/HicaroD/kaleido/internal/config"
)

type Command int

const (
	COMMAND_REPL Command = iota
	COMMAND_RUN
	COMMAND_EMIT
	COMMAND_HELP
	COMMAND_ENV
)

type CliResult struct {
	Command Command
	// Set when -release or -debug was given; K_OPT decides otherwise
	BuildType    config.BuildType
	BuildTypeSet bool
	Path         string
}

var HELP_COMMAND string = `Kaleido - a JIT-compiled Kaleidoscope.
Every value is a double; functions are defined with def and declared with extern.

Usage:
  kaleido <command> [arguments]

Available Commands:
  repl [-release] [-debug]             Start an interactive session (default)

  run <file> [-release] [-debug]       Evaluate every top-level expression of a file
      -release      Optimize before evaluating
      -debug        Evaluate without optimizations

  emit <file>                          Print the LLVM IR of a file

  env                                  Show environment information

  help                                 Show this help message

Examples:
  kaleido                              Start the REPL
  kaleido run examples/fib.k -release  Run a file with optimizations
  kaleido emit examples/fib.k          Show the generated module
  kaleido env                          Display environment details
`

func cli(args []string) (CliResult, error) {
	result := CliResult{BuildType: config.DEBUG}

	if len(args) == 0 {
		result.Command = COMMAND_REPL
		return result, nil
	}

	command := args[0]
	flags := args[1:]
	switch command {
	case "env":
		result.Command = COMMAND_ENV
		return result, nil
	case "help", "-h", "--help":
		result.Command = COMMAND_HELP
		return result, nil
	case "repl":
		result.Command = COMMAND_REPL
	case "run", "emit":
		result.Command = COMMAND_RUN
		if command == "emit" {
			result.Command = COMMAND_EMIT
		}

		if len(args) < 2 {
			return result, fmt.Errorf("%s: missing file path", command)
		}
		result.Path = args[1]
		flags = args[2:]

		_, err := os.Stat(result.Path)
		if err != nil {
			return result, fmt.Errorf("no such file: %s", result.Path)
		}
	default:
		return result, fmt.Errorf("unknown command %q, see 'kaleido help'", command)
	}

	releaseBuildSet, debugBuildSet := false, false
	for _, arg := range flags {
		switch arg {
		case "-release":
			releaseBuildSet = true
			result.BuildType = config.RELEASE
		case "-debug":
			debugBuildSet = true
			result.BuildType = config.DEBUG
		default:
			return result, fmt.Errorf("unknown flag %q", arg)
		}
	}
	if releaseBuildSet && debugBuildSet {
		return result, fmt.Errorf("choose either -release or -debug, not both")
	}
	result.BuildTypeSet = releaseBuildSet || debugBuildSet

	return result, nil
}
