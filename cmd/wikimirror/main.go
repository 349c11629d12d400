package main

import (
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess          = 0
	ExitGeneralError     = 1
	ExitInvalidArgs      = 2
	ExitManifestError    = 3
	ExitStorageError     = 4
	ExitRunErrors        = 5
	ExitValidationFailed = 6
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	if len(args) == 0 {
		printUsage()
		return ExitInvalidArgs
	}

	command := args[0]
	cmdArgs := args[1:]

	switch command {
	case "mirror":
		return runMirror(cmdArgs)
	case "verify":
		return runVerify(cmdArgs)
	case "help", "-h", "--help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		return ExitInvalidArgs
	}
}

func printUsage() {
	fmt.Fprintln(os.Stderr, `Usage: wikimirror <command> [options]

Commands:
  mirror    Download every manifest entry, skipping files that already
            match their expected size and SHA-1
  verify    Check local files against the manifest without downloading

Run 'wikimirror <command> -h' for command-specific help.`)
}
