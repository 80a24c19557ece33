package main

import (
	"fmt"
	"io"
	"os"
)

const cliToolVersion = "jtv 0.1.0-dev"

const (
	exitOK      = 0
	exitFailure = 1
	exitRuntime = 2
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return exitFailure
	}

	opts, remaining, err := parseOptions(args)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return exitFailure
	}
	if len(remaining) == 0 {
		printUsage(stderr)
		return exitFailure
	}

	cli := &commandLine{opts: opts, stdout: stdout, stderr: stderr, render: newRenderer(stderr, opts.color())}
	switch remaining[0] {
	case "--help", "-h", "help":
		printUsage(stderr)
		return exitOK
	case "--version", "-V", "version":
		fmt.Fprintln(stdout, cliToolVersion)
		return exitOK
	case "run":
		return cli.runProgram(remaining[1:])
	case "check":
		return cli.runCheck(remaining[1:])
	default:
		return cli.runProgram(remaining)
	}
}
