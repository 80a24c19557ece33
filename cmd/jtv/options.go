package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// cliOptions holds flags that may appear anywhere on the command line.
// Unset numeric overrides are nil so the config file keeps its value.
type cliOptions struct {
	maxSteps    *int
	maxDepth    *int
	integerBits *int
	trace       bool
	json        bool
	noColor     bool
	configPath  string
}

func (o cliOptions) color() bool {
	return !o.noColor && os.Getenv("NO_COLOR") == ""
}

func parseOptions(args []string) (cliOptions, []string, error) {
	var opts cliOptions
	remaining := make([]string, 0, len(args))
	for i := 0; i < len(args); i++ {
		arg := args[i]
		if arg == "--" {
			remaining = append(remaining, args[i+1:]...)
			break
		}
		name, value, hasValue := strings.Cut(arg, "=")
		switch name {
		case "--trace":
			opts.trace = true
		case "--json":
			opts.json = true
		case "--no-color":
			opts.noColor = true
		case "--max-steps", "--max-depth", "--integer-bits", "--config":
			if !hasValue {
				if i+1 >= len(args) {
					return opts, nil, fmt.Errorf("%s expects a value", name)
				}
				value = args[i+1]
				i++
			}
			if name == "--config" {
				if strings.TrimSpace(value) == "" {
					return opts, nil, fmt.Errorf("--config expects a value")
				}
				opts.configPath = value
				continue
			}
			n, err := parseCount(name, value)
			if err != nil {
				return opts, nil, err
			}
			switch name {
			case "--max-steps":
				opts.maxSteps = &n
			case "--max-depth":
				opts.maxDepth = &n
			case "--integer-bits":
				opts.integerBits = &n
			}
		default:
			remaining = append(remaining, arg)
		}
	}
	return opts, remaining, nil
}

func parseCount(flag, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%s expects an integer, got '%s'", flag, value)
	}
	if n < 0 {
		return 0, fmt.Errorf("%s must not be negative, got %d", flag, n)
	}
	return n, nil
}
