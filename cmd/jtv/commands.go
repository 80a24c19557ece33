package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"jtv/interpreter-go/pkg/driver"
	"jtv/interpreter-go/pkg/interpreter"
)

type commandLine struct {
	opts   cliOptions
	stdout io.Writer
	stderr io.Writer
	render *renderer
}

func (c *commandLine) programPath(args []string, command string) (string, bool) {
	if len(args) != 1 {
		fmt.Fprintf(c.stderr, "jtv %s expects exactly one program file\n", command)
		printUsage(c.stderr)
		return "", false
	}
	return args[0], true
}

// loadSettings resolves the config file for path and applies flag
// overrides on top of it.
func (c *commandLine) loadSettings(path string) (*driver.Config, error) {
	configPath := c.opts.configPath
	if configPath == "" {
		found, err := driver.FindConfig(path)
		if err != nil {
			return nil, err
		}
		configPath = found
	}
	cfg := driver.DefaultConfig()
	if configPath != "" {
		loaded, err := driver.LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if c.opts.maxSteps != nil {
		cfg.Limits.MaxSteps = *c.opts.maxSteps
	}
	if c.opts.maxDepth != nil {
		cfg.Limits.MaxCallDepth = *c.opts.maxDepth
	}
	if c.opts.integerBits != nil {
		cfg.Numeric.IntegerBits = *c.opts.integerBits
	}
	if c.opts.trace {
		cfg.Output.Trace = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func (c *commandLine) runProgram(args []string) int {
	path, ok := c.programPath(args, "run")
	if !ok {
		return exitFailure
	}
	cfg, err := c.loadSettings(path)
	if err != nil {
		c.render.runtimeError(err)
		return exitFailure
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		c.render.runtimeError(err)
		return exitFailure
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	settings := cfg.Interpreter()
	settings.Output = c.stdout
	result, err := interpreter.Run(ctx, program, settings)

	var checkErr *interpreter.CheckError
	if errors.As(err, &checkErr) {
		c.render.checkErrors(path, checkErr)
		return exitFailure
	}
	if cfg.Output.Trace {
		c.render.trace(result)
	}
	if err != nil {
		c.render.runtimeError(err)
		return exitRuntime
	}
	return exitOK
}

func (c *commandLine) runCheck(args []string) int {
	path, ok := c.programPath(args, "check")
	if !ok {
		return exitFailure
	}
	program, err := driver.LoadProgram(path)
	if err != nil {
		c.render.runtimeError(err)
		return exitFailure
	}

	_, err = interpreter.Check(program)
	var checkErr *interpreter.CheckError
	if err != nil && !errors.As(err, &checkErr) {
		c.render.runtimeError(err)
		return exitFailure
	}

	if c.opts.json {
		entries := []diagnosticEntry{}
		if checkErr != nil {
			entries = staticEntries(checkErr)
		}
		encoded, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			c.render.runtimeError(err)
			return exitFailure
		}
		fmt.Fprintln(c.stdout, string(encoded))
	} else if checkErr != nil {
		c.render.checkErrors(path, checkErr)
	} else {
		c.render.checkOK(path)
	}
	if checkErr != nil {
		return exitFailure
	}
	return exitOK
}
