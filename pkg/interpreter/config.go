package interpreter

import "io"

const (
	DefaultMaxSteps     = 1_000_000
	DefaultMaxCallDepth = 1_000
)

// Config bounds and directs one interpreter.
type Config struct {
	// MaxSteps caps loop iterations across the whole run.
	MaxSteps int
	// MaxCallDepth caps nested function calls.
	MaxCallDepth int
	// IntegerBits enforces a signed integer width; zero is unbounded.
	IntegerBits int
	// Output receives each printed line as it is produced. Lines are also
	// kept in Result.Output.
	Output io.Writer
}

func (c Config) withDefaults() Config {
	if c.MaxSteps <= 0 {
		c.MaxSteps = DefaultMaxSteps
	}
	if c.MaxCallDepth <= 0 {
		c.MaxCallDepth = DefaultMaxCallDepth
	}
	return c
}
