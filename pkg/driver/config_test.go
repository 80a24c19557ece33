package driver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"

	"jtv/interpreter-go/pkg/interpreter"
)

func writeFile(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(strings.TrimSpace(contents)+"\n"), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jtv.yml", heredoc.Doc(`
		limits:
		  max_steps: 500
		numeric:
		  integer_bits: 32
		output:
		  trace: true
	`))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Limits.MaxSteps != 500 {
		t.Fatalf("MaxSteps = %d, want 500", cfg.Limits.MaxSteps)
	}
	if cfg.Limits.MaxCallDepth != interpreter.DefaultMaxCallDepth {
		t.Fatalf("MaxCallDepth = %d, want default", cfg.Limits.MaxCallDepth)
	}
	if !cfg.Output.Trace {
		t.Fatalf("Trace = false, want true")
	}
	ic := cfg.Interpreter()
	if ic.MaxSteps != 500 || ic.IntegerBits != 32 {
		t.Fatalf("Interpreter() = %+v", ic)
	}
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jtv.toml", heredoc.Doc(`
		[limits]
		max_call_depth = 64

		[numeric]
		integer_bits = 8
	`))
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Limits.MaxCallDepth != 64 || cfg.Numeric.IntegerBits != 8 {
		t.Fatalf("config = %+v", cfg)
	}
	if cfg.Limits.MaxSteps != interpreter.DefaultMaxSteps {
		t.Fatalf("MaxSteps = %d, want default", cfg.Limits.MaxSteps)
	}
}

func TestLoadConfigRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	yml := writeFile(t, dir, "jtv.yml", "limits:\n  max_stepz: 10\n")
	if _, err := LoadConfig(yml); err == nil || !strings.Contains(err.Error(), "max_stepz") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	tml := writeFile(t, dir, "jtv.toml", "[limits]\nmax_stepz = 10\n")
	if _, err := LoadConfig(tml); err == nil {
		t.Fatalf("expected unknown field error for TOML")
	}
}

func TestLoadConfigValidates(t *testing.T) {
	path := writeFile(t, t.TempDir(), "jtv.yml", heredoc.Doc(`
		limits:
		  max_steps: -1
		numeric:
		  integer_bits: 12
	`))
	_, err := LoadConfig(path)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"limits.max_steps", "numeric.integer_bits"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q does not mention %s", err, want)
		}
	}
}

func TestEmptyYAMLKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jtv.yaml")
	if err := os.WriteFile(path, nil, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Limits.MaxSteps != interpreter.DefaultMaxSteps {
		t.Fatalf("MaxSteps = %d", cfg.Limits.MaxSteps)
	}
}

func TestFindConfigWalksUp(t *testing.T) {
	root := t.TempDir()
	want := writeFile(t, root, "jtv.toml", "[limits]\nmax_steps = 9\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	program := writeFile(t, nested, "main.json", "[]")

	got, err := FindConfig(program)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if got != want {
		t.Fatalf("FindConfig = %q, want %q", got, want)
	}

	writeFile(t, nested, "jtv.yml", "limits:\n  max_steps: 3\n")
	got, err = FindConfig(nested)
	if err != nil {
		t.Fatalf("FindConfig returned error: %v", err)
	}
	if filepath.Base(got) != "jtv.yml" || filepath.Dir(got) != nested {
		t.Fatalf("FindConfig = %q, want nested jtv.yml", got)
	}
}
