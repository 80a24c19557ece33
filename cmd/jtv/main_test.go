package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aymanbagabas/go-udiff"
)

func runCLI(args ...string) string {
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--no-color"}, args...), &stdout, &stderr)
	return fmt.Sprintf("exit: %d\n-- stdout --\n%s-- stderr --\n%s", code, stdout.String(), stderr.String())
}

func requireGolden(t *testing.T, name, got string) {
	t.Helper()
	path := filepath.Join("testdata", name+".golden")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden: %v", err)
	}
	if want := string(data); want != got {
		t.Fatalf("output mismatch for %s:\n%s", name, udiff.Unified("want", "got", want, got))
	}
}

func TestCLIGolden(t *testing.T) {
	cases := []struct {
		name string
		args []string
	}{
		{name: "run_straight_trace", args: []string{"--trace", "run", "testdata/straight.json"}},
		{name: "run_target_in_expr", args: []string{"run", "testdata/target_in_expr.json"}},
		{name: "run_spin_limited", args: []string{"testdata/limited/spin.json"}},
		{name: "check_impure_json", args: []string{"check", "--json", "testdata/impure_call.json"}},
		{name: "check_straight", args: []string{"check", "testdata/straight.json"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			requireGolden(t, tc.name, runCLI(tc.args...))
		})
	}
}

func TestFlagsOverrideConfigFile(t *testing.T) {
	got := runCLI("--max-steps=10", "run", "testdata/limited/spin.json")
	if !strings.Contains(got, "iteration limit of 10 steps exceeded") {
		t.Fatalf("--max-steps did not override jtv.yml:\n%s", got)
	}
	got = runCLI("--integer-bits", "12", "run", "testdata/straight.json")
	if !strings.Contains(got, "numeric.integer_bits") || !strings.HasPrefix(got, "exit: 1") {
		t.Fatalf("invalid width should be rejected:\n%s", got)
	}
}

func TestParseOptions(t *testing.T) {
	opts, rest, err := parseOptions([]string{"--trace", "run", "--max-depth", "7", "--config=x.toml", "p.json"})
	if err != nil {
		t.Fatalf("parseOptions returned error: %v", err)
	}
	if !opts.trace || opts.maxDepth == nil || *opts.maxDepth != 7 || opts.configPath != "x.toml" {
		t.Fatalf("opts = %+v", opts)
	}
	if strings.Join(rest, " ") != "run p.json" {
		t.Fatalf("remaining = %v", rest)
	}
	if _, _, err := parseOptions([]string{"--max-steps"}); err == nil {
		t.Fatalf("expected missing value error")
	}
	if _, _, err := parseOptions([]string{"--max-steps=ten"}); err == nil {
		t.Fatalf("expected integer error")
	}
}

func TestVersionAndUsage(t *testing.T) {
	if got := runCLI("version"); !strings.Contains(got, cliToolVersion) {
		t.Fatalf("version output:\n%s", got)
	}
	if got := runCLI("run"); !strings.HasPrefix(got, "exit: 1") || !strings.Contains(got, "Usage:") {
		t.Fatalf("missing program should print usage:\n%s", got)
	}
}
