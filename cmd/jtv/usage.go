package main

import (
	"fmt"
	"io"

	"github.com/MakeNowJust/heredoc"
)

var usageText = heredoc.Doc(`
	Usage:
	  jtv [options] run <program.json>
	  jtv [options] <program.json>
	  jtv [options] check [--json] <program.json>
	  jtv version

	Options:
	  --max-steps=N      loop iteration ceiling (default 1000000)
	  --max-depth=N      call depth ceiling (default 1000)
	  --integer-bits=N   signed integer width: 0 (unbounded), 8, 16, 32 or 64
	  --config=PATH      config file; otherwise jtv.yml, jtv.yaml or jtv.toml is
	                     searched for from the program's directory upwards
	  --trace            report reverse-block traces and the final state
	  --no-color         disable styled diagnostics
`)

func printUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}
