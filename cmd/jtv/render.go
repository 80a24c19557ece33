package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"jtv/interpreter-go/pkg/interpreter"
	"jtv/interpreter-go/pkg/runtime"
)

type renderer struct {
	w          io.Writer
	errorLabel lipgloss.Style
	stageLabel lipgloss.Style
	okLabel    lipgloss.Style
	dim        lipgloss.Style
}

func newRenderer(w io.Writer, color bool) *renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return &renderer{
		w:          w,
		errorLabel: r.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		stageLabel: r.NewStyle().Foreground(lipgloss.Color("13")),
		okLabel:    r.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		dim:        r.NewStyle().Faint(true),
	}
}

// diagnosticEntry is one static error in render and JSON form.
type diagnosticEntry struct {
	Stage   string `json:"stage"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func staticEntries(err *interpreter.CheckError) []diagnosticEntry {
	entries := make([]diagnosticEntry, 0, err.Len())
	for _, d := range err.Type {
		entries = append(entries, diagnosticEntry{Stage: "type", Kind: d.Kind.String(), Message: d.Message})
	}
	for _, p := range err.Purity {
		entries = append(entries, diagnosticEntry{Stage: "purity", Kind: p.Kind.String(), Message: p.Error()})
	}
	for _, r := range err.Reversibility {
		entries = append(entries, diagnosticEntry{Stage: "reversibility", Kind: r.Kind.String(), Message: r.Error()})
	}
	return entries
}

func (r *renderer) checkErrors(path string, err *interpreter.CheckError) {
	for _, e := range staticEntries(err) {
		fmt.Fprintf(r.w, "%s %s %s\n", r.errorLabel.Render("error"), r.stageLabel.Render("["+e.Kind+"]"), e.Message)
	}
	fmt.Fprintln(r.w, r.dim.Render(fmt.Sprintf("%s: %d static error(s), program not run", path, err.Len())))
}

func (r *renderer) runtimeError(err error) {
	var rtErr *interpreter.RuntimeError
	if errors.As(err, &rtErr) {
		fmt.Fprintf(r.w, "%s %s %s\n", r.errorLabel.Render("runtime error"), r.stageLabel.Render("["+rtErr.Kind.String()+"]"), rtErr.Error())
		return
	}
	fmt.Fprintf(r.w, "%s %s\n", r.errorLabel.Render("error"), err)
}

func (r *renderer) checkOK(path string) {
	fmt.Fprintf(r.w, "%s %s\n", r.okLabel.Render("ok"), path)
}

func (r *renderer) trace(result *interpreter.Result) {
	if result == nil {
		return
	}
	for idx, t := range result.Traces {
		fmt.Fprintln(r.w, r.dim.Render(fmt.Sprintf("reverse block %d:", idx+1)))
		for _, e := range t.Entries() {
			fmt.Fprintf(r.w, "  %s\n", e)
		}
	}
	if result.State != nil {
		fmt.Fprintln(r.w, r.dim.Render("state:"))
		for _, name := range result.State.Names() {
			v, _ := result.State.Get(name)
			fmt.Fprintf(r.w, "  %s = %s (%s)\n", name, v, v.Kind())
		}
	}
	fmt.Fprintf(r.w, "%s %d\n", r.dim.Render("steps:"), result.Steps)
	if result.Value != nil {
		fmt.Fprintf(r.w, "%s %s\n", r.dim.Render("returned:"), formatValue(result.Value))
	}
}

func formatValue(v runtime.Value) string {
	return fmt.Sprintf("%s (%s)", v, v.Kind())
}
