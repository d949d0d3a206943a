// Package output renders CLI results in a mode appropriate for the
// environment: styled text on a terminal, markdown when piped, or
// JSON on request.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Mode selects the output format.
type Mode string

const (
	// ModeAuto picks text on a TTY and markdown otherwise.
	ModeAuto     Mode = "auto"
	ModeText     Mode = "text"
	ModeMarkdown Mode = "markdown"
	ModeJSON     Mode = "json"
)

// ValidMode reports whether s names a known output mode. The empty
// string counts as auto.
func ValidMode(s string) bool {
	switch Mode(s) {
	case ModeAuto, ModeText, ModeMarkdown, ModeJSON, "":
		return true
	}
	return false
}

// Styles holds the lipgloss styles used in text mode.
type Styles struct {
	Header  lipgloss.Style
	Success lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
}

// DefaultStyles returns the standard style set. When the environment
// reports no color support every style degrades to plain text.
func DefaultStyles() *Styles {
	if termenv.EnvColorProfile() == termenv.Ascii {
		plain := lipgloss.NewStyle()
		return &Styles{Header: plain.Bold(true), Success: plain, Muted: plain, Error: plain}
	}
	return &Styles{
		Header:  lipgloss.NewStyle().Bold(true),
		Success: lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	}
}

// Renderer writes results to out and diagnostics to errOut.
type Renderer struct {
	out    io.Writer
	errOut io.Writer
	mode   Mode
	styles *Styles
}

// NewRenderer creates a renderer. An empty mode means auto.
func NewRenderer(out, errOut io.Writer, mode Mode) *Renderer {
	if mode == "" {
		mode = ModeAuto
	}
	return &Renderer{out: out, errOut: errOut, mode: mode, styles: DefaultStyles()}
}

// EffectiveMode resolves ModeAuto against the environment: text when
// stdout is a terminal, markdown when piped.
func (r *Renderer) EffectiveMode() Mode {
	if r.mode != ModeAuto {
		return r.mode
	}
	if f, ok := r.out.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return ModeText
	}
	return ModeMarkdown
}

// Header prints a section header in the effective mode's idiom.
func (r *Renderer) Header(level int, text string) {
	if r.EffectiveMode() == ModeText {
		fmt.Fprintln(r.out, r.styles.Header.Render(text))
		return
	}
	fmt.Fprintln(r.out, FormatHeader(level, text))
}

// Println writes a plain line to the output stream.
func (r *Renderer) Println(s string) {
	fmt.Fprintln(r.out, s)
}

// Success writes a result line, styled in text mode.
func (r *Renderer) Success(s string) {
	if r.EffectiveMode() == ModeText {
		s = r.styles.Success.Render(s)
	}
	fmt.Fprintln(r.out, s)
}

// Muted writes an informational line, dimmed in text mode.
func (r *Renderer) Muted(s string) {
	if r.EffectiveMode() == ModeText {
		s = r.styles.Muted.Render(s)
	}
	fmt.Fprintln(r.out, s)
}

// Error writes an error line to the diagnostic stream.
func (r *Renderer) Error(s string) {
	if r.EffectiveMode() == ModeText {
		s = r.styles.Error.Render(s)
	}
	fmt.Fprintln(r.errOut, s)
}

// JSON writes v as an indented JSON document.
func (r *Renderer) JSON(v any) error {
	enc := json.NewEncoder(r.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table renders a header and rows as a go-pretty table in text mode
// and as a markdown table otherwise.
func (r *Renderer) Table(header []string, rows [][]string) {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)

	headerRow := make(table.Row, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	t.AppendHeader(headerRow)
	for _, row := range rows {
		cells := make(table.Row, len(row))
		for i, c := range row {
			cells[i] = c
		}
		t.AppendRow(cells)
	}

	if r.EffectiveMode() == ModeText {
		t.Render()
		return
	}
	t.RenderMarkdown()
}

// FormatHeader formats a markdown header of the given level.
func FormatHeader(level int, text string) string {
	return strings.Repeat("#", level) + " " + text
}
