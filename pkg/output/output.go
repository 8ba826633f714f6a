// Package output provides styled terminal output for Quill generators.
//
// Functions use lipgloss for styling but abstract away the details from callers.
// Every Printer writes to the writer it was created with; nothing here
// touches package-level state.
package output

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("green")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("red")).Bold(true)
	infoStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("cyan"))
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// Printer renders user-facing messages.
type Printer struct {
	out io.Writer
}

// New returns a Printer writing to out, or to stdout when out is nil.
func New(out io.Writer) *Printer {
	if out == nil {
		out = os.Stdout
	}
	return &Printer{out: out}
}

// Success prints a success message with 🪶 emoji and green color.
//
// Example:
//
//	printer.Success("Generated 3 files")
func (p *Printer) Success(msg string) {
	fmt.Fprintln(p.out, successStyle.Render("🪶 "+msg))
}

// Error prints an error message with ❌ emoji and red color.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.out, errorStyle.Render("❌ "+msg))
}

// Info prints an informational message in cyan.
func (p *Printer) Info(msg string) {
	fmt.Fprintln(p.out, infoStyle.Render("ℹ️  "+msg))
}

// Step prints an indented step message in gray.
func (p *Printer) Step(msg string) {
	fmt.Fprintln(p.out, stepStyle.Render("   "+msg))
}

// Plain prints text without any styling. Help text goes through here so it
// can be piped or grepped.
func (p *Printer) Plain(text string) {
	fmt.Fprint(p.out, text)
}
