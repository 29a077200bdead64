// Package theme maps color bands and fragment roles onto lipgloss styles.
package theme

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"github.com/mgrude/ccstatus/internal/classify"
)

var (
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	Dim     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	Accent  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	Branch  = lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	Model   = lipgloss.NewStyle().Bold(true)
	Cost    = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Added   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	Removed = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	Alert   = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)

	Title = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
)

// Band returns the style for a classification band.
func Band(b classify.Band) lipgloss.Style {
	switch b {
	case classify.High:
		return highStyle
	case classify.Medium:
		return mediumStyle
	default:
		return lowStyle
	}
}

// ForceANSI forces basic ANSI output regardless of tty detection. The
// status line is consumed by a host that interprets escape sequences even
// though stdout is a pipe, so auto-detection would wrongly strip color.
func ForceANSI() {
	lipgloss.SetColorProfile(termenv.ANSI)
}

// Plain disables color entirely; used by tests and --no-color output.
func Plain() {
	lipgloss.SetColorProfile(termenv.Ascii)
}
