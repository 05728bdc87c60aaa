package output

import (
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// IsTerminal reports whether stdout is attached to a terminal.
// CI runners are not, so styling and prompts are disabled there.
func IsTerminal() bool {
	return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
}

// ColorResolved colors a resolved fragment path
func ColorResolved(text string) string {
	if !IsTerminal() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")).
		Render(text)
}

// ColorUnresolved colors an unresolved fragment path
func ColorUnresolved(text string) string {
	if !IsTerminal() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("3")).
		Render(text)
}

// ColorDim makes text dim/gray
func ColorDim(text string) string {
	if !IsTerminal() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("8")).
		Render(text)
}

// ColorRef colors a PR reference, e.g. "#1234"
func ColorRef(text string) string {
	if !IsTerminal() {
		return text
	}
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("6")).
		Render(text)
}
