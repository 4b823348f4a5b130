package cli

import (
	"errors"
	"strings"

	"github.com/alexanderramin/todo/internal/cli/formatter"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// todoHuhTheme returns a huh theme using the shared gruvbox palette.
func todoHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// titleInput returns a huh.Input for a required todo title.
func titleInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Title").
		Placeholder("What needs to be done?").
		Value(value).
		Validate(validateTitle)
}

// titleForm returns a themed single-field Form for collecting a title.
func titleForm(value *string) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(titleInput(value)),
	).WithTheme(todoHuhTheme()).WithShowHelp(false)
}

func validateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("title is required")
	}
	return nil
}
