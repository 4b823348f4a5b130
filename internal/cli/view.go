package cli

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewID identifies each type of view in the TUI.
type ViewID int

const (
	ViewTodoList ViewID = iota
	ViewDetail
)

// View is the interface that all TUI views must implement.
// It extends tea.Model with navigation and help metadata.
type View interface {
	tea.Model
	ID() ViewID
	ShortHelp() []key.Binding // key hints shown in the bottom bar
	Title() string            // breadcrumb segment for this view
}

// inputCapturer is implemented by views that sometimes own the keyboard,
// e.g. while a text input is focused. While CapturesInput reports true the
// app model forwards every key instead of applying global bindings.
type inputCapturer interface {
	CapturesInput() bool
}

func viewCapturesInput(v View) bool {
	c, ok := v.(inputCapturer)
	return ok && c.CapturesInput()
}
