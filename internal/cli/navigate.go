package cli

import (
	"context"

	"github.com/alexanderramin/todo/internal/service"
	tea "github.com/charmbracelet/bubbletea"
)

// Navigation messages used by views to request view transitions.
// The appModel handles these in its Update method.

// pushViewMsg pushes a new view onto the navigation stack.
type pushViewMsg struct {
	view View
}

// popViewMsg pops the current view off the navigation stack,
// returning to the previous view.
type popViewMsg struct{}

// todoResultMsg carries the outcome of one TodoState operation. The app
// model broadcasts it to every view on the stack.
type todoResultMsg struct {
	result service.Result
}

// pushView returns a tea.Cmd that pushes a view onto the stack.
func pushView(v View) tea.Cmd {
	return func() tea.Msg { return pushViewMsg{view: v} }
}

// popView returns a tea.Cmd that pops the current view.
func popView() tea.Cmd {
	return func() tea.Msg { return popViewMsg{} }
}

// runOp runs a TodoState operation off the UI goroutine and reports its
// Result.
func runOp(fn func(ctx context.Context) service.Result) tea.Cmd {
	return func() tea.Msg {
		return todoResultMsg{result: fn(context.Background())}
	}
}
