package cli

import (
	"strings"

	"github.com/alexanderramin/todo/internal/cli/formatter"
	tea "github.com/charmbracelet/bubbletea"
)

// appModel is the root bubbletea Model for the TUI. It manages a view stack
// whose bottom is always the todo list.
type appModel struct {
	state     *SharedState
	viewStack []View
	quitting  bool
}

func newAppModel(state *SharedState) appModel {
	return appModel{
		state:     state,
		viewStack: []View{newTodoListView(state)},
	}
}

// activeView returns the top view on the stack, or nil.
func (m *appModel) activeView() View {
	if len(m.viewStack) == 0 {
		return nil
	}
	return m.viewStack[len(m.viewStack)-1]
}

// setActiveView replaces the top of the view stack.
// If the stack is empty, this is a no-op.
func (m *appModel) setActiveView(v View) {
	if len(m.viewStack) > 0 {
		m.viewStack[len(m.viewStack)-1] = v
	}
}

// ── bubbletea interface ──────────────────────────────────────────────────────

func (m appModel) Init() tea.Cmd {
	if v := m.activeView(); v != nil {
		return v.Init()
	}
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		return m, m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)

	case pushViewMsg:
		m.viewStack = append(m.viewStack, msg.view)
		return m, msg.view.Init()

	case popViewMsg:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil

	case todoResultMsg:
		// Views below the top still own requests they issued.
		return m, m.broadcast(msg)
	}

	// Forward everything else (mouse, cursor blink) to the active view.
	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

// broadcast delivers msg to every view on the stack.
func (m *appModel) broadcast(msg tea.Msg) tea.Cmd {
	var cmds []tea.Cmd
	for i, v := range m.viewStack {
		updated, cmd := v.Update(msg)
		m.viewStack[i] = updated.(View)
		if cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	return tea.Batch(cmds...)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		m.quitting = true
		return m, tea.Quit
	}

	// A view with a focused input receives all characters, including q and esc.
	if v := m.activeView(); v != nil && viewCapturesInput(v) {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}

	switch {
	case msg.String() == "q":
		m.quitting = true
		return m, tea.Quit

	case msg.Type == tea.KeyEsc:
		if len(m.viewStack) > 1 {
			m.viewStack = m.viewStack[:len(m.viewStack)-1]
		}
		return m, nil
	}

	if v := m.activeView(); v != nil {
		updated, cmd := v.Update(msg)
		m.setActiveView(updated.(View))
		return m, cmd
	}
	return m, nil
}

func (m appModel) View() string {
	if m.quitting {
		return ""
	}

	sections := []string{m.renderHeader()}
	if v := m.activeView(); v != nil {
		sections = append(sections, v.View())
	}
	sections = append(sections, m.renderStatusBar())

	result := strings.Join(sections, "\n")

	// Pad to terminal height to prevent stale line artifacts from
	// bubbletea's line-diff renderer in alt-screen mode.
	if m.state.Height > 0 {
		lines := strings.Count(result, "\n") + 1
		if lines < m.state.Height {
			result += strings.Repeat("\n", m.state.Height-lines)
		}
	}
	return result
}

// ── rendering helpers ────────────────────────────────────────────────────────

func (m *appModel) renderHeader() string {
	title := formatter.StylePurple.Render("todo")

	var crumbs []string
	for _, v := range m.viewStack {
		if t := v.Title(); t != "" {
			crumbs = append(crumbs, t)
		}
	}
	if len(crumbs) > 0 {
		title += " " + formatter.Dim("›") + " " + formatter.Dim(strings.Join(crumbs, " › "))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return title + "\n" + sep
}

func (m *appModel) renderStatusBar() string {
	var hints []string
	v := m.activeView()
	if v != nil {
		for _, b := range v.ShortHelp() {
			hints = append(hints, formatter.Dim(b.Help().Key+": "+b.Help().Desc))
		}
	}
	if v != nil && !viewCapturesInput(v) {
		if len(m.viewStack) > 1 {
			hints = append(hints, formatter.Dim("esc: back"))
		}
		hints = append(hints, formatter.Dim("q: quit"))
	}

	sep := formatter.Dim(strings.Repeat("─", max(m.state.Width, 20)))
	return sep + "\n" + strings.Join(hints, "  ")
}
