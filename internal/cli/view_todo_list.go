package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/todo/internal/cli/formatter"
	"github.com/alexanderramin/todo/internal/domain"
	"github.com/alexanderramin/todo/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const progressWidth = 20

type listKeyMap struct {
	Add, Up, Down, Complete, Edit, Remove, Open, Reload key.Binding
	Submit, Blur                                        key.Binding
}

var listKeys = listKeyMap{
	Add:      key.NewBinding(key.WithKeys("a", "n"), key.WithHelp("a", "add")),
	Up:       key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
	Down:     key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
	Complete: key.NewBinding(key.WithKeys(" ", "c"), key.WithHelp("space", "done")),
	Edit:     key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
	Remove:   key.NewBinding(key.WithKeys("x", "d"), key.WithHelp("x", "delete")),
	Open:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
	Reload:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "refresh")),
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "create")),
	Blur:     key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
}

// todoListView shows the incomplete and completed partitions of the
// collection with a cursor, an input for new titles and the edit modal.
// It owns only transient UI state; records are read from TodoState on
// every render.
type todoListView struct {
	state   *SharedState
	cursor  int
	loading bool
	err     string
	input   textinput.Model
	modal   editModal

	// creating is set while a submitted title awaits the remote; submitted
	// holds that title so only an unchanged input is cleared on success.
	creating  bool
	submitted string
}

func newTodoListView(state *SharedState) *todoListView {
	ti := textinput.New()
	ti.Placeholder = "What needs to be done?"
	ti.Prompt = "+ "
	ti.PromptStyle = formatter.StyleGreen
	ti.Width = 50

	v := &todoListView{state: state, input: ti}
	v.modal = newEditModal(func(id domain.ID, title string) tea.Cmd {
		return runOp(func(ctx context.Context) service.Result {
			return state.Todos.Edit(ctx, id, title)
		})
	})
	return v
}

func (v *todoListView) ID() ViewID    { return ViewTodoList }
func (v *todoListView) Title() string { return "Todos" }

func (v *todoListView) ShortHelp() []key.Binding {
	switch {
	case v.modal.IsOpen():
		return []key.Binding{modalKeys.Save, modalKeys.Cancel}
	case v.input.Focused():
		return []key.Binding{listKeys.Submit, listKeys.Blur}
	}
	return []key.Binding{
		listKeys.Add, listKeys.Complete, listKeys.Edit,
		listKeys.Remove, listKeys.Open, listKeys.Reload,
	}
}

// CapturesInput is true while the new-title input or the modal is focused.
func (v *todoListView) CapturesInput() bool {
	return v.input.Focused() || v.modal.IsOpen()
}

func (v *todoListView) Init() tea.Cmd {
	return v.reload()
}

func (v *todoListView) reload() tea.Cmd {
	v.loading = true
	return runOp(v.state.Todos.Load)
}

// rows returns incomplete then completed records, the order the cursor walks.
func (v *todoListView) rows() []domain.Todo {
	incomplete, completed := v.state.Todos.Partitions()
	return append(incomplete, completed...)
}

func (v *todoListView) selected() (domain.Todo, bool) {
	rows := v.rows()
	if v.cursor < 0 || v.cursor >= len(rows) {
		return domain.Todo{}, false
	}
	return rows[v.cursor], true
}

func (v *todoListView) clampCursor() {
	n := len(v.rows())
	if v.cursor >= n {
		v.cursor = n - 1
	}
	if v.cursor < 0 {
		v.cursor = 0
	}
}

func (v *todoListView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case todoResultMsg:
		v.handleResult(msg.result)
		return v, nil

	case tea.MouseMsg:
		if v.modal.ClickedOutside(msg, v.state.Width, v.state.ContentTop()) {
			v.modal.Close()
		}
		return v, nil

	case tea.KeyMsg:
		if v.modal.IsOpen() {
			return v, v.modal.Update(msg)
		}
		if v.input.Focused() {
			return v, v.updateInput(msg)
		}
		return v, v.handleKey(msg)
	}

	// Cursor blink and other internal messages.
	if v.modal.IsOpen() {
		return v, v.modal.Update(msg)
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return v, cmd
}

func (v *todoListView) handleResult(res service.Result) {
	switch res.Op {
	case service.OpLoad:
		v.loading = false
	case service.OpCreate:
		v.creating = false
	}
	v.modal.HandleResult(res)

	switch {
	case res.Err != nil:
		v.err = fmt.Sprintf("%s failed: %v", res.Op, res.Err)
	case res.OK():
		v.err = ""
		if res.Op == service.OpCreate && v.input.Value() == v.submitted {
			v.input.Reset()
		}
	}
	v.clampCursor()
}

func (v *todoListView) updateInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Submit):
		if v.creating {
			return nil
		}
		title := v.input.Value()
		v.creating = true
		v.submitted = title
		return runOp(func(ctx context.Context) service.Result {
			return v.state.Todos.Create(ctx, title)
		})
	case key.Matches(msg, listKeys.Blur):
		v.input.Blur()
		return nil
	}
	var cmd tea.Cmd
	v.input, cmd = v.input.Update(msg)
	return cmd
}

func (v *todoListView) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, listKeys.Add):
		return v.input.Focus()

	case key.Matches(msg, listKeys.Up):
		if v.cursor > 0 {
			v.cursor--
		}

	case key.Matches(msg, listKeys.Down):
		if v.cursor < len(v.rows())-1 {
			v.cursor++
		}

	case key.Matches(msg, listKeys.Reload):
		return v.reload()
	}

	t, ok := v.selected()
	if !ok {
		return nil
	}
	todos := v.state.Todos
	switch {
	case key.Matches(msg, listKeys.Complete):
		return runOp(func(ctx context.Context) service.Result {
			return todos.Complete(ctx, t.ID)
		})
	case key.Matches(msg, listKeys.Remove):
		return runOp(func(ctx context.Context) service.Result {
			return todos.Remove(ctx, t.ID)
		})
	case key.Matches(msg, listKeys.Edit):
		return v.modal.Open(t)
	case key.Matches(msg, listKeys.Open):
		return pushView(newDetailView(v.state, t.ID))
	}
	return nil
}

func (v *todoListView) View() string {
	incomplete, completed := v.state.Todos.Partitions()
	total := len(incomplete) + len(completed)

	var b strings.Builder
	b.WriteString("  " + formatter.RenderCounts(len(incomplete), len(completed)) +
		"  " + formatter.RenderProgress(formatter.Ratio(len(completed), total), progressWidth) + "\n\n")

	switch {
	case v.loading && !v.state.Todos.Loaded():
		b.WriteString("  " + formatter.Dim("Loading todos...") + "\n")
	case total == 0:
		b.WriteString("  " + formatter.Dim("Nothing to do. Press a to add a todo.") + "\n")
	default:
		width := max(v.state.Width-12, 10)
		v.writeSection(&b, "Incomplete", incomplete, 0, width)
		b.WriteString("\n")
		v.writeSection(&b, "Completed", completed, len(incomplete), width)
	}

	b.WriteString("\n  " + v.input.View() + "\n")
	b.WriteString("  " + v.statusLine())

	return v.modal.overlay(b.String(), v.state.Width)
}

func (v *todoListView) writeSection(b *strings.Builder, title string, todos []domain.Todo, offset, width int) {
	b.WriteString(indent(formatter.Header(title)) + "\n")
	if len(todos) == 0 {
		b.WriteString("    " + formatter.Dim("none") + "\n")
		return
	}
	for i, t := range todos {
		cursor := "  "
		if offset+i == v.cursor {
			cursor = formatter.StyleGreen.Render("▸ ")
		}
		t.Title = formatter.Truncate(t.Title, width)
		b.WriteString("  " + cursor + formatter.FormatTodoLine(t) + "\n")
	}
}

func (v *todoListView) statusLine() string {
	switch {
	case v.err != "":
		return formatter.StyleRed.Render("Error: " + v.err)
	case v.creating:
		return formatter.Dim("Adding...")
	case v.loading:
		return formatter.Dim("Refreshing...")
	}
	return ""
}

func indent(s string) string {
	return "  " + strings.ReplaceAll(s, "\n", "\n  ")
}
