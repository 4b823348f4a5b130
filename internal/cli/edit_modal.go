package cli

import (
	"strings"

	"github.com/alexanderramin/todo/internal/cli/formatter"
	"github.com/alexanderramin/todo/internal/domain"
	"github.com/alexanderramin/todo/internal/service"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const (
	modalInputWidth = 40
	// modalTopPad is the number of content rows above the modal box.
	modalTopPad = 1
)

type modalState int

const (
	modalClosed modalState = iota
	modalOpen
)

// editModal edits the title of one record in its own buffer. It is Closed
// until opened on a record, and returns to Closed on cancel, a successful or
// superseded save, or a click outside its box.
type editModal struct {
	state  modalState
	id     domain.ID
	input  textinput.Model
	saving bool
	err    string
	save   func(id domain.ID, title string) tea.Cmd
}

var modalKeys = struct {
	Save, Cancel key.Binding
}{
	Save:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
	Cancel: key.NewBinding(key.WithKeys("ctrl+x", "esc"), key.WithHelp("ctrl+x/esc", "cancel")),
}

func newEditModal(save func(id domain.ID, title string) tea.Cmd) editModal {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.Width = modalInputWidth
	ti.PromptStyle = formatter.StyleHeader
	ti.TextStyle = formatter.StyleFg
	return editModal{input: ti, save: save}
}

// IsOpen reports whether the modal is showing.
func (m *editModal) IsOpen() bool { return m.state == modalOpen }

// Saving reports whether a save is in flight.
func (m *editModal) Saving() bool { return m.saving }

// Open shows the modal with a copy of t's title.
func (m *editModal) Open(t domain.Todo) tea.Cmd {
	m.state = modalOpen
	m.id = t.ID
	m.saving = false
	m.err = ""
	m.input.SetValue(t.Title)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Close discards the buffer. A save still in flight completes in the
// background but no longer affects the modal.
func (m *editModal) Close() {
	m.state = modalClosed
	m.saving = false
	m.err = ""
	m.input.Blur()
	m.input.SetValue("")
}

// Update handles keys while open.
func (m *editModal) Update(msg tea.Msg) tea.Cmd {
	if !m.IsOpen() {
		return nil
	}
	if k, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(k, modalKeys.Cancel):
			m.Close()
			return nil
		case key.Matches(k, modalKeys.Save):
			return m.submit()
		}
		if m.saving {
			return nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return cmd
}

func (m *editModal) submit() tea.Cmd {
	if m.saving {
		return nil
	}
	m.saving = true
	m.err = ""
	return m.save(m.id, m.input.Value())
}

// HandleResult applies the outcome of the modal's own save. Results for
// other records or operations are ignored.
func (m *editModal) HandleResult(res service.Result) {
	if !m.IsOpen() || !m.saving || res.Op != service.OpEdit || res.ID != m.id {
		return
	}
	m.saving = false
	if res.Err != nil {
		m.err = res.Err.Error()
		return
	}
	m.Close()
}

// ClickedOutside reports whether msg is a left-button press outside the
// box when laid out in a content area of the given width starting at row top.
func (m *editModal) ClickedOutside(msg tea.MouseMsg, width, top int) bool {
	if !m.IsOpen() || msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return false
	}
	x, y, w, h := m.bounds(width, top)
	inside := msg.X >= x && msg.X < x+w && msg.Y >= y && msg.Y < y+h
	return !inside
}

// bounds returns the screen rectangle the box occupies.
func (m *editModal) bounds(width, top int) (x, y, w, h int) {
	box := m.render()
	w, h = lipgloss.Width(box), lipgloss.Height(box)
	return max((width-w)/2, 0), top + modalTopPad, w, h
}

func (m *editModal) render() string {
	status := formatter.Dim("enter: save  ctrl+x: cancel")
	switch {
	case m.saving:
		status = formatter.StyleYellow.Render("Saving…")
	case m.err != "":
		status = formatter.StyleRed.Render("Error: " + m.err)
	}
	title := formatter.Dim("#" + m.id.String())
	return formatter.RenderFocusBox("Edit todo", title+"\n"+m.input.View()+"\n\n"+status)
}

// overlay draws the box over base, a block of content lines of the given
// width, replacing the rows it covers.
func (m *editModal) overlay(base string, width int) string {
	if !m.IsOpen() {
		return base
	}
	x, _, _, _ := m.bounds(width, 0)
	pad := lipgloss.NewStyle().PaddingLeft(x)

	lines := strings.Split(base, "\n")
	for i, ml := range strings.Split(m.render(), "\n") {
		row := modalTopPad + i
		for len(lines) <= row {
			lines = append(lines, "")
		}
		lines[row] = pad.Render(ml)
	}
	return strings.Join(lines, "\n")
}
