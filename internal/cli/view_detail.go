package cli

import (
	"github.com/alexanderramin/todo/internal/cli/formatter"
	"github.com/alexanderramin/todo/internal/domain"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

// detailView shows every field of one record. It re-reads the record from
// TodoState whenever a result arrives, so it tracks edits made elsewhere.
type detailView struct {
	state *SharedState
	id    domain.ID
	vp    viewport.Model
}

func newDetailView(state *SharedState, id domain.ID) *detailView {
	vp := viewport.New(state.Width, state.ContentHeight())
	vp.KeyMap = viewport.KeyMap{
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		Up:       key.NewBinding(key.WithKeys("up", "k")),
		Down:     key.NewBinding(key.WithKeys("down", "j")),
	}
	return &detailView{state: state, id: id, vp: vp}
}

func (v *detailView) ID() ViewID    { return ViewDetail }
func (v *detailView) Title() string { return "#" + v.id.String() }

func (v *detailView) ShortHelp() []key.Binding {
	return []key.Binding{
		key.NewBinding(key.WithKeys("up", "down"), key.WithHelp("↑↓", "scroll")),
	}
}

func (v *detailView) Init() tea.Cmd {
	v.refresh()
	return nil
}

func (v *detailView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		v.vp.Width = msg.Width
		v.vp.Height = v.state.ContentHeight()
		v.refresh()
		return v, nil
	case todoResultMsg:
		v.refresh()
		return v, nil
	}
	var cmd tea.Cmd
	v.vp, cmd = v.vp.Update(msg)
	return v, cmd
}

func (v *detailView) refresh() {
	v.vp.SetContent(v.content())
}

func (v *detailView) content() string {
	t, ok := v.state.Todos.Get(v.id)
	if !ok {
		return "\n  " + formatter.Dim("This todo no longer exists.")
	}
	return "\n" + formatter.RenderBox("Todo #"+t.ID.String(), formatter.FormatTodoDetail(t, v.state.now()))
}

func (v *detailView) View() string {
	return v.vp.View()
}
