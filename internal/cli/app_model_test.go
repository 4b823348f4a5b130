package cli

import (
	"testing"

	"github.com/alexanderramin/todo/internal/domain"
	"github.com/alexanderramin/todo/internal/service"
	"github.com/alexanderramin/todo/internal/testutil"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubView struct {
	id         ViewID
	title      string
	viewText   string
	captures   bool
	shortHelp  []key.Binding
	initCmd    tea.Cmd
	updateCmd  tea.Cmd
	updateSeen []tea.Msg
}

func (v *stubView) Init() tea.Cmd { return v.initCmd }

func (v *stubView) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	v.updateSeen = append(v.updateSeen, msg)
	return v, v.updateCmd
}

func (v *stubView) View() string             { return v.viewText }
func (v *stubView) ID() ViewID               { return v.id }
func (v *stubView) ShortHelp() []key.Binding { return v.shortHelp }
func (v *stubView) Title() string            { return v.title }
func (v *stubView) CapturesInput() bool      { return v.captures }

func newStubView(id ViewID, title, text string) *stubView {
	return &stubView{id: id, title: title, viewText: text}
}

func testShared(t *testing.T, seed ...domain.Todo) (*SharedState, *testutil.FakeRemote) {
	t.Helper()
	fake := testutil.NewFakeRemote(seed...)
	todos := service.NewTodoState(fake, service.WithClock(testutil.FixedClock))
	return &SharedState{Todos: todos, Now: testutil.FixedClock}, fake
}

func TestNewAppModelStartsAtTodoList(t *testing.T) {
	state, _ := testShared(t)
	m := newAppModel(state)

	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewTodoList, m.activeView().ID())
}

func TestAppModel_NavigationMessages(t *testing.T) {
	state, _ := testShared(t)
	m := newAppModel(state)
	detail := newStubView(ViewDetail, "#1", "detail view")

	model, cmd := m.Update(pushViewMsg{view: detail})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 2)
	assert.Equal(t, detail, m.activeView())

	model, cmd = m.Update(popViewMsg{})
	m = model.(appModel)
	require.Nil(t, cmd)
	require.Len(t, m.viewStack, 1)
	assert.Equal(t, ViewTodoList, m.activeView().ID())

	// The root view is never popped.
	model, _ = m.Update(popViewMsg{})
	m = model.(appModel)
	assert.Len(t, m.viewStack, 1)
}

func TestAppModel_BroadcastsResultsAndResize(t *testing.T) {
	state, _ := testShared(t)
	m := newAppModel(state)
	bottom := newStubView(ViewTodoList, "Todos", "list")
	top := newStubView(ViewDetail, "#1", "detail")
	m.viewStack = []View{bottom, top}

	model, _ := m.Update(todoResultMsg{result: service.Result{Op: service.OpLoad}})
	m = model.(appModel)
	model, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m = model.(appModel)

	assert.Equal(t, 100, m.state.Width)
	assert.Equal(t, 30, m.state.Height)
	require.Len(t, bottom.updateSeen, 2)
	require.Len(t, top.updateSeen, 2)
	assert.IsType(t, todoResultMsg{}, bottom.updateSeen[0])
	assert.IsType(t, tea.WindowSizeMsg{}, top.updateSeen[1])
}

func TestAppModel_KeyHandling_GlobalAndCaptured(t *testing.T) {
	t.Run("q quits when active view does not capture input", func(t *testing.T) {
		state, _ := testShared(t)
		m := newAppModel(state)
		m.viewStack = []View{newStubView(ViewTodoList, "Todos", "list")}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
		assert.IsType(t, tea.QuitMsg{}, cmd())
		assert.Empty(t, m.View())
	})

	t.Run("capturing view receives q and esc", func(t *testing.T) {
		state, _ := testShared(t)
		m := newAppModel(state)
		v := newStubView(ViewTodoList, "Todos", "list")
		v.captures = true
		m.viewStack = []View{newStubView(ViewTodoList, "Todos", ""), v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
		m = model.(appModel)
		require.Nil(t, cmd)
		model, _ = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)

		assert.False(t, m.quitting)
		assert.Len(t, m.viewStack, 2)
		require.Len(t, v.updateSeen, 2)
		assert.Equal(t, "q", v.updateSeen[0].(tea.KeyMsg).String())
	})

	t.Run("ctrl+c quits even while capturing", func(t *testing.T) {
		state, _ := testShared(t)
		m := newAppModel(state)
		v := newStubView(ViewTodoList, "Todos", "list")
		v.captures = true
		m.viewStack = []View{v}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
		m = model.(appModel)
		require.NotNil(t, cmd)
		assert.True(t, m.quitting)
	})

	t.Run("esc pops back stack", func(t *testing.T) {
		state, _ := testShared(t)
		m := newAppModel(state)
		m.viewStack = []View{
			newStubView(ViewTodoList, "Todos", "list"),
			newStubView(ViewDetail, "#1", "detail"),
		}

		model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc})
		m = model.(appModel)
		require.Nil(t, cmd)
		require.Len(t, m.viewStack, 1)
	})
}

func TestAppModel_ViewRendersBreadcrumbAndHints(t *testing.T) {
	state, _ := testShared(t)
	m := newAppModel(state)
	detail := newStubView(ViewDetail, "#7", "detail body")
	detail.shortHelp = []key.Binding{key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "frob"))}
	m.viewStack = []View{newStubView(ViewTodoList, "Todos", "list"), detail}
	m.state.Width, m.state.Height = 80, 20

	out := m.View()

	assert.Contains(t, out, "todo")
	assert.Contains(t, out, "Todos › #7")
	assert.Contains(t, out, "detail body")
	assert.Contains(t, out, "x: frob")
	assert.Contains(t, out, "esc: back")
	assert.Contains(t, out, "q: quit")
}

func TestViewCapturesInput(t *testing.T) {
	assert.False(t, viewCapturesInput(nil))
	v := newStubView(ViewTodoList, "Todos", "")
	assert.False(t, viewCapturesInput(v))
	v.captures = true
	assert.True(t, viewCapturesInput(v))
}

func TestSharedState_ContentHeight(t *testing.T) {
	s := &SharedState{Height: 30}
	assert.Equal(t, 26, s.ContentHeight())
	s.Height = 2
	assert.Equal(t, 1, s.ContentHeight())
}
