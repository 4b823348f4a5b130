package teatest

import (
	"fmt"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type incrMsg struct{}

// counterModel counts key presses and clicks, and echoes typed runes.
type counterModel struct {
	width, height int
	count         int
	clicks        []string
	typed         string
	slowDone      bool
}

type slowMsg struct{}

func (m counterModel) Init() tea.Cmd {
	return func() tea.Msg { return incrMsg{} }
}

func (m counterModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
	case incrMsg:
		m.count++
	case slowMsg:
		m.slowDone = true
	case tea.MouseMsg:
		m.clicks = append(m.clicks, fmt.Sprintf("%d,%d", msg.X, msg.Y))
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyRunes, tea.KeySpace:
			m.typed += string(msg.Runes)
		case tea.KeyEnter:
			return m, tea.Batch(
				func() tea.Msg { return incrMsg{} },
				func() tea.Msg { return incrMsg{} },
			)
		case tea.KeyCtrlS:
			return m, func() tea.Msg {
				time.Sleep(time.Second)
				return slowMsg{}
			}
		case tea.KeyEsc:
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m counterModel) View() string {
	return fmt.Sprintf("count=%d\ntyped=%s", m.count, m.typed)
}

func TestDriver_InitAndBatch(t *testing.T) {
	d := New(t, counterModel{}, WithSize(80, 24))
	d.DrainInit()
	assert.Equal(t, 1, d.Model.(counterModel).count)
	assert.Equal(t, 80, d.Model.(counterModel).width)

	d.PressEnter()
	assert.Equal(t, 3, d.Model.(counterModel).count)
	assert.Equal(t, "count=3", d.ViewLine(0))
	assert.Empty(t, d.ViewLine(5))
}

func TestDriver_TypeAndSpace(t *testing.T) {
	d := New(t, counterModel{})
	d.Type("ab")
	d.PressSpace()
	d.PressKey('c')
	assert.Equal(t, "typed=ab c", d.ViewLine(1))
}

func TestDriver_Click(t *testing.T) {
	d := New(t, counterModel{})
	d.Click(3, 7)
	assert.Equal(t, []string{"3,7"}, d.Model.(counterModel).clicks)
}

func TestDriver_SkipsSlowCmds(t *testing.T) {
	d := New(t, counterModel{})
	d.PressCtrl(tea.KeyCtrlS)
	assert.False(t, d.Model.(counterModel).slowDone)
}

func TestDriver_QuitStopsFurtherInput(t *testing.T) {
	d := New(t, counterModel{})
	d.PressEsc()
	assert.True(t, d.Quitting)

	d.Type("x")
	assert.Empty(t, d.Model.(counterModel).typed)
}
