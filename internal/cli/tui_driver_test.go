package cli

import (
	"testing"

	"github.com/alexanderramin/todo/internal/domain"
	"github.com/alexanderramin/todo/internal/teatest"
	"github.com/alexanderramin/todo/internal/testutil"
)

// TestDriver wraps teatest.Driver with inspection of appModel internals
// (view stack, list view, client state) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
	Fake *testutil.FakeRemote
}

// NewTestDriver builds an appModel over an in-memory remote seeded with
// todos, sets the terminal size and drains Init(), which loads the
// collection synchronously.
func NewTestDriver(t *testing.T, seed ...domain.Todo) *TestDriver {
	t.Helper()
	return newTestDriverWith(t, nil, seed...)
}

// newTestDriverWith lets a test adjust the fake before the initial load.
func newTestDriverWith(t *testing.T, setup func(*testutil.FakeRemote), seed ...domain.Todo) *TestDriver {
	t.Helper()
	state, fake := testShared(t, seed...)
	if setup != nil {
		setup(fake)
	}

	d := teatest.New(t, newAppModel(state), teatest.WithSize(100, 30))
	d.DrainInit()
	return &TestDriver{Driver: d, Fake: fake}
}

// ── High-level helpers ───────────────────────────────────────────────────────

// AddTodo focuses the input, types title, submits it and blurs the input.
func (d *TestDriver) AddTodo(title string) {
	d.T.Helper()
	d.PressKey('a')
	d.Type(title)
	d.PressEnter()
	d.PressEsc()
}

// ── Inspection ───────────────────────────────────────────────────────────────

func (d *TestDriver) appModel() appModel {
	return d.Model.(appModel)
}

// ActiveViewID returns the ViewID of the top view on the stack.
func (d *TestDriver) ActiveViewID() ViewID {
	m := d.appModel()
	v := m.activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

// ViewStackLen returns the number of views on the stack.
func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

// List returns the root todo list view.
func (d *TestDriver) List() *todoListView {
	return d.appModel().viewStack[0].(*todoListView)
}

// Todos returns the client state's collection.
func (d *TestDriver) Todos() []domain.Todo {
	return d.appModel().state.Todos.Snapshot()
}

// IsQuitting returns whether the app has signaled a quit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}
