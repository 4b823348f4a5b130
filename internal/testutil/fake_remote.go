// Package testutil provides fakes and fixtures shared by package tests.
package testutil

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/alexanderramin/todo/internal/domain"
)

// Remote operation names used by FakeRemote for call counting and failures.
const (
	OpList   = "list"
	OpCreate = "create"
	OpUpdate = "update"
	OpDelete = "delete"
)

// FakeRemote is an in-memory remote todo store with failure injection.
// It satisfies service.TodoRemote.
type FakeRemote struct {
	mu     sync.Mutex
	todos  []domain.Todo
	nextID int
	fail   map[string]error
	calls  map[string]int

	// OnCall, when set, runs before each operation outside the lock.
	// Tests use it to block a request and reorder responses.
	OnCall func(op string, id domain.ID)
}

// NewFakeRemote creates a FakeRemote seeded with todos.
func NewFakeRemote(seed ...domain.Todo) *FakeRemote {
	f := &FakeRemote{
		nextID: 1,
		fail:   make(map[string]error),
		calls:  make(map[string]int),
	}
	for _, t := range seed {
		f.todos = append(f.todos, t)
		if n, err := strconv.Atoi(string(t.ID)); err == nil && n >= f.nextID {
			f.nextID = n + 1
		}
	}
	return f
}

// FailWith makes every call of op return err. A nil err clears the failure.
func (f *FakeRemote) FailWith(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err == nil {
		delete(f.fail, op)
		return
	}
	f.fail[op] = err
}

// Calls returns how many times op was invoked.
func (f *FakeRemote) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls across all operations.
func (f *FakeRemote) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// Todos returns the store's current records.
func (f *FakeRemote) Todos() []domain.Todo {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Todo, len(f.todos))
	copy(out, f.todos)
	return out
}

func (f *FakeRemote) begin(op string, id domain.ID) error {
	if f.OnCall != nil {
		f.OnCall(op, id)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	return f.fail[op]
}

func (f *FakeRemote) List(ctx context.Context) ([]domain.Todo, error) {
	if err := f.begin(OpList, ""); err != nil {
		return nil, err
	}
	return f.Todos(), nil
}

func (f *FakeRemote) Create(ctx context.Context, t domain.NewTodo) (domain.Todo, error) {
	if err := f.begin(OpCreate, ""); err != nil {
		return domain.Todo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	created := domain.Todo{
		ID:            domain.ID(strconv.Itoa(f.nextID)),
		Title:         t.Title,
		DateAdded:     t.DateAdded,
		DateCompleted: t.DateCompleted,
	}
	f.nextID++
	f.todos = append(f.todos, created)
	return created, nil
}

func (f *FakeRemote) Update(ctx context.Context, id domain.ID, patch domain.TodoPatch) (domain.Todo, error) {
	if err := f.begin(OpUpdate, id); err != nil {
		return domain.Todo{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := domain.IndexOf(f.todos, id)
	if i < 0 {
		return domain.Todo{}, fmt.Errorf("update %s: not found", id)
	}
	f.todos[i] = patch.Apply(f.todos[i])
	return f.todos[i], nil
}

func (f *FakeRemote) Delete(ctx context.Context, id domain.ID) error {
	if err := f.begin(OpDelete, id); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	i := domain.IndexOf(f.todos, id)
	if i < 0 {
		return fmt.Errorf("delete %s: not found", id)
	}
	f.todos = append(f.todos[:i], f.todos[i+1:]...)
	return nil
}
