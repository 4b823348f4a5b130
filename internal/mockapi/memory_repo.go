package mockapi

import (
	"context"
	"strconv"
	"sync"

	"github.com/alexanderramin/todo/internal/domain"
)

// MemoryRepo keeps todos in insertion order in process memory.
type MemoryRepo struct {
	mu     sync.Mutex
	todos  []domain.Todo
	nextID int
}

// NewMemoryRepo creates a MemoryRepo seeded with the given todos.
// Generated ids continue after the largest numeric seed id.
func NewMemoryRepo(seed ...domain.Todo) *MemoryRepo {
	r := &MemoryRepo{nextID: 1}
	for _, t := range seed {
		r.todos = append(r.todos, t)
		if n, err := strconv.Atoi(string(t.ID)); err == nil && n >= r.nextID {
			r.nextID = n + 1
		}
	}
	return r
}

func (r *MemoryRepo) List(ctx context.Context) ([]domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Todo, len(r.todos))
	copy(out, r.todos)
	return out, nil
}

func (r *MemoryRepo) Get(ctx context.Context, id domain.ID) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := domain.IndexOf(r.todos, id)
	if i < 0 {
		return domain.Todo{}, ErrNotFound
	}
	return r.todos[i], nil
}

func (r *MemoryRepo) Create(ctx context.Context, t domain.NewTodo) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	created := domain.Todo{
		ID:            domain.ID(strconv.Itoa(r.nextID)),
		Title:         t.Title,
		DateAdded:     t.DateAdded,
		DateCompleted: t.DateCompleted,
	}
	r.nextID++
	r.todos = append(r.todos, created)
	return created, nil
}

func (r *MemoryRepo) Update(ctx context.Context, id domain.ID, patch domain.TodoPatch) (domain.Todo, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := domain.IndexOf(r.todos, id)
	if i < 0 {
		return domain.Todo{}, ErrNotFound
	}
	r.todos[i] = patch.Apply(r.todos[i])
	return r.todos[i], nil
}

func (r *MemoryRepo) Delete(ctx context.Context, id domain.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	i := domain.IndexOf(r.todos, id)
	if i < 0 {
		return ErrNotFound
	}
	r.todos = append(r.todos[:i], r.todos[i+1:]...)
	return nil
}
