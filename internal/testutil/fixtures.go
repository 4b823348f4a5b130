package testutil

import (
	"time"

	"github.com/alexanderramin/todo/internal/domain"
)

// FixedNow is the clock used by tests that care about dates.
var FixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

// FixedClock returns FixedNow.
func FixedClock() time.Time { return FixedNow }

// TodoOption customizes a fixture todo.
type TodoOption func(*domain.Todo)

// WithCompleted stamps the fixture with a completion date.
func WithCompleted(date string) TodoOption {
	return func(t *domain.Todo) { t.DateCompleted = date }
}

// WithAdded overrides the fixture's date_added.
func WithAdded(date string) TodoOption {
	return func(t *domain.Todo) { t.DateAdded = date }
}

// NewTodo builds an incomplete todo added on 2024-01-01.
func NewTodo(id, title string, opts ...TodoOption) domain.Todo {
	t := domain.Todo{ID: domain.ID(id), Title: title, DateAdded: "2024-01-01"}
	for _, opt := range opts {
		opt(&t)
	}
	return t
}
