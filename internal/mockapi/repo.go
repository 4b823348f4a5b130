// Package mockapi serves a development stand-in for the remote todo store.
// It implements the same REST contract the client consumes.
package mockapi

import (
	"context"
	"errors"

	"github.com/alexanderramin/todo/internal/domain"
)

// ErrNotFound is returned when no todo has the requested id.
var ErrNotFound = errors.New("todo not found")

// Repository stores todos for the mock server.
type Repository interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Get(ctx context.Context, id domain.ID) (domain.Todo, error)
	Create(ctx context.Context, t domain.NewTodo) (domain.Todo, error)
	Update(ctx context.Context, id domain.ID, patch domain.TodoPatch) (domain.Todo, error)
	Delete(ctx context.Context, id domain.ID) error
}
