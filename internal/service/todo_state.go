// Package service holds the client-side todo state mirrored from the remote store.
package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/alexanderramin/todo/internal/domain"
)

// ErrEmptyTitle rejects a create or edit whose title is blank.
// It is raised locally and never reaches the network.
var ErrEmptyTitle = errors.New("title is required")

// TodoRemote is the remote todo store the state reconciles against.
type TodoRemote interface {
	List(ctx context.Context) ([]domain.Todo, error)
	Create(ctx context.Context, t domain.NewTodo) (domain.Todo, error)
	Update(ctx context.Context, id domain.ID, patch domain.TodoPatch) (domain.Todo, error)
	Delete(ctx context.Context, id domain.ID) error
}

// Op names a state operation.
type Op string

const (
	OpLoad     Op = "load"
	OpCreate   Op = "create"
	OpEdit     Op = "edit"
	OpRemove   Op = "remove"
	OpComplete Op = "complete"
)

// Result is the outcome of one operation. Exactly one of Err, Skipped, Stale
// is set when the operation did not change local state.
type Result struct {
	Op    Op
	ID    domain.ID
	Todo  domain.Todo   // record returned by create/edit/complete
	Todos []domain.Todo // collection after a successful load
	Err   error
	// Skipped means no request was sent because the operation was a no-op.
	Skipped bool
	// Stale means a newer response for the same record was applied first
	// and was discarded.
	Stale bool
}

// OK reports whether the operation was confirmed and applied.
func (r Result) OK() bool {
	return r.Err == nil && !r.Skipped && !r.Stale
}

// TodoState is the ordered collection of todos mirrored from the remote store.
// Local state changes only after the remote confirms an operation.
//
// Every request takes a ticket from a logical clock when it is issued. A
// response is applied only if no newer response for the same record (or, for
// loads, no newer load) has been applied already, so a slow response cannot
// overwrite newer state. Failed requests never apply and never block older
// ones.
type TodoState struct {
	remote   TodoRemote
	now      func() time.Time
	observer UseCaseObserver

	mu         sync.Mutex
	todos      []domain.Todo
	loaded     bool
	clock      uint64
	loadedAt   uint64               // ticket of the newest applied load
	applied    map[domain.ID]uint64 // ticket of the newest applied response per record
	touched    map[domain.ID]uint64 // ticket of the newest applied mutation per record
	removed    map[domain.ID]uint64 // ticket of applied removals
}

// Option configures a TodoState.
type Option func(*TodoState)

// WithClock overrides the time source used for date_added and date_completed.
func WithClock(now func() time.Time) Option {
	return func(s *TodoState) { s.now = now }
}

// WithObserver reports every operation to obs.
func WithObserver(obs UseCaseObserver) Option {
	return func(s *TodoState) {
		if obs != nil {
			s.observer = obs
		}
	}
}

// NewTodoState creates an empty state backed by remote.
func NewTodoState(remote TodoRemote, opts ...Option) *TodoState {
	s := &TodoState{
		remote:   remote,
		now:      time.Now,
		observer: NoopUseCaseObserver{},
		applied:  make(map[domain.ID]uint64),
		touched:  make(map[domain.ID]uint64),
		removed:  make(map[domain.ID]uint64),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Snapshot returns a copy of the collection in order.
func (s *TodoState) Snapshot() []domain.Todo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Todo, len(s.todos))
	copy(out, s.todos)
	return out
}

// Partitions splits the current collection into incomplete and completed todos.
func (s *TodoState) Partitions() (incomplete, completed []domain.Todo) {
	return domain.Partition(s.Snapshot())
}

// Get looks up a todo by id.
func (s *TodoState) Get(id domain.ID) (domain.Todo, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i := domain.IndexOf(s.todos, id); i >= 0 {
		return s.todos[i], true
	}
	return domain.Todo{}, false
}

// Loaded reports whether a load has ever been applied.
func (s *TodoState) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Load fetches the whole collection and replaces the local one.
// On failure the local collection is left as it was.
func (s *TodoState) Load(ctx context.Context) Result {
	start := time.Now()
	ticket := s.issue()

	todos, err := s.remote.List(ctx)
	if err != nil {
		return s.finish(ctx, start, Result{Op: OpLoad, Err: err}, nil)
	}

	s.mu.Lock()
	if ticket < s.loadedAt {
		s.mu.Unlock()
		return s.finish(ctx, start, Result{Op: OpLoad, Stale: true}, nil)
	}
	s.todos = s.merge(todos, ticket)
	s.loaded = true
	s.loadedAt = ticket
	s.prune(ticket)
	out := make([]domain.Todo, len(s.todos))
	copy(out, s.todos)
	s.mu.Unlock()

	return s.finish(ctx, start, Result{Op: OpLoad, Todos: out}, map[string]any{"count": len(out)})
}

// merge builds the collection from a load issued at ticket, keeping local
// changes that were applied after the load was issued. Caller holds s.mu.
func (s *TodoState) merge(remote []domain.Todo, ticket uint64) []domain.Todo {
	merged := make([]domain.Todo, 0, len(remote))
	seen := make(map[domain.ID]bool, len(remote))
	for _, t := range remote {
		if s.removed[t.ID] > ticket {
			continue
		}
		if s.touched[t.ID] > ticket {
			if i := domain.IndexOf(s.todos, t.ID); i >= 0 {
				t = s.todos[i]
			}
		}
		seen[t.ID] = true
		merged = append(merged, t)
	}
	for _, t := range s.todos {
		if !seen[t.ID] && s.touched[t.ID] > ticket {
			merged = append(merged, t)
		}
	}
	return merged
}

// prune forgets bookkeeping made irrelevant by a load applied at ticket.
// Caller holds s.mu.
func (s *TodoState) prune(ticket uint64) {
	for id, t := range s.touched {
		if t <= ticket {
			delete(s.touched, id)
		}
	}
	for id, t := range s.removed {
		if t <= ticket {
			delete(s.removed, id)
		}
	}
}

// Create adds a todo titled title, dated today and not completed.
// A blank title fails with ErrEmptyTitle without a request.
func (s *TodoState) Create(ctx context.Context, title string) Result {
	start := time.Now()
	title = strings.TrimSpace(title)
	if title == "" {
		return s.finish(ctx, start, Result{Op: OpCreate, Err: ErrEmptyTitle}, nil)
	}

	ticket := s.issue()

	created, err := s.remote.Create(ctx, domain.NewTodo{
		Title:         title,
		DateAdded:     domain.Today(s.now()),
		DateCompleted: "",
	})
	fields := map[string]any{"title": title}
	if err != nil {
		return s.finish(ctx, start, Result{Op: OpCreate, Err: err}, fields)
	}

	s.mu.Lock()
	if i := domain.IndexOf(s.todos, created.ID); i >= 0 {
		s.todos[i] = created
	} else {
		s.todos = append(s.todos, created)
	}
	s.touched[created.ID] = ticket
	s.applied[created.ID] = ticket
	s.mu.Unlock()

	fields["id"] = created.ID.String()
	return s.finish(ctx, start, Result{Op: OpCreate, ID: created.ID, Todo: created}, fields)
}

// Edit changes the title of id. A blank title fails with ErrEmptyTitle
// without a request.
func (s *TodoState) Edit(ctx context.Context, id domain.ID, title string) Result {
	start := time.Now()
	title = strings.TrimSpace(title)
	fields := map[string]any{"id": id.String(), "title": title}
	if title == "" {
		return s.finish(ctx, start, Result{Op: OpEdit, ID: id, Err: ErrEmptyTitle}, fields)
	}
	return s.update(ctx, start, OpEdit, id, domain.TodoPatch{Title: &title}, fields)
}

// Complete stamps id with today's completion date. It is skipped when id is
// unknown locally or already completed. Completion is one-way.
func (s *TodoState) Complete(ctx context.Context, id domain.ID) Result {
	start := time.Now()
	fields := map[string]any{"id": id.String()}

	s.mu.Lock()
	i := domain.IndexOf(s.todos, id)
	skip := i < 0 || s.todos[i].Completed()
	s.mu.Unlock()
	if skip {
		return s.finish(ctx, start, Result{Op: OpComplete, ID: id, Skipped: true}, fields)
	}

	today := domain.Today(s.now())
	return s.update(ctx, start, OpComplete, id, domain.TodoPatch{DateCompleted: &today}, fields)
}

func (s *TodoState) update(ctx context.Context, start time.Time, op Op, id domain.ID, patch domain.TodoPatch, fields map[string]any) Result {
	ticket := s.issue()

	updated, err := s.remote.Update(ctx, id, patch)
	if err != nil {
		return s.finish(ctx, start, Result{Op: op, ID: id, Err: err}, fields)
	}

	s.mu.Lock()
	if ticket < s.applied[id] || s.removed[id] != 0 {
		s.mu.Unlock()
		return s.finish(ctx, start, Result{Op: op, ID: id, Stale: true}, fields)
	}
	if i := domain.IndexOf(s.todos, id); i >= 0 {
		s.todos[i] = updated
	}
	s.touched[id] = ticket
	s.applied[id] = ticket
	s.mu.Unlock()

	return s.finish(ctx, start, Result{Op: op, ID: id, Todo: updated}, fields)
}

// Remove deletes id. A confirmed removal always applies, since deletion is
// terminal regardless of what else is in flight for the record.
func (s *TodoState) Remove(ctx context.Context, id domain.ID) Result {
	start := time.Now()
	fields := map[string]any{"id": id.String()}
	ticket := s.issue()

	if err := s.remote.Delete(ctx, id); err != nil {
		return s.finish(ctx, start, Result{Op: OpRemove, ID: id, Err: err}, fields)
	}

	s.mu.Lock()
	if i := domain.IndexOf(s.todos, id); i >= 0 {
		s.todos = append(s.todos[:i], s.todos[i+1:]...)
	}
	delete(s.touched, id)
	s.removed[id] = ticket
	s.mu.Unlock()

	return s.finish(ctx, start, Result{Op: OpRemove, ID: id}, fields)
}

// issue takes the next ticket from the logical clock.
func (s *TodoState) issue() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clock++
	return s.clock
}

func (s *TodoState) finish(ctx context.Context, start time.Time, res Result, fields map[string]any) Result {
	s.observer.ObserveUseCase(ctx, UseCaseEvent{
		Name:      "todo." + string(res.Op),
		Duration:  time.Since(start),
		Success:   res.OK(),
		Skipped:   res.Skipped,
		Stale:     res.Stale,
		Err:       res.Err,
		Fields:    fields,
		StartedAt: start,
	})
	return res
}
