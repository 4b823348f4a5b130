package mockapi

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/alexanderramin/todo/internal/db"
	"github.com/alexanderramin/todo/internal/domain"
)

// SQLiteRepo implements Repository using a SQLite database.
type SQLiteRepo struct {
	db *sql.DB
}

// NewSQLiteRepo creates a new SQLiteRepo.
func NewSQLiteRepo(database *sql.DB) *SQLiteRepo {
	return &SQLiteRepo{db: database}
}

func (r *SQLiteRepo) List(ctx context.Context) ([]domain.Todo, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, title, date_added, date_completed FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()

	todos := []domain.Todo{}
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *SQLiteRepo) Get(ctx context.Context, id domain.ID) (domain.Todo, error) {
	return getTodo(ctx, r.db, id)
}

func (r *SQLiteRepo) Create(ctx context.Context, t domain.NewTodo) (domain.Todo, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO todos (title, date_added, date_completed) VALUES (?, ?, ?)`,
		t.Title, t.DateAdded, t.DateCompleted)
	if err != nil {
		return domain.Todo{}, fmt.Errorf("inserting todo: %w", err)
	}
	n, err := res.LastInsertId()
	if err != nil {
		return domain.Todo{}, fmt.Errorf("reading inserted id: %w", err)
	}
	return domain.Todo{
		ID:            domain.ID(strconv.FormatInt(n, 10)),
		Title:         t.Title,
		DateAdded:     t.DateAdded,
		DateCompleted: t.DateCompleted,
	}, nil
}

func (r *SQLiteRepo) Update(ctx context.Context, id domain.ID, patch domain.TodoPatch) (domain.Todo, error) {
	var updated domain.Todo
	err := db.WithinTx(ctx, r.db, func(ctx context.Context, tx db.DBTX) error {
		cur, err := getTodo(ctx, tx, id)
		if err != nil {
			return err
		}
		updated = patch.Apply(cur)
		if patch.Empty() {
			return nil
		}
		_, err = tx.ExecContext(ctx,
			`UPDATE todos SET title = ?, date_completed = ? WHERE id = ?`,
			updated.Title, updated.DateCompleted, rowID(id))
		if err != nil {
			return fmt.Errorf("updating todo: %w", err)
		}
		return nil
	})
	if err != nil {
		return domain.Todo{}, err
	}
	return updated, nil
}

func (r *SQLiteRepo) Delete(ctx context.Context, id domain.ID) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM todos WHERE id = ?`, rowID(id))
	if err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func getTodo(ctx context.Context, q db.DBTX, id domain.ID) (domain.Todo, error) {
	row := q.QueryRowContext(ctx,
		`SELECT id, title, date_added, date_completed FROM todos WHERE id = ?`, rowID(id))
	t, err := scanTodo(row)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Todo{}, ErrNotFound
	}
	return t, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTodo(s scanner) (domain.Todo, error) {
	var (
		id int64
		t  domain.Todo
	)
	if err := s.Scan(&id, &t.Title, &t.DateAdded, &t.DateCompleted); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Todo{}, err
		}
		return domain.Todo{}, fmt.Errorf("scanning todo: %w", err)
	}
	t.ID = domain.ID(strconv.FormatInt(id, 10))
	return t, nil
}

// rowID maps a string id onto the integer key. Non-numeric ids match no row.
func rowID(id domain.ID) int64 {
	n, err := strconv.ParseInt(string(id), 10, 64)
	if err != nil {
		return -1
	}
	return n
}
