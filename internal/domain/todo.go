package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// DateLayout is the calendar-date format used for date_added and date_completed.
const DateLayout = "2006-01-02"

// ID identifies a todo. It is assigned by the remote store and never changes.
type ID string

// UnmarshalJSON accepts either a JSON string or a JSON number, since mock
// REST backends differ on how they emit ids.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("todo id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Todo mirrors one record of the remote todo collection.
// A todo is completed iff DateCompleted is non-empty.
type Todo struct {
	ID            ID     `json:"id"`
	Title         string `json:"Title"`
	DateAdded     string `json:"date_added"`
	DateCompleted string `json:"date_completed"`
}

// Completed reports whether the todo carries a completion date.
func (t Todo) Completed() bool {
	return t.DateCompleted != ""
}

// NewTodo is the body of a create request. All three keys are always sent.
type NewTodo struct {
	Title         string `json:"Title"`
	DateAdded     string `json:"date_added"`
	DateCompleted string `json:"date_completed"`
}

// TodoPatch is the body of a partial update. Nil fields are omitted.
type TodoPatch struct {
	Title         *string `json:"Title,omitempty"`
	DateCompleted *string `json:"date_completed,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.DateCompleted == nil
}

// Apply returns t with the patch's set fields copied over.
func (p TodoPatch) Apply(t Todo) Todo {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.DateCompleted != nil {
		t.DateCompleted = *p.DateCompleted
	}
	return t
}

// Today formats now as a calendar date in now's location.
func Today(now time.Time) string {
	return now.Format(DateLayout)
}

// Partition splits todos into incomplete and completed slices,
// preserving input order within each.
func Partition(todos []Todo) (incomplete, completed []Todo) {
	for _, t := range todos {
		if t.Completed() {
			completed = append(completed, t)
		} else {
			incomplete = append(incomplete, t)
		}
	}
	return incomplete, completed
}

// IndexOf returns the position of the todo with the given id, or -1.
func IndexOf(todos []Todo, id ID) int {
	for i, t := range todos {
		if t.ID == id {
			return i
		}
	}
	return -1
}

// CountCompleted returns how many todos are completed.
func CountCompleted(todos []Todo) int {
	n := 0
	for _, t := range todos {
		if t.Completed() {
			n++
		}
	}
	return n
}
