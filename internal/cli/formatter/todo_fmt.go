package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/todo/internal/domain"
)

const listBarWidth = 28

// FormatTodoLine renders one todo as "☐ #3 Title".
func FormatTodoLine(t domain.Todo) string {
	title := StyleFg.Render(t.Title)
	if t.Completed() {
		title = StyleDone.Render(t.Title)
	}
	return fmt.Sprintf("%s %s %s", Checkbox(t.Completed()), Dim("#"+string(t.ID)), title)
}

// FormatTodoTable renders todos as a table in collection order.
func FormatTodoTable(todos []domain.Todo, now time.Time) string {
	if len(todos) == 0 {
		return emptyHint()
	}
	rows := make([][]string, 0, len(todos))
	for _, t := range todos {
		completed := Dim("--")
		if t.Completed() {
			completed = StyleGreen.Render(HumanDate(t.DateCompleted, now))
		}
		rows = append(rows, []string{
			Dim(string(t.ID)),
			Checkbox(t.Completed()),
			t.Title,
			HumanDate(t.DateAdded, now),
			completed,
		})
	}
	return RenderTable([]string{"ID", "", "TITLE", "ADDED", "COMPLETED"}, rows) + "\n\n" + FormatProgress(todos)
}

// FormatTodoGroups renders the pending and done sections followed by a
// progress bar.
func FormatTodoGroups(todos []domain.Todo) string {
	if len(todos) == 0 {
		return emptyHint()
	}
	incomplete, completed := domain.Partition(todos)

	var b strings.Builder
	b.WriteString(Header("Pending"))
	b.WriteString("\n")
	writeGroup(&b, incomplete, "Nothing pending")
	b.WriteString("\n")
	b.WriteString(Header("Done"))
	b.WriteString("\n")
	writeGroup(&b, completed, "Nothing done yet")
	b.WriteString("\n")
	b.WriteString(FormatProgress(todos))
	return b.String()
}

// FormatProgress renders the completion counts and bar for a collection.
func FormatProgress(todos []domain.Todo) string {
	done := domain.CountCompleted(todos)
	open := len(todos) - done
	return RenderCounts(open, done) + "  " + RenderProgress(Ratio(done, len(todos)), listBarWidth)
}

// FormatTodoDetail renders every field of a todo as aligned label/value
// lines.
func FormatTodoDetail(t domain.Todo, now time.Time) string {
	status := StyleYellow.Render("Pending")
	completed := Dim("--")
	if t.Completed() {
		status = StyleGreen.Render("Done")
		completed = HumanDate(t.DateCompleted, now) + Dim(" ("+t.DateCompleted+")")
	}
	lines := []string{
		detailLine("ID", string(t.ID)),
		detailLine("Title", Bold(t.Title)),
		detailLine("Status", status),
		detailLine("Added", HumanDate(t.DateAdded, now)+Dim(" ("+t.DateAdded+")")),
		detailLine("Completed", completed),
	}
	return strings.Join(lines, "\n")
}

func detailLine(label, value string) string {
	return fmt.Sprintf("%s %s", Dim(fmt.Sprintf("%-10s", label)), value)
}

func writeGroup(b *strings.Builder, todos []domain.Todo, empty string) {
	if len(todos) == 0 {
		b.WriteString("  " + Dim(empty) + "\n")
		return
	}
	for _, t := range todos {
		b.WriteString("  " + FormatTodoLine(t) + "\n")
	}
}

func emptyHint() string {
	return Dim("No todos yet. Add one with: todo add <title>")
}
