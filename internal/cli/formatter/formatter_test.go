package formatter

import (
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/todo/internal/domain"
	"github.com/stretchr/testify/assert"
)

var fixedNow = time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)

func TestHumanDate(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"today", "2024-01-15", "Today"},
		{"yesterday", "2024-01-14", "Yesterday"},
		{"older", "2023-12-25", "Dec 25, 2023"},
		{"empty", "", "--"},
		{"unparseable", "someday", "someday"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HumanDate(tt.input, fixedNow))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abcd…", Truncate("abcdefgh", 5))
	assert.Equal(t, "", Truncate("abc", 0))
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		name    string
		pct     float64
		width   int
		wantPct string
	}{
		{"empty", 0, 10, "  0%"},
		{"half", 0.5, 10, " 50%"},
		{"full", 1, 10, "100%"},
		{"over clamps", 1.5, 10, "100%"},
		{"negative clamps", -1, 10, "  0%"},
		{"tiny width", 0.5, 1, " 50%"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderProgress(tt.pct, tt.width)
			assert.True(t, strings.HasPrefix(got, "["))
			assert.True(t, strings.HasSuffix(got, tt.wantPct), got)
		})
	}
}

func TestRatio(t *testing.T) {
	assert.Zero(t, Ratio(0, 0))
	assert.InDelta(t, 0.25, Ratio(1, 4), 1e-9)
}

func TestRenderTable_AlignsColumns(t *testing.T) {
	out := RenderTable([]string{"A", "B"}, [][]string{{"long value", "x"}, {"s", "y"}})
	lines := strings.Split(out, "\n")

	assert.Len(t, lines, 4)
	assert.Equal(t, strings.Index(lines[2], "x"), strings.Index(lines[3], "y"))
	assert.Empty(t, RenderTable(nil, nil))
}

func sampleTodos() []domain.Todo {
	return []domain.Todo{
		{ID: "1", Title: "Buy milk", DateAdded: "2024-01-14"},
		{ID: "2", Title: "Ship release", DateAdded: "2024-01-10", DateCompleted: "2024-01-15"},
		{ID: "3", Title: "Call mom", DateAdded: "2024-01-15"},
	}
}

func TestFormatTodoTable(t *testing.T) {
	out := FormatTodoTable(sampleTodos(), fixedNow)

	assert.Contains(t, out, "TITLE")
	assert.Contains(t, out, "Buy milk")
	assert.Contains(t, out, "Ship release")
	assert.Contains(t, out, "Yesterday")
	assert.Contains(t, out, "Jan 10, 2024")
	assert.Contains(t, out, " 33%")
	assert.Less(t, strings.Index(out, "Buy milk"), strings.Index(out, "Ship release"))
	assert.Less(t, strings.Index(out, "Ship release"), strings.Index(out, "Call mom"))
}

func TestFormatTodoGroups_SplitsByCompletion(t *testing.T) {
	out := FormatTodoGroups(sampleTodos())

	pending := strings.Index(out, "PENDING")
	done := strings.Index(out, "DONE")
	assert.True(t, pending >= 0 && done > pending)
	assert.Less(t, strings.Index(out, "Buy milk"), done)
	assert.Less(t, strings.Index(out, "Call mom"), done)
	assert.Greater(t, strings.Index(out, "Ship release"), done)
}

func TestFormatTodoGroups_EmptySections(t *testing.T) {
	out := FormatTodoGroups([]domain.Todo{{ID: "1", Title: "only", DateAdded: "2024-01-15"}})
	assert.Contains(t, out, "Nothing done yet")
}

func TestFormatEmptyList(t *testing.T) {
	assert.Contains(t, FormatTodoTable(nil, fixedNow), "No todos yet")
	assert.Contains(t, FormatTodoGroups(nil), "No todos yet")
}

func TestFormatTodoDetail(t *testing.T) {
	out := FormatTodoDetail(sampleTodos()[1], fixedNow)

	assert.Contains(t, out, "Ship release")
	assert.Contains(t, out, "Done")
	assert.Contains(t, out, "2024-01-15")
	assert.Contains(t, out, "Jan 10, 2024")
}

func TestFormatTodoLine(t *testing.T) {
	assert.Contains(t, FormatTodoLine(sampleTodos()[0]), BoxOpen)
	assert.Contains(t, FormatTodoLine(sampleTodos()[1]), BoxDone)
	assert.Contains(t, FormatTodoLine(sampleTodos()[0]), "#1")
}
