package cli

import (
	"time"

	"github.com/alexanderramin/todo/internal/service"
)

// Layout rows reserved by the app model around view content.
const (
	headerHeight    = 2 // title + separator
	statusBarHeight = 2 // separator + hints
)

// SharedState holds context shared across all views via pointer.
type SharedState struct {
	Todos *service.TodoState
	Now   func() time.Time

	// Terminal dimensions
	Width  int
	Height int
}

// ContentHeight returns the available height for view content.
func (s *SharedState) ContentHeight() int {
	return max(s.Height-headerHeight-statusBarHeight, 1)
}

// ContentTop is the screen row where view content starts.
func (s *SharedState) ContentTop() int {
	return headerHeight
}

func (s *SharedState) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
