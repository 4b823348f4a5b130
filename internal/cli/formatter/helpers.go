package formatter

import (
	"strings"
	"time"

	"github.com/alexanderramin/todo/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	return renderBox(title, content, ColorDim)
}

// RenderFocusBox is RenderBox with a highlighted border, for overlays.
func RenderFocusBox(title string, content string) string {
	return renderBox(title, content, ColorHeader)
}

func renderBox(title, content string, border lipgloss.Color) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// HumanDate turns a YYYY-MM-DD date string into "Today", "Yesterday" or
// "Jan 2, 2006". Strings that do not parse are returned unchanged, and an
// empty string renders as "--".
func HumanDate(date string, now time.Time) string {
	if date == "" {
		return "--"
	}
	t, err := time.Parse(domain.DateLayout, date)
	if err != nil {
		return date
	}
	today := domain.Today(now)
	if date == today {
		return "Today"
	}
	if date == domain.Today(now.AddDate(0, 0, -1)) {
		return "Yesterday"
	}
	return t.Format("Jan 2, 2006")
}

// Truncate shortens s to at most width visible cells, marking the cut with "…".
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) <= width {
		return s
	}
	runes := []rune(s)
	for len(runes) > 0 && lipgloss.Width(string(runes))+1 > width {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "…"
}
