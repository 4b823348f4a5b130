package formatter

import (
	"fmt"
	"strings"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a progress bar like [████░░░░] 45%.
// The bar is colored based on percentage: green >66%, yellow 33-66%, red <33%.
func RenderProgress(pct float64, width int) string {
	pct = clamp01(pct)
	if width < 2 {
		width = 2
	}

	filled := min(int(pct*float64(width)), width)
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)

	style := StyleGreen
	if pct < 0.33 {
		style = StyleRed
	} else if pct < 0.66 {
		style = StyleYellow
	}

	return fmt.Sprintf("[%s] %3.0f%%", style.Render(bar), pct*100)
}

// Ratio returns done/total, or 0 for an empty list.
func Ratio(done, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(done) / float64(total)
}

// RenderCounts renders "3 open · 2 done" with the counts colored.
func RenderCounts(open, done int) string {
	return fmt.Sprintf("%s open %s %s done",
		StyleYellow.Render(fmt.Sprint(open)),
		Dim("·"),
		StyleGreen.Render(fmt.Sprint(done)))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
