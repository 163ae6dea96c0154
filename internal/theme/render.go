package theme

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/SQU1DMAN6/sitehl/internal/highlight"
)

// RenderLine paints text with the resolved formats as an ANSI string.
// Tabs become tabWidth spaces.
func (t *Theme) RenderLine(r *lipgloss.Renderer, text string, formats []highlight.Format, tabWidth int) string {
	runes := []rune(text)
	var b strings.Builder
	for _, run := range highlight.Runs(formats) {
		seg := string(runes[run.Start:run.End])
		if tabWidth > 0 {
			seg = strings.ReplaceAll(seg, "\t", strings.Repeat(" ", tabWidth))
		}
		b.WriteString(t.Lipgloss(r, run.Format).Render(seg))
	}
	return b.String()
}
