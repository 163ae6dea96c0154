package editor

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
)

// ----------------- RENDER -----------------

func (e *Editor) adjustScroll() {
	height := e.pageSize()
	if e.cursorLine < e.scrollOffset {
		e.scrollOffset = e.cursorLine
	}
	if e.cursorLine >= e.scrollOffset+height {
		e.scrollOffset = e.cursorLine - height + 1
	}
}

func (e *Editor) pageSize() int {
	_, h := e.screen.Size()
	return max(h-5, 1)
}

// Render draws the whole screen: header, text area, scroll bar and the
// command line.
func (e *Editor) Render() {
	e.screen.Clear()
	w, h := e.screen.Size()
	height := e.pageSize()

	drawLine(e.screen, 0, 0, w, '-')
	header := "sitehl"
	if e.version != "" {
		header += " " + e.version
	}
	if e.filename != "" {
		header += " | " + e.filename
		if e.dirty {
			header += " (Modified)"
		}
	}
	header += " | Language: " + e.doc.Language().String()
	drawString(e.screen, 0, 1, header, tcell.StyleDefault)
	drawLine(e.screen, 0, 2, w, '-')

	lineNumWidth := e.getLineNumberWidth()
	for i := 0; i < height; i++ {
		idx := e.scrollOffset + i
		if idx >= e.doc.Len() {
			break
		}
		prefix := " "
		if idx == e.cursorLine {
			prefix = ">"
		}
		lineNumStr := fmt.Sprintf("%*d%s ", lineNumWidth-2, idx+1, prefix)
		drawString(e.screen, 0, 3+i, lineNumStr, tcell.StyleDefault)
		e.drawHighlightedLine(len(lineNumStr), 3+i, idx, w-1-len(lineNumStr))
	}

	// Scroll bar
	topY := 3
	bottomY := 3 + height - 1
	drawString(e.screen, w-1, topY, "▲", tcell.StyleDefault)
	drawString(e.screen, w-1, bottomY, "▼", tcell.StyleDefault)
	ratio := float64(e.cursorLine) / float64(max(1, e.doc.Len()-1))
	drawString(e.screen, w-1, topY+int(ratio*float64(height-1)), "█", tcell.StyleDefault)

	drawLine(e.screen, 0, h-2, w, '-')

	switch e.mode {
	case CommandLine, PromptSave:
		prompt := "=> "
		if e.savePending {
			prompt += "File name: "
		}
		drawString(e.screen, 0, h-1, prompt+e.commandBuf, tcell.StyleDefault)
	case PromptQuit:
		drawString(e.screen, 0, h-1, "=> Save file? [Y/n] ", tcell.StyleDefault)
	case Find:
		drawString(e.screen, 0, h-1, "> "+e.findBuf, tcell.StyleDefault)
	default:
		drawString(e.screen, 0, h-1, e.status, tcell.StyleDefault)
	}

	x, y := e.cursorPosition()
	e.screen.ShowCursor(x, y)
	e.screen.Show()
}

// cursorPosition maps the cursor to screen cells, accounting for tabs and
// wide characters before it.
func (e *Editor) cursorPosition() (int, int) {
	gutter := e.getLineNumberWidth()
	line := []rune(e.doc.Line(e.cursorLine))
	col := 0
	for _, r := range line[:min(e.cursorCol, len(line))] {
		col += e.cellWidth(r, col)
	}
	return gutter + col, e.cursorLine - e.scrollOffset + 3
}

func (e *Editor) cellWidth(r rune, col int) int {
	if r == '\t' {
		return e.tabWidth - col%e.tabWidth
	}
	return max(runewidth.RuneWidth(r), 1)
}

// drawHighlightedLine paints line idx with the theme style of each character.
func (e *Editor) drawHighlightedLine(x, y, idx, width int) {
	line := []rune(e.doc.Line(idx))
	formats := e.doc.Formats(idx)

	col := 0
	for i, r := range line {
		st := e.theme.Tcell(tcell.StyleDefault, formats[i])
		cw := e.cellWidth(r, col)
		if col+cw > width {
			return
		}
		if r == '\t' {
			for k := 0; k < cw; k++ {
				e.screen.SetContent(x+col+k, y, ' ', nil, st)
			}
		} else {
			e.screen.SetContent(x+col, y, r, nil, st)
		}
		col += cw
	}
}

// ----------------- HELPERS -----------------

func drawLine(s tcell.Screen, x, y, width int, ch rune) {
	for i := 0; i < width; i++ {
		s.SetContent(x+i, y, ch, nil, tcell.StyleDefault)
	}
}

func drawString(s tcell.Screen, x, y int, str string, style tcell.Style) {
	for _, r := range str {
		s.SetContent(x, y, r, nil, style)
		x += max(runewidth.RuneWidth(r), 1)
	}
}

// getLineNumberWidth is the gutter width: digits of the last line number,
// the cursor marker and a space.
func (e *Editor) getLineNumberWidth() int {
	digits := 1
	for n := e.doc.Len(); n >= 10; n /= 10 {
		digits++
	}
	return digits + 3
}
