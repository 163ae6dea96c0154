package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// ----------------- INTERACTIVE MODE -----------------

func (e *Editor) handleInteractive(key *tcell.EventKey) {
	ln := []rune(e.doc.Line(e.cursorLine))
	ctrl := key.Modifiers()&tcell.ModCtrl != 0

	alt := key.Modifiers()&tcell.ModAlt != 0
	if alt && key.Key() == tcell.KeyLeft {
		e.cursorCol = prevWordStart(ln, e.cursorCol)
		return
	}
	if alt && key.Key() == tcell.KeyRight {
		e.cursorCol = nextWordEnd(ln, e.cursorCol)
		return
	}

	e.status = ""
	switch key.Key() {
	case tcell.KeyLeft:
		if ctrl {
			e.cursorCol = prevWordStart(ln, e.cursorCol)
		} else if e.cursorCol > 0 {
			e.cursorCol--
		} else if e.cursorLine > 0 {
			e.cursorLine--
			e.cursorCol = e.lineLen(e.cursorLine)
			e.adjustScroll()
		}
	case tcell.KeyRight:
		if ctrl {
			e.cursorCol = nextWordEnd(ln, e.cursorCol)
		} else if e.cursorCol < len(ln) {
			e.cursorCol++
		} else if e.cursorLine < e.doc.Len()-1 {
			e.cursorLine++
			e.cursorCol = 0
			e.adjustScroll()
		}
	case tcell.KeyUp:
		if e.cursorLine > 0 {
			e.cursorLine--
			e.fixCursorCol()
			e.adjustScroll()
		}
	case tcell.KeyDown:
		if e.cursorLine < e.doc.Len()-1 {
			e.cursorLine++
			e.fixCursorCol()
			e.adjustScroll()
		}
	case tcell.KeyCtrlF:
		e.mode = Find
		e.findBuf = ""
	case tcell.KeyCtrlE:
		e.mode = CommandLine
		e.commandBuf = ""
	case tcell.KeyHome:
		e.cursorCol = 0
	case tcell.KeyEnd:
		e.cursorCol = len(ln)
	case tcell.KeyPgUp:
		e.cursorLine = max(e.cursorLine-(e.pageSize()-1), 0)
		e.fixCursorCol()
		e.adjustScroll()
	case tcell.KeyPgDn:
		e.cursorLine = min(e.cursorLine+(e.pageSize()-1), e.doc.Len()-1)
		e.fixCursorCol()
		e.adjustScroll()
	case tcell.KeyEnter:
		e.doc.SplitLine(e.cursorLine, e.cursorCol)
		e.cursorLine++
		e.cursorCol = 0
		e.dirty = true
		e.adjustScroll()
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.cursorCol > 0 {
			e.doc.SetLine(e.cursorLine, string(ln[:e.cursorCol-1])+string(ln[e.cursorCol:]))
			e.cursorCol--
			e.dirty = true
		} else if e.cursorLine > 0 {
			prevLen := e.lineLen(e.cursorLine - 1)
			e.doc.JoinLines(e.cursorLine - 1)
			e.cursorLine--
			e.cursorCol = prevLen
			e.dirty = true
			e.adjustScroll()
		}
	case tcell.KeyDelete:
		if e.cursorCol < len(ln) {
			e.doc.SetLine(e.cursorLine, string(ln[:e.cursorCol])+string(ln[e.cursorCol+1:]))
			e.dirty = true
		} else if e.cursorLine < e.doc.Len()-1 {
			e.doc.JoinLines(e.cursorLine)
			e.dirty = true
		}
	case tcell.KeyTab:
		e.insertText("\t")
		e.dirty = true
	case tcell.KeyRune:
		e.handleRuneInput(key.Rune())
		e.dirty = true
	}
}

func (e *Editor) lineLen(i int) int {
	return utf8.RuneCountInString(e.doc.Line(i))
}

func (e *Editor) fixCursorCol() {
	if n := e.lineLen(e.cursorLine); e.cursorCol > n {
		e.cursorCol = n
	}
}

// ----------------- COMMAND LINE MODE -----------------

func (e *Editor) handleCommandLine(key *tcell.EventKey) {
	switch key.Key() {
	case tcell.KeyEsc:
		e.mode = Interactive
	case tcell.KeyEnter:
		e.executeCommand()
		e.commandBuf = ""
		if !e.savePending && !e.quitPending {
			e.mode = Interactive
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.commandBuf = dropLastRune(e.commandBuf)
	case tcell.KeyRune:
		e.commandBuf += string(key.Rune())
	}
}

func (e *Editor) handlePromptSave(key *tcell.EventKey) {
	switch key.Key() {
	case tcell.KeyEsc:
		e.commandBuf = ""
		e.mode = Interactive
		e.savePending = false
		e.quitPending = false
	case tcell.KeyEnter:
		filename := strings.TrimSpace(e.commandBuf)
		e.commandBuf = ""
		e.mode = Interactive
		e.savePending = false
		if filename != "" && e.saveAs(filename) && e.quitPending {
			e.quit = true
		}
		e.quitPending = false
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		e.commandBuf = dropLastRune(e.commandBuf)
	case tcell.KeyRune:
		e.commandBuf += string(key.Rune())
	}
}

func (e *Editor) handlePromptQuit(key *tcell.EventKey) {
	switch key.Rune() {
	case 'n', 'N':
		e.quit = true
	default:
		if e.filename == "" {
			e.promptSaveCommandLine()
			return
		}
		if e.save() {
			e.quit = true
			return
		}
		e.mode = Interactive
		e.quitPending = false
	}
}

// ----------------- FIND MODE -----------------

func (e *Editor) handleFind(key *tcell.EventKey) {
	switch key.Key() {
	case tcell.KeyEsc, tcell.KeyEnter:
		e.mode = Interactive
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if e.findBuf != "" {
			e.findBuf = dropLastRune(e.findBuf)
			e.updateFindResults()
		}
	case tcell.KeyRune:
		e.findBuf += string(key.Rune())
		e.updateFindResults()
	case tcell.KeyDown, tcell.KeyRight:
		if len(e.findResults) > 0 {
			e.findIndex = (e.findIndex + 1) % len(e.findResults)
			e.gotoFindResult()
		}
	case tcell.KeyUp, tcell.KeyLeft:
		if len(e.findResults) > 0 {
			e.findIndex = (e.findIndex - 1 + len(e.findResults)) % len(e.findResults)
			e.gotoFindResult()
		}
	}
}

// updateFindResults rebuilds the result list when the search term changes.
func (e *Editor) updateFindResults() {
	e.findResults = nil
	if e.findBuf == "" {
		return
	}
	for i, line := range e.doc.Lines() {
		if strings.Contains(line, e.findBuf) {
			e.findResults = append(e.findResults, i)
		}
	}
	if len(e.findResults) > 0 {
		e.findIndex = 0
		e.gotoFindResult()
	}
}

func (e *Editor) gotoFindResult() {
	if len(e.findResults) == 0 {
		return
	}
	e.cursorLine = e.findResults[e.findIndex]
	line := e.doc.Line(e.cursorLine)
	e.cursorCol = utf8.RuneCountInString(line[:strings.Index(line, e.findBuf)])
	e.adjustScroll()
}

// ----------------- AUTO-CLOSING BRACKETS/QUOTES -----------------

func (e *Editor) handleRuneInput(r rune) {
	ln := []rune(e.doc.Line(e.cursorLine))

	for _, pair := range e.autoClosePairs {
		if r == pair.open {
			if pair.open == pair.close {
				if e.shouldAutoCloseQuote(r, ln) {
					e.insertAutoClosePair(r, pair.close)
					return
				}
			} else {
				e.insertAutoClosePair(r, pair.close)
				return
			}
		} else if r == pair.close && pair.open != pair.close {
			// Step over a closing bracket that is already there.
			if e.cursorCol < len(ln) && ln[e.cursorCol] == r {
				e.cursorCol++
				return
			}
		}
	}

	e.insertText(string(r))
}

// shouldAutoCloseQuote closes a quote only when it starts a new pair.
func (e *Editor) shouldAutoCloseQuote(quote rune, line []rune) bool {
	count := 0
	for i := 0; i < e.cursorCol && i < len(line); i++ {
		if line[i] == quote {
			count++
		}
	}
	return count%2 == 0
}

func (e *Editor) insertAutoClosePair(open, close rune) {
	e.insertText(string(open) + string(close))
	e.cursorCol--
}

// insertText inserts s at the cursor and moves past it.
func (e *Editor) insertText(s string) {
	ln := []rune(e.doc.Line(e.cursorLine))
	col := min(e.cursorCol, len(ln))
	e.doc.SetLine(e.cursorLine, string(ln[:col])+s+string(ln[col:]))
	e.cursorCol = col + utf8.RuneCountInString(s)
}

func dropLastRune(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeLastRuneInString(s)
	return s[:len(s)-size]
}
