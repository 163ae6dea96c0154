package editor

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/SQU1DMAN6/sitehl/internal/highlight"
	"github.com/SQU1DMAN6/sitehl/internal/log"
)

// ----------------- EXECUTE COMMAND -----------------

func (e *Editor) executeCommand() {
	args := strings.Fields(e.commandBuf)
	if len(args) == 0 {
		return
	}
	log.Debug(log.CatEditor, "command", "name", args[0], "args", len(args)-1)

	switch strings.ToLower(args[0]) {
	case "exit", "quit":
		if e.dirty {
			e.promptQuitCommandLine()
		} else {
			e.quit = true
		}
	case "save":
		if len(args) > 1 {
			e.saveAs(args[1])
		} else if e.filename != "" {
			e.save()
		} else {
			e.promptSaveCommandLine()
		}
	case "find":
		e.mode = Find
		e.findBuf = ""
	case "goto":
		if len(args) >= 2 {
			line, err := strconv.Atoi(args[1])
			if err == nil && line >= 1 && line <= e.doc.Len() {
				e.cursorLine = line - 1
			}
			e.cursorCol = 0
			if len(args) >= 3 {
				col, err := strconv.Atoi(args[2])
				if err == nil && col >= 0 && col <= e.lineLen(e.cursorLine) {
					e.cursorCol = col
				}
			}
			e.adjustScroll()
		}
	case "lang", "language":
		e.languageCommand(args[1:])
	default:
		e.status = fmt.Sprintf("Unknown command: %s", args[0])
	}
}

// languageCommand shows or changes the highlighting language. "auto"
// returns to detection from the file name.
func (e *Editor) languageCommand(args []string) {
	if len(args) == 0 {
		e.status = "Language: " + e.doc.Language().String()
		return
	}
	if strings.EqualFold(args[0], "auto") {
		e.forcedLang = false
		e.detectLanguage()
		e.status = "Language: " + e.doc.Language().String() + " (detected)"
		return
	}
	lang, err := highlight.ParseLanguage(args[0])
	if err != nil {
		e.status = err.Error()
		return
	}
	e.forcedLang = true
	e.doc.SetLanguage(lang)
	e.status = "Language: " + lang.String()
	log.Info(log.CatEditor, "language selected", "language", lang)
}

// save writes the buffer to the current file name.
func (e *Editor) save() bool {
	if err := os.WriteFile(e.filename, []byte(e.doc.Text()), 0o644); err != nil { //nolint:gosec // G306: user file, keep default permissions
		log.ErrorErr(log.CatEditor, "Failed to save", err, "path", e.filename)
		e.status = fmt.Sprintf("Save failed: %v", err)
		return false
	}
	e.dirty = false
	e.status = "Saved " + e.filename
	log.Info(log.CatEditor, "saved", "path", e.filename, "lines", e.doc.Len())
	return true
}

// saveAs saves under a new name and re-detects the language from it.
func (e *Editor) saveAs(filename string) bool {
	prev := e.filename
	e.filename = filename
	if !e.save() {
		e.filename = prev
		return false
	}
	e.detectLanguage()
	return true
}

func (e *Editor) promptSaveCommandLine() {
	e.mode = PromptSave
	e.commandBuf = ""
	e.savePending = true
}

func (e *Editor) promptQuitCommandLine() {
	e.mode = PromptQuit
	e.quitPending = true
}
