// Package editor is the interactive terminal editor. Every edit goes through
// a document.Document, so only the changed line and the lines whose entry
// state it affects are re-highlighted.
package editor

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/SQU1DMAN6/sitehl/internal/document"
	"github.com/SQU1DMAN6/sitehl/internal/highlight"
	"github.com/SQU1DMAN6/sitehl/internal/log"
	"github.com/SQU1DMAN6/sitehl/internal/theme"
	"github.com/SQU1DMAN6/sitehl/internal/watcher"
)

type Mode int

const (
	Interactive Mode = iota
	CommandLine
	Find
	PromptSave
	PromptQuit
)

type autoClosePair struct {
	open  rune
	close rune
}

// Options configures an Editor.
type Options struct {
	Highlighter *highlight.Highlighter
	Theme       *theme.Theme
	Language    string // forced language, empty to detect from the file name
	TabWidth    int
	CacheTTL    time.Duration
	Version     string
	Watch       bool // reload the file when it changes on disk
}

type Editor struct {
	screen tcell.Screen
	doc    *document.Document
	theme  *theme.Theme

	cursorLine   int
	cursorCol    int // in runes
	scrollOffset int

	mode        Mode
	commandBuf  string
	findBuf     string
	findResults []int
	findIndex   int
	status      string

	filename    string
	dirty       bool
	savePending bool
	quitPending bool
	quit        bool

	forcedLang     bool
	tabWidth       int
	version        string
	watch          bool
	watcher        *watcher.Watcher
	autoClosePairs []autoClosePair
}

// reloadRequest is posted to the screen when the open file changes on disk.
type reloadRequest struct{}

// New returns an editor drawing on screen. The screen is initialised by Run.
func New(screen tcell.Screen, opts Options) (*Editor, error) {
	lang := highlight.Plain
	forced := false
	if opts.Language != "" {
		l, err := highlight.ParseLanguage(opts.Language)
		if err != nil {
			return nil, err
		}
		lang, forced = l, true
	}
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	tabWidth := opts.TabWidth
	if tabWidth <= 0 {
		tabWidth = 4
	}

	return &Editor{
		screen:     screen,
		doc:        document.New(opts.Highlighter, lang, document.WithCacheTTL(opts.CacheTTL)),
		theme:      th,
		mode:       Interactive,
		forcedLang: forced,
		tabWidth:   tabWidth,
		version:    opts.Version,
		watch:      opts.Watch,
		autoClosePairs: []autoClosePair{
			{'(', ')'},
			{'[', ']'},
			{'{', '}'},
			{'"', '"'},
			{'\'', '\''},
			{'`', '`'},
		},
	}, nil
}

// Document exposes the edited document.
func (e *Editor) Document() *document.Document {
	return e.doc
}

// Mode returns the current input mode.
func (e *Editor) Mode() Mode {
	return e.mode
}

// Open loads path. A missing file starts a new, unsaved buffer with that name.
func (e *Editor) Open(path string) error {
	e.filename = path
	e.detectLanguage()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		e.dirty = true
		log.Info(log.CatEditor, "new file", "path", path)
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	e.doc.SetText(string(data))
	e.dirty = false
	log.Info(log.CatEditor, "opened", "path", path, "lines", e.doc.Len(), "language", e.doc.Language())
	return nil
}

// Run initialises the screen and processes events until the user quits.
func (e *Editor) Run() error {
	if err := e.screen.Init(); err != nil {
		return fmt.Errorf("initializing screen: %w", err)
	}
	defer e.screen.Fini()
	defer e.stopWatching()

	e.startWatching()

	for !e.quit {
		e.Render()
		ev := e.screen.PollEvent()
		if ev == nil {
			return nil
		}
		e.HandleEvent(ev)
	}
	return nil
}

// HandleEvent applies one screen event.
func (e *Editor) HandleEvent(ev tcell.Event) {
	switch tev := ev.(type) {
	case *tcell.EventKey:
		switch e.mode {
		case Interactive:
			e.handleInteractive(tev)
		case CommandLine:
			e.handleCommandLine(tev)
		case Find:
			e.handleFind(tev)
		case PromptSave:
			e.handlePromptSave(tev)
		case PromptQuit:
			e.handlePromptQuit(tev)
		}
	case *tcell.EventResize:
		e.screen.Sync()
		e.adjustScroll()
	case *tcell.EventInterrupt:
		if _, ok := tev.Data().(reloadRequest); ok {
			e.reload()
		}
	}
}

// Quit reports whether the user asked to leave.
func (e *Editor) Quit() bool {
	return e.quit
}

func (e *Editor) detectLanguage() {
	if e.forcedLang {
		return
	}
	e.doc.SetLanguage(highlight.LanguageForFile(e.filename))
}

func (e *Editor) startWatching() {
	if !e.watch || e.filename == "" {
		return
	}
	w, err := watcher.New(watcher.DefaultConfig(e.filename))
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to create watcher", err)
		return
	}
	onChange, err := w.Start()
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to start watcher", err, "path", e.filename)
		_ = w.Stop()
		return
	}
	e.watcher = w
	go func() {
		for range onChange {
			_ = e.screen.PostEvent(tcell.NewEventInterrupt(reloadRequest{}))
		}
	}()
}

func (e *Editor) stopWatching() {
	if e.watcher != nil {
		_ = e.watcher.Stop()
		e.watcher = nil
	}
}

// reload re-reads the file after an outside change. Unsaved edits win.
func (e *Editor) reload() {
	if e.filename == "" {
		return
	}
	data, err := os.ReadFile(e.filename)
	if err != nil {
		log.ErrorErr(log.CatWatcher, "Failed to reload", err, "path", e.filename)
		return
	}
	if string(data) == e.doc.Text() {
		return
	}
	if e.dirty {
		log.Warn(log.CatWatcher, "file changed on disk with unsaved edits", "path", e.filename)
		e.status = "File changed on disk; save to overwrite"
		return
	}
	e.doc.SetText(string(data))
	e.clampCursor()
	e.adjustScroll()
	e.status = "Reloaded " + e.filename
	log.Info(log.CatEditor, "reloaded", "path", e.filename, "lines", e.doc.Len())
}

func (e *Editor) clampCursor() {
	e.cursorLine = min(max(e.cursorLine, 0), e.doc.Len()-1)
	e.fixCursorCol()
}
