// Package highlight assigns display categories to source text one block
// (line) at a time. The only state carried between blocks is a BlockState,
// which tells whether the block opens inside a multi-line comment.
package highlight

import "sync"

// Result is the outcome of highlighting one block.
type Result struct {
	// Spans in paint order; the last span covering a character wins.
	Spans []Span
	// State is the value the host stores against the block.
	State BlockState
}

// Highlighter dispatches blocks to the scanner of their language. It holds
// only read-only tables and is safe for concurrent use.
type Highlighter struct {
	tables *TableSet
}

// New returns a highlighter over tables, or over the embedded tables when
// tables is nil.
func New(tables *TableSet) *Highlighter {
	if tables == nil {
		tables = DefaultTables()
	}
	return &Highlighter{tables: tables}
}

// Tables returns the lexical tables in use.
func (h *Highlighter) Tables() *TableSet {
	return h.tables
}

// Highlight computes the entry state from the state stored against the
// previous block, then highlights text.
func (h *Highlighter) Highlight(text string, prev *BlockState, first bool, lang Language) Result {
	return h.Block(text, NextState(prev, first, lang))
}

// Block highlights text starting from an already resolved entry state.
func (h *Highlighter) Block(text string, state BlockState) Result {
	runes := []rune(text)
	switch state.Language {
	case Plain:
		res := Result{State: CodeState(Plain)}
		if len(runes) > 0 {
			res.Spans = []Span{{Start: 0, Length: len(runes), Category: PlainText}}
		}
		return res
	case XML:
		return Result{Spans: xmlSpans(runes), State: CodeState(XML)}
	}

	s := scan(runes, state, h.tables.For(state.Language))
	spans := s.spans
	if s.codeEnd > s.codeStart {
		code := runes[s.codeStart:s.codeEnd]
		switch state.Language {
		case CSS:
			spans = append(spans, cssSpans(code, s.codeStart)...)
		case YAML:
			spans = append(spans, yamlSpans(code, s.codeStart)...)
		}
	}
	return Result{
		Spans: spans,
		State: BlockState{Language: state.Language, InBlockComment: s.inComment},
	}
}

var (
	defaultHighlighter     *Highlighter
	defaultHighlighterOnce sync.Once
)

// Highlight highlights a block with the embedded lexical tables.
func Highlight(text string, prev *BlockState, first bool, lang Language) Result {
	defaultHighlighterOnce.Do(func() {
		defaultHighlighter = New(nil)
	})
	return defaultHighlighter.Highlight(text, prev, first, lang)
}
