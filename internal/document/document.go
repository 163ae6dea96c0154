// Package document keeps the lines of an edited file together with the
// highlighting state stored against each line. Edits re-highlight the
// changed line and then walk downstream only while the state handed to the
// next line keeps changing.
//
// A Document is not safe for concurrent use; the editor owns it from its
// event loop.
package document

import (
	"strconv"
	"strings"
	"time"

	"github.com/patrickmn/go-cache"

	"github.com/SQU1DMAN6/sitehl/internal/highlight"
	"github.com/SQU1DMAN6/sitehl/internal/log"
)

type line struct {
	text  string
	entry highlight.BlockState // state the line was highlighted from
	res   highlight.Result
	valid bool
}

// Stats counts the work done by a document since it was created.
type Stats struct {
	Highlighted int // blocks run through the highlighter
	CacheHits   int // blocks served from the memo cache
}

// Document is a list of lines plus their highlighting.
type Document struct {
	h     *highlight.Highlighter
	lang  highlight.Language
	lines []line
	memo  *cache.Cache
	stats Stats
}

// Option configures a Document.
type Option func(*Document)

// WithCacheTTL sets how long highlighted blocks stay memoised. Zero keeps
// them until the document is dropped.
func WithCacheTTL(ttl time.Duration) Option {
	return func(d *Document) {
		if ttl <= 0 {
			d.memo = cache.New(cache.NoExpiration, 0)
			return
		}
		d.memo = cache.New(ttl, 2*ttl)
	}
}

// New returns an empty document holding a single blank line.
func New(h *highlight.Highlighter, lang highlight.Language, opts ...Option) *Document {
	if h == nil {
		h = highlight.New(nil)
	}
	d := &Document{
		h:     h,
		lang:  lang,
		lines: []line{{}},
		memo:  cache.New(10*time.Minute, 20*time.Minute),
	}
	for _, opt := range opts {
		opt(d)
	}
	d.rehighlight(0)
	return d
}

// Language returns the language lines are highlighted as.
func (d *Document) Language() highlight.Language {
	return d.lang
}

// SetLanguage switches the language and re-highlights everything.
func (d *Document) SetLanguage(lang highlight.Language) {
	if lang == d.lang {
		return
	}
	log.Debug(log.CatDoc, "language changed", "from", d.lang, "to", lang)
	d.lang = lang
	d.invalidateAll()
	d.rehighlight(0)
}

// SetText replaces the whole document. CRLF line endings are normalised.
func (d *Document) SetText(text string) {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	d.lines = make([]line, len(parts))
	for i, p := range parts {
		d.lines[i].text = p
	}
	d.rehighlight(0)
}

// Text joins the lines back with "\n".
func (d *Document) Text() string {
	parts := make([]string, len(d.lines))
	for i, l := range d.lines {
		parts[i] = l.text
	}
	return strings.Join(parts, "\n")
}

// Len returns the number of lines. It is never less than one.
func (d *Document) Len() int {
	return len(d.lines)
}

// Line returns the text of line i.
func (d *Document) Line(i int) string {
	return d.lines[i].text
}

// Lines returns a copy of every line's text.
func (d *Document) Lines() []string {
	out := make([]string, len(d.lines))
	for i, l := range d.lines {
		out[i] = l.text
	}
	return out
}

// State returns the state stored against line i.
func (d *Document) State(i int) highlight.BlockState {
	return d.lines[i].res.State
}

// Spans returns the spans of line i. The slice must not be modified.
func (d *Document) Spans(i int) []highlight.Span {
	return d.lines[i].res.Spans
}

// Formats resolves the spans of line i to one format per character.
func (d *Document) Formats(i int) []highlight.Format {
	l := d.lines[i]
	return highlight.Resolve(l.res.Spans, len([]rune(l.text)))
}

// Stats reports how many blocks have been highlighted so far.
func (d *Document) Stats() Stats {
	return d.stats
}

// SetLine replaces the text of line i and returns how many lines were
// re-highlighted.
func (d *Document) SetLine(i int, text string) int {
	if d.lines[i].valid && d.lines[i].text == text {
		return 0
	}
	d.lines[i].text = text
	d.lines[i].valid = false
	return d.rehighlight(i)
}

// InsertLine inserts text as a new line at index i, shifting the rest down.
// i may equal Len to append.
func (d *Document) InsertLine(i int, text string) int {
	d.lines = append(d.lines, line{})
	copy(d.lines[i+1:], d.lines[i:])
	d.lines[i] = line{text: text}
	return d.rehighlight(i)
}

// DeleteLine removes line i. Deleting the only line leaves a blank one.
func (d *Document) DeleteLine(i int) int {
	if len(d.lines) == 1 {
		return d.SetLine(0, "")
	}
	d.lines = append(d.lines[:i], d.lines[i+1:]...)
	if i == len(d.lines) {
		return 0
	}
	return d.rehighlight(i)
}

// SplitLine breaks line i at rune column col.
func (d *Document) SplitLine(i, col int) int {
	r := []rune(d.lines[i].text)
	col = min(max(col, 0), len(r))
	n := d.SetLine(i, string(r[:col]))
	return n + d.InsertLine(i+1, string(r[col:]))
}

// JoinLines appends line i+1 to line i and removes it.
func (d *Document) JoinLines(i int) int {
	if i+1 >= len(d.lines) {
		return 0
	}
	next := d.lines[i+1].text
	n := d.DeleteLine(i + 1)
	return n + d.SetLine(i, d.lines[i].text+next)
}

func (d *Document) invalidateAll() {
	for i := range d.lines {
		d.lines[i].valid = false
	}
}

func (d *Document) entryFor(i int) highlight.BlockState {
	if i == 0 {
		return highlight.NextState(nil, true, d.lang)
	}
	return highlight.NextState(&d.lines[i-1].res.State, false, d.lang)
}

// rehighlight highlights from line i onwards and stops at the first later
// line that is already valid for the state it would now be entered with.
func (d *Document) rehighlight(i int) int {
	n := 0
	for j := i; j < len(d.lines); j++ {
		entry := d.entryFor(j)
		l := &d.lines[j]
		if j > i && l.valid && l.entry == entry {
			break
		}
		l.entry = entry
		l.res = d.block(l.text, entry)
		l.valid = true
		n++
	}
	if n > 1 {
		log.Debug(log.CatDoc, "rehighlighted", "from", i, "lines", n)
	}
	return n
}

func (d *Document) block(text string, entry highlight.BlockState) highlight.Result {
	key := strconv.Itoa(entry.Encode()) + "\x00" + text
	if v, ok := d.memo.Get(key); ok {
		d.stats.CacheHits++
		return v.(highlight.Result)
	}
	res := d.h.Block(text, entry)
	d.stats.Highlighted++
	d.memo.Set(key, res, cache.DefaultExpiration)
	return res
}
