package highlight

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Category is the visual class of a span of text.
type Category int

const (
	PlainText Category = iota
	Keyword
	Type
	String
	Comment
	NumberLiteral
	Builtin
	Other

	numCategories
)

var categoryNames = [numCategories]string{
	PlainText:     "plain",
	Keyword:       "keyword",
	Type:          "type",
	String:        "string",
	Comment:       "comment",
	NumberLiteral: "number",
	Builtin:       "builtin",
	Other:         "other",
}

// Categories returns every category in id order.
func Categories() []Category {
	out := make([]Category, 0, numCategories)
	for c := PlainText; c < numCategories; c++ {
		out = append(out, c)
	}
	return out
}

func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryNames[c]
}

// ParseCategory is the inverse of Category.String.
func ParseCategory(name string) (Category, bool) {
	for c := PlainText; c < numCategories; c++ {
		if categoryNames[c] == name {
			return c, true
		}
	}
	return PlainText, false
}

// ColorPair is an explicit foreground/background override, used for CSS
// colour values.
type ColorPair struct {
	Foreground colorful.Color
	Background colorful.Color
}

// Span formats Length characters starting at Start (both in runes). Spans
// are applied in order; a later span overrides an earlier one.
type Span struct {
	Start     int
	Length    int
	Category  Category
	Underline bool
	Colors    *ColorPair
}

// End is the offset one past the last character of the span.
func (s Span) End() int {
	return s.Start + s.Length
}

func (s Span) String() string {
	return fmt.Sprintf("{%s %d %d}", s.Category, s.Start, s.Length)
}

// Format is the resolved formatting of a single character.
type Format struct {
	Category  Category
	Underline bool
	Colors    *ColorPair
}

// Resolve paints spans in order over n characters and returns the final
// format of every character.
func Resolve(spans []Span, n int) []Format {
	out := make([]Format, n)
	for _, s := range spans {
		start, end := max(s.Start, 0), min(s.End(), n)
		for i := start; i < end; i++ {
			out[i] = Format{Category: s.Category, Underline: s.Underline, Colors: s.Colors}
		}
	}
	return out
}

// Run is a maximal stretch of characters sharing one format.
type Run struct {
	Start, End int
	Format     Format
}

// Runs collapses resolved formats into runs, the shape renderers want.
func Runs(formats []Format) []Run {
	var runs []Run
	for i, f := range formats {
		if len(runs) > 0 && runs[len(runs)-1].Format == f {
			runs[len(runs)-1].End = i + 1
			continue
		}
		runs = append(runs, Run{Start: i, End: i + 1, Format: f})
	}
	return runs
}
