package highlight

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// blockGen draws short blocks rich in the characters the scanners react to.
func blockGen() *rapid.Generator[string] {
	return rapid.StringOfN(rapid.RuneFrom([]rune(`ab xyz01.9/*"'\#:<>=!{};-_hé世`)), 0, 40, -1)
}

func TestProperty_HighlightIsDeterministic(t *testing.T) {
	h := New(nil)
	rapid.Check(t, func(rt *rapid.T) {
		text := blockGen().Draw(rt, "text")
		lang := rapid.SampledFrom(Languages()).Draw(rt, "lang")
		prev := BlockState{Language: lang, InBlockComment: rapid.Bool().Draw(rt, "comment")}

		a := h.Highlight(text, &prev, false, lang)
		b := h.Highlight(text, &prev, false, lang)
		require.Equal(rt, a, b)
	})
}

func TestProperty_SpansStayInsideTheBlock(t *testing.T) {
	h := New(nil)
	rapid.Check(t, func(rt *rapid.T) {
		text := blockGen().Draw(rt, "text")
		lang := rapid.SampledFrom(Languages()).Draw(rt, "lang")
		prev := BlockState{Language: lang, InBlockComment: rapid.Bool().Draw(rt, "comment")}
		n := len([]rune(text))

		res := h.Highlight(text, &prev, rapid.Bool().Draw(rt, "first"), lang)
		require.Equal(rt, lang, res.State.Language)
		if n == 0 {
			require.Empty(rt, res.Spans)
			return
		}

		require.NotEmpty(rt, res.Spans)
		require.Equal(rt, Span{Start: 0, Length: n, Category: PlainText}, res.Spans[0], "the base span covers the block")
		for _, s := range res.Spans {
			require.Greater(rt, s.Length, 0, "span %v", s)
			require.GreaterOrEqual(rt, s.Start, 0, "span %v", s)
			require.LessOrEqual(rt, s.End(), n, "span %v", s)
		}
	})
}

func TestProperty_OpenCommentWithoutCloserStaysOpen(t *testing.T) {
	h := New(nil)
	slashLangs := []Language{Cpp, C, JavaScript, Go, Rust, Java, CSS}
	rapid.Check(t, func(rt *rapid.T) {
		text := blockGen().Draw(rt, "text")
		for strings.Contains(text, "*/") {
			text = strings.ReplaceAll(text, "*/", "")
		}
		lang := rapid.SampledFrom(slashLangs).Draw(rt, "lang")
		prev := BlockState{Language: lang, InBlockComment: true}

		res := h.Highlight(text, &prev, false, lang)
		require.True(rt, res.State.InBlockComment)
		for i, f := range Resolve(res.Spans, len([]rune(text))) {
			require.Equal(rt, Comment, f.Category, "character %d", i)
		}
	})
}

func TestProperty_HashLanguagesNeverCarry(t *testing.T) {
	h := New(nil)
	rapid.Check(t, func(rt *rapid.T) {
		text := blockGen().Draw(rt, "text")
		lang := rapid.SampledFrom([]Language{Python, YAML, INI, Bash, Plain, XML}).Draw(rt, "lang")

		res := h.Highlight(text, nil, true, lang)
		require.False(rt, res.State.InBlockComment)
	})
}

func TestProperty_RunsPartitionTheBlock(t *testing.T) {
	h := New(nil)
	rapid.Check(t, func(rt *rapid.T) {
		text := blockGen().Draw(rt, "text")
		lang := rapid.SampledFrom(Languages()).Draw(rt, "lang")
		n := len([]rune(text))

		runs := Runs(Resolve(h.Highlight(text, nil, true, lang).Spans, n))
		next := 0
		for i, r := range runs {
			require.Equal(rt, next, r.Start)
			require.Greater(rt, r.End, r.Start)
			if i > 0 {
				require.NotEqual(rt, runs[i-1].Format, r.Format, "adjacent runs differ")
			}
			next = r.End
		}
		require.Equal(rt, n, next)
	})
}
