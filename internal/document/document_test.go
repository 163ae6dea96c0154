package document

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/SQU1DMAN6/sitehl/internal/highlight"
)

// reference highlights every line from scratch, top to bottom.
func reference(lines []string, lang highlight.Language) []highlight.Result {
	h := highlight.New(nil)
	out := make([]highlight.Result, len(lines))
	var prev *highlight.BlockState
	for i, l := range lines {
		out[i] = h.Highlight(l, prev, i == 0, lang)
		prev = &out[i].State
	}
	return out
}

func requireConsistent(t require.TestingT, d *Document) {
	want := reference(d.Lines(), d.Language())
	for i := range want {
		require.Equal(t, want[i].State, d.State(i), "state of line %d", i)
		require.Equal(t, want[i].Spans, d.Spans(i), "spans of line %d", i)
	}
}

func goLines(n int) string {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "x := 1"
	}
	return strings.Join(lines, "\n")
}

func TestNew_IsBlank(t *testing.T) {
	d := New(nil, highlight.Go)
	require.Equal(t, 1, d.Len())
	require.Equal(t, "", d.Text())
	require.Equal(t, highlight.CodeState(highlight.Go), d.State(0))
}

func TestSetText_MatchesReference(t *testing.T) {
	d := New(nil, highlight.Cpp)
	d.SetText("int a; /* open\r\nstill\r\nclose */ int b;\n// done")
	require.Equal(t, 4, d.Len())
	require.Equal(t, "int a; /* open\nstill\nclose */ int b;\n// done", d.Text())
	require.True(t, d.State(0).InBlockComment)
	require.True(t, d.State(1).InBlockComment)
	require.False(t, d.State(2).InBlockComment)
	requireConsistent(t, d)
}

// ============================================================================
// Downstream stabilisation
// ============================================================================

func TestSetLine_StopsWhenStateSettles(t *testing.T) {
	d := New(nil, highlight.Go)
	d.SetText(goLines(50))

	require.Equal(t, 1, d.SetLine(10, "y := 2"), "a code edit touches one line")
	require.Equal(t, 40, d.SetLine(10, "/* open"), "opening a comment re-highlights to the end")
	for i := 11; i < 50; i++ {
		require.True(t, d.State(i).InBlockComment, "line %d", i)
	}
	require.Equal(t, 40, d.SetLine(10, "x := 1"), "closing it again does the same")
	require.Equal(t, 0, d.SetLine(10, "x := 1"), "an identical edit is a no-op")
	requireConsistent(t, d)
}

func TestSetLine_CommentClosedDownstream(t *testing.T) {
	d := New(nil, highlight.Go)
	d.SetText("a\nb\nc */\nd\ne")

	require.Equal(t, 3, d.SetLine(0, "/* a"), "walks until the closing line settles")
	require.True(t, d.State(1).InBlockComment)
	require.False(t, d.State(2).InBlockComment)
	requireConsistent(t, d)
}

func TestInsertAndDelete(t *testing.T) {
	d := New(nil, highlight.JavaScript)
	d.SetText("let a = 1;\nlet b = 2;")

	d.InsertLine(1, "/*")
	require.Equal(t, []string{"let a = 1;", "/*", "let b = 2;"}, d.Lines())
	require.True(t, d.State(2).InBlockComment)
	requireConsistent(t, d)

	d.InsertLine(3, "*/")
	requireConsistent(t, d)
	require.False(t, d.State(3).InBlockComment)

	d.DeleteLine(1)
	require.Equal(t, []string{"let a = 1;", "let b = 2;", "*/"}, d.Lines())
	require.False(t, d.State(1).InBlockComment)
	requireConsistent(t, d)
}

func TestDeleteLine_LastRemaining(t *testing.T) {
	d := New(nil, highlight.Go)
	d.SetText("/* x")
	d.DeleteLine(0)
	require.Equal(t, 1, d.Len())
	require.Equal(t, "", d.Line(0))
	require.False(t, d.State(0).InBlockComment)
}

func TestSplitAndJoin(t *testing.T) {
	d := New(nil, highlight.Go)
	d.SetText("a /* b */ c")

	d.SplitLine(0, 5)
	require.Equal(t, []string{"a /* ", "b */ c"}, d.Lines())
	require.True(t, d.State(0).InBlockComment)
	requireConsistent(t, d)

	d.JoinLines(0)
	require.Equal(t, []string{"a /* b */ c"}, d.Lines())
	require.False(t, d.State(0).InBlockComment)
	require.Equal(t, 0, d.JoinLines(0), "nothing to join with")
}

func TestSetLanguage(t *testing.T) {
	d := New(nil, highlight.Go)
	d.SetText("# note /*\nx")
	require.True(t, d.State(0).InBlockComment)

	d.SetLanguage(highlight.Python)
	require.Equal(t, highlight.Python, d.Language())
	require.False(t, d.State(0).InBlockComment, "python has no block comments")
	require.Equal(t, highlight.Python, d.State(1).Language)
	requireConsistent(t, d)
}

func TestFormats(t *testing.T) {
	d := New(nil, highlight.Go)
	d.SetText("func")
	f := d.Formats(0)
	require.Len(t, f, 4)
	require.Equal(t, highlight.Keyword, f[0].Category)
}

// ============================================================================
// Memoisation
// ============================================================================

func TestCache_ReusesBlocks(t *testing.T) {
	d := New(nil, highlight.Go, WithCacheTTL(0))
	before := d.Stats()

	d.SetText(goLines(20))
	s := d.Stats()
	require.Equal(t, before.Highlighted+1, s.Highlighted, "identical lines share one cached result")
	require.Equal(t, before.CacheHits+19, s.CacheHits)
	requireConsistent(t, d)
}

func TestCache_KeyIncludesState(t *testing.T) {
	d := New(nil, highlight.Go, WithCacheTTL(time.Minute))
	d.SetText("x\n/*\nx")
	require.False(t, d.State(0).InBlockComment)
	require.True(t, d.State(2).InBlockComment, "same text under a different state is not a cache hit")
	requireConsistent(t, d)
}

// ============================================================================
// Property: incremental edits agree with a full re-highlight
// ============================================================================

func TestProperty_IncrementalMatchesFull(t *testing.T) {
	fragments := []string{"", "x = 1", "/*", "*/", "a /* b", "c */ d", "// e", `"s"`, "# f", "int g;"}
	rapid.Check(t, func(rt *rapid.T) {
		lang := rapid.SampledFrom([]highlight.Language{highlight.Cpp, highlight.Go, highlight.CSS, highlight.Python, highlight.YAML}).Draw(rt, "lang")
		d := New(nil, lang)
		frag := rapid.SampledFrom(fragments)

		steps := rapid.IntRange(1, 30).Draw(rt, "steps")
		for s := 0; s < steps; s++ {
			i := rapid.IntRange(0, d.Len()-1).Draw(rt, "line")
			switch rapid.IntRange(0, 4).Draw(rt, "op") {
			case 0:
				d.SetLine(i, frag.Draw(rt, "text"))
			case 1:
				d.InsertLine(i, frag.Draw(rt, "text"))
			case 2:
				d.InsertLine(d.Len(), frag.Draw(rt, "text"))
			case 3:
				d.DeleteLine(i)
			case 4:
				d.SplitLine(i, rapid.IntRange(0, 8).Draw(rt, "col"))
			}
		}
		requireConsistent(rt, d)
	})
}
