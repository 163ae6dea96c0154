package highlight

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/require"
)

func colourSpans(res Result) []Span {
	var out []Span
	for _, s := range res.Spans {
		if s.Colors != nil {
			out = append(out, s)
		}
	}
	return out
}

func gray(l int) colorful.Color {
	v := float64(l) / 255
	return colorful.Color{R: v, G: v, B: v}
}

func TestCSS_SelectorAndColour(t *testing.T) {
	text := ".header { color: red; }"
	res := New(nil).Highlight(text, nil, true, CSS)

	require.Equal(t, []Span{{Start: 0, Length: 7, Category: Keyword}}, spansOf(res, Keyword))

	cs := colourSpans(res)
	require.Len(t, cs, 1)
	require.Equal(t, 17, cs[0].Start)
	require.Equal(t, 3, cs[0].Length)
	r, g, b := cs[0].Colors.Background.RGB255()
	require.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}

func TestCSS_SelectorEndsAtBrace(t *testing.T) {
	res := New(nil).Highlight("#main{", nil, true, CSS)
	require.Equal(t, []Span{{Start: 0, Length: 5, Category: Keyword}}, spansOf(res, Keyword))
}

func TestCSS_NumbersAreNotSelectors(t *testing.T) {
	res := New(nil).Highlight("width: .5em", nil, true, CSS)
	require.Empty(t, spansOf(res, Keyword))
}

func TestCSS_RGBValue(t *testing.T) {
	res := New(nil).Highlight("color: rgb(10, 20, 30);", nil, true, CSS)
	cs := colourSpans(res)
	require.Len(t, cs, 1)
	require.Equal(t, 7, cs[0].Start)
	require.Equal(t, 15, cs[0].Length)

	r, g, b := cs[0].Colors.Background.RGB255()
	require.Equal(t, [3]uint8{10, 20, 30}, [3]uint8{r, g, b})
	require.Equal(t, cssWhite, cs[0].Colors.Foreground, "very dark backgrounds get white text")
}

func TestCSS_HexValue(t *testing.T) {
	res := New(nil).Highlight("background-color: #fff;", nil, true, CSS)
	cs := colourSpans(res)
	require.Len(t, cs, 1)

	fg := cs[0].Colors.Foreground
	require.InDelta(t, 100.0/355.0, fg.R, 1e-9)
	require.InDelta(t, fg.R, fg.B, 1e-9)
}

func TestCSS_UnparsableValuesAreSkipped(t *testing.T) {
	h := New(nil)
	for _, text := range []string{
		"color: nosuchcolour;",
		"color: ;",
		"color: rgb(1, 2);",
		"color: #12;",
		"color red",
	} {
		require.Empty(t, colourSpans(h.Highlight(text, nil, true, CSS)), text)
	}
}

func TestCSS_NothingInsideCarriedComment(t *testing.T) {
	prev := BlockState{Language: CSS, InBlockComment: true}
	text := ".a { color: red; }"
	res := New(nil).Highlight(text, &prev, false, CSS)
	require.True(t, res.State.InBlockComment)
	require.Empty(t, colourSpans(res))
	require.Equal(t, repeat(Comment, len(text)), categories(t, text, res))
}

func TestCSS_CodeAfterClosedCarriedComment(t *testing.T) {
	prev := BlockState{Language: CSS, InBlockComment: true}
	text := "*/ .a { color: red; }"
	res := New(nil).Highlight(text, &prev, false, CSS)
	require.False(t, res.State.InBlockComment)
	require.Equal(t, []Span{{Start: 3, Length: 2, Category: Keyword}}, spansOf(res, Keyword))
	require.Len(t, colourSpans(res), 1)
}

// ===========================================================================
// Readable foreground
// ===========================================================================

func TestReadableOn_Thresholds(t *testing.T) {
	tests := []struct {
		l    int
		want colorful.Color
	}{
		{0, cssWhite},
		{20, cssWhite},
		{21, cssLightGray},
		{51, cssLightGray},
		{52, cssGray},
		{78, cssGray},
		{79, cssDimGray},
		{110, cssDimGray},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, readableOn(gray(tt.l)), "lightness %d", tt.l)
	}
}

func TestReadableOn_MidRangeIsLighter(t *testing.T) {
	for l := 111; l <= 127; l++ {
		bg := gray(l)
		require.Equal(t, l, lightness(bg))
		require.Greater(t, lightness(readableOn(bg)), l, "lightness %d", l)
	}
}

func TestReadableOn_BrightIsDarker(t *testing.T) {
	for l := 128; l <= 255; l++ {
		bg := gray(l)
		require.Less(t, lightness(readableOn(bg)), l, "lightness %d", l)
	}
}

func TestParseCSSColor(t *testing.T) {
	tests := map[string][3]uint8{
		"red":                {255, 0, 0},
		"  SteelBlue ":       {70, 130, 180},
		"#0f0":               {0, 255, 0},
		"#102030":            {16, 32, 48},
		"rgba(1, 2, 3, 0.5)": {1, 2, 3},
		"rgb(300, -4, 7)":    {255, 0, 7},
	}
	for in, want := range tests {
		c, ok := parseCSSColor(in)
		require.True(t, ok, in)
		r, g, b := c.RGB255()
		require.Equal(t, want, [3]uint8{r, g, b}, in)
	}

	for _, in := range []string{"", "rgb(a, b, c)", "rgb 1 2 3", "#xyz", "notacolour"} {
		_, ok := parseCSSColor(in)
		require.False(t, ok, in)
	}
}
