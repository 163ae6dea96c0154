package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestXML_Spans(t *testing.T) {
	h := New(nil)

	tests := []struct {
		name string
		text string
		want []Span
	}{
		{
			name: "tag with attribute",
			text: `<tag attr="v">`,
			want: []Span{
				{Start: 0, Length: 14, Category: PlainText},
				{Start: 1, Length: 12, Category: Keyword},
				{Start: 5, Length: 4, Category: Builtin},
				{Start: 10, Length: 3, Category: String},
			},
		},
		{
			name: "closing tag",
			text: "</tag>",
			want: []Span{
				{Start: 0, Length: 6, Category: PlainText},
				{Start: 2, Length: 3, Category: Keyword},
			},
		},
		{
			name: "continued tag",
			text: `attr="v" b="w">`,
			want: []Span{
				{Start: 0, Length: 15, Category: PlainText},
				{Start: 5, Length: 3, Category: String},
				{Start: 9, Length: 1, Category: Builtin},
				{Start: 11, Length: 3, Category: String},
			},
		},
		{
			name: "unterminated value",
			text: `<a href="x`,
			want: []Span{
				{Start: 0, Length: 10, Category: PlainText},
				{Start: 3, Length: 4, Category: Builtin},
				{Start: 8, Length: 2, Category: String},
			},
		},
		{
			name: "spaced equals",
			text: `<x a = "b">`,
			want: []Span{
				{Start: 0, Length: 11, Category: PlainText},
				{Start: 1, Length: 9, Category: Keyword},
				{Start: 3, Length: 1, Category: Builtin},
				{Start: 7, Length: 3, Category: String},
			},
		},
		{
			name: "markup declaration",
			text: "<!-- c -->",
			want: []Span{{Start: 0, Length: 10, Category: PlainText}},
		},
		{
			name: "lone bracket",
			text: "<",
			want: []Span{{Start: 0, Length: 1, Category: PlainText}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := h.Highlight(tt.text, nil, true, XML)
			require.Equal(t, tt.want, res.Spans)
			require.Equal(t, CodeState(XML), res.State)
		})
	}
}

func TestXML_NeverCarries(t *testing.T) {
	prev := BlockState{Language: XML, InBlockComment: true}
	res := New(nil).Highlight("<!-- open", &prev, false, XML)
	require.False(t, res.State.InBlockComment)
}

func TestXML_Empty(t *testing.T) {
	res := New(nil).Highlight("", nil, true, XML)
	require.Empty(t, res.Spans)
}
