package highlight

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestNextState(t *testing.T) {
	inComment := BlockState{Language: Rust, InBlockComment: true}
	code := BlockState{Language: Rust}

	tests := []struct {
		name  string
		prev  *BlockState
		first bool
		lang  Language
		want  BlockState
	}{
		{name: "first block", prev: &inComment, first: true, lang: Rust, want: code},
		{name: "no previous state", prev: nil, first: false, lang: Rust, want: code},
		{name: "inherits comment", prev: &inComment, lang: Rust, want: inComment},
		{name: "inherits code", prev: &code, lang: Rust, want: code},
		{name: "language switched", prev: &inComment, lang: CSS, want: BlockState{Language: CSS}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, NextState(tt.prev, tt.first, tt.lang))
		})
	}
}

func TestEncode(t *testing.T) {
	require.Equal(t, 0, CodeState(Plain).Encode())
	require.Equal(t, 2*int(Go), CodeState(Go).Encode())
	require.Equal(t, 2*int(Go)+1, BlockState{Language: Go, InBlockComment: true}.Encode())
}

func TestDecodeState_Invalid(t *testing.T) {
	for _, n := range []int{-1, -2, 2 * int(numLanguages), 1000} {
		st, ok := DecodeState(n)
		require.False(t, ok, "value %d", n)
		require.Equal(t, CodeState(Plain), st)
	}
}

func TestProperty_EncodeDecodeRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		st := BlockState{
			Language:       rapid.SampledFrom(Languages()).Draw(rt, "lang"),
			InBlockComment: rapid.Bool().Draw(rt, "comment"),
		}
		n := st.Encode()
		require.Equal(rt, st.InBlockComment, n%2 == 1, "parity carries the comment flag")

		got, ok := DecodeState(n)
		require.True(rt, ok)
		require.Equal(rt, st, got)
	})
}
