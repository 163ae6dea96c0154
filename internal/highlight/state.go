package highlight

// BlockState is the value persisted by the host against every block. It is
// the only thing carried from one block to the next.
type BlockState struct {
	Language       Language
	InBlockComment bool
}

// CodeState is the base state of a language: scanning ordinary code.
func CodeState(lang Language) BlockState {
	return BlockState{Language: lang}
}

// NextState decides the entry state of a block from the state stored against
// the block above it. A nil prev is treated like a first block.
func NextState(prev *BlockState, first bool, lang Language) BlockState {
	if first || prev == nil {
		return CodeState(lang)
	}
	if prev.Language != lang {
		return CodeState(lang)
	}
	return *prev
}

// Encode packs the state into a single integer, 2*language (+1 inside a
// block comment), for hosts that persist a plain int per block.
func (s BlockState) Encode() int {
	n := 2 * int(s.Language)
	if s.InBlockComment {
		n++
	}
	return n
}

// DecodeState is the inverse of Encode. Negative or out of range values
// decode to the plain code state and report false.
func DecodeState(n int) (BlockState, bool) {
	if n < 0 {
		return CodeState(Plain), false
	}
	l := Language(n / 2)
	if !l.Valid() {
		return CodeState(Plain), false
	}
	return BlockState{Language: l, InBlockComment: n%2 == 1}, true
}
