package highlight

import "unicode"

const (
	// numberPrefix lists the characters allowed right before a number.
	numberPrefix = "[({ ,=+-*/%<>"
	// numberSuffix lists the characters allowed right after a number.
	numberSuffix = "])} ,=+-*/%<>;"
	// numberTypeSuffix are the literal suffixes included in the span.
	numberTypeSuffix = "uUlLfF"
)

// scanner is the generic single pass over one block. Every scan method takes
// the cursor and returns the cursor of the first character it did not consume.
type scanner struct {
	text  []rune
	table *LexicalTable
	spans []Span

	inComment bool
	// [codeStart, codeEnd) is the part of the block not swallowed by a
	// comment running in from the previous block or out to the end of this one.
	codeStart, codeEnd int
}

func scan(text []rune, state BlockState, table *LexicalTable) *scanner {
	s := &scanner{
		text:      text,
		table:     table,
		inComment: state.InBlockComment,
		codeEnd:   len(text),
	}
	if len(text) == 0 {
		return s
	}
	s.emit(0, len(text), PlainText)

	i := 0
	if s.inComment {
		i = s.blockComment(0, 0)
		s.codeStart = i
	}
	for i < len(text) {
		i = s.next(i)
	}
	return s
}

func (s *scanner) emit(start, end int, cat Category) {
	if end > start {
		s.spans = append(s.spans, Span{Start: start, Length: end - start, Category: cat})
	}
}

func (s *scanner) next(i int) int {
	c := s.text[i]
	if isLetter(c) {
		return s.word(i)
	}
	if unicode.IsSpace(c) {
		return i + 1
	}

	if s.table.Comment != 0 {
		if c == s.table.Comment {
			return s.lineComment(i)
		}
	} else if c == '/' && i+1 < len(s.text) {
		switch s.text[i+1] {
		case '/':
			return s.lineComment(i)
		case '*':
			return s.blockComment(i, i+2)
		}
	}

	switch {
	case isDigit(c):
		return s.number(i)
	case c == '"' || c == '\'':
		return s.str(i, c)
	}
	return i + 1
}

func (s *scanner) lineComment(i int) int {
	s.emit(i, len(s.text), Comment)
	s.codeEnd = i
	return len(s.text)
}

// blockComment formats a comment starting at start whose terminator is
// searched from from. An unterminated comment runs to the end of the block
// and is carried into the next one.
func (s *scanner) blockComment(start, from int) int {
	end := indexPair(s.text, from, '*', '/')
	if end < 0 {
		s.emit(start, len(s.text), Comment)
		s.inComment = true
		s.codeEnd = start
		return len(s.text)
	}
	end += 2
	s.emit(start, end, Comment)
	s.inComment = false
	return end
}

// word classifies the letter run at i against the lexical table, in the
// order types, keywords, literals, builtins, others.
func (s *scanner) word(i int) int {
	t := s.table
	if i == 0 || !isLetter(s.text[i-1]) {
		if n := s.match(i, t.types); n > 0 {
			s.emit(i, i+n, Type)
			return i + n
		}
		if n := s.match(i, t.keywords); n > 0 {
			s.emit(i, i+n, Keyword)
			return i + n
		}
		if n := s.match(i, t.literals); n > 0 {
			s.emit(i, i+n, NumberLiteral)
			return i + n
		}
		if n := s.match(i, t.builtins); n > 0 {
			s.emit(i, i+n, Builtin)
			return i + n
		}
		if n := s.match(i, t.others); n > 0 {
			start := i
			if t.OtherPrefix && i > 0 {
				start = i - 1
			}
			s.emit(start, i+n, Other)
			return i + n
		}
	}

	j := i
	for j < len(s.text) && isLetter(s.text[j]) {
		j++
	}
	return j
}

// match returns the length of the longest word of the bucket for text[i]
// that sits at i as a whole word, or 0.
func (s *scanner) match(i int, b buckets) int {
	for _, w := range b[s.text[i]] {
		end := i + len(w)
		if end > len(s.text) {
			continue
		}
		if end < len(s.text) && isLetter(s.text[end]) {
			continue
		}
		if equalRunes(s.text[i:end], w) {
			return len(w)
		}
	}
	return 0
}

func equalRunes(a, b []rune) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// number formats a numeric literal at i if it is delimited on both sides.
func (s *scanner) number(i int) int {
	text := s.text
	if i > 0 && !containsRune(numberPrefix, text[i-1]) {
		return i + 1
	}

	j := i + 1
	hex := false
	if j < len(text) && text[i] == '0' && (text[j] == 'x' || text[j] == 'X') {
		hex = true
		j++
	}
	for j < len(text) && (isDigit(text[j]) || text[j] == '.' || (hex && isHexDigit(text[j]))) {
		j++
	}

	if j == len(text) {
		s.emit(i, j, NumberLiteral)
		return j
	}
	switch c := text[j]; {
	case containsRune(numberSuffix, c):
		s.emit(i, j, NumberLiteral)
	case containsRune(numberTypeSuffix, c):
		j++
		s.emit(i, j, NumberLiteral)
	}
	return j
}

// str formats a string literal opened by quote at i. Escapes are painted as
// NumberLiteral from the backslash up to the next space or the closing quote,
// whichever comes first. Strings never carry into the next block.
func (s *scanner) str(i int, quote rune) int {
	text := s.text
	var escapes [][2]int

	j := i + 1
	for j < len(text) {
		c := text[j]
		if c == quote && text[j-1] != '\\' {
			j++
			break
		}
		if c == '\\' {
			end := escapeEnd(text, j, quote)
			escapes = append(escapes, [2]int{j, end})
			j = end
			continue
		}
		j++
	}

	s.emit(i, j, String)
	for _, e := range escapes {
		s.emit(e[0], e[1], NumberLiteral)
	}
	return j
}

func escapeEnd(text []rune, backslash int, quote rune) int {
	for k := backslash + 1; k < len(text); k++ {
		if text[k] == ' ' {
			return k
		}
		if text[k] == quote && text[k-1] != '\\' {
			return k
		}
	}
	return len(text)
}
