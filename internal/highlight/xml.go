package highlight

// xmlSpans highlights an XML block on its own, without the generic scanner:
// tags are keywords, attribute names builtins and quoted values strings.
func xmlSpans(text []rune) []Span {
	n := len(text)
	if n == 0 {
		return nil
	}
	spans := []Span{{Start: 0, Length: n, Category: PlainText}}
	add := func(start, end int, cat Category) {
		if end > start {
			spans = append(spans, Span{Start: start, Length: end - start, Category: cat})
		}
	}

	for i := 0; i < n; i++ {
		switch text[i] {
		case '<':
			if i+1 < n && text[i+1] == '!' {
				continue
			}
			gt := indexRune(text, i, '>')
			if gt < 0 {
				continue
			}
			start := i + 1
			if start < n && text[start] == '/' {
				start++
			}
			add(start, gt, Keyword)
		case '=':
			nameEnd := i
			space := lastIndexRune(text, i-1, ' ')
			if i > 0 && space == i-1 {
				nameEnd = i - 1
				space = lastIndexRune(text, i-2, ' ')
			}
			if space >= 0 {
				add(space+1, nameEnd, Builtin)
			}
		case '"':
			end := n
			if closing := indexRune(text, i+1, '"'); closing >= 0 {
				end = closing + 1
			}
			add(i, end, String)
			i = end - 1
		}
	}
	return spans
}
