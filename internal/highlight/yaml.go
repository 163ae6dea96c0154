package highlight

// yamlSpans marks the first key of a YAML block and any http(s) links.
// text is the code region of the block and off its offset within the block.
func yamlSpans(text []rune, off int) []Span {
	var spans []Span
	n := len(text)
	keyFound := false
	for i := 0; i < n; i++ {
		c := text[i]
		if !isLetter(c) {
			continue
		}
		if keyFound && c != 'h' {
			continue
		}

		if i > 0 && (text[i-1] == '"' || text[i-1] == '\'') {
			closing := indexRune(text, i, text[i-1])
			if closing < 0 {
				return spans
			}
			i = closing
			continue
		}

		if !keyFound {
			colon := indexRune(text, i, ':')
			if colon < 0 {
				return spans
			}
			// C:\ and friends are paths, not keys.
			if colon+1 >= n || text[colon+1] != '\\' {
				keyFound = true
				spans = append(spans, Span{Start: off + i, Length: colon - i, Category: Keyword})
			}
		}

		if c == 'h' && hasPrefixAt(text, i, "http") {
			end := indexRune(text, i, ' ')
			if end < 0 {
				end = n
			}
			spans = append(spans, Span{Start: off + i, Length: end - i, Category: String, Underline: true})
			i = end
			continue
		}

		if !keyFound {
			for i+1 < n && isLetter(text[i+1]) {
				i++
			}
		}
	}
	return spans
}
