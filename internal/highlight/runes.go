package highlight

import "unicode"

func isLetter(r rune) bool { return unicode.IsLetter(r) }

func isDigit(r rune) bool { return unicode.IsDigit(r) }

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// indexRune returns the first index >= from holding r, or -1.
func indexRune(text []rune, from int, r rune) int {
	for i := max(from, 0); i < len(text); i++ {
		if text[i] == r {
			return i
		}
	}
	return -1
}

// lastIndexRune returns the last index <= from holding r, or -1.
func lastIndexRune(text []rune, from int, r rune) int {
	for i := min(from, len(text)-1); i >= 0; i-- {
		if text[i] == r {
			return i
		}
	}
	return -1
}

// indexAny returns the first index >= from holding any rune of set, or -1.
func indexAny(text []rune, from int, set string) int {
	for i := max(from, 0); i < len(text); i++ {
		for _, r := range set {
			if text[i] == r {
				return i
			}
		}
	}
	return -1
}

// indexPair returns the first index >= from where a, b appear in sequence.
func indexPair(text []rune, from int, a, b rune) int {
	for i := max(from, 0); i+1 < len(text); i++ {
		if text[i] == a && text[i+1] == b {
			return i
		}
	}
	return -1
}

func hasPrefixAt(text []rune, at int, prefix string) bool {
	i := at
	for _, r := range prefix {
		if i >= len(text) || text[i] != r {
			return false
		}
		i++
	}
	return true
}

func containsRune(set string, r rune) bool {
	for _, s := range set {
		if s == r {
			return true
		}
	}
	return false
}
