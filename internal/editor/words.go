package editor

func isBlank(r rune) bool {
	return r == ' ' || r == '\t'
}

// prevWordStart returns the column of the start of the word left of col.
func prevWordStart(line []rune, col int) int {
	if col <= 0 {
		return 0
	}
	i := min(col, len(line)) - 1
	for i >= 0 && isBlank(line[i]) {
		i--
	}
	for i >= 0 && !isBlank(line[i]) {
		i--
	}
	return i + 1
}

// nextWordEnd returns the column just past the end of the word right of col.
func nextWordEnd(line []rune, col int) int {
	if col >= len(line) {
		return len(line)
	}
	i := max(col, 0)
	for i < len(line) && isBlank(line[i]) {
		i++
	}
	for i < len(line) && !isBlank(line[i]) {
		i++
	}
	return i
}
