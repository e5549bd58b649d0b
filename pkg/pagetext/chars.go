package pagetext

// IsPunctuation reports whether r belongs to the fixed punctuation set used
// when trimming words for search and when deciding where a line may break.
func IsPunctuation(r rune) bool {
	switch r {
	case '.', ',', '?', '!', ':', ';', '"', '\'', '`', '/', '\\', '(', ')', '[', ']', '{', '}', '<', '>', '-', '#', '*', '&', '%', '@',
		'‘', '’', '“', '”', '–', '—', '…':
		return true
	}
	return false
}

// IsRawWhitespace reports whether r is a whitespace character painted as a
// glyph by the content stream.
func IsRawWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\u00a0':
		return true
	}
	return false
}
