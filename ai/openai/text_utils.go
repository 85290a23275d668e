package openai

import "strings"

// scrubString removes punctuation that confuses small models and trims
// whitespace. Hyphens are kept so terms like "co-founder" survive.
func scrubString(s string) string {
	s = strings.Map(func(r rune) rune {
		if strings.ContainsRune(".,!?;:\"'()[]{}", r) {
			return -1
		}
		return r
	}, s)
	return strings.TrimSpace(s)
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
