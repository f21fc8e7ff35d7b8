package phrase

import (
	"strings"
	"unicode"
)

// Tokenizer splits text into normalized word tokens. A token is a
// maximal run of letters, digits and hyphens that starts with a letter;
// tokens are lowercased and must be at least two characters long.
type Tokenizer struct{}

// NewTokenizer creates a tokenizer.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{}
}

// Tokenize splits text into normalized tokens, preserving order.
// Stopwords are kept; filtering is the caller's concern.
func (t *Tokenizer) Tokenize(text string) []string {
	var tokens []string
	var current strings.Builder

	flush := func() {
		if current.Len() == 0 {
			return
		}
		word := cleanToken(current.String())
		current.Reset()
		if word != "" {
			tokens = append(tokens, word)
		}
	}

	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsNumber(r) || r == '-' || r == '_' {
			current.WriteRune(unicode.ToLower(r))
		} else {
			flush()
		}
	}
	flush()

	return tokens
}

// cleanToken strips surrounding hyphens/underscores and rejects tokens
// that are too short or do not start with a letter.
func cleanToken(token string) string {
	token = strings.Trim(token, "-_")
	if len(token) < 2 {
		return ""
	}
	first := rune(token[0])
	if !unicode.IsLetter(first) {
		return ""
	}
	return token
}
