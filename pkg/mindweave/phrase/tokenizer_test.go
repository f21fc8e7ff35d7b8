package phrase

import (
	"reflect"
	"strings"
	"testing"
)

func TestTokenizerBasic(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("The quick brown fox jumps over the lazy dog")
	expected := []string{"the", "quick", "brown", "fox", "jumps", "over", "the", "lazy", "dog"}
	if !reflect.DeepEqual(tokens, expected) {
		t.Errorf("Expected %v, got %v", expected, tokens)
	}
}

func TestTokenizerCaseNormalization(t *testing.T) {
	tok := NewTokenizer()

	for _, token := range tok.Tokenize("BERT Transformer MODELS") {
		if token != strings.ToLower(token) {
			t.Errorf("Token %s should be lowercased", token)
		}
	}
}

func TestTokenizerHyphens(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("machine-learning and deep-learning")
	found := false
	for _, token := range tokens {
		if token == "machine-learning" {
			found = true
		}
	}
	if !found {
		t.Error("Hyphenated words should stay one token")
	}

	// Surrounding hyphens are trimmed
	tokens = tok.Tokenize("-edge- case")
	for _, token := range tokens {
		if strings.HasPrefix(token, "-") || strings.HasSuffix(token, "-") {
			t.Errorf("Token %s should have hyphens trimmed", token)
		}
	}
}

func TestTokenizerRejectsShortAndNumeric(t *testing.T) {
	tok := NewTokenizer()

	tokens := tok.Tokenize("a I 42 7th go")
	for _, token := range tokens {
		if len(token) < 2 {
			t.Errorf("Token %s is too short", token)
		}
		if token[0] >= '0' && token[0] <= '9' {
			t.Errorf("Token %s should not start with a digit", token)
		}
	}
	if !reflect.DeepEqual(tokens, []string{"go"}) {
		t.Errorf("Expected [go], got %v", tokens)
	}
}

func TestTokenizerEmpty(t *testing.T) {
	tok := NewTokenizer()
	if tokens := tok.Tokenize(""); len(tokens) != 0 {
		t.Errorf("Empty text should yield no tokens, got %v", tokens)
	}
	if tokens := tok.Tokenize("... !!! ---"); len(tokens) != 0 {
		t.Errorf("Punctuation should yield no tokens, got %v", tokens)
	}
}
