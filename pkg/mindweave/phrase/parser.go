package phrase

import (
	"sort"
	"strings"
)

// Parse is the linguistic view of a text produced by a Provider.
type Parse struct {
	Tokens     []string // normalized tokens in document order
	NounChunks []string // multiword subject spans, may be empty
	Entities   []Entity // labeled spans, may be empty
}

// Entity is a labeled span recognized in a text.
type Entity struct {
	Label string // person, organization, location, ...
	Value string
}

// Provider turns raw text into a Parse. A rich provider contributes
// entities and noun chunks in addition to the token stream; a basic
// provider contributes tokens only. The provider is selected once at
// construction time, not per call.
type Provider interface {
	// Rich reports whether the provider produces entities/noun chunks.
	Rich() bool
	Parse(text string) Parse
}

// BasicProvider tokenizes text without any entity or chunk analysis.
type BasicProvider struct {
	tok *Tokenizer
}

// NewBasicProvider creates a tokenization-only provider.
func NewBasicProvider() *BasicProvider {
	return &BasicProvider{tok: NewTokenizer()}
}

// Rich implements Provider.
func (p *BasicProvider) Rich() bool { return false }

// Parse implements Provider.
func (p *BasicProvider) Parse(text string) Parse {
	return Parse{Tokens: p.tok.Tokenize(text)}
}

// DictionaryProvider recognizes entities by matching configured surface
// forms against the text, the same way a taxonomy lookup works. It is
// the rich provider used when no external NLP parse is wired in.
type DictionaryProvider struct {
	tok      *Tokenizer
	entities map[string][]string // label → surface forms
}

// NewDictionaryProvider creates a provider from a label → surface-form
// dictionary. Surface forms are matched case-insensitively.
func NewDictionaryProvider(entities map[string][]string) *DictionaryProvider {
	return &DictionaryProvider{
		tok:      NewTokenizer(),
		entities: entities,
	}
}

// Rich implements Provider.
func (p *DictionaryProvider) Rich() bool { return true }

// Parse implements Provider.
func (p *DictionaryProvider) Parse(text string) Parse {
	parse := Parse{Tokens: p.tok.Tokenize(text)}
	lower := strings.ToLower(text)

	// Labels are visited in sorted order so repeated parses of the same
	// text yield candidates in the same order.
	labels := make([]string, 0, len(p.entities))
	for label := range p.entities {
		labels = append(labels, label)
	}
	sort.Strings(labels)

	for _, label := range labels {
		for _, form := range p.entities[label] {
			if form == "" {
				continue
			}
			if strings.Contains(lower, strings.ToLower(form)) {
				parse.Entities = append(parse.Entities, Entity{Label: label, Value: form})
			}
		}
	}

	return parse
}
