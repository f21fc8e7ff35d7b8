// Package phrase extracts candidate keyword phrases from raw text:
// tokenization, optional entity/noun-chunk parsing and stop-word-aware
// n-gram generation.
package phrase

import "strings"

// Default generation limits.
const (
	DefaultMaxNgram      = 3
	DefaultMaxCandidates = 60

	// minPhraseLen is the minimum character length of a candidate.
	minPhraseLen = 4
)

// phraseTrimSet is stripped from both ends of every candidate.
const phraseTrimSet = " -_,.;:!?\"'()[]{}"

// Config configures a Generator. Zero values select defaults.
type Config struct {
	StopWords     []string // nil → DefaultStopWords
	MaxNgram      int      // longest n-gram, default 3
	MaxCandidates int      // output cap, default 60
	Provider      Provider // nil → NewBasicProvider()
	EntityLabels  []string // accepted entity labels, nil → DefaultEntityLabels
}

// Generator produces deduplicated candidate phrases of 1..MaxNgram
// tokens from a text.
type Generator struct {
	stopwords     map[string]struct{}
	entityLabels  map[string]struct{}
	maxNgram      int
	maxCandidates int
	provider      Provider
}

// NewGenerator creates a candidate generator.
func NewGenerator(cfg Config) *Generator {
	stops := cfg.StopWords
	if stops == nil {
		stops = DefaultStopWords
	}
	labels := cfg.EntityLabels
	if labels == nil {
		labels = DefaultEntityLabels
	}
	g := &Generator{
		stopwords:     make(map[string]struct{}, len(stops)),
		entityLabels:  make(map[string]struct{}, len(labels)),
		maxNgram:      cfg.MaxNgram,
		maxCandidates: cfg.MaxCandidates,
		provider:      cfg.Provider,
	}
	for _, w := range stops {
		g.stopwords[strings.ToLower(w)] = struct{}{}
	}
	for _, l := range labels {
		g.entityLabels[strings.ToLower(l)] = struct{}{}
	}
	if g.maxNgram <= 0 {
		g.maxNgram = DefaultMaxNgram
	}
	if g.maxCandidates <= 0 {
		g.maxCandidates = DefaultMaxCandidates
	}
	if g.provider == nil {
		g.provider = NewBasicProvider()
	}
	return g
}

// Candidates returns up to MaxCandidates deduplicated phrases in order
// of first occurrence.
func (g *Generator) Candidates(text string) []string {
	parse := g.provider.Parse(text)
	if len(parse.Tokens) == 0 {
		return nil
	}

	var raw []string
	if g.provider.Rich() {
		for _, chunk := range parse.NounChunks {
			if cleaned := cleanPhrase(chunk); g.validCandidate(cleaned) {
				raw = append(raw, cleaned)
			}
		}
		for _, ent := range parse.Entities {
			if _, ok := g.entityLabels[strings.ToLower(ent.Label)]; !ok {
				continue
			}
			if cleaned := cleanPhrase(ent.Value); g.validCandidate(cleaned) {
				raw = append(raw, cleaned)
			}
		}
	}
	raw = append(raw, g.ngramCandidates(parse.Tokens)...)

	deduped := make([]string, 0, g.maxCandidates)
	seen := make(map[string]struct{})
	for _, phrase := range raw {
		if phrase == "" {
			continue
		}
		if _, ok := seen[phrase]; ok {
			continue
		}
		seen[phrase] = struct{}{}
		deduped = append(deduped, phrase)
		if len(deduped) >= g.maxCandidates {
			break
		}
	}
	return deduped
}

// Tokens returns the normalized token stream for text, stopwords
// included.
func (g *Generator) Tokens(text string) []string {
	return g.provider.Parse(text).Tokens
}

// IsStopWord reports whether the token is on the stopword list.
func (g *Generator) IsStopWord(token string) bool {
	_, ok := g.stopwords[strings.ToLower(token)]
	return ok
}

// ngramCandidates slices the token stream into stopword-delimited
// chunks and emits all n-grams of each chunk, longest first.
func (g *Generator) ngramCandidates(tokens []string) []string {
	var out []string
	var chunk []string
	for _, tok := range tokens {
		if _, stop := g.stopwords[tok]; stop {
			if len(chunk) > 0 {
				out = append(out, g.chunkNgrams(chunk)...)
				chunk = nil
			}
			continue
		}
		chunk = append(chunk, tok)
	}
	if len(chunk) > 0 {
		out = append(out, g.chunkNgrams(chunk)...)
	}
	return out
}

func (g *Generator) chunkNgrams(chunk []string) []string {
	var out []string
	maxSize := len(chunk)
	if maxSize > g.maxNgram {
		maxSize = g.maxNgram
	}
	for size := maxSize; size >= 1; size-- {
		for start := 0; start+size <= len(chunk); start++ {
			p := strings.Join(chunk[start:start+size], " ")
			if len(p) >= minPhraseLen {
				out = append(out, p)
			}
		}
	}
	return out
}

// validCandidate rejects empty or too-short phrases and phrases made
// entirely of stopwords.
func (g *Generator) validCandidate(p string) bool {
	if len(p) < minPhraseLen {
		return false
	}
	tokens := strings.Fields(strings.ToLower(p))
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if _, stop := g.stopwords[tok]; !stop {
			return true
		}
	}
	return false
}

// cleanPhrase collapses whitespace and strips surrounding punctuation.
func cleanPhrase(p string) string {
	return strings.Trim(strings.Join(strings.Fields(p), " "), phraseTrimSet)
}
