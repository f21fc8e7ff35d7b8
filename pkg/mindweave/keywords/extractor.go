// Package keywords ranks candidate phrases against a reference
// embedding, with a frequency-based fallback when no embedding
// capability is available.
package keywords

import (
	"context"
	"sort"
	"strings"

	"github.com/mindweave/mindweave/pkg/mindweave/phrase"
	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

// redundancyThreshold is the token-overlap ratio (relative to the
// smaller phrase) at which two phrases count as duplicates.
const redundancyThreshold = 0.7

// Embedder maps texts into the shared embedding space. Implementations
// must be safe for concurrent use; the extractor holds one instance for
// its whole lifetime.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float64, error)
}

// Result holds extracted keywords. Semantic and Fallback are mutually
// exclusive: Fallback is populated only when semantic ranking produced
// nothing.
type Result struct {
	Semantic []string `json:"semantic"`
	Fallback []string `json:"fallback"`
}

// Keywords returns the semantic list when present, the fallback list
// otherwise.
func (r Result) Keywords() []string {
	if len(r.Semantic) > 0 {
		return r.Semantic
	}
	return r.Fallback
}

// Extractor scores candidate phrases by cosine similarity against a
// unit-length reference vector. The embedder handle may be nil, in
// which case every extraction degrades to frequency ranking.
type Extractor struct {
	gen      *phrase.Generator
	embedder Embedder
}

// NewExtractor creates an extractor around a candidate generator and an
// optional embedder.
func NewExtractor(gen *phrase.Generator, embedder Embedder) *Extractor {
	if gen == nil {
		gen = phrase.NewGenerator(phrase.Config{})
	}
	return &Extractor{gen: gen, embedder: embedder}
}

// Extract returns up to maxKeywords keywords for text. baseEmbedding,
// when non-nil and non-zero, is normalized and used as the reference
// vector; otherwise the text itself is embedded to derive one. Any
// embedding failure degrades to frequency ranking and is never
// returned as an error.
func (e *Extractor) Extract(ctx context.Context, text string, baseEmbedding []float64, maxKeywords int) Result {
	if text == "" {
		return Result{}
	}
	if maxKeywords <= 0 {
		maxKeywords = 10
	}

	candidates := e.gen.Candidates(text)
	if len(candidates) == 0 {
		return Result{Fallback: e.frequencyKeywords(text, maxKeywords)}
	}

	ref := e.referenceVector(ctx, baseEmbedding, text)
	if ref == nil {
		return Result{Fallback: e.frequencyKeywords(text, maxKeywords)}
	}

	vectors, err := e.embedAll(ctx, candidates)
	if err != nil {
		return Result{Fallback: e.frequencyKeywords(text, maxKeywords)}
	}

	type scored struct {
		phrase string
		score  float64
	}
	ranked := make([]scored, len(candidates))
	for i, cand := range candidates {
		unit := vecmath.Normalize(vectors[i])
		var score float64
		if unit != nil {
			score = vecmath.Dot(unit, ref)
		}
		ranked[i] = scored{phrase: cand, score: score}
	}
	// Stable keeps the original candidate order on ties.
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	var semantic []string
	seen := make(map[string]struct{})
	var seenTokens [][]string
	for _, r := range ranked {
		kept := strings.TrimSpace(r.phrase)
		if kept == "" {
			continue
		}
		if _, dup := seen[kept]; dup {
			continue
		}
		tokens := strings.Fields(strings.ToLower(kept))
		if isRedundant(tokens, seenTokens) {
			continue
		}
		semantic = append(semantic, kept)
		seen[kept] = struct{}{}
		seenTokens = append(seenTokens, tokens)
		if len(semantic) >= maxKeywords {
			break
		}
	}

	if len(semantic) == 0 {
		return Result{Fallback: e.frequencyKeywords(text, maxKeywords)}
	}
	return Result{Semantic: semantic}
}

// referenceVector resolves the unit-length vector candidates are scored
// against: the normalized caller embedding when usable, otherwise an
// embedding of the text itself. Returns nil when neither succeeds.
func (e *Extractor) referenceVector(ctx context.Context, base []float64, text string) []float64 {
	if len(base) > 0 {
		if unit := vecmath.Normalize(base); unit != nil {
			return unit
		}
	}
	vectors, err := e.embedAll(ctx, []string{text})
	if err != nil || len(vectors) == 0 {
		return nil
	}
	return vecmath.Normalize(vectors[0])
}

func (e *Extractor) embedAll(ctx context.Context, texts []string) ([][]float64, error) {
	if e.embedder == nil {
		return nil, errNoEmbedder
	}
	vectors, err := e.embedder.Embed(ctx, texts)
	if err != nil {
		return nil, err
	}
	if len(vectors) != len(texts) {
		return nil, errEmbedShape
	}
	return vectors, nil
}

// frequencyKeywords counts stopword-stripped tokens and returns the top
// maxKeywords by descending count, ties broken by first occurrence.
func (e *Extractor) frequencyKeywords(text string, maxKeywords int) []string {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	var order []string
	for _, tok := range e.gen.Tokens(text) {
		if e.gen.IsStopWord(tok) {
			continue
		}
		if _, ok := counts[tok]; !ok {
			firstSeen[tok] = len(order)
			order = append(order, tok)
		}
		counts[tok]++
	}
	if len(order) == 0 {
		return nil
	}

	sort.SliceStable(order, func(i, j int) bool {
		if counts[order[i]] != counts[order[j]] {
			return counts[order[i]] > counts[order[j]]
		}
		return firstSeen[order[i]] < firstSeen[order[j]]
	})
	if len(order) > maxKeywords {
		order = order[:maxKeywords]
	}
	return order
}

// isRedundant reports whether the candidate token set overlaps an
// already-kept phrase by at least the redundancy threshold, measured
// against the smaller of the two token sets.
func isRedundant(candidate []string, kept [][]string) bool {
	if len(candidate) == 0 {
		return true
	}
	candSet := make(map[string]struct{}, len(candidate))
	for _, tok := range candidate {
		candSet[tok] = struct{}{}
	}
	for _, other := range kept {
		otherSet := make(map[string]struct{}, len(other))
		for _, tok := range other {
			otherSet[tok] = struct{}{}
		}
		overlap := 0
		for tok := range candSet {
			if _, ok := otherSet[tok]; ok {
				overlap++
			}
		}
		base := len(candSet)
		if len(otherSet) < base {
			base = len(otherSet)
		}
		if base > 0 && float64(overlap)/float64(base) >= redundancyThreshold {
			return true
		}
	}
	return false
}
