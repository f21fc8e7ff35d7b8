package keywords

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/mindweave/mindweave/pkg/mindweave/phrase"
)

// fakeEmbedder returns a fixed vector per known text and a default
// vector for everything else.
type fakeEmbedder struct {
	byText  map[string][]float64
	defVec  []float64
	failAll bool
}

func (f *fakeEmbedder) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if f.failAll {
		return nil, errors.New("embedder down")
	}
	out := make([][]float64, len(texts))
	for i, text := range texts {
		if v, ok := f.byText[text]; ok {
			out[i] = v
		} else {
			out[i] = f.defVec
		}
	}
	return out, nil
}

func TestExtractSemanticRanking(t *testing.T) {
	emb := &fakeEmbedder{
		byText: map[string][]float64{
			"machine learning models": {1, 0, 0},
			"machine learning":        {0.9, 0.1, 0},
			"cats":                    {0.5, 0, 0.5},
		},
		defVec: []float64{0, 0, 1},
	}
	ex := NewExtractor(nil, emb)

	res := ex.Extract(context.Background(), "machine learning models. the cats. machine learning", []float64{1, 0, 0}, 3)

	kws := res.Keywords()
	if len(res.Semantic) == 0 {
		t.Fatal("Expected semantic keywords")
	}
	if kws[0] != "machine learning models" {
		t.Errorf("Expected top keyword 'machine learning models', got %q", kws[0])
	}
	for _, kw := range kws {
		if kw == "machine learning" {
			t.Error("'machine learning' should be suppressed as redundant")
		}
	}
	found := false
	for _, kw := range kws {
		if kw == "cats" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected 'cats' among keywords, got %v", kws)
	}
}

func TestExtractIdempotent(t *testing.T) {
	emb := &fakeEmbedder{
		byText: map[string][]float64{
			"distributed systems": {1, 0},
			"consensus":           {0.8, 0.2},
		},
		defVec: []float64{0, 1},
	}
	ex := NewExtractor(nil, emb)

	text := "distributed systems need consensus protocols"
	first := ex.Extract(context.Background(), text, []float64{1, 0}, 5)
	for i := 0; i < 5; i++ {
		again := ex.Extract(context.Background(), text, []float64{1, 0}, 5)
		if !reflect.DeepEqual(first, again) {
			t.Fatalf("Extraction not idempotent: %v vs %v", first, again)
		}
	}
}

func TestExtractFrequencyFallbackNoEmbedder(t *testing.T) {
	ex := NewExtractor(nil, nil)

	res := ex.Extract(context.Background(), "the quick brown fox jumps over the quick brown dog", nil, 5)

	if len(res.Semantic) != 0 {
		t.Errorf("Expected no semantic keywords, got %v", res.Semantic)
	}
	if len(res.Fallback) == 0 {
		t.Fatal("Expected fallback keywords")
	}
	// "quick" and "brown" appear twice, so they rank first
	if res.Fallback[0] != "quick" || res.Fallback[1] != "brown" {
		t.Errorf("Expected [quick brown ...], got %v", res.Fallback)
	}
	for _, kw := range res.Fallback {
		if kw == "the" || kw == "over" {
			t.Errorf("Stopword %q in fallback keywords", kw)
		}
	}
}

func TestExtractFallbackOnEmbedderFailure(t *testing.T) {
	ex := NewExtractor(nil, &fakeEmbedder{failAll: true})

	res := ex.Extract(context.Background(), "kubernetes operators reconcile state", []float64{1, 0}, 5)
	if len(res.Semantic) != 0 {
		t.Errorf("Expected degradation to fallback, got semantic %v", res.Semantic)
	}
	if len(res.Fallback) == 0 {
		t.Error("Expected fallback keywords after embedder failure")
	}
}

func TestExtractEmptyText(t *testing.T) {
	ex := NewExtractor(nil, nil)

	res := ex.Extract(context.Background(), "", []float64{1, 0}, 5)
	if len(res.Semantic) != 0 || len(res.Fallback) != 0 {
		t.Errorf("Empty text should yield an empty result, got %+v", res)
	}
}

func TestExtractMaxKeywordsCap(t *testing.T) {
	ex := NewExtractor(nil, nil)

	res := ex.Extract(context.Background(), "alpha bravo charlie delta echo foxtrot golf hotel", nil, 3)
	if len(res.Keywords()) > 3 {
		t.Errorf("Expected at most 3 keywords, got %v", res.Keywords())
	}
}

func TestResultKeywordsPreference(t *testing.T) {
	r := Result{Semantic: []string{"one"}, Fallback: []string{"two"}}
	if kws := r.Keywords(); len(kws) != 1 || kws[0] != "one" {
		t.Errorf("Semantic keywords should win, got %v", kws)
	}
	r = Result{Fallback: []string{"two"}}
	if kws := r.Keywords(); len(kws) != 1 || kws[0] != "two" {
		t.Errorf("Fallback keywords should be returned, got %v", kws)
	}
}

func TestExtractUsesCustomGenerator(t *testing.T) {
	gen := phrase.NewGenerator(phrase.Config{StopWords: []string{"banana"}})
	ex := NewExtractor(gen, nil)

	res := ex.Extract(context.Background(), "banana banana apple", nil, 5)
	for _, kw := range res.Keywords() {
		if kw == "banana" {
			t.Error("Custom stopword should be filtered")
		}
	}
}
