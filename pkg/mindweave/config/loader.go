package config

import (
	"fmt"

	"github.com/mindweave/mindweave/pkg/mindweave/keywords"
	"github.com/mindweave/mindweave/pkg/mindweave/phrase"
)

// Loader loads configuration files and constructs the keyword
// extraction components.
type Loader struct {
	StoplistPath string
	EntitiesPath string

	MaxNgram      int
	MaxCandidates int
	// EnableNER selects the rich (entity-aware) parse provider when an
	// entity dictionary is configured.
	EnableNER bool
}

// Components holds the loaded configuration components.
type Components struct {
	Generator *phrase.Generator
}

// Load reads the configuration files and returns initialized
// components.
func (l *Loader) Load() (*Components, error) {
	cfg := phrase.Config{
		MaxNgram:      l.MaxNgram,
		MaxCandidates: l.MaxCandidates,
	}

	if l.StoplistPath != "" {
		stoplist, err := LoadStoplist(l.StoplistPath)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		cfg.StopWords = stoplist.Terms
	}

	if l.EnableNER && l.EntitiesPath != "" {
		ents, err := LoadEntities(l.EntitiesPath)
		if err != nil {
			return nil, fmt.Errorf("load entities: %w", err)
		}
		cfg.Provider = phrase.NewDictionaryProvider(ents.Entities)
		if len(ents.Labels) > 0 {
			cfg.EntityLabels = ents.Labels
		}
	}

	return &Components{Generator: phrase.NewGenerator(cfg)}, nil
}

// NewExtractor builds a keyword extractor from the loaded components
// and an optional embedder.
func (c *Components) NewExtractor(embedder keywords.Embedder) *keywords.Extractor {
	return keywords.NewExtractor(c.Generator, embedder)
}
