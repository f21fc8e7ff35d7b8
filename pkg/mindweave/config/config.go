// Package config loads the YAML configuration files and assembles the
// keyword-extraction components from them.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
)

// Stoplist represents the stopword list configuration
type Stoplist struct {
	Terms []string `yaml:"terms"`
}

// LoadStoplist loads stopwords from a YAML file
func LoadStoplist(path string) (*Stoplist, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var sl Stoplist
	if err := yaml.Unmarshal(data, &sl); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}

	return &sl, nil
}

// Entities represents the entity dictionary: label → surface forms.
type Entities struct {
	Entities map[string][]string `yaml:"entities"`
	Labels   []string            `yaml:"labels"` // accepted labels, optional
}

// LoadEntities loads the entity dictionary from a YAML file
func LoadEntities(path string) (*Entities, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var ents Entities
	if err := yaml.Unmarshal(data, &ents); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}

	return &ents, nil
}

// Server is the server/CLI configuration file.
type Server struct {
	Addr     string `yaml:"addr"`
	DBPath   string `yaml:"db"`
	Stoplist string `yaml:"stoplist"`
	Entities string `yaml:"entities"`

	Embedding struct {
		BaseURL string `yaml:"base_url"`
		APIKey  string `yaml:"api_key"`
		Model   string `yaml:"model"`
	} `yaml:"embedding"`

	Extractor struct {
		MaxNgram      int  `yaml:"max_ngram"`
		MaxCandidates int  `yaml:"max_candidates"`
		EnableNER     bool `yaml:"enable_ner"`
	} `yaml:"extractor"`
}

// LoadServer loads the server configuration from a YAML file
func LoadServer(path string) (*Server, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var srv Server
	if err := yaml.Unmarshal(data, &srv); err != nil {
		return nil, fmt.Errorf("parse %s: %v: %w", path, err, internalerr.ErrInvalidConfig)
	}

	return &srv, nil
}
