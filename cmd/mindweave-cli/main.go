// Command mindweave-cli builds a mind map from a reading-list JSONL
// export and prints it as JSON, optionally saving it to a database.
package main

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"flag"
	"log"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mindweave/mindweave/internal/embed"
	"github.com/mindweave/mindweave/internal/readinglist"
	"github.com/mindweave/mindweave/pkg/mindweave"
	"github.com/mindweave/mindweave/pkg/mindweave/config"
	"github.com/mindweave/mindweave/pkg/mindweave/keywords"
	"github.com/mindweave/mindweave/pkg/mindweave/store"
	"github.com/mindweave/mindweave/pkg/mindweave/store/sqlite"
)

func main() {
	var (
		dataPath   = flag.String("data", "", "Input JSONL file (required)")
		configPath = flag.String("config", "", "Config file (optional)")
		dbPath     = flag.String("db", "", "Database path (optional, prints to stdout when unset)")
		method     = flag.String("method", "kmeans", "Clustering method: kmeans or dbscan")
		clusters   = flag.Int("clusters", 5, "Target cluster count for k-means")
		threshold  = flag.Float64("threshold", 0.7, "Similarity threshold for graph edges")
		noKeywords = flag.Bool("no-keywords", false, "Skip keyword extraction")
	)
	flag.Parse()

	if *dataPath == "" {
		log.Fatal("--data required")
	}

	ctx := context.Background()

	var cfg *config.Server
	if *configPath != "" {
		var err error
		cfg, err = config.LoadServer(*configPath)
		if err != nil {
			log.Fatal("Failed to load configuration:", err)
		}
	} else {
		cfg = &config.Server{}
	}

	loader := config.Loader{
		StoplistPath:  cfg.Stoplist,
		EntitiesPath:  cfg.Entities,
		MaxNgram:      cfg.Extractor.MaxNgram,
		MaxCandidates: cfg.Extractor.MaxCandidates,
		EnableNER:     cfg.Extractor.EnableNER,
	}
	components, err := loader.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	var embedder keywords.Embedder
	if cfg.Embedding.BaseURL != "" {
		embedder = &embed.Client{
			BaseURL:   cfg.Embedding.BaseURL,
			APIKey:    cfg.Embedding.APIKey,
			Model:     cfg.Embedding.Model,
			Normalize: true,
		}
	}

	entries, err := readinglist.LoadFromJSONL(*dataPath)
	if err != nil {
		log.Fatal("Failed to load reading list:", err)
	}
	log.Printf("Loaded %d entries", len(entries))

	articles := make([]mindweave.Article, len(entries))
	embeddings := make([][]float64, 0, len(entries))
	var missing []int
	for i, e := range entries {
		articles[i] = mindweave.Article{Title: e.Title, URL: e.URL, Content: e.Content}
		if len(e.Embedding) > 0 {
			embeddings = append(embeddings, e.Embedding)
		} else {
			missing = append(missing, i)
		}
	}

	if len(missing) > 0 {
		if len(missing) != len(entries) {
			log.Fatalf("%d of %d entries missing embeddings; all or none required", len(missing), len(entries))
		}
		if embedder == nil {
			log.Fatal("Entries have no embeddings and no embedding endpoint is configured")
		}
		texts := make([]string, len(entries))
		for i, e := range entries {
			texts[i] = e.Content
		}
		log.Printf("Embedding %d entries", len(texts))
		embeddings, err = embedder.Embed(ctx, texts)
		if err != nil {
			log.Fatal("Failed to embed entries:", err)
		}
	}

	svc := mindweave.NewService(components.NewExtractor(embedder))
	graph, err := svc.BuildMindMap(ctx, embeddings, articles, mindweave.Options{
		Method:              mindweave.Method(*method),
		NumClusters:         *clusters,
		DisableKeywords:     *noKeywords,
		SimilarityThreshold: *threshold,
	})
	if err != nil {
		log.Fatal("Failed to build mind map:", err)
	}

	if *dbPath != "" {
		maps, err := sqlite.OpenSQLite(ctx, *dbPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
		defer maps.Close()

		m := store.MindMap{
			ID:        ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String(),
			Graph:     *graph,
			CreatedAt: time.Now().UTC(),
		}
		if err := maps.SaveMap(ctx, m); err != nil {
			log.Fatal("Failed to save mind map:", err)
		}
		log.Printf("Saved mind map %s: %d nodes, %d edges, %d clusters",
			m.ID, len(graph.Nodes), len(graph.Edges), len(graph.Clusters))
		return
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(graph); err != nil {
		log.Fatal("Failed to encode mind map:", err)
	}
}
