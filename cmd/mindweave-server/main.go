// Command mindweave-server serves the mind-map HTTP API.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"

	"github.com/mindweave/mindweave/internal/embed"
	"github.com/mindweave/mindweave/pkg/mindweave"
	"github.com/mindweave/mindweave/pkg/mindweave/config"
	"github.com/mindweave/mindweave/pkg/mindweave/keywords"
	"github.com/mindweave/mindweave/pkg/mindweave/store"
	"github.com/mindweave/mindweave/pkg/mindweave/store/memstore"
	"github.com/mindweave/mindweave/pkg/mindweave/store/sqlite"
)

func main() {
	var (
		configPath = flag.String("config", "", "Server config file (required)")
		addr       = flag.String("addr", "", "Listen address (overrides config)")
	)
	flag.Parse()

	if *configPath == "" {
		log.Fatal("--config required")
	}

	cfg, err := config.LoadServer(*configPath)
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}
	if *addr != "" {
		cfg.Addr = *addr
	}
	if cfg.Addr == "" {
		cfg.Addr = ":8001"
	}

	ctx := context.Background()

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

	var maps store.Store
	if cfg.DBPath != "" {
		maps, err = sqlite.OpenSQLite(ctx, cfg.DBPath)
		if err != nil {
			log.Fatal("Failed to open database:", err)
		}
	} else {
		maps = memstore.New()
	}
	defer maps.Close()

	svc := mindweave.NewService(components.NewExtractor(embedder))
	srv := newServer(svc, maps, embedder)

	log.Printf("Listening on %s", cfg.Addr)
	if err := http.ListenAndServe(cfg.Addr, srv.routes()); err != nil {
		log.Fatal(err)
	}
}
