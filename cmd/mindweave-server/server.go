package main

import (
	"crypto/rand"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/mindweave/mindweave/pkg/mindweave"
	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
	"github.com/mindweave/mindweave/pkg/mindweave/keywords"
	"github.com/mindweave/mindweave/pkg/mindweave/store"
)

// server wires the mind-map service, the map store and the optional
// embedder into HTTP handlers.
type server struct {
	svc      *mindweave.Service
	maps     store.Store
	embedder keywords.Embedder // nil when no embedding endpoint is configured

	mu      sync.Mutex
	entropy *ulid.MonotonicEntropy
}

func newServer(svc *mindweave.Service, maps store.Store, embedder keywords.Embedder) *server {
	return &server{
		svc:      svc,
		maps:     maps,
		embedder: embedder,
		entropy:  ulid.Monotonic(rand.Reader, 0),
	}
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/mindmaps", s.handleCreateMindMap)
	mux.HandleFunc("GET /api/mindmaps/latest", s.handleLatestMindMap)
	mux.HandleFunc("GET /api/mindmaps/{id}", s.handleGetMindMap)
	mux.HandleFunc("DELETE /api/mindmaps/{id}", s.handleDeleteMindMap)
	mux.HandleFunc("POST /api/embeddings", s.handleEmbeddings)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	return mux
}

func (s *server) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Now(), s.entropy).String()
}

// mindMapRequest is the create-mind-map request body.
type mindMapRequest struct {
	Embeddings [][]float64         `json:"embeddings"`
	Metadata   []mindweave.Article `json:"metadata"`
	Options    *mindMapOptions     `json:"options"`
}

// mindMapOptions mirrors mindweave.Options with pointers so omitted
// fields keep their defaults.
type mindMapOptions struct {
	ClusteringMethod string   `json:"clustering_method"`
	NumClusters      int      `json:"n_clusters"`
	IncludeKeywords  *bool    `json:"include_keywords"`
	Threshold        *float64 `json:"threshold"`
}

func (o *mindMapOptions) toOptions() mindweave.Options {
	opts := mindweave.DefaultOptions()
	if o == nil {
		return opts
	}
	if o.ClusteringMethod != "" {
		opts.Method = mindweave.Method(o.ClusteringMethod)
	}
	if o.NumClusters > 0 {
		opts.NumClusters = o.NumClusters
	}
	if o.IncludeKeywords != nil {
		opts.DisableKeywords = !*o.IncludeKeywords
	}
	if o.Threshold != nil {
		opts.SimilarityThreshold = *o.Threshold
	}
	return opts
}

// mindMapResponse flattens the graph next to the map identity.
type mindMapResponse struct {
	ID string `json:"id"`
	mindweave.Graph
	CreatedAt time.Time `json:"created_at"`
}

func toResponse(m store.MindMap) mindMapResponse {
	return mindMapResponse{ID: m.ID, Graph: m.Graph, CreatedAt: m.CreatedAt}
}

func (s *server) handleCreateMindMap(w http.ResponseWriter, r *http.Request) {
	var req mindMapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	graph, err := s.svc.BuildMindMap(r.Context(), req.Embeddings, req.Metadata, req.Options.toOptions())
	if err != nil {
		if errors.Is(err, internalerr.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid input", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "error creating mind map", err)
		return
	}

	m := store.MindMap{
		ID:        s.newID(),
		Graph:     *graph,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.maps.SaveMap(r.Context(), m); err != nil {
		writeError(w, http.StatusInternalServerError, "error storing mind map", err)
		return
	}

	writeJSON(w, http.StatusOK, toResponse(m))
}

func (s *server) handleLatestMindMap(w http.ResponseWriter, r *http.Request) {
	m, ok, err := s.maps.LatestMap(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error reading store", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "no mind maps found", internalerr.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(m))
}

func (s *server) handleGetMindMap(w http.ResponseWriter, r *http.Request) {
	m, ok, err := s.maps.GetMap(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error reading store", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "mind map not found", internalerr.ErrNotFound)
		return
	}
	writeJSON(w, http.StatusOK, toResponse(m))
}

func (s *server) handleDeleteMindMap(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	_, ok, err := s.maps.GetMap(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "error reading store", err)
		return
	}
	if !ok {
		writeError(w, http.StatusNotFound, "mind map not found", internalerr.ErrNotFound)
		return
	}
	if err := s.maps.DeleteMap(r.Context(), id); err != nil {
		writeError(w, http.StatusInternalServerError, "error deleting mind map", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "mind map deleted"})
}

// embeddingsRequest is the embeddings passthrough request body.
type embeddingsRequest struct {
	Content []string `json:"content"`
}

func (s *server) handleEmbeddings(w http.ResponseWriter, r *http.Request) {
	if s.embedder == nil {
		writeError(w, http.StatusServiceUnavailable, "no embedding endpoint configured", nil)
		return
	}

	var req embeddingsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if len(req.Content) == 0 {
		writeError(w, http.StatusBadRequest, "content required", nil)
		return
	}

	vectors, err := s.embedder.Embed(r.Context(), req.Content)
	if err != nil {
		writeError(w, http.StatusBadGateway, "error generating embeddings", err)
		return
	}

	dim := 0
	if len(vectors) > 0 {
		dim = len(vectors[0])
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"embeddings":          vectors,
		"total_embeddings":    len(vectors),
		"embedding_dimension": dim,
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"embedder":  s.embedder != nil,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	body := map[string]string{"error": msg}
	if err != nil {
		body["detail"] = err.Error()
	}
	writeJSON(w, status, body)
}
