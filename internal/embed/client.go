// Package embed calls an OpenAI-compatible embeddings endpoint and
// implements keywords.Embedder.
package embed

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

// Client calls an OpenAI-compatible embeddings endpoint. The zero
// HTTPClient gets a 30s timeout. A Client is stateless apart from its
// HTTP client and safe for concurrent use.
type Client struct {
	BaseURL string
	APIKey  string
	Model   string

	// Normalize scales returned vectors to unit length.
	Normalize bool

	HTTPClient *http.Client
}

type embeddingRequest struct {
	Model string   `json:"model"`
	Input []string `json:"input"`
}

type embeddingResponse struct {
	Data []struct {
		Index     int       `json:"index"`
		Embedding []float64 `json:"embedding"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Embed returns one vector per input text, index-aligned.
func (c *Client) Embed(ctx context.Context, texts []string) ([][]float64, error) {
	if c.BaseURL == "" || c.Model == "" {
		return nil, fmt.Errorf("embed: base URL and model required")
	}
	if len(texts) == 0 {
		return nil, nil
	}

	reqBody, err := json.Marshal(embeddingRequest{Model: c.Model, Input: texts})
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL, bytes.NewReader(reqBody))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.APIKey)
	}

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var payload embeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, err
	}
	if payload.Error != nil {
		return nil, fmt.Errorf("embed error: %s", payload.Error.Message)
	}
	if len(payload.Data) != len(texts) {
		return nil, fmt.Errorf("embed: got %d embeddings for %d inputs", len(payload.Data), len(texts))
	}

	sort.Slice(payload.Data, func(i, j int) bool {
		return payload.Data[i].Index < payload.Data[j].Index
	})

	out := make([][]float64, len(payload.Data))
	for i, d := range payload.Data {
		v := d.Embedding
		if c.Normalize {
			if unit := vecmath.Normalize(v); unit != nil {
				v = unit
			}
		}
		out[i] = v
	}
	return out, nil
}

func (c *Client) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return &http.Client{Timeout: 30 * time.Second}
}
