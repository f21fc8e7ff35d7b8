// Package layout reduces high-dimensional embeddings to 2-D display
// coordinates: a variance-maximizing linear projection first (when the
// data allows it), then a t-SNE neighbor embedding. Positions are for
// visualization only and never feed back into clustering.
package layout

import (
	"fmt"
	"math"

	"github.com/mindweave/mindweave/pkg/mindweave/cluster"
	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
)

// maxPCAComponents caps the intermediate projection width.
const maxPCAComponents = 50

// maxPerplexity caps the t-SNE locality parameter.
const maxPerplexity = 30

// Project returns one 2-D position per input vector, deterministic for
// a given input. A failure anywhere in the reduction chain is returned
// as an error wrapping internalerr.ErrLayoutFailed — positions are
// required for every node, so the caller must treat it as fatal for
// the request.
func Project(vectors [][]float64) ([][2]float64, error) {
	n := len(vectors)
	if n == 0 {
		return nil, nil
	}
	if n == 1 {
		return [][2]float64{{0, 0}}, nil
	}

	dim := len(vectors[0])
	for _, v := range vectors {
		if len(v) != dim {
			return nil, fmt.Errorf("ragged embedding matrix: %w", internalerr.ErrLayoutFailed)
		}
	}

	reduced := vectors
	components := maxPCAComponents
	if dim < components {
		components = dim
	}
	if n-1 < components {
		components = n - 1
	}
	if components >= 2 && components < dim {
		reduced = pca(vectors, components)
	}

	perplexity := maxPerplexity
	if n-1 < perplexity {
		perplexity = n - 1
	}
	if perplexity < 1 {
		perplexity = 1
	}

	positions := tsne(reduced, float64(perplexity), cluster.Seed)
	for _, p := range positions {
		if !isFinite(p[0]) || !isFinite(p[1]) {
			return nil, fmt.Errorf("non-finite coordinates: %w", internalerr.ErrLayoutFailed)
		}
	}
	return positions, nil
}

func isFinite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
