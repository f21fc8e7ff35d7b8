// Package simgraph builds the article similarity graph: one undirected
// edge per article pair whose cosine similarity exceeds a threshold.
package simgraph

import "github.com/mindweave/mindweave/pkg/mindweave/vecmath"

// DefaultThreshold is the similarity an edge must strictly exceed.
const DefaultThreshold = 0.7

// Edge connects two articles by index, Source < Target, with the
// cosine similarity as weight.
type Edge struct {
	Source int
	Target int
	Weight float64
}

// BuildEdges computes every pairwise cosine similarity and returns the
// edges above the threshold. Quadratic in the article count — fine for
// the tens-to-hundreds of articles a mind map holds, a known scaling
// limit beyond that.
func BuildEdges(vectors [][]float64, threshold float64) []Edge {
	var edges []Edge
	for i := 0; i < len(vectors); i++ {
		for j := i + 1; j < len(vectors); j++ {
			sim := vecmath.Cosine(vectors[i], vectors[j])
			if sim > threshold {
				edges = append(edges, Edge{Source: i, Target: j, Weight: sim})
			}
		}
	}
	return edges
}
