package simgraph

import (
	"math"
	"testing"
)

func TestBuildEdgesAboveThreshold(t *testing.T) {
	vectors := [][]float64{
		{1, 0},
		{0.95, 0.05},
		{0, 1},
	}
	edges := BuildEdges(vectors, 0.7)

	if len(edges) != 1 {
		t.Fatalf("Expected 1 edge, got %d: %v", len(edges), edges)
	}
	e := edges[0]
	if e.Source != 0 || e.Target != 1 {
		t.Errorf("Expected edge 0-1, got %d-%d", e.Source, e.Target)
	}
	want := 0.95 / math.Sqrt(0.95*0.95+0.05*0.05)
	if math.Abs(e.Weight-want) > 1e-9 {
		t.Errorf("Expected weight %f, got %f", want, e.Weight)
	}
}

func TestBuildEdgesStrictInequality(t *testing.T) {
	vectors := [][]float64{{1, 0}, {2, 0}}
	// Similarity is exactly 1.0; an edge requires strictly more
	if edges := BuildEdges(vectors, 1.0); len(edges) != 0 {
		t.Errorf("Threshold must be exclusive, got %v", edges)
	}
	if edges := BuildEdges(vectors, 0.99); len(edges) != 1 {
		t.Errorf("Expected 1 edge below similarity, got %v", edges)
	}
}

func TestBuildEdgesNoSelfOrDuplicates(t *testing.T) {
	vectors := [][]float64{
		{1, 0}, {0.9, 0.1}, {0.8, 0.2},
	}
	edges := BuildEdges(vectors, 0.0)

	seen := make(map[[2]int]bool)
	for _, e := range edges {
		if e.Source == e.Target {
			t.Errorf("Self edge %d-%d", e.Source, e.Target)
		}
		if e.Source >= e.Target {
			t.Errorf("Edge %d-%d not ordered", e.Source, e.Target)
		}
		key := [2]int{e.Source, e.Target}
		if seen[key] {
			t.Errorf("Duplicate edge %d-%d", e.Source, e.Target)
		}
		seen[key] = true
	}
	if len(edges) != 3 {
		t.Errorf("Expected 3 edges among 3 similar vectors, got %d", len(edges))
	}
}

func TestBuildEdgesZeroVector(t *testing.T) {
	vectors := [][]float64{{0, 0}, {1, 0}}
	if edges := BuildEdges(vectors, 0.7); len(edges) != 0 {
		t.Errorf("Zero vector should produce no edges, got %v", edges)
	}
}

func TestBuildEdgesEmpty(t *testing.T) {
	if edges := BuildEdges(nil, 0.7); len(edges) != 0 {
		t.Errorf("Expected no edges, got %v", edges)
	}
}
