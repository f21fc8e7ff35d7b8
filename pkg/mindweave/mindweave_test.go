package mindweave

import (
	"context"
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
)

func testArticles(n int) []Article {
	articles := make([]Article, n)
	for i := range articles {
		articles[i] = Article{
			Title:   fmt.Sprintf("Article %d", i),
			URL:     fmt.Sprintf("https://example.com/%d", i),
			Content: fmt.Sprintf("article number %d covers databases indexing storage", i),
		}
	}
	return articles
}

// checkPartition verifies that the cluster article lists partition the
// full index set and agree with the node labels.
func checkPartition(t *testing.T, g *Graph, n int) {
	t.Helper()

	owner := make(map[int]int)
	for _, c := range g.Clusters {
		if c.Size != len(c.Articles) {
			t.Errorf("Cluster %d size %d disagrees with %d articles", c.ID, c.Size, len(c.Articles))
		}
		for _, idx := range c.Articles {
			if prev, dup := owner[idx]; dup {
				t.Errorf("Article %d in clusters %d and %d", idx, prev, c.ID)
			}
			owner[idx] = c.ID
		}
	}
	if len(owner) != n {
		t.Errorf("Clusters cover %d of %d articles", len(owner), n)
	}
	for i, node := range g.Nodes {
		if owner[i] != node.Cluster {
			t.Errorf("Node %d labeled cluster %d but listed in cluster %d", i, node.Cluster, owner[i])
		}
	}
}

func TestBuildMindMapLengthMismatch(t *testing.T) {
	svc := NewService(nil)

	_, err := svc.BuildMindMap(context.Background(),
		[][]float64{{1, 0}, {0, 1}}, testArticles(1), Options{})
	if err == nil {
		t.Fatal("Expected an error for mismatched lengths")
	}
	if !errors.Is(err, internalerr.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestBuildMindMapSingleArticle(t *testing.T) {
	svc := NewService(nil)

	g, err := svc.BuildMindMap(context.Background(),
		[][]float64{{1, 0}}, testArticles(1), Options{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(g.Nodes) != 1 {
		t.Fatalf("Expected 1 node, got %d", len(g.Nodes))
	}
	if g.Nodes[0].ID != "node_0" {
		t.Errorf("Expected node_0, got %s", g.Nodes[0].ID)
	}
	if g.Nodes[0].Position != (Position{}) {
		t.Errorf("Single node should sit at the origin, got %+v", g.Nodes[0].Position)
	}
	if len(g.Edges) != 0 {
		t.Errorf("Expected no edges, got %v", g.Edges)
	}
	if len(g.Clusters) != 1 || g.Clusters[0].Name != "All Articles" {
		t.Errorf("Expected a single 'All Articles' cluster, got %v", g.Clusters)
	}
	if g.Metadata.ClusteringMethod != "single_cluster" {
		t.Errorf("Expected single_cluster metadata, got %s", g.Metadata.ClusteringMethod)
	}
	if g.Metadata.TotalArticles != 1 || g.Metadata.NumClusters != 1 {
		t.Errorf("Unexpected metadata: %+v", g.Metadata)
	}
	checkPartition(t, g, 1)
}

func TestBuildMindMapTooFewForRequestedClusters(t *testing.T) {
	svc := NewService(nil)

	// Two articles cap effective k at 1, which falls back to one cluster
	g, err := svc.BuildMindMap(context.Background(),
		[][]float64{{1, 0}, {0, 1}}, testArticles(2), Options{NumClusters: 5})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if len(g.Clusters) != 1 {
		t.Errorf("Expected one cluster, got %d", len(g.Clusters))
	}
	if g.Metadata.ClusteringMethod != "single_cluster" {
		t.Errorf("Expected single_cluster metadata, got %s", g.Metadata.ClusteringMethod)
	}
	checkPartition(t, g, 2)
}

func TestBuildMindMapKMeans(t *testing.T) {
	svc := NewService(nil)

	embeddings := [][]float64{
		{1, 0, 0, 0}, {0.95, 0.05, 0, 0}, {0.9, 0.1, 0, 0},
		{0, 0, 1, 0}, {0, 0, 0.95, 0.05}, {0, 0, 0.9, 0.1},
	}
	articles := testArticles(len(embeddings))

	g, err := svc.BuildMindMap(context.Background(), embeddings, articles,
		Options{Method: MethodKMeans, NumClusters: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if len(g.Nodes) != 6 {
		t.Fatalf("Expected 6 nodes, got %d", len(g.Nodes))
	}
	if len(g.Clusters) != 2 {
		t.Errorf("Expected 2 clusters, got %d", len(g.Clusters))
	}
	if g.Metadata.ClusteringMethod != "kmeans" {
		t.Errorf("Expected kmeans metadata, got %s", g.Metadata.ClusteringMethod)
	}
	checkPartition(t, g, 6)

	for i, node := range g.Nodes {
		if node.ID != fmt.Sprintf("node_%d", i) {
			t.Errorf("Node %d has id %s", i, node.ID)
		}
		if math.IsNaN(node.Position.X) || math.IsNaN(node.Position.Y) {
			t.Errorf("Node %d has a NaN position", i)
		}
		if node.Keywords == nil {
			t.Errorf("Node %d keywords should never be nil", i)
		}
	}

	// The two near-parallel pairs must be linked
	if len(g.Edges) == 0 {
		t.Error("Expected similarity edges between near-parallel embeddings")
	}
	nodeIDs := make(map[string]bool)
	for _, n := range g.Nodes {
		nodeIDs[n.ID] = true
	}
	for _, e := range g.Edges {
		if !nodeIDs[e.Source] || !nodeIDs[e.Target] {
			t.Errorf("Edge references unknown node: %+v", e)
		}
		if e.Weight <= 0.7 {
			t.Errorf("Edge weight %f at or below threshold", e.Weight)
		}
	}
}

func TestBuildMindMapDBSCANNoise(t *testing.T) {
	svc := NewService(nil)

	// A dense direction bundle plus two outliers the density scan will
	// reject; the outliers must still surface as singleton clusters.
	var embeddings [][]float64
	for i := 0; i < 10; i++ {
		angle := 0.01 * float64(i)
		embeddings = append(embeddings, []float64{math.Cos(angle), math.Sin(angle)})
	}
	embeddings = append(embeddings, []float64{0, 1})
	embeddings = append(embeddings, []float64{-1, 0})
	articles := testArticles(len(embeddings))

	g, err := svc.BuildMindMap(context.Background(), embeddings, articles,
		Options{Method: MethodDBSCAN})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if g.Metadata.ClusteringMethod != "dbscan" {
		t.Errorf("Expected dbscan metadata, got %s", g.Metadata.ClusteringMethod)
	}
	if len(g.Clusters) != 3 {
		t.Errorf("Expected 1 dense + 2 singleton clusters, got %d", len(g.Clusters))
	}
	singletons := 0
	for _, c := range g.Clusters {
		if c.Size == 1 {
			singletons++
		}
		if c.ID < 0 {
			t.Errorf("Cluster id %d is negative", c.ID)
		}
	}
	if singletons != 2 {
		t.Errorf("Expected 2 singleton clusters, got %d", singletons)
	}
	checkPartition(t, g, len(embeddings))
}

func TestBuildMindMapWithoutKeywords(t *testing.T) {
	svc := NewService(nil)

	embeddings := [][]float64{
		{1, 0, 0}, {0.9, 0.1, 0}, {0, 0, 1}, {0, 0.1, 0.9},
	}
	g, err := svc.BuildMindMap(context.Background(), embeddings, testArticles(4),
		Options{NumClusters: 2, DisableKeywords: true})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, node := range g.Nodes {
		if len(node.Keywords) != 0 {
			t.Errorf("Node %d has keywords despite DisableKeywords: %v", i, node.Keywords)
		}
	}
	for _, c := range g.Clusters {
		if len(c.Keywords) != 0 {
			t.Errorf("Cluster %d has keywords despite DisableKeywords: %v", c.ID, c.Keywords)
		}
	}
}

func TestBuildMindMapZeroOptionsIncludesKeywords(t *testing.T) {
	svc := NewService(nil)

	// A caller constructing Options field-by-field must still get
	// keywords, the same as leaving every field zero.
	embeddings := [][]float64{
		{1, 0, 0}, {0.9, 0.1, 0}, {0, 0, 1}, {0, 0.1, 0.9},
	}
	g, err := svc.BuildMindMap(context.Background(), embeddings, testArticles(4),
		Options{Method: MethodKMeans, NumClusters: 2})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	for i, node := range g.Nodes {
		if len(node.Keywords) == 0 {
			t.Errorf("Node %d has no keywords despite non-empty content", i)
		}
	}
	for _, c := range g.Clusters {
		if len(c.Keywords) == 0 {
			t.Errorf("Cluster %d has no keywords despite non-empty content", c.ID)
		}
	}
}

func TestBuildMindMapContentPreview(t *testing.T) {
	svc := NewService(nil)

	long := ""
	for i := 0; i < 30; i++ {
		long += "abcdefghij"
	}
	articles := []Article{
		{Title: "long", Content: long},
		{Title: "short", Content: "short body"},
	}
	g, err := svc.BuildMindMap(context.Background(),
		[][]float64{{1, 0}, {0, 1}}, articles, Options{})
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	preview := g.Nodes[0].ContentPreview
	if len([]rune(preview)) != 203 {
		t.Errorf("Expected 200 runes plus ellipsis, got %d", len([]rune(preview)))
	}
	if g.Nodes[1].ContentPreview != "short body" {
		t.Errorf("Short content should pass through untruncated, got %q", g.Nodes[1].ContentPreview)
	}
}

func TestWithDefaultsThreshold(t *testing.T) {
	// Non-positive thresholds select the default; a threshold of
	// exactly zero is not expressible.
	for _, bad := range []float64{0, -1} {
		opts := Options{SimilarityThreshold: bad}.withDefaults()
		if opts.SimilarityThreshold != 0.7 {
			t.Errorf("Threshold %f should default to 0.7, got %f", bad, opts.SimilarityThreshold)
		}
	}
	opts := Options{SimilarityThreshold: 0.3}.withDefaults()
	if opts.SimilarityThreshold != 0.3 {
		t.Errorf("Positive threshold should be kept, got %f", opts.SimilarityThreshold)
	}
}

func TestDefaultOptions(t *testing.T) {
	opts := DefaultOptions()
	if opts.Method != MethodKMeans {
		t.Errorf("Expected kmeans default, got %s", opts.Method)
	}
	if opts.NumClusters != 5 || opts.SimilarityThreshold != 0.7 {
		t.Errorf("Unexpected defaults: %+v", opts)
	}
	if opts.DisableKeywords {
		t.Error("Keywords should default to included")
	}
}
