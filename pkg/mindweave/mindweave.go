// Package mindweave turns article embeddings and metadata into a
// navigable mind-map graph: clusters of related articles, per-article
// and per-cluster keywords, 2-D layout positions and a similarity
// graph. It consumes pre-computed embeddings and produces an in-memory
// graph; it never fetches content or renders anything.
package mindweave

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/mindweave/mindweave/pkg/mindweave/cluster"
	"github.com/mindweave/mindweave/pkg/mindweave/internalerr"
	"github.com/mindweave/mindweave/pkg/mindweave/keywords"
	"github.com/mindweave/mindweave/pkg/mindweave/layout"
	"github.com/mindweave/mindweave/pkg/mindweave/simgraph"
	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

// Service assembles mind maps. It holds no per-request state, so a
// single instance serves concurrent requests.
type Service struct {
	extractor *keywords.Extractor
}

// NewService creates a Service around a keyword extractor. A nil
// extractor yields one with no embedder, so keyword extraction runs in
// frequency-fallback mode.
func NewService(extractor *keywords.Extractor) *Service {
	if extractor == nil {
		extractor = keywords.NewExtractor(nil, nil)
	}
	return &Service{extractor: extractor}
}

// BuildMindMap assembles the full graph for the given embeddings and
// index-aligned articles. Fewer than 2 embeddings produce a
// single-cluster graph with no edges and origin positions. A layout
// failure is fatal for the request; keyword degradations are not.
func (s *Service) BuildMindMap(ctx context.Context, embeddings [][]float64, articles []Article, opts Options) (*Graph, error) {
	opts = opts.withDefaults()

	if len(embeddings) > 0 && len(embeddings) != len(articles) {
		return nil, fmt.Errorf("%d embeddings for %d articles: %w",
			len(embeddings), len(articles), internalerr.ErrInvalidInput)
	}
	if len(embeddings) < 2 {
		return s.singleClusterGraph(ctx, articles, opts), nil
	}
	if clusterMethod(opts.Method) == cluster.MethodKMeans &&
		cluster.EffectiveKMeansCount(opts.NumClusters, len(embeddings)) < 2 {
		return s.singleClusterGraph(ctx, articles, opts), nil
	}

	labels := cluster.Assign(embeddings, clusterMethod(opts.Method), opts.NumClusters)

	positions, err := layout.Project(embeddings)
	if err != nil {
		return nil, err
	}

	// Per-article keywords, each article's own embedding as reference.
	articleKeywords := make([][]string, len(articles))
	if !opts.DisableKeywords {
		for i, art := range articles {
			res := s.extractor.Extract(ctx, art.Content, embeddings[i], opts.ArticleKeywords)
			articleKeywords[i] = res.Keywords()
		}
	}

	clusters := s.buildClusters(ctx, labels, embeddings, articles, opts)

	// Noise points become singleton clusters with fresh ids appended
	// after the real ones. The counter is monotonic so two noise
	// articles never share an id.
	nextClusterID := len(clusters)
	nodes := make([]Node, len(articles))
	for i, art := range articles {
		label := labels[i]
		if label == cluster.Noise {
			label = nextClusterID
			nextClusterID++
			clusters = append(clusters, Cluster{
				ID:       label,
				Name:     clusterName(articleKeywords[i]),
				Keywords: orEmpty(articleKeywords[i]),
				Articles: []int{i},
				Size:     1,
			})
		}
		nodes[i] = Node{
			ID:             nodeID(i),
			Title:          art.Title,
			URL:            art.URL,
			Cluster:        label,
			Position:       Position{X: positions[i][0], Y: positions[i][1]},
			Keywords:       orEmpty(articleKeywords[i]),
			ContentPreview: contentPreview(art.Content),
		}
	}

	rawEdges := simgraph.BuildEdges(embeddings, opts.SimilarityThreshold)
	edges := make([]Edge, len(rawEdges))
	for i, e := range rawEdges {
		edges[i] = Edge{Source: nodeID(e.Source), Target: nodeID(e.Target), Weight: e.Weight}
	}

	return &Graph{
		Nodes:    nodes,
		Edges:    edges,
		Clusters: clusters,
		Metadata: RunInfo{
			ClusteringMethod: string(opts.Method),
			NumClusters:      len(clusters),
			TotalArticles:    len(articles),
		},
	}, nil
}

// buildClusters creates one Cluster per non-noise label, with keywords
// extracted from the members' concatenated text against the cluster
// centroid.
func (s *Service) buildClusters(ctx context.Context, labels []int, embeddings [][]float64, articles []Article, opts Options) []Cluster {
	members := make(map[int][]int)
	var order []int
	for i, label := range labels {
		if label == cluster.Noise {
			continue
		}
		if _, ok := members[label]; !ok {
			order = append(order, label)
		}
		members[label] = append(members[label], i)
	}
	sort.Ints(order)

	clusters := make([]Cluster, 0, len(order))
	for _, label := range order {
		idxs := members[label]

		var kws []string
		if !opts.DisableKeywords {
			var parts []string
			for _, i := range idxs {
				if articles[i].Content != "" {
					parts = append(parts, articles[i].Content)
				}
			}
			if len(parts) > 0 {
				centroid := vecmath.Mean(embeddings, idxs)
				if centroid != nil && vecmath.IsZero(centroid) {
					centroid = nil
				}
				res := s.extractor.Extract(ctx, strings.Join(parts, " "), centroid, opts.ClusterKeywords)
				kws = res.Keywords()
			}
		}

		clusters = append(clusters, Cluster{
			ID:       label,
			Name:     clusterName(kws),
			Keywords: orEmpty(kws),
			Articles: idxs,
			Size:     len(idxs),
		})
	}
	return clusters
}

// singleClusterGraph is the result for inputs too small to cluster:
// every article in one cluster, no edges, origin positions, text-only
// keywords.
func (s *Service) singleClusterGraph(ctx context.Context, articles []Article, opts Options) *Graph {
	nodes := make([]Node, len(articles))
	articleIDs := make([]int, len(articles))
	for i, art := range articles {
		articleIDs[i] = i
		var kws []string
		if !opts.DisableKeywords {
			kws = s.extractor.Extract(ctx, art.Content, nil, opts.ArticleKeywords).Keywords()
		}
		nodes[i] = Node{
			ID:             nodeID(i),
			Title:          art.Title,
			URL:            art.URL,
			Cluster:        0,
			Position:       Position{},
			Keywords:       orEmpty(kws),
			ContentPreview: contentPreview(art.Content),
		}
	}

	return &Graph{
		Nodes: nodes,
		Edges: []Edge{},
		Clusters: []Cluster{{
			ID:       0,
			Name:     "All Articles",
			Keywords: []string{},
			Articles: articleIDs,
			Size:     len(articles),
		}},
		Metadata: RunInfo{
			ClusteringMethod: methodSingleCluster,
			NumClusters:      1,
			TotalArticles:    len(articles),
		},
	}
}

// clusterName derives a display name from the top keyword, title-cased,
// or "General" when there are none.
func clusterName(kws []string) string {
	if len(kws) == 0 {
		return "General"
	}
	return titleCase(kws[0])
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		runes := []rune(w)
		runes[0] = unicode.ToUpper(runes[0])
		for j := 1; j < len(runes); j++ {
			runes[j] = unicode.ToLower(runes[j])
		}
		words[i] = string(runes)
	}
	return strings.Join(words, " ")
}
