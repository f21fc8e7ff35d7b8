package mindweave

import (
	"github.com/mindweave/mindweave/pkg/mindweave/cluster"
	"github.com/mindweave/mindweave/pkg/mindweave/simgraph"
)

// Method selects the clustering algorithm. An unrecognized method
// (hierarchical included) silently falls back to k-means, preserving
// the permissive behavior callers rely on.
type Method string

const (
	MethodKMeans       Method = "kmeans"
	MethodDBSCAN       Method = "dbscan"
	MethodHierarchical Method = "hierarchical"
)

// methodSingleCluster is reported in run metadata when the input was
// too small to cluster.
const methodSingleCluster = "single_cluster"

// Options tunes one mind-map build.
type Options struct {
	// Method is the clustering algorithm; default kmeans.
	Method Method
	// NumClusters is the target cluster count, advisory for k-means
	// (capped at N-1 and 10); default 5.
	NumClusters int
	// DisableKeywords skips per-article and per-cluster keyword
	// extraction. Keywords are on by default.
	DisableKeywords bool
	// SimilarityThreshold is the cosine similarity an edge must
	// strictly exceed. Values <= 0 select the default 0.7; a zero
	// threshold is not expressible.
	SimilarityThreshold float64
	// ArticleKeywords caps keywords per node; default 5.
	ArticleKeywords int
	// ClusterKeywords caps keywords per cluster; default 10.
	ClusterKeywords int
}

// DefaultOptions returns the standard build options.
func DefaultOptions() Options {
	return Options{
		Method:              MethodKMeans,
		NumClusters:         5,
		SimilarityThreshold: simgraph.DefaultThreshold,
		ArticleKeywords:     5,
		ClusterKeywords:     10,
	}
}

// withDefaults fills zero values. The zero Options is a valid request:
// k-means, 5 clusters, keywords included.
func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.Method == "" {
		o.Method = def.Method
	}
	if o.NumClusters <= 0 {
		o.NumClusters = def.NumClusters
	}
	if o.SimilarityThreshold <= 0 {
		o.SimilarityThreshold = def.SimilarityThreshold
	}
	if o.ArticleKeywords <= 0 {
		o.ArticleKeywords = def.ArticleKeywords
	}
	if o.ClusterKeywords <= 0 {
		o.ClusterKeywords = def.ClusterKeywords
	}
	return o
}

// clusterMethod maps the public method to the cluster package's.
func clusterMethod(m Method) cluster.Method {
	switch m {
	case MethodDBSCAN:
		return cluster.MethodDBSCAN
	default:
		return cluster.MethodKMeans
	}
}
