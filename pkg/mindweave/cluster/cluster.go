// Package cluster partitions embedding vectors into clusters. Both
// algorithms are deterministic: they share a fixed seed so repeated
// runs over the same input produce the same labels.
package cluster

// Noise is the label DBSCAN assigns to points that belong to no
// cluster.
const Noise = -1

// Seed is the fixed random seed shared by clustering and layout for
// reproducible results.
const Seed = 42

// maxKMeansClusters caps the effective k-means cluster count.
const maxKMeansClusters = 10

// Method selects the clustering algorithm.
type Method string

const (
	MethodKMeans       Method = "kmeans"
	MethodDBSCAN       Method = "dbscan"
	MethodHierarchical Method = "hierarchical"
)

// EffectiveKMeansCount returns the cluster count k-means will actually
// use for n points when the caller requested the given count:
// min(requested, n-1, 10). Callers must fall back to a single-cluster
// result when this drops below 2.
func EffectiveKMeansCount(requested, n int) int {
	k := requested
	if n-1 < k {
		k = n - 1
	}
	if k > maxKMeansClusters {
		k = maxKMeansClusters
	}
	return k
}

// Assign partitions vectors using the given method and returns one
// label per vector. DBSCAN may emit Noise labels; k-means never does.
// Unknown methods (including hierarchical) fall back to k-means —
// permissive by documented behavior, not an error. Assign must not be
// called with fewer than 2 vectors.
func Assign(vectors [][]float64, method Method, numClusters int) []int {
	switch method {
	case MethodDBSCAN:
		return DBSCAN(vectors)
	default:
		return KMeans(vectors, EffectiveKMeansCount(numClusters, len(vectors)))
	}
}
