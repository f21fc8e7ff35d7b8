package cluster

import (
	"sort"

	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

// dbscanMinPoints is the minimum neighborhood size (the point itself
// included) for a point to be a core point.
const dbscanMinPoints = 2

// DBSCAN clusters vectors by density over a precomputed cosine-distance
// matrix (distance = 1 − cosine similarity). The neighborhood radius is
// the median of all strictly-positive pairwise distances. Points in no
// cluster are labeled Noise.
func DBSCAN(vectors [][]float64) []int {
	n := len(vectors)
	dist := cosineDistances(vectors)
	eps := medianPositive(dist)

	labels := make([]int, n)
	for i := range labels {
		labels[i] = Noise
	}

	neighborhood := func(p int) []int {
		var out []int
		for q := 0; q < n; q++ {
			if dist[p][q] <= eps {
				out = append(out, q)
			}
		}
		return out
	}

	visited := make([]bool, n)
	next := 0
	for p := 0; p < n; p++ {
		if visited[p] {
			continue
		}
		visited[p] = true

		neighbors := neighborhood(p)
		if len(neighbors) < dbscanMinPoints {
			continue
		}

		// Expand a new cluster from this core point.
		labels[p] = next
		for i := 0; i < len(neighbors); i++ {
			q := neighbors[i]
			if labels[q] == Noise {
				labels[q] = next
			}
			if visited[q] {
				continue
			}
			visited[q] = true
			more := neighborhood(q)
			if len(more) >= dbscanMinPoints {
				neighbors = append(neighbors, more...)
			}
		}
		next++
	}
	return labels
}

func cosineDistances(vectors [][]float64) [][]float64 {
	n := len(vectors)
	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := 1 - vecmath.Cosine(vectors[i], vectors[j])
			dist[i][j] = d
			dist[j][i] = d
		}
	}
	return dist
}

// medianPositive returns the median of all strictly-positive entries,
// or 0 when every pairwise distance is zero (identical points collapse
// into one cluster).
func medianPositive(dist [][]float64) float64 {
	var positive []float64
	for i := range dist {
		for j := range dist[i] {
			if i != j && dist[i][j] > 0 {
				positive = append(positive, dist[i][j])
			}
		}
	}
	if len(positive) == 0 {
		return 0
	}
	sort.Float64s(positive)
	mid := len(positive) / 2
	if len(positive)%2 == 1 {
		return positive[mid]
	}
	return (positive[mid-1] + positive[mid]) / 2
}
