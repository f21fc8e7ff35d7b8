package cluster

import (
	"math"
	"math/rand"

	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

const (
	kmeansRestarts = 10
	kmeansMaxIter  = 300
)

// KMeans partitions vectors into k clusters with Lloyd's algorithm,
// k-means++ seeding and a fixed seed. It runs kmeansRestarts
// initializations and keeps the assignment with the lowest inertia.
func KMeans(vectors [][]float64, k int) []int {
	n := len(vectors)
	if k < 1 {
		k = 1
	}
	if k > n {
		k = n
	}

	rng := rand.New(rand.NewSource(Seed))

	bestInertia := math.Inf(1)
	var bestLabels []int
	for restart := 0; restart < kmeansRestarts; restart++ {
		labels, inertia := runKMeans(vectors, k, rng)
		if inertia < bestInertia {
			bestInertia = inertia
			bestLabels = labels
		}
	}
	return bestLabels
}

func runKMeans(vectors [][]float64, k int, rng *rand.Rand) ([]int, float64) {
	centroids := plusPlusInit(vectors, k, rng)
	labels := make([]int, len(vectors))

	for iter := 0; iter < kmeansMaxIter; iter++ {
		changed := false
		for i, v := range vectors {
			best := nearestCentroid(v, centroids)
			if labels[i] != best {
				labels[i] = best
				changed = true
			}
		}
		if iter > 0 && !changed {
			break
		}

		// Recompute centroids; an emptied cluster keeps its previous
		// position.
		counts := make([]int, k)
		next := make([][]float64, k)
		for c := range next {
			next[c] = make([]float64, len(vectors[0]))
		}
		for i, v := range vectors {
			c := labels[i]
			counts[c]++
			for d := range v {
				next[c][d] += v[d]
			}
		}
		for c := range next {
			if counts[c] == 0 {
				next[c] = centroids[c]
				continue
			}
			for d := range next[c] {
				next[c][d] /= float64(counts[c])
			}
		}
		centroids = next
	}

	var inertia float64
	for i, v := range vectors {
		inertia += vecmath.SquaredDistance(v, centroids[labels[i]])
	}
	return labels, inertia
}

// plusPlusInit picks initial centroids with k-means++ weighting: each
// subsequent centroid is sampled proportionally to the squared distance
// from the nearest centroid chosen so far.
func plusPlusInit(vectors [][]float64, k int, rng *rand.Rand) [][]float64 {
	centroids := make([][]float64, 0, k)
	centroids = append(centroids, vectors[rng.Intn(len(vectors))])

	dists := make([]float64, len(vectors))
	for len(centroids) < k {
		var total float64
		for i, v := range vectors {
			d := math.Inf(1)
			for _, c := range centroids {
				if sq := vecmath.SquaredDistance(v, c); sq < d {
					d = sq
				}
			}
			dists[i] = d
			total += d
		}
		if total == 0 {
			// All remaining points coincide with a centroid.
			centroids = append(centroids, vectors[rng.Intn(len(vectors))])
			continue
		}
		target := rng.Float64() * total
		idx := 0
		for i, d := range dists {
			target -= d
			if target <= 0 {
				idx = i
				break
			}
		}
		centroids = append(centroids, vectors[idx])
	}
	return centroids
}

func nearestCentroid(v []float64, centroids [][]float64) int {
	best := 0
	bestDist := math.Inf(1)
	for c, centroid := range centroids {
		if d := vecmath.SquaredDistance(v, centroid); d < bestDist {
			bestDist = d
			best = c
		}
	}
	return best
}
