package layout

import (
	"math"
	"math/rand"

	"github.com/mindweave/mindweave/pkg/mindweave/cluster"
	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

const (
	powerIterations = 100
	powerTolerance  = 1e-9
)

// pca projects the centered data onto its top `components` principal
// directions, found by power iteration with Gram-Schmidt deflation.
func pca(vectors [][]float64, components int) [][]float64 {
	n := len(vectors)
	dim := len(vectors[0])

	// Center.
	mean := make([]float64, dim)
	for _, v := range vectors {
		for d, x := range v {
			mean[d] += x
		}
	}
	for d := range mean {
		mean[d] /= float64(n)
	}
	centered := make([][]float64, n)
	for i, v := range vectors {
		row := make([]float64, dim)
		for d, x := range v {
			row[d] = x - mean[d]
		}
		centered[i] = row
	}

	rng := rand.New(rand.NewSource(cluster.Seed))
	basis := make([][]float64, 0, components)
	for c := 0; c < components; c++ {
		dir := powerIterate(centered, basis, dim, rng)
		if dir == nil {
			break
		}
		basis = append(basis, dir)
	}

	out := make([][]float64, n)
	for i, row := range centered {
		proj := make([]float64, len(basis))
		for c, dir := range basis {
			proj[c] = vecmath.Dot(row, dir)
		}
		out[i] = proj
	}
	return out
}

// powerIterate finds the dominant direction of the covariance of the
// centered data, orthogonal to the basis found so far. Returns nil when
// no variance remains.
func powerIterate(centered [][]float64, basis [][]float64, dim int, rng *rand.Rand) []float64 {
	dir := make([]float64, dim)
	for d := range dir {
		dir[d] = rng.NormFloat64()
	}
	orthogonalize(dir, basis)
	dir = vecmath.Normalize(dir)
	if dir == nil {
		return nil
	}

	for iter := 0; iter < powerIterations; iter++ {
		// next = Xᵀ(X·dir), the covariance product without forming the
		// covariance matrix.
		next := make([]float64, dim)
		for _, row := range centered {
			proj := vecmath.Dot(row, dir)
			for d, x := range row {
				next[d] += proj * x
			}
		}
		orthogonalize(next, basis)
		unit := vecmath.Normalize(next)
		if unit == nil {
			return nil
		}
		delta := 0.0
		for d := range unit {
			delta += math.Abs(unit[d] - dir[d])
		}
		dir = unit
		if delta < powerTolerance {
			break
		}
	}
	return dir
}

func orthogonalize(v []float64, basis [][]float64) {
	for _, b := range basis {
		proj := vecmath.Dot(v, b)
		for d := range v {
			v[d] -= proj * b[d]
		}
	}
}
