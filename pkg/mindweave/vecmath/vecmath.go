// Package vecmath provides the small set of vector operations shared by
// the clustering, layout, keyword and similarity stages. All operations
// treat mismatched lengths by truncating to the shorter vector.
package vecmath

import "math"

// Dot returns the dot product of a and b.
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

// Norm returns the Euclidean norm of v.
func Norm(v []float64) float64 {
	return math.Sqrt(Dot(v, v))
}

// Normalize returns a unit-length copy of v, or nil when v has zero norm.
func Normalize(v []float64) []float64 {
	norm := Norm(v)
	if norm == 0 {
		return nil
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}

// Cosine returns the cosine similarity of a and b, or 0 when either
// vector has zero norm.
func Cosine(a, b []float64) float64 {
	na := Norm(a)
	nb := Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}
	return Dot(a, b) / (na * nb)
}

// Mean returns the component-wise mean of the selected vectors, or nil
// when indices is empty.
func Mean(vectors [][]float64, indices []int) []float64 {
	if len(indices) == 0 {
		return nil
	}
	dim := len(vectors[indices[0]])
	out := make([]float64, dim)
	for _, idx := range indices {
		v := vectors[idx]
		for i := 0; i < dim && i < len(v); i++ {
			out[i] += v[i]
		}
	}
	for i := range out {
		out[i] /= float64(len(indices))
	}
	return out
}

// IsZero reports whether every component of v is exactly zero.
func IsZero(v []float64) bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// SquaredDistance returns the squared Euclidean distance between a and b.
func SquaredDistance(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float64
	for i := 0; i < n; i++ {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
