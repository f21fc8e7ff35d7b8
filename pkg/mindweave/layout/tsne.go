package layout

import (
	"math"
	"math/rand"

	"github.com/mindweave/mindweave/pkg/mindweave/vecmath"
)

const (
	tsneIterations      = 500
	tsneLearningRate    = 200.0
	tsneExaggeration    = 4.0
	tsneExaggerateUntil = 100
	tsneMomentumSwitch  = 250
	tsneInitScale       = 1e-4
	tsneMinProb         = 1e-12
)

// tsne embeds the input vectors into 2-D with a standard t-SNE gradient
// descent: Gaussian input affinities matched to the target perplexity
// by binary search, Student-t output affinities, early exaggeration and
// a momentum switch.
func tsne(vectors [][]float64, perplexity float64, seed int64) [][2]float64 {
	n := len(vectors)
	p := inputAffinities(vectors, perplexity)

	rng := rand.New(rand.NewSource(seed))
	y := make([][2]float64, n)
	for i := range y {
		y[i][0] = rng.NormFloat64() * tsneInitScale
		y[i][1] = rng.NormFloat64() * tsneInitScale
	}

	velocity := make([][2]float64, n)
	grad := make([][2]float64, n)
	num := make([][]float64, n)
	for i := range num {
		num[i] = make([]float64, n)
	}

	for iter := 0; iter < tsneIterations; iter++ {
		exaggeration := 1.0
		if iter < tsneExaggerateUntil {
			exaggeration = tsneExaggeration
		}
		momentum := 0.5
		if iter >= tsneMomentumSwitch {
			momentum = 0.8
		}

		// Student-t numerators and their sum.
		var sum float64
		for i := 0; i < n; i++ {
			for j := i + 1; j < n; j++ {
				dx := y[i][0] - y[j][0]
				dy := y[i][1] - y[j][1]
				q := 1 / (1 + dx*dx + dy*dy)
				num[i][j] = q
				num[j][i] = q
				sum += 2 * q
			}
		}
		if sum == 0 {
			sum = tsneMinProb
		}

		for i := range grad {
			grad[i] = [2]float64{}
		}
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i == j {
					continue
				}
				q := num[i][j] / sum
				if q < tsneMinProb {
					q = tsneMinProb
				}
				mult := (exaggeration*p[i][j] - q) * num[i][j]
				grad[i][0] += mult * (y[i][0] - y[j][0])
				grad[i][1] += mult * (y[i][1] - y[j][1])
			}
		}

		for i := range y {
			velocity[i][0] = momentum*velocity[i][0] - tsneLearningRate*grad[i][0]
			velocity[i][1] = momentum*velocity[i][1] - tsneLearningRate*grad[i][1]
			y[i][0] += velocity[i][0]
			y[i][1] += velocity[i][1]
		}
	}
	return y
}

// inputAffinities computes the symmetrized joint probabilities P, with
// each point's Gaussian bandwidth tuned by binary search so the
// conditional distribution hits the target perplexity.
func inputAffinities(vectors [][]float64, perplexity float64) [][]float64 {
	n := len(vectors)
	targetEntropy := math.Log(perplexity)

	dist := make([][]float64, n)
	for i := range dist {
		dist[i] = make([]float64, n)
		for j := range dist[i] {
			if i != j {
				dist[i][j] = vecmath.SquaredDistance(vectors[i], vectors[j])
			}
		}
	}

	cond := make([][]float64, n)
	for i := 0; i < n; i++ {
		cond[i] = bandwidthSearch(dist[i], i, targetEntropy)
	}

	p := make([][]float64, n)
	for i := range p {
		p[i] = make([]float64, n)
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == j {
				continue
			}
			v := (cond[i][j] + cond[j][i]) / (2 * float64(n))
			if v < tsneMinProb {
				v = tsneMinProb
			}
			p[i][j] = v
		}
	}
	return p
}

// bandwidthSearch finds the precision beta for row i whose conditional
// distribution entropy matches the target, then returns that
// distribution.
func bandwidthSearch(row []float64, self int, targetEntropy float64) []float64 {
	beta := 1.0
	betaMin := math.Inf(-1)
	betaMax := math.Inf(1)
	probs := make([]float64, len(row))

	for attempt := 0; attempt < 50; attempt++ {
		entropy := conditional(row, self, beta, probs)
		diff := entropy - targetEntropy
		if math.Abs(diff) < 1e-5 {
			break
		}
		if diff > 0 {
			betaMin = beta
			if math.IsInf(betaMax, 1) {
				beta *= 2
			} else {
				beta = (beta + betaMax) / 2
			}
		} else {
			betaMax = beta
			if math.IsInf(betaMin, -1) {
				beta /= 2
			} else {
				beta = (beta + betaMin) / 2
			}
		}
	}
	return probs
}

// conditional fills probs with the Gaussian conditional distribution at
// precision beta and returns its entropy.
func conditional(row []float64, self int, beta float64, probs []float64) float64 {
	var sum float64
	for j, d := range row {
		if j == self {
			probs[j] = 0
			continue
		}
		probs[j] = math.Exp(-d * beta)
		sum += probs[j]
	}
	if sum == 0 {
		sum = tsneMinProb
	}
	var entropy float64
	for j := range probs {
		probs[j] /= sum
		if probs[j] > tsneMinProb {
			entropy -= probs[j] * math.Log(probs[j])
		}
	}
	return entropy
}
