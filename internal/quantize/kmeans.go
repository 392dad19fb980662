package quantize

import (
	"math"
	"math/rand"

	"github.com/darkawower/palettegen/internal/colors"
)

// DefaultIterations is the fixed number of Lloyd refinement passes.
const DefaultIterations = 15

// KMeans clusters points with Lloyd's algorithm. The first centroid is drawn
// uniformly, the rest with probability proportional to the squared distance
// from the nearest existing centroid.
type KMeans struct {
	rng        *rand.Rand
	iterations int
}

// NewKMeans creates a K-Means quantizer drawing from rng.
func NewKMeans(rng *rand.Rand) *KMeans {
	return &KMeans{rng: rng, iterations: DefaultIterations}
}

// Quantize implements Quantizer. It always returns k entries; clusters that
// end up empty keep their last centroid and report a count of zero.
func (km *KMeans) Quantize(points []colors.RGB, k int) ([]colors.WeightedColor, error) {
	if err := validate(points, k); err != nil {
		return nil, err
	}

	centroids := km.seed(points, k)
	labels := make([]int, len(points))

	for iter := 0; iter < km.iterations; iter++ {
		for i, p := range points {
			labels[i] = nearest(p, centroids)
		}

		sums := make([][4]int, k)
		for i, p := range points {
			s := &sums[labels[i]]
			s[0] += int(p.R)
			s[1] += int(p.G)
			s[2] += int(p.B)
			s[3]++
		}

		for c := range centroids {
			n := sums[c][3]
			if n == 0 {
				continue
			}
			centroids[c] = colors.RGB{
				R: uint8(math.Round(float64(sums[c][0]) / float64(n))),
				G: uint8(math.Round(float64(sums[c][1]) / float64(n))),
				B: uint8(math.Round(float64(sums[c][2]) / float64(n))),
			}
		}
	}

	result := make([]colors.WeightedColor, k)
	for c := range centroids {
		result[c].Color = centroids[c]
	}
	for _, l := range labels {
		result[l].Count++
	}
	return result, nil
}

func (km *KMeans) seed(points []colors.RGB, k int) []colors.RGB {
	centroids := make([]colors.RGB, 0, k)
	centroids = append(centroids, points[km.rng.Intn(len(points))])

	dists := make([]int, len(points))
	for len(centroids) < k {
		sum := 0
		for i, p := range points {
			best := math.MaxInt
			for _, c := range centroids {
				if d := colors.DistanceSquared(p, c); d < best {
					best = d
				}
			}
			dists[i] = best
			sum += best
		}

		target := km.rng.Float64() * float64(sum)
		idx, acc := 0, 0
		for i, d := range dists {
			acc += d
			if float64(acc) >= target {
				idx = i
				break
			}
		}
		centroids = append(centroids, points[idx])
	}
	return centroids
}

// nearest returns the index of the closest centroid; ties go to the lowest index.
func nearest(p colors.RGB, centroids []colors.RGB) int {
	best, bestDist := 0, math.MaxInt
	for c, centroid := range centroids {
		if d := colors.DistanceSquared(p, centroid); d < bestDist {
			best, bestDist = c, d
		}
	}
	return best
}
