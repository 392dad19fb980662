// Package quantize reduces a set of colour points to a small weighted palette.
package quantize

import (
	"fmt"
	"math"
	"math/rand"
	"slices"
	"strings"

	"github.com/darkawower/palettegen/internal/colors"
)

// Quantizer maps sample points to at most k weighted representative colours.
type Quantizer interface {
	// Quantize clusters points into k groups. The result has one entry per
	// cluster in the algorithm's emission order.
	Quantize(points []colors.RGB, k int) ([]colors.WeightedColor, error)
}

// Algorithm names a quantization strategy.
type Algorithm string

const (
	// AlgorithmKMeans is Lloyd's algorithm with distance-weighted seeding.
	AlgorithmKMeans Algorithm = "kmeans"
	// AlgorithmKMeansPlus runs the same routine as AlgorithmKMeans.
	AlgorithmKMeansPlus Algorithm = "kmeansplus"
	// AlgorithmMedian is deterministic median-cut box splitting.
	AlgorithmMedian Algorithm = "median"
)

// Algorithms returns every supported algorithm.
func Algorithms() []Algorithm {
	return []Algorithm{AlgorithmKMeans, AlgorithmKMeansPlus, AlgorithmMedian}
}

// ParseAlgorithm converts a name into an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	alg := Algorithm(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Algorithms(), alg) {
		return alg, nil
	}
	return "", fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", colors.ErrConfiguration, s, Algorithms())
}

// New returns the quantizer for alg. The random source is used by the
// k-means variants for centroid seeding and is ignored by median-cut.
func New(alg Algorithm, rng *rand.Rand) (Quantizer, error) {
	switch alg {
	case AlgorithmKMeans, AlgorithmKMeansPlus:
		if rng == nil {
			return nil, fmt.Errorf("%w: %s requires a random source", colors.ErrConfiguration, alg)
		}
		return NewKMeans(rng), nil
	case AlgorithmMedian:
		return NewMedianCut(), nil
	default:
		return nil, fmt.Errorf("%w: unknown algorithm %q (valid algorithms: %v)", colors.ErrConfiguration, alg, Algorithms())
	}
}

func validate(points []colors.RGB, k int) error {
	if k < 1 {
		return fmt.Errorf("%w: color count must be at least 1, got %d", colors.ErrInvalidInput, k)
	}
	if len(points) == 0 {
		return colors.ErrEmptySample
	}
	return nil
}

// mean returns the channel-wise rounded mean of points.
func mean(points []colors.RGB) colors.RGB {
	var r, g, b int
	for _, p := range points {
		r += int(p.R)
		g += int(p.G)
		b += int(p.B)
	}
	n := float64(len(points))
	return colors.RGB{
		R: uint8(math.Round(float64(r) / n)),
		G: uint8(math.Round(float64(g) / n)),
		B: uint8(math.Round(float64(b) / n)),
	}
}
