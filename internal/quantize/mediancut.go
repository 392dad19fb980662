package quantize

import (
	"slices"

	"github.com/darkawower/palettegen/internal/colors"
)

// MedianCut repeatedly splits the first divisible box along its widest
// channel until k boxes exist or nothing is left to split.
type MedianCut struct{}

// NewMedianCut creates a median-cut quantizer.
func NewMedianCut() *MedianCut {
	return &MedianCut{}
}

// Quantize implements Quantizer.
func (mc *MedianCut) Quantize(points []colors.RGB, k int) ([]colors.WeightedColor, error) {
	if err := validate(points, k); err != nil {
		return nil, err
	}

	boxes := [][]colors.RGB{slices.Clone(points)}
	for len(boxes) < k {
		idx := slices.IndexFunc(boxes, func(b []colors.RGB) bool { return len(b) > 1 })
		if idx < 0 {
			break
		}

		box := boxes[idx]
		channel := widestChannel(box)
		slices.SortStableFunc(box, func(a, b colors.RGB) int {
			return int(channelOf(a, channel)) - int(channelOf(b, channel))
		})

		mid := len(box) / 2
		lower, upper := box[:mid:mid], box[mid:]
		boxes = slices.Replace(boxes, idx, idx+1, lower, upper)
	}

	result := make([]colors.WeightedColor, len(boxes))
	for i, box := range boxes {
		result[i] = colors.WeightedColor{Color: mean(box), Count: len(box)}
	}
	return result, nil
}

// widestChannel returns 0, 1 or 2 for R, G or B. Ties favour R, then G.
func widestChannel(box []colors.RGB) int {
	lo := [3]uint8{255, 255, 255}
	var hi [3]uint8
	for _, p := range box {
		for ch := 0; ch < 3; ch++ {
			v := channelOf(p, ch)
			lo[ch] = min(lo[ch], v)
			hi[ch] = max(hi[ch], v)
		}
	}

	r, g, b := int(hi[0])-int(lo[0]), int(hi[1])-int(lo[1]), int(hi[2])-int(lo[2])
	switch {
	case r >= g && r >= b:
		return 0
	case g >= b:
		return 1
	default:
		return 2
	}
}

func channelOf(c colors.RGB, ch int) uint8 {
	switch ch {
	case 0:
		return c.R
	case 1:
		return c.G
	default:
		return c.B
	}
}
