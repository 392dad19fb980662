package quantize

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/sample"
)

func repeat(c colors.RGB, n int) []colors.RGB {
	out := make([]colors.RGB, n)
	for i := range out {
		out[i] = c
	}
	return out
}

func randomPoints(seed int64, n int) []colors.RGB {
	rng := rand.New(rand.NewSource(seed))
	out := make([]colors.RGB, n)
	for i := range out {
		out[i] = colors.RGB{R: uint8(rng.Intn(256)), G: uint8(rng.Intn(256)), B: uint8(rng.Intn(256))}
	}
	return out
}

func totalCount(wc []colors.WeightedColor) int {
	n := 0
	for _, c := range wc {
		n += c.Count
	}
	return n
}

func TestParseAlgorithm(t *testing.T) {
	tests := []struct {
		input   string
		want    Algorithm
		wantErr bool
	}{
		{input: "kmeans", want: AlgorithmKMeans},
		{input: "KMeansPlus", want: AlgorithmKMeansPlus},
		{input: "median", want: AlgorithmMedian},
		{input: "octree", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAlgorithm(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, colors.ErrConfiguration)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNew(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	q, err := New(AlgorithmKMeans, rng)
	require.NoError(t, err)
	assert.IsType(t, &KMeans{}, q)

	q, err = New(AlgorithmKMeansPlus, rng)
	require.NoError(t, err)
	assert.IsType(t, &KMeans{}, q)

	q, err = New(AlgorithmMedian, nil)
	require.NoError(t, err)
	assert.IsType(t, &MedianCut{}, q)

	_, err = New(AlgorithmKMeans, nil)
	assert.ErrorIs(t, err, colors.ErrConfiguration)

	_, err = New("octree", rng)
	assert.ErrorIs(t, err, colors.ErrConfiguration)
}

func TestQuantizers_InvalidInput(t *testing.T) {
	quantizers := map[string]Quantizer{
		"kmeans": NewKMeans(rand.New(rand.NewSource(1))),
		"median": NewMedianCut(),
	}

	for name, q := range quantizers {
		t.Run(name, func(t *testing.T) {
			_, err := q.Quantize(randomPoints(1, 10), 0)
			assert.ErrorIs(t, err, colors.ErrInvalidInput)

			_, err = q.Quantize(nil, 3)
			assert.ErrorIs(t, err, colors.ErrEmptySample)
		})
	}
}

func TestQuantizers_WeightsCoverAllPoints(t *testing.T) {
	points := randomPoints(99, 500)
	for _, k := range []int{1, 2, 5, 8, 16} {
		km, err := NewKMeans(rand.New(rand.NewSource(3))).Quantize(points, k)
		require.NoError(t, err)
		assert.Len(t, km, k)
		assert.Equal(t, len(points), totalCount(km))

		mc, err := NewMedianCut().Quantize(points, k)
		require.NoError(t, err)
		assert.LessOrEqual(t, len(mc), k)
		assert.Equal(t, len(points), totalCount(mc))
	}
}

func TestKMeans_SeparatedClusters(t *testing.T) {
	red := colors.RGB{R: 250}
	blue := colors.RGB{B: 250}
	points := append(repeat(red, 30), repeat(blue, 70)...)

	result, err := NewKMeans(rand.New(rand.NewSource(5))).Quantize(points, 2)
	require.NoError(t, err)
	require.Len(t, result, 2)

	got := map[colors.RGB]int{}
	for _, wc := range result {
		got[wc.Color] = wc.Count
	}
	assert.Equal(t, map[colors.RGB]int{red: 30, blue: 70}, got)
}

func TestKMeans_Deterministic(t *testing.T) {
	points := randomPoints(11, 300)

	a, err := NewKMeans(rand.New(rand.NewSource(42))).Quantize(points, 6)
	require.NoError(t, err)
	b, err := NewKMeans(rand.New(rand.NewSource(42))).Quantize(points, 6)
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestKMeans_MoreClustersThanDistinctPoints(t *testing.T) {
	c := colors.RGB{R: 12, G: 34, B: 56}
	result, err := NewKMeans(rand.New(rand.NewSource(1))).Quantize(repeat(c, 10), 3)
	require.NoError(t, err)

	require.Len(t, result, 3)
	assert.Equal(t, colors.WeightedColor{Color: c, Count: 10}, result[0])
	assert.Equal(t, colors.WeightedColor{Color: c, Count: 0}, result[1])
	assert.Equal(t, colors.WeightedColor{Color: c, Count: 0}, result[2])
}

func TestKMeans_FindsSyntheticRedBlock(t *testing.T) {
	points, _, err := sample.FromImage(sample.Synthetic(), sample.DefaultOptions())
	require.NoError(t, err)

	result, err := NewKMeans(rand.New(rand.NewSource(42))).Quantize(points, 6)
	require.NoError(t, err)

	red := colors.RGB{R: 240, G: 68, B: 68}
	found := false
	for _, wc := range result {
		if colors.Distance(wc.Color, red) < 25 {
			found = true
		}
	}
	assert.True(t, found, "no cluster near %s in %v", red, result)
}

func TestMedianCut_Splits(t *testing.T) {
	points := []colors.RGB{{R: 30}, {R: 0}, {R: 20}, {R: 10}}

	tests := []struct {
		name string
		k    int
		want []colors.WeightedColor
	}{
		{
			name: "single box",
			k:    1,
			want: []colors.WeightedColor{{Color: colors.RGB{R: 15}, Count: 4}},
		},
		{
			name: "two halves",
			k:    2,
			want: []colors.WeightedColor{
				{Color: colors.RGB{R: 5}, Count: 2},
				{Color: colors.RGB{R: 25}, Count: 2},
			},
		},
		{
			name: "first divisible box splits first",
			k:    3,
			want: []colors.WeightedColor{
				{Color: colors.RGB{R: 0}, Count: 1},
				{Color: colors.RGB{R: 10}, Count: 1},
				{Color: colors.RGB{R: 25}, Count: 2},
			},
		},
		{
			name: "stops when nothing divisible",
			k:    10,
			want: []colors.WeightedColor{
				{Color: colors.RGB{R: 0}, Count: 1},
				{Color: colors.RGB{R: 10}, Count: 1},
				{Color: colors.RGB{R: 20}, Count: 1},
				{Color: colors.RGB{R: 30}, Count: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := append([]colors.RGB(nil), points...)
			got, err := NewMedianCut().Quantize(input, tt.k)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, points, input, "input must not be reordered")
		})
	}
}

func TestMedianCut_OddBoxLowerHalfIsSmaller(t *testing.T) {
	points := []colors.RGB{{B: 0}, {B: 100}, {B: 200}}
	got, err := NewMedianCut().Quantize(points, 2)
	require.NoError(t, err)
	assert.Equal(t, []colors.WeightedColor{
		{Color: colors.RGB{B: 0}, Count: 1},
		{Color: colors.RGB{B: 150}, Count: 2},
	}, got)
}

func TestMedianCut_RoundsMean(t *testing.T) {
	got, err := NewMedianCut().Quantize([]colors.RGB{{R: 0}, {R: 1}}, 1)
	require.NoError(t, err)
	assert.Equal(t, colors.RGB{R: 1}, got[0].Color)
}

func TestWidestChannel(t *testing.T) {
	tests := []struct {
		name string
		box  []colors.RGB
		want int
	}{
		{name: "red widest", box: []colors.RGB{{R: 0, G: 5}, {R: 50, G: 10}}, want: 0},
		{name: "green widest", box: []colors.RGB{{G: 0}, {G: 80, B: 20}}, want: 1},
		{name: "blue widest", box: []colors.RGB{{B: 0}, {R: 1, B: 90}}, want: 2},
		{name: "red green tie picks red", box: []colors.RGB{{}, {R: 10, G: 10}}, want: 0},
		{name: "green blue tie picks green", box: []colors.RGB{{}, {G: 10, B: 10}}, want: 1},
		{name: "flat box picks red", box: []colors.RGB{{R: 3}, {R: 3}}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, widestChannel(tt.box))
		})
	}
}
