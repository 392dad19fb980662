// Package core provides the main business logic for palettegen.
package core

import (
	"time"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/quantize"
)

// ExtractResult represents the result of a palette extraction.
type ExtractResult struct {
	// Location is the path or URL the image was loaded from.
	Location string `json:"location"`

	// Palette is the extracted palette, ordered by style score.
	Palette palette.Palette `json:"palette"`

	// Weighted holds the clusters in quantizer order with their sizes.
	Weighted []colors.WeightedColor `json:"weighted"`

	// Points is the number of sample points fed to the quantizer.
	Points int `json:"points"`

	// Algorithm is the quantizer that produced the clusters.
	Algorithm quantize.Algorithm `json:"algorithm"`

	// Style is the ranking applied to the clusters.
	Style palette.Style `json:"style"`

	// Seed is the seed of the random source used for clustering.
	Seed int64 `json:"seed"`

	// Width and Height are the dimensions of the sampled canvas.
	Width  int `json:"width"`
	Height int `json:"height"`

	// Duration is how long sampling and clustering took.
	Duration time.Duration `json:"duration"`
}

// Hex returns the palette as hex strings.
func (r *ExtractResult) Hex() []string {
	return r.Palette.Hex()
}

// ExportResult describes the files written by an export.
type ExportResult struct {
	// Dir is the directory the files were written to.
	Dir string

	// Paths are the written files in sorted order.
	Paths []string
}
