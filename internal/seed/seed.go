// Package seed derives the seed for the random source used when
// initialising cluster centroids.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
	"image"
	"math/rand"
	"slices"
	"strings"
	"time"

	"github.com/darkawower/palettegen/internal/colors"
)

// Mode selects how a seed is obtained.
type Mode string

const (
	// ModeContent hashes the pixels, so the same image always yields the same palette.
	ModeContent Mode = "content"
	// ModeLocation hashes the path or URL the image was loaded from.
	ModeLocation Mode = "location"
	// ModeManual uses a configured value.
	ModeManual Mode = "manual"
	// ModeRandom differs on every run.
	ModeRandom Mode = "random"
)

// Modes lists every valid mode.
func Modes() []Mode {
	return []Mode{ModeContent, ModeLocation, ModeManual, ModeRandom}
}

// ParseMode converts a name into a Mode.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	if slices.Contains(Modes(), m) {
		return m, nil
	}
	return "", fmt.Errorf("%w: unknown seed mode %q (valid modes: %v)", colors.ErrConfiguration, s, Modes())
}

// Config describes the desired seed.
type Config struct {
	Mode  Mode
	Value int64
}

// Resolve computes the seed for img loaded from location.
func Resolve(cfg Config, img image.Image, location string) (int64, error) {
	switch cfg.Mode {
	case ModeContent:
		if img == nil {
			return 0, fmt.Errorf("%w: content seed requires an image", colors.ErrConfiguration)
		}
		return FromContent(img), nil
	case ModeLocation:
		if location == "" {
			return 0, fmt.Errorf("%w: location seed requires a source path", colors.ErrConfiguration)
		}
		return fromBytes([]byte(location)), nil
	case ModeManual:
		return cfg.Value, nil
	case ModeRandom:
		return time.Now().UnixNano(), nil
	default:
		return 0, fmt.Errorf("%w: unknown seed mode %q", colors.ErrConfiguration, cfg.Mode)
	}
}

// FromContent hashes the dimensions and a grid of at most ~100x100 pixels.
func FromContent(img image.Image) int64 {
	b := img.Bounds()
	h := sha256.New()

	var dims [8]byte
	binary.LittleEndian.PutUint32(dims[0:4], uint32(b.Dx()))
	binary.LittleEndian.PutUint32(dims[4:8], uint32(b.Dy()))
	h.Write(dims[:])

	step := max(b.Dx()/100, b.Dy()/100, 1)
	var px [4]byte
	for y := b.Min.Y; y < b.Max.Y; y += step {
		for x := b.Min.X; x < b.Max.X; x += step {
			r, g, bl, a := img.At(x, y).RGBA()
			px[0], px[1], px[2], px[3] = byte(r>>8), byte(g>>8), byte(bl>>8), byte(a>>8)
			h.Write(px[:])
		}
	}
	return int64(binary.LittleEndian.Uint64(h.Sum(nil)[:8]))
}

func fromBytes(data []byte) int64 {
	sum := sha256.Sum256(data)
	return int64(binary.LittleEndian.Uint64(sum[:8]))
}

// NewRand returns a random source seeded with seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}
