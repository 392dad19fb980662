// Package session keeps the working palette together with the harmony and
// theme derived from it. Every edit recomputes the derived values and
// commits them at once; a failed edit leaves the session untouched.
package session

import (
	"fmt"
	"math/rand"
	"strings"
	"sync"

	"github.com/darkawower/palettegen/internal/colors"
	"github.com/darkawower/palettegen/internal/harmony"
	"github.com/darkawower/palettegen/internal/palette"
	"github.com/darkawower/palettegen/internal/theme"
)

const maxHistory = 100

// Settings are the user-selected derivation parameters.
type Settings struct {
	Harmony    harmony.Kind   `json:"harmony"`
	BaseIndex  int            `json:"base_index"`
	UseHarmony bool           `json:"use_harmony"`
	Mode       theme.Mode     `json:"mode"`
	Strength   theme.Strength `json:"strength"`
}

// DefaultSettings returns a dark, normal-strength theme without harmony.
func DefaultSettings() Settings {
	return Settings{
		Harmony:  harmony.KindNone,
		Mode:     theme.Dark,
		Strength: theme.Normal,
	}
}

// Session is safe for concurrent use.
type Session struct {
	mu       sync.RWMutex
	rng      *rand.Rand
	palette  palette.Palette
	settings Settings
	harmony  palette.Palette
	theme    *theme.Theme
	history  []palette.Palette
}

// New starts a session around p.
func New(p palette.Palette, settings Settings, rng *rand.Rand) *Session {
	s := &Session{rng: rng}
	s.commit(p.Clone(), settings, false)
	return s
}

// Palette returns a copy of the working palette.
func (s *Session) Palette() palette.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.palette.Clone()
}

// Harmony returns a copy of the current harmony scheme.
func (s *Session) Harmony() palette.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.harmony.Clone()
}

// Theme returns a copy of the derived theme, or nil when the palette is empty.
func (s *Session) Theme() *theme.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.theme == nil {
		return nil
	}
	t := *s.theme
	t.Accents = append([]colors.RGB(nil), s.theme.Accents...)
	return &t
}

// Settings returns the current derivation settings.
func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// AccentSource returns the colours the theme was derived from.
func (s *Session) AccentSource() palette.Palette {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return accentSource(s.palette, s.harmony, s.settings).Clone()
}

// SetPalette replaces the whole working palette.
func (s *Session) SetPalette(p palette.Palette) {
	s.update(func(palette.Palette) (palette.Palette, error) { return p.Clone(), nil })
}

// Replace swaps the colour at index i.
func (s *Session) Replace(i int, c colors.RGB) error {
	return s.update(func(p palette.Palette) (palette.Palette, error) { return p.Replace(i, c) })
}

// ReplaceHex swaps the colour at index i for a #RRGGBB value.
func (s *Session) ReplaceHex(i int, hex string) error {
	return s.update(func(p palette.Palette) (palette.Palette, error) { return p.ReplaceHex(i, hex) })
}

// ReplaceRGB swaps the colour at index i for integer channels in 0..255.
func (s *Session) ReplaceRGB(i, r, g, b int) error {
	c, err := colors.FromInts(r, g, b)
	if err != nil {
		return err
	}
	return s.Replace(i, c)
}

// Remove drops the colour at index i.
func (s *Session) Remove(i int) error {
	return s.update(func(p palette.Palette) (palette.Palette, error) { return p.Remove(i) })
}

// Add appends c.
func (s *Session) Add(c colors.RGB) {
	s.update(func(p palette.Palette) (palette.Palette, error) { return p.Append(c), nil })
}

// AddRandom appends a random colour.
func (s *Session) AddRandom() {
	s.update(func(p palette.Palette) (palette.Palette, error) { return p.AppendRandom(s.rng), nil })
}

// Shuffle randomly reorders the palette.
func (s *Session) Shuffle() {
	s.update(func(p palette.Palette) (palette.Palette, error) { return p.Shuffle(s.rng), nil })
}

// SortKey selects the HSL component used by Sort.
type SortKey string

const (
	SortHue        SortKey = "hue"
	SortSaturation SortKey = "saturation"
	SortLightness  SortKey = "lightness"
)

// ParseSortKey converts a name into a SortKey.
func ParseSortKey(v string) (SortKey, error) {
	switch k := SortKey(strings.ToLower(strings.TrimSpace(v))); k {
	case SortHue, SortSaturation, SortLightness:
		return k, nil
	default:
		return "", fmt.Errorf("%w: unknown sort key %q (must be hue, saturation, or lightness)", colors.ErrConfiguration, v)
	}
}

// Sort orders the palette ascending by key.
func (s *Session) Sort(key SortKey) error {
	return s.update(func(p palette.Palette) (palette.Palette, error) {
		switch key {
		case SortHue:
			return p.SortByHue(), nil
		case SortSaturation:
			return p.SortBySaturation(), nil
		case SortLightness:
			return p.SortByLightness(), nil
		default:
			return nil, fmt.Errorf("%w: unknown sort key %q", colors.ErrConfiguration, key)
		}
	})
}

// Undo restores the palette before the last successful edit.
func (s *Session) Undo() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.history)
	if n == 0 {
		return false
	}
	prev := s.history[n-1]
	s.history = s.history[:n-1]
	s.apply(prev, s.settings)
	return true
}

// Configure replaces the derivation settings.
func (s *Session) Configure(settings Settings) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.apply(s.palette, settings)
}

// SetHarmony selects the harmony kind and the palette index of its base.
func (s *Session) SetHarmony(kind harmony.Kind, base int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.settings
	settings.Harmony, settings.BaseIndex = kind, base
	s.apply(s.palette, settings)
}

// SetUseHarmony toggles deriving the theme from the harmony instead of the palette.
func (s *Session) SetUseHarmony(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.settings
	settings.UseHarmony = on
	s.apply(s.palette, settings)
}

// SetMode changes the theme mode.
func (s *Session) SetMode(m theme.Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.settings
	settings.Mode = m
	s.apply(s.palette, settings)
}

// SetStrength changes the background strength.
func (s *Session) SetStrength(st theme.Strength) {
	s.mu.Lock()
	defer s.mu.Unlock()
	settings := s.settings
	settings.Strength = st
	s.apply(s.palette, settings)
}

func (s *Session) update(edit func(palette.Palette) (palette.Palette, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	next, err := edit(s.palette)
	if err != nil {
		return err
	}
	s.commit(next, s.settings, true)
	return nil
}

// commit must be called with the lock held, or before the session is shared.
func (s *Session) commit(p palette.Palette, settings Settings, record bool) {
	if record {
		s.history = append(s.history, s.palette)
		if len(s.history) > maxHistory {
			s.history = s.history[len(s.history)-maxHistory:]
		}
	}
	s.apply(p, settings)
}

func (s *Session) apply(p palette.Palette, settings Settings) {
	h := harmony.FromPalette(p, settings.BaseIndex, settings.Harmony)
	mode := theme.Detect(settings.Mode, p)

	s.palette = p
	s.settings = settings
	s.harmony = h
	s.theme = theme.Derive(accentSource(p, h, settings), mode, settings.Strength)
}

func accentSource(p, h palette.Palette, settings Settings) palette.Palette {
	if settings.UseHarmony && len(h) > 0 {
		return h
	}
	return p
}
