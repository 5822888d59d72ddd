package palette

import (
	"context"
	"slices"
	"strings"

	"github.com/color-game/palette/colors"
	"github.com/color-game/palette/models"
)

// AddColor appends a base color to the active palette. It is rejected when the
// hex is invalid, the id is already present, or the hex duplicates or is similar
// to an existing base color under the current threshold. An empty id is filled in.
func (s *Store) AddColor(ctx context.Context, color models.Color) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	ok := s.addColor(ctx, color)
	s.metrics.observe("add_color", ok)
	return ok
}

func (s *Store) addColor(ctx context.Context, color models.Color) bool {
	hex, err := colors.Canonical(color.Hex)
	if err != nil {
		return false
	}
	if color.ID == "" {
		color.ID = color.GenerateKey()
	}

	palette := s.active()
	for _, existing := range palette.BaseColors {
		if existing.ID == color.ID {
			return false
		}
		if strings.EqualFold(existing.Hex, hex) || colors.AreSimilar(existing.Hex, hex, s.threshold) {
			return false
		}
	}

	color.Hex = hex
	palette.BaseColors = append(palette.BaseColors, color)
	palette.Variations[color.ID] = NewVariationSet(hex)
	s.savePalette(ctx, palette)
	return true
}

// RemoveColor drops a base color and its variations from the active palette.
// Unknown ids are a no-op and report false.
func (s *Store) RemoveColor(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	palette := s.active()
	index := palette.IndexOf(id)
	if index < 0 {
		s.metrics.observe("remove_color", false)
		return false
	}

	palette.BaseColors = slices.Delete(palette.BaseColors, index, index+1)
	delete(palette.Variations, id)
	s.savePalette(ctx, palette)
	s.metrics.observe("remove_color", true)
	return true
}

// UpdateColor replaces a base color's hex and name in place and regenerates its
// variations. It does not run the duplicate/similarity gate AddColor applies, so
// an edit may leave two near-identical base colors in a palette.
func (s *Store) UpdateColor(ctx context.Context, id, hex, name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	canonical, err := colors.Canonical(hex)
	palette := s.active()
	index := palette.IndexOf(id)
	if err != nil || index < 0 {
		s.metrics.observe("update_color", false)
		return false
	}

	palette.BaseColors[index].Hex = canonical
	palette.BaseColors[index].Name = name
	palette.Variations[id] = NewVariationSet(canonical)
	s.savePalette(ctx, palette)
	s.metrics.observe("update_color", true)
	return true
}

// SetSimilarityThreshold changes the threshold used by AddColor and flat list
// recomputation, clamped to [0,50]. Only the active palette's flat list is
// recomputed; other palettes keep their cached lists until they next change.
func (s *Store) SetSimilarityThreshold(ctx context.Context, threshold float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.threshold = colors.ClampThreshold(threshold)
	s.savePalette(ctx, s.active())
	s.metrics.observe("set_threshold", true)
}

func (s *Store) SimilarityThreshold() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.threshold
}

// GetFlatColors returns the active palette's cached flat list. It is not recomputed on read.
func (s *Store) GetFlatColors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.active().FlatColors)
}

// Colors returns a copy of the active palette's base colors in display order
func (s *Store) Colors() []models.Color {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.active().BaseColors)
}

// Variations returns a copy of the variation set for a base color of the active palette
func (s *Store) Variations(id string) (models.VariationSet, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vs, ok := s.active().Variations[id]
	if !ok {
		return models.VariationSet{}, false
	}
	return vs.Clone(), true
}
