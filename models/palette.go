package models

import (
	"encoding/json"
	"fmt"
)

// Palette is a named set of base colors with their derived variations.
// FlatColors is a cache maintained by the palette store.
type Palette struct {
	Name       string                  `json:"name"`
	BaseColors []Color                 `json:"baseColors"`
	Variations map[string]VariationSet `json:"variations"`
	FlatColors []string                `json:"flatColors"`
}

func NewPalette(name string) Palette {
	return Palette{
		Name:       name,
		BaseColors: []Color{},
		Variations: map[string]VariationSet{},
		FlatColors: []string{},
	}
}

// Clone deep-copies the palette so callers cannot reach into store state
func (palette Palette) Clone() Palette {
	clone := Palette{
		Name:       palette.Name,
		BaseColors: make([]Color, len(palette.BaseColors)),
		Variations: make(map[string]VariationSet, len(palette.Variations)),
		FlatColors: make([]string, len(palette.FlatColors)),
	}
	copy(clone.BaseColors, palette.BaseColors)
	copy(clone.FlatColors, palette.FlatColors)
	for id, vs := range palette.Variations {
		clone.Variations[id] = vs.Clone()
	}
	return clone
}

// IndexOf returns the position of the base color with the given id, or -1
func (palette Palette) IndexOf(id string) int {
	for i, color := range palette.BaseColors {
		if color.ID == id {
			return i
		}
	}
	return -1
}

// PaletteCollection is the persisted blob: every palette plus the active pointer
type PaletteCollection struct {
	Palettes          map[string]Palette `json:"palettes"`
	ActivePaletteName *string            `json:"activePaletteName"`
}

func NewPaletteCollection() PaletteCollection {
	return PaletteCollection{
		Palettes: map[string]Palette{},
	}
}

func (collection PaletteCollection) Serialize() ([]byte, error) {
	data, err := json.Marshal(collection)
	if err != nil {
		return []byte{}, fmt.Errorf("error encoding palette collection: %w", err)
	}
	return data, nil
}

func DeserializePaletteCollection(data []byte) (PaletteCollection, error) {
	var collection PaletteCollection
	if err := json.Unmarshal(data, &collection); err != nil {
		return PaletteCollection{}, fmt.Errorf("error decoding palette collection: %w", err)
	}
	if collection.Palettes == nil {
		collection.Palettes = map[string]Palette{}
	}
	return collection, nil
}
