package models

// PaletteExport is the full export / import document
type PaletteExport struct {
	Palette ExportedPalette `json:"palette"`
}

// ExportedPalette carries one palette plus its creation timestamp. CreatedAt is an
// ISO-8601 string and is informational only on import.
type ExportedPalette struct {
	Name       string                  `json:"name"`
	CreatedAt  string                  `json:"createdAt,omitempty"`
	BaseColors []Color                 `json:"baseColors"`
	Variations map[string]VariationSet `json:"variations"`
	FlatColors []string                `json:"flatColors"`
}
