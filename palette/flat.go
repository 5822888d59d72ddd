package palette

import (
	"sort"

	"github.com/color-game/palette/colors"
	"github.com/color-game/palette/models"
)

// Sizes of the tint and shade ramps generated per base color
const (
	TintCount  = 5
	ShadeCount = 5
)

// familySizes lists the length of each family NewVariationSet produces, in
// VariationSet.Families order
var familySizes = []int{
	TintCount,
	ShadeCount,
	len(colors.AnalogousOffsets),
	2,
	len(colors.TriadicOffsets),
	len(colors.SquareOffsets),
	len(colors.TetradicOffsets),
	len(colors.SplitComplementaryOffsets),
}

// wellFormed reports whether every family is present with its generated size.
// Stored or imported sets failing this are regenerated.
func wellFormed(vs models.VariationSet) bool {
	for i, family := range vs.Families() {
		if len(family) != familySizes[i] {
			return false
		}
	}
	return true
}

// NewVariationSet derives every family for a base color
func NewVariationSet(hex string) models.VariationSet {
	return models.VariationSet{
		Tints:              colors.GenerateTints(hex, TintCount),
		Shades:             colors.GenerateShades(hex, ShadeCount),
		Analogous:          colors.GenerateAnalogous(hex),
		Complementary:      colors.GenerateComplementary(hex),
		Triadic:            colors.GenerateTriadic(hex),
		Square:             colors.GenerateSquare(hex),
		Tetradic:           colors.GenerateTetradic(hex),
		SplitComplementary: colors.GenerateSplitComplementary(hex),
	}
}

// FlatColors builds the deduplicated flat list for a palette.
//
// Candidates are every base hex followed by its variation hexes, in base color
// order, uppercased and deduplicated exactly. They are stably sorted by HSL
// lightness, then kept greedily: a candidate survives only if it is not similar
// to any candidate already kept. The result depends on that order.
func FlatColors(palette models.Palette, threshold float64) []string {
	seen := make(map[string]bool)
	candidates := []string{}

	add := func(hex string) {
		canonical, err := colors.Canonical(hex)
		if err != nil || seen[canonical] {
			return
		}
		seen[canonical] = true
		candidates = append(candidates, canonical)
	}

	for _, color := range palette.BaseColors {
		add(color.Hex)
		vs, ok := palette.Variations[color.ID]
		if !ok {
			continue
		}
		for _, family := range vs.Families() {
			for _, hex := range family {
				add(hex)
			}
		}
	}

	lightness := make(map[string]int, len(candidates))
	for _, hex := range candidates {
		lightness[hex] = colors.HexToHSL(hex).L
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return lightness[candidates[i]] < lightness[candidates[j]]
	})

	kept := make([]string, 0, len(candidates))
	for _, hex := range candidates {
		similar := false
		for _, existing := range kept {
			if colors.AreSimilar(hex, existing, threshold) {
				similar = true
				break
			}
		}
		if !similar {
			kept = append(kept, hex)
		}
	}

	return kept
}
