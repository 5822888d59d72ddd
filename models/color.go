package models

import (
	"github.com/google/uuid"
)

// Color is a base color tracked by a palette
type Color struct {
	ID   string `json:"id"`
	Hex  string `json:"hex"`
	Name string `json:"name,omitempty"`
}

func (color Color) GenerateKey() string {
	return uuid.New().String()
}

// NewColor builds a color with a fresh id. The hex is stored as given; the
// palette store validates and canonicalizes it on add.
func NewColor(hex, name string) Color {
	var color Color
	return Color{
		ID:   color.GenerateKey(),
		Hex:  hex,
		Name: name,
	}
}

// VariationSet is the derived bundle of tints, shades and harmonies for one base color.
// A nil family means it was missing from stored data and must be regenerated.
type VariationSet struct {
	Tints              []string `json:"tints"`
	Shades             []string `json:"shades"`
	Analogous          []string `json:"analogous"`
	Complementary      []string `json:"complementary"`
	Triadic            []string `json:"triadic"`
	Square             []string `json:"square"`
	Tetradic           []string `json:"tetradic"`
	SplitComplementary []string `json:"splitComplementary"`
}

// Families returns every family in display order
func (vs VariationSet) Families() [][]string {
	return [][]string{
		vs.Tints,
		vs.Shades,
		vs.Analogous,
		vs.Complementary,
		vs.Triadic,
		vs.Square,
		vs.Tetradic,
		vs.SplitComplementary,
	}
}

// Complete reports whether all families are present. Sets written before the
// square/tetradic/split-complementary harmonies existed are incomplete.
func (vs VariationSet) Complete() bool {
	for _, family := range vs.Families() {
		if family == nil {
			return false
		}
	}
	return true
}

// Clone deep-copies the set
func (vs VariationSet) Clone() VariationSet {
	return VariationSet{
		Tints:              cloneStrings(vs.Tints),
		Shades:             cloneStrings(vs.Shades),
		Analogous:          cloneStrings(vs.Analogous),
		Complementary:      cloneStrings(vs.Complementary),
		Triadic:            cloneStrings(vs.Triadic),
		Square:             cloneStrings(vs.Square),
		Tetradic:           cloneStrings(vs.Tetradic),
		SplitComplementary: cloneStrings(vs.SplitComplementary),
	}
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
