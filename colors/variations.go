package colors

// Hue offsets in degrees for each harmony family
var (
	AnalogousOffsets          = []float64{-60, -30, 0, 30, 60}
	TriadicOffsets            = []float64{0, 120, 240}
	SquareOffsets             = []float64{0, 90, 180, 270}
	TetradicOffsets           = []float64{0, 60, 180, 240}
	SplitComplementaryOffsets = []float64{0, 150, 210}
)

// GenerateTints returns count colors stepping the base lightness evenly toward
// white. Neither the base nor white itself is part of the result.
func GenerateTints(base string, count int) []string {
	if count <= 0 {
		return []string{}
	}

	hsl := HexToHSL(base)
	tints := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		fraction := float64(i) / float64(count+1)
		lightness := float64(hsl.L) + float64(100-hsl.L)*fraction
		tints = append(tints, HSLToHex(float64(hsl.H), float64(hsl.S), lightness))
	}

	return tints
}

// GenerateShades mirrors GenerateTints, stepping toward black.
func GenerateShades(base string, count int) []string {
	if count <= 0 {
		return []string{}
	}

	hsl := HexToHSL(base)
	shades := make([]string, 0, count)
	for i := 1; i <= count; i++ {
		fraction := float64(i) / float64(count+1)
		lightness := float64(hsl.L) - float64(hsl.L)*fraction
		shades = append(shades, HSLToHex(float64(hsl.H), float64(hsl.S), lightness))
	}

	return shades
}

// rotate keeps saturation and lightness and emits one color per hue offset
func rotate(base string, offsets []float64) []string {
	hsl := HexToHSL(base)
	out := make([]string, 0, len(offsets))
	for _, offset := range offsets {
		out = append(out, HSLToHex(float64(hsl.H)+offset, float64(hsl.S), float64(hsl.L)))
	}
	return out
}

// GenerateAnalogous returns 5 colors fanned 30 degrees apart around the base hue
func GenerateAnalogous(base string) []string {
	return rotate(base, AnalogousOffsets)
}

// GenerateComplementary returns the base itself followed by its 180 degree complement
func GenerateComplementary(base string) []string {
	return append([]string{base}, rotate(base, []float64{180})...)
}

func GenerateTriadic(base string) []string {
	return rotate(base, TriadicOffsets)
}

func GenerateSquare(base string) []string {
	return rotate(base, SquareOffsets)
}

// GenerateTetradic returns a rectangular tetrad: two complementary pairs 60 degrees apart
func GenerateTetradic(base string) []string {
	return rotate(base, TetradicOffsets)
}

// GenerateSplitComplementary returns the base hue and the two hues adjacent to its complement
func GenerateSplitComplementary(base string) []string {
	return rotate(base, SplitComplementaryOffsets)
}
