package colors

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// Threshold bounds for the similarity slider
const (
	MinThreshold     = 0.0
	MaxThreshold     = 50.0
	DefaultThreshold = 20.0
)

// deltaEScale converts go-colorful's unit-L Lab distances to the usual 0-100 Delta E scale
const deltaEScale = 100

func toColorful(hex string) (colorful.Color, error) {
	canonical, err := Canonical(hex)
	if err != nil {
		return colorful.Color{}, err
	}
	rgb := HexToRGB(canonical)
	return colorful.Color{
		R: float64(rgb.R) / 255,
		G: float64(rgb.G) / 255,
		B: float64(rgb.B) / 255,
	}, nil
}

// ColorDistance returns the CIE76 Delta E between two colors, the Euclidean
// distance in CIELAB (D65). Values below ~2 are barely perceptible, above ~20
// clearly different; black to white is 100.
func ColorDistance(a, b string) (float64, error) {
	ca, err := toColorful(a)
	if err != nil {
		return 0, err
	}
	cb, err := toColorful(b)
	if err != nil {
		return 0, err
	}

	return ca.DistanceLab(cb) * deltaEScale, nil
}

// AreSimilar reports whether two colors are closer than threshold. Invalid hex
// input is never similar to anything.
func AreSimilar(a, b string, threshold float64) bool {
	distance, err := ColorDistance(a, b)
	if err != nil {
		return false
	}
	return distance < threshold
}

// ClampThreshold keeps a threshold inside [MinThreshold, MaxThreshold]. NaN
// becomes DefaultThreshold.
func ClampThreshold(threshold float64) float64 {
	if math.IsNaN(threshold) {
		return DefaultThreshold
	}
	if threshold < MinThreshold {
		return MinThreshold
	}
	if threshold > MaxThreshold {
		return MaxThreshold
	}
	return threshold
}
