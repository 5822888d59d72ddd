package colors

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestColorDistance(t *testing.T) {
	d, err := ColorDistance("#8B5CF6", "#8b5cf6")
	require.NoError(t, err)
	assert.InDelta(t, 0, d, 1e-9)

	near, err := ColorDistance("#8B5CF6", "#8B5DF6")
	require.NoError(t, err)
	assert.Less(t, near, 2.0)

	far, err := ColorDistance("#8B5CF6", "#0EA5E9")
	require.NoError(t, err)
	assert.Greater(t, far, 20.0)

	extreme, err := ColorDistance("#000000", "#ffffff")
	require.NoError(t, err)
	assert.InDelta(t, 100, extreme, 1)

	_, err = ColorDistance("#8B5CF6", "purple")
	assert.ErrorIs(t, err, ErrInvalidHex)
}

func TestAreSimilar(t *testing.T) {
	assert.True(t, AreSimilar("#8B5CF6", "#8B5DF6", 20))
	assert.False(t, AreSimilar("#8B5CF6", "#0EA5E9", 20))
	assert.False(t, AreSimilar("#8B5CF6", "#8B5CF6", 0))
	assert.False(t, AreSimilar("#8B5CF6", "not-a-color", 50))
	assert.False(t, AreSimilar("", "", 50))
}

func TestAreSimilarIsSymmetric(t *testing.T) {
	samples := []string{"#8B5CF6", "#8B5DF6", "#0EA5E9", "#ff002b", "#00ffd4", "#808080", "#7f7f7f", "bogus"}
	thresholds := []float64{0, 1, 5, 20, 50}

	for _, a := range samples {
		for _, b := range samples {
			for _, th := range thresholds {
				assert.Equal(t, AreSimilar(a, b, th), AreSimilar(b, a, th), "%s vs %s at %v", a, b, th)
			}
		}
	}
}

func TestClampThreshold(t *testing.T) {
	assert.Equal(t, 0.0, ClampThreshold(-3))
	assert.Equal(t, 12.5, ClampThreshold(12.5))
	assert.Equal(t, 50.0, ClampThreshold(90))
	assert.Equal(t, 50.0, ClampThreshold(math.Inf(1)))
	assert.Equal(t, 0.0, ClampThreshold(math.Inf(-1)))
	assert.Equal(t, DefaultThreshold, ClampThreshold(math.NaN()))
}
