package palette

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-game/palette/colors"
	"github.com/color-game/palette/datastore"
	"github.com/color-game/palette/models"
)

const (
	violet = "#8B5CF6"
	sky    = "#0EA5E9"
)

func TestAddColorScenario(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(20))

	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))
	assert.NotEmpty(t, store.GetFlatColors())
	assert.Contains(t, store.GetFlatColors(), violet)

	assert.False(t, store.AddColor(ctx, models.Color{ID: "nudge", Hex: "#8B5DF6"}))
	assert.True(t, store.AddColor(ctx, models.Color{ID: "sky", Hex: sky}))
	assert.Len(t, store.Colors(), 2)

	// after removing violet the flat list is exactly what sky alone contributes
	require.True(t, store.RemoveColor(ctx, "violet"))

	skyOnly, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(20))
	require.True(t, skyOnly.AddColor(ctx, models.Color{ID: "sky", Hex: sky}))

	assert.Equal(t, skyOnly.GetFlatColors(), store.GetFlatColors())
	_, ok := store.Variations("violet")
	assert.False(t, ok)
}

func TestAddColorDuplicateGate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		threshold float64
		hex       string
		want      bool
	}{
		{"exact duplicate", 20, violet, false},
		{"duplicate other case", 20, "#8b5cf6", false},
		{"duplicate without hash", 20, "8b5cf6", false},
		{"exact duplicate at zero threshold", 0, "#8b5cf6", false},
		{"near duplicate", 20, "#8B5DF6", false},
		{"near duplicate allowed at zero threshold", 0, "#8B5DF6", true},
		{"distant color", 20, sky, true},
		{"invalid hex", 20, "#12345", false},
		{"empty hex", 20, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(tt.threshold))
			require.True(t, store.AddColor(ctx, models.Color{ID: "base", Hex: violet}))

			assert.Equal(t, tt.want, store.AddColor(ctx, models.NewColor(tt.hex, "")))
		})
	}
}

func TestAddColorNeverAdmitsSimilarBaseColors(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(20))

	candidates := []string{
		violet, "#8B5DF6", sky, "#0EA5E8", "#10B981", "#F59E0B", "#EF4444",
		"#EE4545", "#6366F1", "#EC4899", "#111827", "#F9FAFB", "#FAFAFA",
	}
	for _, hex := range candidates {
		store.AddColor(ctx, models.NewColor(hex, ""))
	}

	base := store.Colors()
	for i := range base {
		for j := i + 1; j < len(base); j++ {
			assert.False(t, colors.AreSimilar(base[i].Hex, base[j].Hex, 20), "%s and %s", base[i].Hex, base[j].Hex)
		}
	}
}

func TestAddColorCanonicalizesAndFillsID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore())

	require.True(t, store.AddColor(ctx, models.Color{Hex: "0af", Name: "Azure"}))

	added := store.Colors()
	require.Len(t, added, 1)
	assert.Equal(t, "#00AAFF", added[0].Hex)
	assert.Equal(t, "Azure", added[0].Name)
	assert.NotEmpty(t, added[0].ID)

	vs, ok := store.Variations(added[0].ID)
	require.True(t, ok)
	assert.Equal(t, NewVariationSet("#00AAFF"), vs)
}

func TestAddColorRejectsDuplicateID(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore())

	require.True(t, store.AddColor(ctx, models.Color{ID: "c1", Hex: violet}))
	assert.False(t, store.AddColor(ctx, models.Color{ID: "c1", Hex: sky}))
}

func TestRemoveColor(t *testing.T) {
	ctx := context.Background()
	blobs := datastore.NewMemoryBlobStore()
	store, _ := newTestStore(t, blobs)
	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))

	assert.False(t, store.RemoveColor(ctx, "missing"))
	assert.Len(t, store.Colors(), 1)

	assert.True(t, store.RemoveColor(ctx, "violet"))
	assert.Empty(t, store.Colors())
	assert.Empty(t, store.GetFlatColors())

	saved := persisted(t, blobs)
	assert.Empty(t, saved.Palettes[DefaultPaletteName].BaseColors)
	assert.Empty(t, saved.Palettes[DefaultPaletteName].Variations)
}

func TestUpdateColor(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore())
	require.True(t, store.AddColor(ctx, models.Color{ID: "a", Hex: violet, Name: "Violet"}))
	require.True(t, store.AddColor(ctx, models.Color{ID: "b", Hex: sky, Name: "Sky"}))

	assert.True(t, store.UpdateColor(ctx, "a", "#10b981", "Emerald"))

	updated := store.Colors()
	assert.Equal(t, models.Color{ID: "a", Hex: "#10B981", Name: "Emerald"}, updated[0])
	vs, ok := store.Variations("a")
	require.True(t, ok)
	assert.Equal(t, NewVariationSet("#10B981"), vs)
	assert.Equal(t, FlatColors(store.ActivePalette(), store.SimilarityThreshold()), store.GetFlatColors())

	assert.False(t, store.UpdateColor(ctx, "missing", "#10b981", ""))
	assert.False(t, store.UpdateColor(ctx, "a", "green", ""))
}

func TestUpdateColorSkipsSimilarityGate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore())
	require.True(t, store.AddColor(ctx, models.Color{ID: "a", Hex: violet}))
	require.True(t, store.AddColor(ctx, models.Color{ID: "b", Hex: sky}))

	assert.True(t, store.UpdateColor(ctx, "b", violet, ""))

	base := store.Colors()
	assert.Equal(t, base[0].Hex, base[1].Hex)
}

func TestSetSimilarityThreshold(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(20))
	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))
	atTwenty := store.GetFlatColors()

	store.SetSimilarityThreshold(ctx, 0)
	assert.Equal(t, 0.0, store.SimilarityThreshold())
	atZero := store.GetFlatColors()
	assert.Greater(t, len(atZero), len(atTwenty))
	assert.Equal(t, FlatColors(store.ActivePalette(), 0), atZero)

	store.SetSimilarityThreshold(ctx, 500)
	assert.Equal(t, 50.0, store.SimilarityThreshold())
	assert.Less(t, len(store.GetFlatColors()), len(atTwenty))

	store.SetSimilarityThreshold(ctx, -1)
	assert.Equal(t, 0.0, store.SimilarityThreshold())
}

func TestSetSimilarityThresholdNaNKeepsGate(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(math.NaN()))
	assert.Equal(t, colors.DefaultThreshold, store.SimilarityThreshold())

	store.SetSimilarityThreshold(ctx, math.NaN())
	assert.Equal(t, colors.DefaultThreshold, store.SimilarityThreshold())

	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))
	assert.False(t, store.AddColor(ctx, models.Color{ID: "nudge", Hex: "#8B5DF6"}))
}

func TestSetSimilarityThresholdLeavesOtherPalettesStale(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore(), WithThreshold(20))
	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))
	cached := store.GetFlatColors()

	require.True(t, store.CreatePalette(ctx, "Other"))
	store.SetSimilarityThreshold(ctx, 0)

	stale, ok := store.Palette(DefaultPaletteName)
	require.True(t, ok)
	assert.Equal(t, cached, stale.FlatColors)

	// the next mutation of that palette refreshes it under the new threshold
	require.True(t, store.LoadPalette(ctx, DefaultPaletteName))
	require.True(t, store.AddColor(ctx, models.Color{ID: "sky", Hex: sky}))
	assert.Equal(t, FlatColors(store.ActivePalette(), 0), store.GetFlatColors())
}

func TestGetFlatColorsReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore())
	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))

	flat := store.GetFlatColors()
	flat[0] = "changed"

	assert.NotEqual(t, "changed", store.GetFlatColors()[0])
}
