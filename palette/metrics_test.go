package palette

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/color-game/palette/datastore"
	"github.com/color-game/palette/models"
)

func TestMetrics(t *testing.T) {
	ctx := context.Background()
	reg := prometheus.NewRegistry()
	metrics := NewMetrics(reg)
	blobs := newFlakyBlobStore()
	store, _ := newTestStore(t, blobs, WithMetrics(metrics))

	require.True(t, store.AddColor(ctx, models.Color{ID: "violet", Hex: violet}))
	require.False(t, store.AddColor(ctx, models.Color{ID: "nudge", Hex: "#8B5DF6"}))
	require.False(t, store.RemoveColor(ctx, "missing"))
	_, err := store.ImportFromJSON(ctx, []byte("nope"))
	require.Error(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("add_color", resultOK)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("add_color", resultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("remove_color", resultRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.operations.WithLabelValues("import", resultError)))
	assert.Equal(t, float64(len(store.GetFlatColors())), testutil.ToFloat64(metrics.flatColors))

	blobs.putErr = errors.New("disk full")
	require.True(t, store.CreatePalette(ctx, "Second"))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.persistFailures))
	assert.Equal(t, 0.0, testutil.ToFloat64(metrics.flatColors))

	count, err := testutil.GatherAndCount(reg, "palette_operations_total", "palette_persist_failures_total", "palette_flat_colors")
	require.NoError(t, err)
	assert.Equal(t, 7, count)
}

func TestNilMetricsRecordNothing(t *testing.T) {
	var metrics *Metrics

	assert.NotPanics(t, func() {
		metrics.observe("add_color", true)
		metrics.observeError("import")
		metrics.persistFailed()
		metrics.setFlatColors(3)
	})
}

func TestStoreWithoutMetrics(t *testing.T) {
	store, _ := newTestStore(t, datastore.NewMemoryBlobStore())

	assert.True(t, store.AddColor(context.Background(), models.Color{ID: "violet", Hex: violet}))
}
