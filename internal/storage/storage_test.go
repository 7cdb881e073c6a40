package storage

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consav/internal/sim"
)

func sampleResult() *sim.Result {
	return &sim.Result{
		Periods: 4,
		Series: map[string][]float64{
			"cNrm": {0.9, 0.91, 0.92, 0.93},
			"mNrm": {1.5, 1.52, 1.48, 1.51},
		},
		Metrics: map[string]float64{
			"cNrm_mean": 0.915,
			"mNrm_mean": 1.5025,
		},
	}
}

func TestSaveAndLoad(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runID, err := store.Save("repagent", 42, 137, sampleResult())
	require.NoError(t, err)
	assert.Contains(t, runID, "repagent_")

	meta, err := store.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "repagent", meta.Model)
	assert.Equal(t, int64(42), meta.Seed)
	assert.Equal(t, 4, meta.Periods)
	assert.Equal(t, 137, meta.SolveIters)
	assert.Equal(t, 0.915, meta.Metrics["cNrm_mean"])
}

func TestLoadSeriesRoundtrip(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	want := sampleResult()
	runID, err := store.Save("repagent", 1, 10, want)
	require.NoError(t, err)

	got, err := store.LoadSeries(runID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for name, series := range want.Series {
		require.Len(t, got[name], len(series), "series %s", name)
		for i := range series {
			// Values roundtrip through fixed six-decimal CSV formatting.
			assert.InDelta(t, series[i], got[name][i], 1e-6)
		}
	}
}

func TestList(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = store.Save("indshock", 7, 50, sampleResult())
	require.NoError(t, err)

	runs, err = store.List()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "indshock", runs[0].Model)
}

func TestListMissingBaseDir(t *testing.T) {
	store := New(t.TempDir() + "/never-created")
	runs, err := store.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestLoadUnknownRun(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	_, err := store.Load("repagent_0")
	assert.Error(t, err)
	_, err = store.LoadSeries("repagent_0")
	assert.Error(t, err)
}

func TestSaveRaggedSeries(t *testing.T) {
	store := New(t.TempDir())
	require.NoError(t, store.Init())

	result := &sim.Result{
		Periods: 3,
		Series: map[string][]float64{
			"cNrm": {0.5, 0.6},
			"mNrm": {1.0, 1.1, 1.2},
		},
		Metrics: map[string]float64{},
	}
	runID, err := store.Save("repagent", 0, 1, result)
	require.NoError(t, err)

	got, err := store.LoadSeries(runID)
	require.NoError(t, err)
	assert.Len(t, got["cNrm"], 2)
	assert.Len(t, got["mNrm"], 3)
	assert.False(t, math.IsNaN(got["mNrm"][2]))
}
