package storage

import (
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/san-kum/orbitals/internal/cloud"
	"github.com/san-kum/orbitals/internal/quantum"
)

func testRun(t *testing.T, label string, n int) Run {
	t.Helper()
	st := quantum.ByLabel(label)
	require.NotNil(t, st)

	opts := cloud.DefaultOptions()
	req := cloud.RequestFor(*st, n, 0.05)
	rep, err := cloud.NewSeeded(42, opts).GenerateReport(context.Background(), req)
	require.NoError(t, err)
	return Run{State: *st, Seed: 42, Request: req, Options: opts, Report: rep}
}

func TestStoreSaveLoad(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	run := testRun(t, "2pz", 300)
	runID, err := st.Save(run)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "2pz_"))

	meta, err := st.Load(runID)
	require.NoError(t, err)
	assert.Equal(t, runID, meta.ID)
	assert.Equal(t, "2pz", meta.State.Label)
	assert.Equal(t, uint64(42), meta.Seed)
	assert.Equal(t, run.Request, meta.Request)
	assert.Equal(t, run.Report.Attempts, meta.Attempts)
	assert.Equal(t, 300, meta.Summary.Count)

	points, err := st.LoadPoints(runID)
	require.NoError(t, err)
	require.Len(t, points, 300)
	assert.InDelta(t, run.Report.Points[0].Probability, points[0].Probability, 1e-6)
}

func TestStoreList(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)

	_, err = st.Save(testRun(t, "1s", 50))
	require.NoError(t, err)
	_, err = st.Save(testRun(t, "3dxy", 50))
	require.NoError(t, err)

	runs, err = st.List()
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.False(t, runs[0].Timestamp.Before(runs[1].Timestamp), "newest first")
}

func TestStoreListMissingDir(t *testing.T) {
	runs, err := New(filepath.Join(t.TempDir(), "absent")).List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreFileStructure(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	runID, err := st.Save(testRun(t, "3dz²", 20))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(runID, "3dz2_"))

	runDir := filepath.Join(tmpDir, runID)
	assert.FileExists(t, filepath.Join(runDir, "metadata.json"))
	assert.FileExists(t, filepath.Join(runDir, "points.csv"))
}

func TestStoreSaveFailureLeavesNoRun(t *testing.T) {
	dir := t.TempDir()
	st := New(dir)
	require.NoError(t, st.Init())

	run := testRun(t, "1s", 50)
	run.Options.Oversample = math.NaN()
	_, err := st.Save(run)
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)

	runs, err := st.List()
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestStoreNotFound(t *testing.T) {
	st := New(t.TempDir())
	require.NoError(t, st.Init())

	_, err := st.Load("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
	_, err = st.LoadPoints("nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
	assert.ErrorIs(t, st.Delete("nope"), ErrRunNotFound)

	for _, bad := range []string{"", "..", "../etc", "a/b"} {
		_, err := st.Load(bad)
		assert.ErrorIs(t, err, ErrRunNotFound, bad)
	}
}

func TestStoreDelete(t *testing.T) {
	tmpDir := t.TempDir()
	st := New(tmpDir)
	require.NoError(t, st.Init())

	runID, err := st.Save(testRun(t, "2s", 10))
	require.NoError(t, err)
	require.NoError(t, st.Delete(runID))

	_, err = os.Stat(filepath.Join(tmpDir, runID))
	assert.True(t, os.IsNotExist(err))
}
