package checkpoint_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/katalvlaran/optimcore/checkpoint"
	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/stretchr/testify/require"
)

type samplePayload struct {
	Iter  int
	Param []float64
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	cp := checkpoint.New(dir, "run")

	want := samplePayload{Iter: 21, Param: []float64{1.5, -2.5}}
	encoded, err := checkpoint.EncodeGob(want)
	require.NoError(t, err)
	require.NoError(t, cp.Save(encoded))

	raw, err := cp.Load()
	require.NoError(t, err)

	var got samplePayload
	require.NoError(t, checkpoint.DecodeGob(raw, &got))
	require.Equal(t, want, got)
}

func TestLoadMissingFileNotFound(t *testing.T) {
	dir := t.TempDir()
	cp := checkpoint.New(dir, "missing")
	_, err := cp.Load()
	require.Error(t, err)
	require.Equal(t, optimerr.CheckpointNotFound, optimerr.KindOf(err))
}

func TestLoadCorruptFileSurfacesCheckpointCorrupt(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.ckpt"), []byte("not a checkpoint"), 0o644))
	cp := checkpoint.New(dir, "bad")
	_, err := cp.Load()
	require.Error(t, err)
	require.Equal(t, optimerr.CheckpointCorrupt, optimerr.KindOf(err))
}

func TestFrequencyFires(t *testing.T) {
	require.True(t, checkpoint.Always().Fires(1))
	require.False(t, checkpoint.Never().Fires(1))
	require.True(t, checkpoint.Every(20).Fires(20))
	require.False(t, checkpoint.Every(20).Fires(21))
}
