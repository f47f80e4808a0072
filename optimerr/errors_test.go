package optimerr_test

import (
	"errors"
	"testing"

	"github.com/katalvlaran/optimcore/optimerr"
	"github.com/stretchr/testify/require"
)

func TestErrorIsSentinel(t *testing.T) {
	err := optimerr.New(optimerr.NonInvertible, "singular at pivot 2")
	require.True(t, errors.Is(err, optimerr.ErrNonInvertible))
	require.Equal(t, optimerr.NonInvertible, optimerr.KindOf(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("boom")
	err := optimerr.Wrap(optimerr.CheckpointCorrupt, "bad envelope", cause)
	require.True(t, errors.Is(err, optimerr.ErrCheckpointCorrupt))
	require.True(t, errors.Is(err, cause))
}

func TestKindOfNonOptimerrError(t *testing.T) {
	require.Equal(t, optimerr.Other, optimerr.KindOf(errors.New("plain")))
}

func TestKindString(t *testing.T) {
	require.Equal(t, "NonInvertible", optimerr.NonInvertible.String())
	require.Equal(t, "Other", optimerr.Other.String())
}
