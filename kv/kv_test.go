package kv_test

import (
	"testing"

	"github.com/katalvlaran/optimcore/kv"
	"github.com/stretchr/testify/require"
)

func TestSetPreservesOrderAndOverwrites(t *testing.T) {
	l := kv.New()
	l.Set("cost", 1.0).Set("iter", 1).Set("cost", 0.5)
	pairs := l.Pairs()
	require.Len(t, pairs, 2)
	require.Equal(t, "cost", pairs[0].Name)
	require.Equal(t, 0.5, pairs[0].Value)
	require.Equal(t, "iter", pairs[1].Name)
}

func TestMergeAppendsInOrder(t *testing.T) {
	a := kv.New().Set("cost", 1.0)
	b := kv.New().Set("iter", 2).Set("cost", 0.1)
	a.Merge(b)
	v, ok := a.Get("cost")
	require.True(t, ok)
	require.Equal(t, 0.1, v)
	v, ok = a.Get("iter")
	require.True(t, ok)
	require.Equal(t, 2, v)
}

func TestAsMap(t *testing.T) {
	l := kv.New().Set("a", 1).Set("b", 2)
	m := l.AsMap()
	require.Equal(t, 1, m["a"])
	require.Equal(t, 2, m["b"])
}
