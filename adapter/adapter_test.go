package adapter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c80k/immutablerelations/adapter"
	"github.com/c80k/immutablerelations/relerr"
)

type pair struct {
	x, y int
}

func pairAdapter() adapter.Adapter[pair] {
	eqX, hashX := adapter.Project(func(p pair) int { return p.x })
	eqY, hashY := adapter.Project(func(p pair) int { return p.y })
	return adapter.NewBinary[pair](eqX, hashX, eqY, hashY)
}

func TestBinaryAdapterRankAndEquality(t *testing.T) {
	a := pairAdapter()
	require.Equal(t, 2, a.Rank())

	p1, p2 := pair{1, 2}, pair{1, 2}
	p3 := pair{1, 3}

	assert.True(t, a.Equal(p1, p2))
	assert.False(t, a.Equal(p1, p3))
	assert.True(t, a.ItemEqual(p1, p3, 0))
	assert.False(t, a.ItemEqual(p1, p3, 1))
}

func TestBinaryAdapterHashAgreesWithEquality(t *testing.T) {
	a := pairAdapter()
	p1, p2 := pair{7, 9}, pair{7, 9}

	assert.Equal(t, a.ItemHash(p1, 0), a.ItemHash(p2, 0))
	assert.Equal(t, a.ItemHash(p1, 1), a.ItemHash(p2, 1))
}

func TestAdapterInvalidDimensionPanics(t *testing.T) {
	a := pairAdapter()
	p := pair{1, 2}

	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, relerr.Is(err, relerr.InvalidDimension))
	}()
	a.ItemHash(p, 5)
}

func TestNewNRejectsMismatchedLengths(t *testing.T) {
	defer func() {
		r := recover()
		require.NotNil(t, r)
		err, ok := r.(error)
		require.True(t, ok)
		assert.True(t, relerr.Is(err, relerr.InvalidArgument))
	}()
	adapter.NewN[int](
		[]func(a, b int) bool{func(a, b int) bool { return a == b }},
		nil,
	)
}

func TestNewTernaryRank(t *testing.T) {
	eq, hash := adapter.Project(func(x int) int { return x })
	a := adapter.NewTernary[[3]int](
		func(x, y [3]int) bool { return x[0] == y[0] },
		func(x [3]int) uint64 { return hash(x[0]) },
		func(x, y [3]int) bool { return x[1] == y[1] },
		func(x [3]int) uint64 { return hash(x[1]) },
		func(x, y [3]int) bool { return x[2] == y[2] },
		func(x [3]int) uint64 { return hash(x[2]) },
	)
	require.Equal(t, 3, a.Rank())
	_ = eq
}

func TestUnaryAdapterActsLikeHashSet(t *testing.T) {
	eq, hash := adapter.Project(func(s string) string { return s })
	a := adapter.NewUnary[string](eq, hash)

	require.Equal(t, 1, a.Rank())
	assert.True(t, a.Equal("x", "x"))
	assert.False(t, a.Equal("x", "y"))
}
