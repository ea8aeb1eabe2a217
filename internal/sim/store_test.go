package sim

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_AddRemoveClear(t *testing.T) {
	s := NewStore(nil)
	assert.Equal(t, 0, s.Len())

	s.Add(19.40, -99.15)
	s.Add(19.41, -99.16)
	s.Add(19.42, -99.17)
	require.Equal(t, 3, s.Len())

	// removal shifts later indices down
	require.NoError(t, s.RemoveAt(0))
	assert.Equal(t, 2, s.Len())
	assert.InDelta(t, 19.41, s.Proposals()[0].Lat, 1e-9)

	assert.Error(t, s.RemoveAt(5))
	assert.Error(t, s.RemoveAt(-1))
	assert.Equal(t, 2, s.Len())

	s.Clear()
	assert.Equal(t, 0, s.Len())

	// no operation panics on an empty store
	s.Clear()
	assert.Error(t, s.RemoveAt(0))
	s.ApplyCoverageToLast(50)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ChangeHookFiresOnEveryMutation(t *testing.T) {
	calls := 0
	s := NewStore(func() { calls++ })

	s.Add(1, 2)
	require.NoError(t, s.RemoveAt(0))
	s.Add(1, 2)
	_, _, err := s.EvaluateLast()
	require.NoError(t, err)
	s.ApplyCoverageToLast(90)
	s.Clear()

	assert.Equal(t, 6, calls)
}

func TestStore_EvaluateLast(t *testing.T) {
	s := NewStore(nil)

	_, _, err := s.EvaluateLast()
	assert.ErrorIs(t, err, ErrEmptyStore)

	s.Add(19.40, -99.15)
	s.ApplyCoverageToLast(95)
	require.True(t, s.Proposals()[0].Evaluated())

	// re-evaluation resets the last proposal to pending
	lat, lng, err := s.EvaluateLast()
	require.NoError(t, err)
	assert.InDelta(t, 19.40, lat, 1e-9)
	assert.InDelta(t, -99.15, lng, 1e-9)
	assert.False(t, s.Proposals()[0].Evaluated())
}

func TestStore_ApplyCoverageToLastRejectsNonFinite(t *testing.T) {
	s := NewStore(nil)
	s.Add(1, 2)

	s.ApplyCoverageToLast(math.NaN())
	assert.False(t, s.Proposals()[0].Evaluated())

	s.ApplyCoverageToLast(math.Inf(1))
	assert.False(t, s.Proposals()[0].Evaluated())

	s.ApplyCoverageToLast(87.5)
	require.True(t, s.Proposals()[0].Evaluated())
	assert.InDelta(t, 87.5, *s.Proposals()[0].Coverage, 1e-9)
}

func TestStore_GoodProposals(t *testing.T) {
	s := NewStore(nil)

	// coverages: nil, 79.9, 80, 95
	s.Add(1, 1)
	s.Add(2, 2)
	s.ApplyCoverageToLast(79.9)
	s.Add(3, 3)
	s.ApplyCoverageToLast(80)
	s.Add(4, 4)
	s.ApplyCoverageToLast(95)

	good := s.GoodProposals(80)
	require.Len(t, good, 2)
	assert.InDelta(t, 3.0, good[0].Lat, 1e-9)
	assert.InDelta(t, 80.0, good[0].Coverage, 1e-9)
	assert.InDelta(t, 4.0, good[1].Lat, 1e-9)
	assert.InDelta(t, 95.0, good[1].Coverage, 1e-9)

	assert.Empty(t, s.GoodProposals(200))
}
