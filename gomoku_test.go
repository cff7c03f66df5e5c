package gomoku

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/gomokucore/engine/internal/types"
)

func TestFirstMoveMustBeCentre(t *testing.T) {
	s := NewState(19, 5, 5)
	moves := s.LegalMoves()
	require.Len(t, moves, 1)
	assert.Equal(t, [2]int{9, 9}, moves[0])
}

func TestMakeUndoRoundTrip(t *testing.T) {
	s := NewState(19, 5, 5)
	require.NoError(t, s.Make(9, 9))
	assert.Equal(t, Max, s.Get(9, 9))
	require.NoError(t, s.Undo())
	assert.Equal(t, NoPlayer, s.Get(9, 9))
	assert.Equal(t, ErrNoHistory, s.Undo())
}

func TestMakeOccupiedCellIsIllegal(t *testing.T) {
	s := NewState(19, 5, 5)
	require.NoError(t, s.Make(9, 9))
	assert.ErrorIs(t, s.Make(9, 9), ErrIllegalMove)
}

func TestCaptureRemovesStonesAndCreditsPair(t *testing.T) {
	s := NewState(19, 5, 5)
	require.NoError(t, s.Make(9, 9))   // Max
	require.NoError(t, s.Make(9, 10))  // Min
	require.NoError(t, s.Make(0, 0))   // Max filler
	require.NoError(t, s.Make(9, 11))  // Min
	require.NoError(t, s.Make(9, 12))  // Max captures

	assert.Equal(t, NoPlayer, s.Get(9, 10))
	assert.Equal(t, NoPlayer, s.Get(9, 11))
	maxCaps, _ := s.Captures()
	assert.Equal(t, 1, maxCaps)

	require.NoError(t, s.Undo())
	assert.Equal(t, Min, s.Get(9, 10))
	assert.Equal(t, Min, s.Get(9, 11))
	maxCaps, _ = s.Captures()
	assert.Equal(t, 0, maxCaps)
}

func TestSearchFindsImmediateWin(t *testing.T) {
	s := NewState(19, 5, 5)
	require.NoError(t, s.Make(9, 9))
	require.NoError(t, s.Make(0, 0))
	require.NoError(t, s.Make(9, 10))
	require.NoError(t, s.Make(0, 1))
	require.NoError(t, s.Make(9, 11))
	require.NoError(t, s.Make(0, 2))
	require.NoError(t, s.Make(9, 12))
	require.NoError(t, s.Make(0, 3))

	e := NewEngine(19)
	res := e.Search(s, Limits{Depth: 2, Workers: 1})
	require.True(t, res.HasBestMove)
	assert.True(t, res.BestMove == [2]int{9, 8} || res.BestMove == [2]int{9, 13})
}

func TestSearchMustBlock(t *testing.T) {
	s := NewState(19, 5, 5)
	require.NoError(t, s.Make(0, 0)) // Max fillers in the four corners form no line
	require.NoError(t, s.Make(7, 6))
	require.NoError(t, s.Make(0, 18))
	require.NoError(t, s.Make(7, 7))
	require.NoError(t, s.Make(18, 0))
	require.NoError(t, s.Make(7, 8))
	require.NoError(t, s.Make(18, 18))
	require.NoError(t, s.Make(7, 9))

	e := NewEngine(19)
	res := e.Search(s, Limits{Depth: 2, Workers: 1})
	require.True(t, res.HasBestMove)
	assert.True(t, res.BestMove == [2]int{7, 5} || res.BestMove == [2]int{7, 10})
}

func TestDoubleThreeExcludedFromLegalMoves(t *testing.T) {
	s := NewState(19, 5, 5)
	require.NoError(t, s.Make(9, 7))   // Max
	require.NoError(t, s.Make(0, 0))   // Min filler (corners, no line)
	require.NoError(t, s.Make(9, 8))   // Max
	require.NoError(t, s.Make(0, 18))  // Min filler
	require.NoError(t, s.Make(7, 9))   // Max
	require.NoError(t, s.Make(18, 0))  // Min filler
	require.NoError(t, s.Make(8, 9))   // Max
	require.NoError(t, s.Make(18, 18)) // Min filler

	for _, m := range s.LegalMoves() {
		assert.NotEqual(t, [2]int{9, 9}, m, "double-three cell must be excluded")
	}
}

func TestTTClearAndStats(t *testing.T) {
	s := NewState(19, 5, 5)
	e := NewEngine(19)
	e.Search(s, Limits{Depth: 2, Workers: 1})
	assert.Greater(t, e.TTStats().Size, uint64(0))
	e.TTClear()
	assert.Equal(t, uint64(0), e.TTStats().Size)
}
