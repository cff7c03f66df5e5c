package movegen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomokucore/engine/internal/bitboard"
	"github.com/gomokucore/engine/internal/position"
	. "github.com/gomokucore/engine/internal/types"
)

func newTestState(n int) *position.GameState {
	return position.NewGameState(n, 5, 5, bitboard.NewZobrist(n))
}

func TestEmptyBoardOnlyCentre(t *testing.T) {
	gs := newTestState(19)
	moves := LegalMoves(gs)
	require.Len(t, moves, 1)
	r, c := moves[0].RowCol(19)
	assert.Equal(t, 9, r)
	assert.Equal(t, 9, c)
}

func TestImmediateWinDetected(t *testing.T) {
	gs := newTestState(19)
	require.NoError(t, gs.Make(9, 9))   // Max
	require.NoError(t, gs.Make(0, 0))   // Min
	require.NoError(t, gs.Make(9, 10))  // Max
	require.NoError(t, gs.Make(0, 1))   // Min
	require.NoError(t, gs.Make(9, 11))  // Max
	require.NoError(t, gs.Make(0, 2))   // Min
	require.NoError(t, gs.Make(9, 12))  // Max: 9,9..9,12 four in a row, open both ends
	require.NoError(t, gs.Make(0, 3))   // Min

	moves := LegalMoves(gs) // Max to move
	set := map[Square]bool{}
	for _, m := range moves {
		set[m] = true
	}
	assert.True(t, set[Square(9*19+8)] || set[Square(9*19+13)], "expected a winning completion at (9,8) or (9,13), got %v", moves)
}

func TestMustBlock(t *testing.T) {
	gs := newTestState(19)
	// Min stones at (7,6..9), empty otherwise; side to move = Max.
	// Build via explicit alternation, letting Max play filler moves far away.
	// The fillers sit in the four corners so they form no line of their own.
	require.NoError(t, gs.Make(0, 0))   // Max filler
	require.NoError(t, gs.Make(7, 6))   // Min
	require.NoError(t, gs.Make(0, 18))  // Max filler
	require.NoError(t, gs.Make(7, 7))   // Min
	require.NoError(t, gs.Make(18, 0))  // Max filler
	require.NoError(t, gs.Make(7, 8))   // Min
	require.NoError(t, gs.Make(18, 18)) // Max filler
	require.NoError(t, gs.Make(7, 9))   // Min

	moves := LegalMoves(gs) // Max to move, must block Min's open four-threat
	set := map[Square]bool{}
	for _, m := range moves {
		set[m] = true
	}
	assert.True(t, set[Square(7*19+5)] || set[Square(7*19+10)], "expected a block at (7,5) or (7,10), got %v", moves)
}

func TestDoubleThreeDetectedAndFiltered(t *testing.T) {
	gs := newTestState(19)
	// Max stones forming two potential live-threes crossing at (9,9) if
	// Max plays there: a horizontal pair and a vertical pair, both open.
	require.NoError(t, gs.Make(9, 7))   // Max
	require.NoError(t, gs.Make(0, 0))   // Min filler (corners, no line)
	require.NoError(t, gs.Make(9, 8))   // Max
	require.NoError(t, gs.Make(0, 18))  // Min filler
	require.NoError(t, gs.Make(7, 9))   // Max
	require.NoError(t, gs.Make(18, 0))  // Min filler
	require.NoError(t, gs.Make(8, 9))   // Max
	require.NoError(t, gs.Make(18, 18)) // Min filler

	// Now Max to move at (9,9) would complete horizontal 9,7-9,8-9,9 (live
	// three, both ends open) AND vertical 7,9-8,9-9,9 (live three, both
	// ends open): a double-three.
	assert.True(t, IsDoubleThree(gs, Max, 9, 9))

	moves := LegalMoves(gs)
	for _, m := range moves {
		assert.NotEqual(t, Square(9*19+9), m, "double-three cell must be excluded from candidates")
	}
}
