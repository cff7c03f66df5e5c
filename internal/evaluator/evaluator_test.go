package evaluator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gomokucore/engine/internal/bitboard"
	"github.com/gomokucore/engine/internal/position"
	. "github.com/gomokucore/engine/internal/types"
)

func newTestState(n int) *position.GameState {
	return position.NewGameState(n, 5, 5, bitboard.NewZobrist(n))
}

// TestWeightLadderOrdering pins down the ordering invariant documented at
// the top of evaluator.go: split-four > jump-four > half-free-four ≈
// fork > live-three > half-free-three ≈ dead-four > live-two >
// half-free-two. (live-four and five bypass weighted() entirely via
// Evaluate's early-return shortcuts, so they're covered separately.)
func TestWeightLadderOrdering(t *testing.T) {
	splitFour := lineCounts{split: 1}.weighted()
	jumpFour := lineCounts{jump: 1}.weighted()
	halfFreeFour := lineCounts{halfFreeFour: 1}.weighted()
	fork := lineCounts{fork: 1}.weighted()
	liveThree := lineCounts{liveThree: 1}.weighted()
	halfFreeThree := lineCounts{halfFreeThree: 1}.weighted()
	deadFour := lineCounts{deadFour: 1}.weighted()
	liveTwo := lineCounts{liveTwo: 1}.weighted()
	halfFreeTwo := lineCounts{halfFreeTwo: 1}.weighted()

	assert.Greater(t, splitFour, jumpFour)
	assert.Greater(t, jumpFour, halfFreeFour)
	assert.Equal(t, halfFreeFour, fork)
	assert.Greater(t, halfFreeFour, liveThree)
	assert.Greater(t, liveThree, halfFreeThree)
	assert.Equal(t, halfFreeThree, deadFour)
	assert.Greater(t, deadFour, liveTwo)
	assert.Greater(t, liveTwo, halfFreeTwo)
}

// TestFiveShortCircuit checks §4.4's top-priority shortcut: a five for
// either side returns ±WinValue regardless of anything else on the board.
func TestFiveShortCircuit(t *testing.T) {
	gs := newTestState(19)
	for c := 5; c < 10; c++ {
		gs.Board.Place(9, c, Max)
	}
	assert.Equal(t, WinValue, Evaluate(gs))

	gs2 := newTestState(19)
	for c := 5; c < 10; c++ {
		gs2.Board.Place(9, c, Min)
	}
	assert.Equal(t, -WinValue, Evaluate(gs2))
}

// TestLiveFourShortCircuit checks the "effectively won" live-four
// shortcut fires before the weighted sum, for either side.
func TestLiveFourShortCircuit(t *testing.T) {
	gs := newTestState(19)
	for c := 5; c < 9; c++ {
		gs.Board.Place(9, c, Max) // open both ends at (9,4) and (9,9)
	}
	assert.Equal(t, LiveFourValue, Evaluate(gs))

	gs2 := newTestState(19)
	for c := 5; c < 9; c++ {
		gs2.Board.Place(9, c, Min)
	}
	assert.Equal(t, -LiveFourValue, Evaluate(gs2))
}

func TestClassifyRunByLengthAndOpenEnds(t *testing.T) {
	cases := []struct {
		name    string
		cols    []int // stones placed on row 9
		want    Pattern
	}{
		{"live four", []int{5, 6, 7, 8}, PatternLiveFour},
		{"live three", []int{5, 6, 7}, PatternLiveThree},
		{"live two", []int{5, 6}, PatternLiveTwo},
	}
	for _, tc := range cases {
		gs := newTestState(19)
		for _, c := range tc.cols {
			gs.Board.Place(9, c, Max)
		}
		start := tc.cols[0]
		got := classifyRun(gs, 9, start, Max, 0, 1)
		assert.Equal(t, tc.want, got, tc.name)
	}

	// half-free-four: wall off one end with an opponent stone.
	gs := newTestState(19)
	for _, c := range []int{5, 6, 7, 8} {
		gs.Board.Place(9, c, Max)
	}
	gs.Board.Place(9, 4, Min)
	assert.Equal(t, PatternHalfFreeFour, classifyRun(gs, 9, 5, Max, 0, 1))

	// dead four: wall off both ends.
	gs2 := newTestState(19)
	for _, c := range []int{5, 6, 7, 8} {
		gs2.Board.Place(9, c, Max)
	}
	gs2.Board.Place(9, 4, Min)
	gs2.Board.Place(9, 9, Min)
	assert.Equal(t, PatternDeadFour, classifyRun(gs2, 9, 5, Max, 0, 1))
}

func TestScanGapsDetectsJump(t *testing.T) {
	gs := newTestState(9)
	// row 4, cols 2,3,_,5 (gap at 4): pCount=3, eCount=2 in the 5-window.
	// Neighbouring 5-windows can also see 3 stones + 2 gaps (the scan is a
	// sliding window, so overlapping detections are expected), so this
	// only checks the pattern is found at least once, not an exact count.
	gs.Board.Place(4, 2, Max)
	gs.Board.Place(4, 3, Max)
	gs.Board.Place(4, 5, Max)
	jump, _ := scanGaps(gs, Max)
	assert.GreaterOrEqual(t, jump, 1)
}

func TestScanGapsDetectsSplit(t *testing.T) {
	gs := newTestState(9)
	// row 4, cols 2,3,_,5,6 (gap at 4): pCount=4, eCount=1, interior gap.
	gs.Board.Place(4, 2, Max)
	gs.Board.Place(4, 3, Max)
	gs.Board.Place(4, 5, Max)
	gs.Board.Place(4, 6, Max)
	_, split := scanGaps(gs, Max)
	assert.GreaterOrEqual(t, split, 1)
}

func TestCountForksDetectsCrossingThrees(t *testing.T) {
	gs := newTestState(19)
	// Mirrors the double-three setup: Max at (9,7),(9,8),(7,9),(8,9) makes
	// (9,9) a crossing point of two live-threes once filled.
	gs.Board.Place(9, 7, Max)
	gs.Board.Place(9, 8, Max)
	gs.Board.Place(7, 9, Max)
	gs.Board.Place(8, 9, Max)
	assert.GreaterOrEqual(t, countForks(gs, Max), 1)
}

// mirrorState returns a state with Max and Min swapped at every cell,
// captures swapped, and the side to move flipped — the transformation
// Evaluate must be exactly antisymmetric under (§8's side-swap invariant).
func mirrorState(gs *position.GameState) *position.GameState {
	m := position.NewGameState(gs.N, gs.W, gs.C, bitboard.NewZobrist(gs.N))
	for r := 0; r < gs.N; r++ {
		for c := 0; c < gs.N; c++ {
			switch gs.Get(r, c) {
			case Max:
				m.Board.Place(r, c, Min)
			case Min:
				m.Board.Place(r, c, Max)
			}
		}
	}
	m.MaxCaptures = gs.MinCaptures
	m.MinCaptures = gs.MaxCaptures
	m.Side = gs.Side.Opponent()
	return m
}

func TestEvaluateAntisymmetricUnderSideSwap(t *testing.T) {
	gs := newTestState(19)
	// An asymmetric mix of patterns for each side, with no five/live-four
	// so the general weighted path (not a shortcut) is exercised too.
	gs.Board.Place(9, 5, Max)
	gs.Board.Place(9, 6, Max)
	gs.Board.Place(9, 7, Max) // Max live three
	gs.Board.Place(3, 3, Min)
	gs.Board.Place(3, 4, Min) // Min live two
	gs.Board.Place(3, 2, Max) // walls off one end of Min's run below
	gs.MaxCaptures = 2
	gs.MinCaptures = 1

	mirrored := mirrorState(gs)

	assert.Equal(t, Evaluate(gs), -Evaluate(mirrored))
}
