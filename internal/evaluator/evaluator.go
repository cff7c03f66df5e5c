// Package evaluator implements the pattern-recognition heuristic of
// §4.4: it classifies every maximal run on the board into the closed
// taxonomy of §4.4's table plus the advanced jump/split/fork patterns,
// folds in a capture bonus and a tempo/history bonus, and returns a
// static score in roughly ±10⁷ from Max's perspective. It is purely
// static: it reads only the bitboards and capture counts, never
// recurses.
package evaluator

import (
	"github.com/gomokucore/engine/internal/bitboard"
	"github.com/gomokucore/engine/internal/config"
	"github.com/gomokucore/engine/internal/position"
	. "github.com/gomokucore/engine/internal/types"
	"github.com/gomokucore/engine/internal/util"
)

// Weight schedule (§4.4): "exact constants are implementation choice,
// but the ordering must be: five > live-four > split-four > jump-four >
// half-free-four ≈ fork > live-three > half-free-three ≈ dead-four >
// live-two > the rest."
const (
	wLiveFour     = 1_000_000
	wSplitFour    = 50_000
	wJumpFour     = 40_000
	wHalfFreeFour = 20_000
	wFork         = 20_000
	wLiveThree    = 5_000
	wHalfFreeThr  = 2_000
	wDeadFour     = 2_000
	wDeadThree    = 100
	wLiveTwo      = 200
	wHalfFreeTwo  = 50
)

// lineCounts tallies pattern occurrences for one player.
type lineCounts struct {
	five                                      int
	liveFour, halfFreeFour, deadFour          int
	liveThree, halfFreeThree, deadThree       int
	liveTwo, halfFreeTwo                      int
	jump, split, fork                         int
}

func (lc lineCounts) weighted() Value {
	return Value(
		lc.liveFour*wLiveFour +
			lc.split*wSplitFour +
			lc.jump*wJumpFour +
			lc.halfFreeFour*wHalfFreeFour +
			lc.fork*wFork +
			lc.liveThree*wLiveThree +
			lc.halfFreeThree*wHalfFreeThr +
			lc.deadFour*wDeadFour +
			lc.deadThree*wDeadThree +
			lc.liveTwo*wLiveTwo +
			lc.halfFreeTwo*wHalfFreeTwo,
	)
}

// Evaluate is the public, static evaluation function of §4.6 step 2 and
// §6 `evaluate`.
func Evaluate(gs *position.GameState) Value {
	if hasFive(gs, Max) {
		return WinValue
	}
	if hasFive(gs, Min) {
		return -WinValue
	}

	maxLC := scan(gs, Max)
	minLC := scan(gs, Min)

	if maxLC.liveFour > 0 {
		return LiveFourValue
	}
	if minLC.liveFour > 0 {
		return -LiveFourValue
	}

	score := maxLC.weighted() - minLC.weighted()
	score += captureBonus(gs)
	score += tempoBonus(gs)

	return clamp(score)
}

func clamp(v Value) Value {
	bound := int(LiveFourValue - 1)
	return Value(util.Clamp(int(v), -bound, bound))
}

// hasFive reports whether p has any line of at least W stones.
func hasFive(gs *position.GameState, p Player) bool {
	n := gs.N
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.Get(r, c) != p {
				continue
			}
			for _, d := range bitboard.LineDirections {
				dx, dy := d[0], d[1]
				// only count a run once, from its start cell.
				br, bc := r-dx, c-dy
				if gs.Board.InBounds(br, bc) && gs.Get(br, bc) == p {
					continue
				}
				if 1+gs.Board.CountConsecutive(r, c, dx, dy, p) >= gs.W {
					return true
				}
			}
		}
	}
	return false
}

// scan classifies every maximal run of p into lineCounts, plus the
// jump/split window scan and the fork scan (§4.4).
func scan(gs *position.GameState, p Player) lineCounts {
	var lc lineCounts
	n := gs.N
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.Get(r, c) != p {
				continue
			}
			for _, d := range bitboard.LineDirections {
				dx, dy := d[0], d[1]
				br, bc := r-dx, c-dy
				if gs.Board.InBounds(br, bc) && gs.Get(br, bc) == p {
					continue // not a run start
				}
				addPattern(&lc, classifyRun(gs, r, c, p, dx, dy))
			}
		}
	}
	jump, split := scanGaps(gs, p)
	lc.jump += jump
	lc.split += split
	lc.fork += countForks(gs, p)
	return lc
}

func addPattern(lc *lineCounts, pat Pattern) {
	switch pat {
	case PatternFive:
		lc.five++
	case PatternLiveFour:
		lc.liveFour++
	case PatternHalfFreeFour:
		lc.halfFreeFour++
	case PatternDeadFour:
		lc.deadFour++
	case PatternLiveThree:
		lc.liveThree++
	case PatternHalfFreeThree:
		lc.halfFreeThree++
	case PatternDeadThree:
		lc.deadThree++
	case PatternLiveTwo:
		lc.liveTwo++
	case PatternHalfFreeTwo:
		lc.halfFreeTwo++
	}
}

// classifyRun classifies the run of p through (r,c) in direction (dx,dy),
// where (r,c) is already known to be the run's start cell (or a
// hypothetical placement under evaluation, e.g. from the fork scan).
func classifyRun(gs *position.GameState, r, c int, p Player, dx, dy int) Pattern {
	plus := gs.Board.CountConsecutive(r, c, dx, dy, p)
	minus := gs.Board.CountConsecutive(r, c, -dx, -dy, p)
	length := 1 + plus + minus

	beforeR, beforeC := r-(minus+1)*dx, c-(minus+1)*dy
	afterR, afterC := r+(plus+1)*dx, c+(plus+1)*dy
	freeBefore := gs.Board.InBounds(beforeR, beforeC) && gs.Get(beforeR, beforeC) == NoPlayer
	freeAfter := gs.Board.InBounds(afterR, afterC) && gs.Get(afterR, afterC) == NoPlayer
	openEnds := 0
	if freeBefore {
		openEnds++
	}
	if freeAfter {
		openEnds++
	}

	switch {
	case length >= 5:
		return PatternFive
	case length == 4:
		switch openEnds {
		case 2:
			return PatternLiveFour
		case 1:
			return PatternHalfFreeFour
		default:
			return PatternDeadFour
		}
	case length == 3:
		switch openEnds {
		case 2:
			return PatternLiveThree
		case 1:
			return PatternHalfFreeThree
		default:
			return PatternDeadThree
		}
	case length == 2:
		switch openEnds {
		case 2:
			return PatternLiveTwo
		case 1:
			return PatternHalfFreeTwo
		default:
			return PatternNone
		}
	default:
		return PatternNone
	}
}

// scanGaps detects the jump pattern (3 stones with a single-cell gap in
// a 5-cell window) and the split pattern (4 stones with a single-cell
// gap in a 5-cell window) of §4.4.
func scanGaps(gs *position.GameState, p Player) (jump, split int) {
	n := gs.N
	const window = 5
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			for _, d := range bitboard.LineDirections {
				dx, dy := d[0], d[1]
				endR, endC := r+(window-1)*dx, c+(window-1)*dy
				if !gs.Board.InBounds(endR, endC) {
					continue
				}
				pCount, eCount, oCount, gapIdx := 0, 0, 0, -1
				firstP, lastP := -1, -1
				for i := 0; i < window; i++ {
					rr, cc := r+i*dx, c+i*dy
					switch gs.Get(rr, cc) {
					case p:
						pCount++
						if firstP < 0 {
							firstP = i
						}
						lastP = i
					case NoPlayer:
						eCount++
						gapIdx = i
					default:
						oCount++
					}
				}
				if oCount > 0 {
					continue
				}
				switch {
				case pCount == 4 && eCount == 1 && gapIdx > 0 && gapIdx < window-1:
					split++
				case pCount == 3 && eCount == 2 && lastP-firstP == 3:
					jump++
				}
			}
		}
	}
	return
}

// rank orders patterns by tactical strength, used by the fork scan to
// decide whether a hypothetical line reaches "rank >= live-three".
func rank(p Pattern) int {
	switch p {
	case PatternFive:
		return 9
	case PatternLiveFour:
		return 8
	case PatternHalfFreeFour, PatternDeadFour:
		return 6
	case PatternLiveThree:
		return 5
	case PatternHalfFreeThree, PatternDeadThree:
		return 3
	case PatternLiveTwo, PatternHalfFreeTwo:
		return 1
	default:
		return 0
	}
}

// countForks counts empty cells where placing p would simultaneously
// create at least two independent lines of rank >= live-three (§4.4).
func countForks(gs *position.GameState, p Player) int {
	n := gs.N
	count := 0
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.Get(r, c) != NoPlayer {
				continue
			}
			gs.Board.Place(r, c, p)
			threats := 0
			for _, d := range bitboard.LineDirections {
				if rank(classifyRun(gs, r, c, p, d[0], d[1])) >= rank(PatternLiveThree) {
					threats++
				}
			}
			gs.Board.Remove(r, c)
			if threats >= 2 {
				count++
			}
		}
	}
	return count
}

// captureBonus adds a bonus proportional to (mover_captures -
// opponent_captures) from Max's perspective, weighted heavily as either
// side approaches C-1 pairs (§4.4).
func captureBonus(gs *position.GameState) Value {
	w := config.Settings.Eval.CaptureWeight
	score := Value((gs.MaxCaptures - gs.MinCaptures) * w)
	if gs.MaxCaptures == gs.C-1 {
		score += Value(w * 4)
	}
	if gs.MinCaptures == gs.C-1 {
		score -= Value(w * 4)
	}
	return score
}

// moveCategory is the tempo/history classification of §4.4.
type moveCategory int

const (
	categoryPositional moveCategory = iota
	categoryAggressive
	categoryDefensive
	categoryCapture
)

func (m moveCategory) weight() int {
	switch m {
	case categoryCapture:
		return 3
	case categoryAggressive:
		return 2
	case categoryDefensive:
		return 1
	default:
		return 0
	}
}

// classifyMove buckets a recently-played move using the current board
// (an approximation: a stone captured later in the window is simply
// left un-aggressive, since it no longer occupies its square).
func classifyMove(gs *position.GameState, m position.MoveInfo) moveCategory {
	if m.Captured > 0 {
		return categoryCapture
	}
	r, c := int(m.Square)/gs.N, int(m.Square)%gs.N
	if gs.Get(r, c) != m.Mover {
		return categoryPositional // captured since, no longer live
	}
	best := 0
	for _, d := range bitboard.LineDirections {
		plus := gs.Board.CountConsecutive(r, c, d[0], d[1], m.Mover)
		minus := gs.Board.CountConsecutive(r, c, -d[0], -d[1], m.Mover)
		best = max(best, 1+plus+minus)
	}
	if best >= 3 {
		return categoryAggressive
	}
	opp := m.Mover.Opponent()
	oppNeighbours := 0
	for _, d := range bitboard.Directions {
		rr, cc := r+d[0], c+d[1]
		if gs.Board.InBounds(rr, cc) && gs.Get(rr, cc) == opp {
			oppNeighbours++
		}
	}
	if oppNeighbours >= 2 {
		return categoryDefensive
	}
	return categoryPositional
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// tempoBonus folds the signed sum of move-category weights over the
// last TempoWindow moves into a small bonus (<5% of a live-three),
// capped in both directions (§4.4).
func tempoBonus(gs *position.GameState) Value {
	moves := gs.RecentMoves(config.Settings.Eval.TempoWindow)
	sum := 0
	for _, m := range moves {
		cat := classifyMove(gs, m)
		sum += cat.weight() * m.Mover.Sign()
	}
	bonus := Value(sum * config.Settings.Eval.TempoWeight / 100)
	cap := Value(wLiveThree*5/100 - 1)
	if bonus > cap {
		return cap
	}
	if bonus < -cap {
		return -cap
	}
	return bonus
}
