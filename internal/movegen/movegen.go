// Package movegen implements the zone-restricted, tactically-filtered
// candidate-move policy of §4.3: a priority ladder of clauses where the
// first clause producing a non-empty list wins, plus the double-three
// filter of §6.2 applied to the zone/threat clauses.
package movegen

import (
	"github.com/gomokucore/engine/internal/bitboard"
	"github.com/gomokucore/engine/internal/position"
	. "github.com/gomokucore/engine/internal/types"
)

// threatCap is the size above which the threat-moves clause (§4.3 clause
// 4) is abandoned in favour of falling through to the zone clause.
const threatCap = 30

// LegalMoves returns the candidate moves for the side to move at gs,
// applying the full §4.3 policy including the double-three filter.
func LegalMoves(gs *position.GameState) []Square {
	if gs.StoneCount() == 0 {
		r, c := gs.Centre()
		return []Square{Square(r*gs.N + c)}
	}

	side := gs.Side
	opp := side.Opponent()

	if wins := immediateWinMoves(gs, side); len(wins) > 0 {
		return wins
	}
	if blocks := immediateWinMoves(gs, opp); len(blocks) > 0 {
		return blocks
	}
	if threats := threatMoves(gs, side, opp); threats != nil {
		if filtered := filterDoubleThree(gs, side, threats); len(filtered) > 0 {
			return filtered
		}
	}
	zone := zoneMoves(gs)
	if filtered := filterDoubleThree(gs, side, zone); len(filtered) > 0 {
		return filtered
	}
	// Every zone candidate forms a double-three: the position is not
	// actually terminal (off-zone cells still exist), so fall back to the
	// unfiltered zone rather than report a spurious no-legal-moves state.
	return zone
}

// immediateWinMoves returns every empty cell where playing p completes a
// line of at least W stones (§4.3 clause 2/3).
func immediateWinMoves(gs *position.GameState, p Player) []Square {
	n := gs.N
	var res []Square
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.Get(r, c) != NoPlayer {
				continue
			}
			if wouldCompleteLine(gs, r, c, p) {
				res = append(res, Square(r*n+c))
			}
		}
	}
	return res
}

func wouldCompleteLine(gs *position.GameState, r, c int, p Player) bool {
	for _, d := range bitboard.LineDirections {
		dx, dy := d[0], d[1]
		plus := gs.Board.CountConsecutive(r, c, dx, dy, p)
		minus := gs.Board.CountConsecutive(r, c, -dx, -dy, p)
		if 1+plus+minus >= gs.W {
			return true
		}
	}
	return false
}

// threatMoves is the union of cells extending any own or opponent run of
// length 2-4 (§4.3 clause 4). Returns nil (clause abandoned) if the
// union exceeds threatCap. Iterates in row-major order so the result is
// deterministic, a precondition for the single-worker determinism
// property of §8.
func threatMoves(gs *position.GameState, side, opp Player) []Square {
	seen := map[Square]bool{}
	var res []Square
	collectExtensions(gs, side, seen, &res)
	collectExtensions(gs, opp, seen, &res)
	if len(res) > threatCap {
		return nil
	}
	return res
}

func collectExtensions(gs *position.GameState, p Player, seen map[Square]bool, res *[]Square) {
	n := gs.N
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.Get(r, c) != NoPlayer {
				continue
			}
			sq := Square(r*n + c)
			if seen[sq] {
				continue
			}
			for _, d := range bitboard.LineDirections {
				dx, dy := d[0], d[1]
				plus := gs.Board.CountConsecutive(r, c, dx, dy, p)
				minus := gs.Board.CountConsecutive(r, c, -dx, -dy, p)
				run := plus + minus
				if run >= 2 && run <= 4 {
					seen[sq] = true
					*res = append(*res, sq)
					break
				}
			}
		}
	}
}

// zoneMoves returns every empty cell within Chebyshev distance radius of
// any occupied cell (§4.3 clause 5); radius is 2 while the board is
// sparse (<10 stones), else 1.
func zoneMoves(gs *position.GameState) []Square {
	n := gs.N
	radius := 1
	if gs.StoneCount() < 10 {
		radius = 2
	}
	var res []Square
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			if gs.Get(r, c) != NoPlayer {
				continue
			}
			if nearOccupied(gs, r, c, radius) {
				res = append(res, Square(r*n+c))
			}
		}
	}
	return res
}

func nearOccupied(gs *position.GameState, r, c, radius int) bool {
	for dr := -radius; dr <= radius; dr++ {
		for dc := -radius; dc <= radius; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			rr, cc := r+dr, c+dc
			if gs.Board.InBounds(rr, cc) && gs.Get(rr, cc) != NoPlayer {
				return true
			}
		}
	}
	return false
}

// filterDoubleThree removes from cells every square that would create a
// double-three for side (§6.2).
func filterDoubleThree(gs *position.GameState, side Player, cells []Square) []Square {
	res := make([]Square, 0, len(cells))
	for _, sq := range cells {
		r, c := sq.RowCol(gs.N)
		if !IsDoubleThree(gs, side, r, c) {
			res = append(res, sq)
		}
	}
	return res
}

// IsDoubleThree reports whether playing p at (r,c) would simultaneously
// create two live-threes in distinct line directions (§6.2). A live
// three is three stones in a line whose immediate extension to a four
// leaves both endpoint cells empty. The stone is placed and removed on
// gs.Board directly (no Zobrist bookkeeping needed for a probe that is
// always immediately reverted).
func IsDoubleThree(gs *position.GameState, p Player, r, c int) bool {
	if gs.Get(r, c) != NoPlayer {
		return false
	}
	gs.Board.Place(r, c, p)
	defer gs.Board.Remove(r, c)

	count := 0
	for _, d := range bitboard.LineDirections {
		if isLiveThreeThrough(gs, r, c, p, d[0], d[1]) {
			count++
		}
	}
	return count >= 2
}

func isLiveThreeThrough(gs *position.GameState, r, c int, p Player, dx, dy int) bool {
	plus := gs.Board.CountConsecutive(r, c, dx, dy, p)
	minus := gs.Board.CountConsecutive(r, c, -dx, -dy, p)
	if 1+plus+minus != 3 {
		return false
	}
	endR1, endC1 := r-(minus+1)*dx, c-(minus+1)*dy
	endR2, endC2 := r+(plus+1)*dx, c+(plus+1)*dy
	if !gs.Board.InBounds(endR1, endC1) || !gs.Board.InBounds(endR2, endC2) {
		return false
	}
	return gs.Get(endR1, endC1) == NoPlayer && gs.Get(endR2, endC2) == NoPlayer
}
