// Package history provides the killer-move table and the history
// heuristic table (§4.7) used to order moves ahead of the recursive
// search. Both tables are per-worker, never shared across goroutines.
package history

import (
	. "github.com/gomokucore/engine/internal/types"
)

const maxPly = 64

// killers holds, for one ply, the two most recent beta-cutoff moves,
// most-recent-first.
type killers [2]Move

// History is the per-worker move-ordering state: killer moves indexed
// by ply, and a [2][N][N] signed history table indexed by player and
// destination cell.
type History struct {
	n       int
	killer  [maxPly]killers
	counter [2][]int64 // flattened N*N per player
}

// NewHistory creates a History for a board of side n.
func NewHistory(n int) *History {
	h := &History{n: n}
	h.counter[0] = make([]int64, n*n)
	h.counter[1] = make([]int64, n*n)
	for i := range h.killer {
		h.killer[i] = killers{MoveNone, MoveNone}
	}
	return h
}

// StoreKiller records mv as a killer at ply. Inserting a move equal to
// the current primary killer is a no-op.
func (h *History) StoreKiller(ply int, mv Move) {
	if ply < 0 || ply >= maxPly {
		return
	}
	k := &h.killer[ply]
	if k[0] == mv {
		return
	}
	k[1] = k[0]
	k[0] = mv
}

// Killers returns the two killer moves for ply, most-recent-first.
func (h *History) Killers(ply int) [2]Move {
	if ply < 0 || ply >= maxPly {
		return [2]Move{MoveNone, MoveNone}
	}
	return h.killer[ply]
}

// AddCutoff adds depth² to the history score of (player, mv) after a
// beta-cutoff (§4.7).
func (h *History) AddCutoff(player Player, mv Move, depth int) {
	idx := int(mv)
	if idx < 0 || idx >= len(h.counter[0]) {
		return
	}
	h.counter[player][idx] += int64(depth) * int64(depth)
}

// Score returns the current history score of (player, mv).
func (h *History) Score(player Player, mv Move) int64 {
	idx := int(mv)
	if idx < 0 || idx >= len(h.counter[0]) {
		return 0
	}
	return h.counter[player][idx]
}

// NewSearch halves every history entry instead of clearing, preserving
// long-lived signal across searches (§4.7).
func (h *History) NewSearch() {
	for p := 0; p < 2; p++ {
		for i := range h.counter[p] {
			h.counter[p][i] /= 2
		}
	}
	for i := range h.killer {
		h.killer[i] = killers{MoveNone, MoveNone}
	}
}
