package search

import (
	"sort"
	"sync/atomic"
	"time"

	"github.com/gomokucore/engine/internal/assert"
	"github.com/gomokucore/engine/internal/bitboard"
	"github.com/gomokucore/engine/internal/config"
	"github.com/gomokucore/engine/internal/evaluator"
	"github.com/gomokucore/engine/internal/history"
	"github.com/gomokucore/engine/internal/movegen"
	"github.com/gomokucore/engine/internal/position"
	"github.com/gomokucore/engine/internal/transpositiontable"
	. "github.com/gomokucore/engine/internal/types"
)

// mateThreshold marks a value as "close enough to WinValue to be a mate
// score", the boundary used by valueToTT/valueFromTT (§4.6) to make
// mate scores ply-relative to the node that stores them rather than
// the node that reads them back through a transposition.
const mateThreshold = WinValue - 10_000

func valueToTT(v Value, ply int) Value {
	switch {
	case v >= mateThreshold:
		return v + Value(ply)
	case v <= -mateThreshold:
		return v - Value(ply)
	default:
		return v
	}
}

func valueFromTT(v Value, ply int) Value {
	switch {
	case v >= mateThreshold:
		return v - Value(ply)
	case v <= -mateThreshold:
		return v + Value(ply)
	default:
		return v
	}
}

// searcher is the per-worker recursive search state of one Lazy SMP
// worker (§4.6): its own cloned position driven by make/undo, its own
// killer/history table, and the flags shared with its siblings to stop
// together. The transposition table is the only state shared by
// reference across workers.
type searcher struct {
	id       int
	tt       *transpositiontable.Table
	hist     *history.History
	cancel   *int32
	deadline time.Time
	nodeCap  uint64
	stats    Statistics
}

func (s *searcher) expired() bool {
	if atomic.LoadInt32(s.cancel) != 0 {
		return true
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		return true
	}
	return false
}

// pollAbort is called once per node. It only pays the cost of a clock
// read every 1024 nodes, same throttling the teacher's search loop uses.
func (s *searcher) pollAbort() bool {
	if atomic.LoadInt32(s.cancel) != 0 {
		return true
	}
	if s.stats.Nodes&1023 != 0 {
		return false
	}
	if !s.deadline.IsZero() && time.Now().After(s.deadline) {
		atomic.StoreInt32(s.cancel, 1)
		return true
	}
	if s.nodeCap != 0 && s.stats.Nodes >= s.nodeCap {
		atomic.StoreInt32(s.cancel, 1)
		return true
	}
	return false
}

func sideRelativeEval(gs *position.GameState) Value {
	return evaluator.Evaluate(gs) * Value(gs.Side.Sign())
}

func (s *searcher) leaf(gs *position.GameState, ply int) Value {
	if gs.Terminal {
		if gs.Winner == NoPlayer {
			return DrawValue
		}
		if gs.Winner == gs.Side {
			return WinValue - Value(ply)
		}
		return -(WinValue - Value(ply))
	}
	return sideRelativeEval(gs)
}

// isTacticalMove approximates "not a quiet filler move" for futility
// pruning: a move that extends an existing run of 2+ for either side is
// kept regardless of static eval, the same CountConsecutive technique
// movegen's threat-move clause uses.
func isTacticalMove(gs *position.GameState, sq Square) bool {
	r, c := sq.RowCol(gs.N)
	side := gs.Side
	opp := side.Opponent()
	for _, d := range bitboard.LineDirections {
		dx, dy := d[0], d[1]
		if gs.Board.CountConsecutive(r, c, dx, dy, side)+gs.Board.CountConsecutive(r, c, -dx, -dy, side) >= 2 {
			return true
		}
		if gs.Board.CountConsecutive(r, c, dx, dy, opp)+gs.Board.CountConsecutive(r, c, -dx, -dy, opp) >= 2 {
			return true
		}
	}
	return false
}

type scoredMove struct {
	sq  Square
	key int64
}

// orderMoves sorts moves in place: the transposition-table hint first,
// then the two killer moves for this ply, then by history score (§4.7).
// A stable sort over an explicit key slice keeps ordering deterministic
// for equal keys — no map iteration is ever involved.
func orderMoves(side Player, moves []Square, ttMove Move, hist *history.History, ply int) {
	var killers [2]Move
	if hist != nil && config.Settings.Search.UseKiller {
		killers = hist.Killers(ply)
	}
	scored := make([]scoredMove, len(moves))
	for i, sq := range moves {
		mv := Move(sq)
		var key int64
		switch {
		case ttMove != MoveNone && mv == ttMove:
			key = 1 << 62
		case killers[0] != MoveNone && mv == killers[0]:
			key = 1 << 61
		case killers[1] != MoveNone && mv == killers[1]:
			key = 1<<61 - 1
		default:
			if hist != nil && config.Settings.Search.UseHistory {
				key = hist.Score(side, mv)
			}
		}
		scored[i] = scoredMove{sq: sq, key: key}
	}
	sort.SliceStable(scored, func(i, j int) bool { return scored[i].key > scored[j].key })
	for i, sm := range scored {
		moves[i] = sm.sq
	}
}

// alphabeta is the recursive negamax PVS search of §4.6: probes the
// transposition table, tries null-move pruning, orders and searches
// moves with a null-window/re-search pair after the first, applying
// late-move reductions and shallow futility pruning, and stores the
// result back into the table. Returns the value from the perspective of
// the side to move at gs, and whether the search was aborted (in which
// case the value is meaningless and must not be used).
func (s *searcher) alphabeta(gs *position.GameState, depth, ply int, alpha, beta Value, isPV, allowNull bool) (Value, bool) {
	if assert.DEBUG {
		assert.Assert(alpha < beta, "alphabeta: empty window alpha=%d beta=%d at ply=%d", alpha, beta, ply)
	}
	s.stats.Nodes++
	if s.pollAbort() {
		return 0, true
	}

	origAlpha := alpha

	var ttMove Move = MoveNone
	if config.Settings.Search.UseTT {
		if res := s.tt.Probe(gs.Key, depth, alpha, beta); res.Found {
			s.stats.TTHits++
			ttMove = res.Move
			if res.Cutoff {
				s.stats.TTCuts++
				return valueFromTT(res.Value, ply), false
			}
		} else {
			s.stats.TTMisses++
		}
	}

	if depth <= 0 || gs.Terminal {
		return s.leaf(gs, ply), false
	}

	moves := movegen.LegalMoves(gs)
	if len(moves) == 0 {
		// A genuinely non-terminal position with no generated candidates
		// (the zone heuristic exhausted) must not be silently scored as a
		// draw: fall back to the static evaluation like any other leaf,
		// letting gs.Terminal (set in position.go) decide win/draw/loss.
		return s.leaf(gs, ply), false
	}

	if config.Settings.Search.UseNullMove && allowNull && !isPV &&
		depth >= config.Settings.Search.NmpDepth && !gs.Terminal {
		staticEval := sideRelativeEval(gs)
		if staticEval >= beta {
			gs.DoNullMove()
			nd := depth - 1 - config.Settings.Search.NmpReduction
			if nd < 0 {
				nd = 0
			}
			val, aborted := s.alphabeta(gs, nd, ply+1, -beta, -beta+1, false, false)
			gs.UndoNullMove()
			if aborted {
				return 0, true
			}
			if -val >= beta {
				s.stats.NullMoveCuts++
				return beta, false
			}
		}
	}

	orderMoves(gs.Side, moves, ttMove, s.hist, ply)

	useFutility := config.Settings.Search.UseFutility && depth <= 2 && !isPV
	var staticEval Value
	if useFutility {
		staticEval = sideRelativeEval(gs)
	}

	best := -WinValue - 1
	bestMove := MoveNone
	for i, sq := range moves {
		mv := Move(sq)

		if useFutility && i > 0 &&
			staticEval+Value(config.Settings.Search.FutilityMargin) <= alpha &&
			!isTacticalMove(gs, sq) {
			s.stats.FutilityPrunings++
			continue
		}

		r, c := sq.RowCol(gs.N)
		_ = gs.Make(r, c)

		childDepth := depth - 1
		reduced := false
		if config.Settings.Search.UseLmr && !isPV && depth >= config.Settings.Search.LmrDepth &&
			i >= config.Settings.Search.LmrMovesSearched && !gs.Terminal {
			childDepth = depth - 2
			if childDepth < 0 {
				childDepth = 0
			}
			reduced = true
			s.stats.LmrReductions++
		}

		var val Value
		var aborted bool
		if !config.Settings.Search.UsePVS || i == 0 {
			val, aborted = s.alphabeta(gs, childDepth, ply+1, -beta, -alpha, isPV, true)
			val = -val
		} else {
			val, aborted = s.alphabeta(gs, childDepth, ply+1, -alpha-1, -alpha, false, true)
			val = -val
			if !aborted && val > alpha && val < beta {
				if reduced {
					s.stats.LmrResearches++
				}
				val, aborted = s.alphabeta(gs, depth-1, ply+1, -beta, -alpha, isPV, true)
				val = -val
			}
		}
		_ = gs.Undo()

		if aborted {
			return 0, true
		}

		if val > best {
			best = val
			bestMove = mv
		}
		if val > alpha {
			alpha = val
		}
		if alpha >= beta {
			s.stats.BetaCuts++
			if i == 0 {
				s.stats.BetaCuts1++
			}
			if s.hist != nil {
				if config.Settings.Search.UseKiller {
					s.hist.StoreKiller(ply, mv)
				}
				if config.Settings.Search.UseHistory {
					s.hist.AddCutoff(gs.Side, mv, depth)
				}
			}
			break
		}
	}

	if config.Settings.Search.UseTT {
		bound := Exact
		switch {
		case best <= origAlpha:
			bound = UpperBound
		case best >= beta:
			bound = LowerBound
		}
		s.tt.Store(gs.Key, valueToTT(best, ply), depth, bound, bestMove)
	}

	return best, false
}

// searchRoot runs one root iteration at a fixed depth over the root's
// legal moves, using the same PVS null-window/re-search pattern as
// alphabeta but keeping track of which move produced the best score.
func (s *searcher) searchRoot(gs *position.GameState, depth int, alpha, beta Value) (Value, Move, bool) {
	moves := movegen.LegalMoves(gs)
	if len(moves) == 0 {
		return s.leaf(gs, 0), MoveNone, false
	}

	var ttMove Move = MoveNone
	if config.Settings.Search.UseTT {
		ttMove = s.tt.Probe(gs.Key, 0, alpha, beta).Move
	}
	orderMoves(gs.Side, moves, ttMove, s.hist, 0)

	best := -WinValue - 1
	bestMove := Move(moves[0])
	for i, sq := range moves {
		mv := Move(sq)
		r, c := sq.RowCol(gs.N)
		_ = gs.Make(r, c)

		var val Value
		var aborted bool
		if !config.Settings.Search.UsePVS || i == 0 {
			val, aborted = s.alphabeta(gs, depth-1, 1, -beta, -alpha, true, true)
			val = -val
		} else {
			val, aborted = s.alphabeta(gs, depth-1, 1, -alpha-1, -alpha, false, true)
			val = -val
			if !aborted && val > alpha && val < beta {
				val, aborted = s.alphabeta(gs, depth-1, 1, -beta, -alpha, true, true)
				val = -val
			}
		}
		_ = gs.Undo()

		if aborted {
			return 0, MoveNone, true
		}

		if val > best {
			best = val
			bestMove = mv
		}
		if val > alpha {
			alpha = val
		}
		if alpha >= beta {
			break
		}
	}

	if config.Settings.Search.UseTT {
		s.tt.Store(gs.Key, valueToTT(best, 0), depth, Exact, bestMove)
	}

	return best, bestMove, false
}
