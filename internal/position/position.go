// Package position implements the game-state representation of §3: the
// bitboard-backed board plus incremental Zobrist key, capture counters,
// and capture-history stack, and the make/undo pair of §4.2 that is the
// search's hot path.
package position

import (
	"errors"

	"github.com/gomokucore/engine/internal/assert"
	"github.com/gomokucore/engine/internal/bitboard"
	. "github.com/gomokucore/engine/internal/types"
)

// ErrIllegalMove is returned by Make for an out-of-range or occupied
// target cell. Make does not check the double-three rule (§6.2) — that
// filtering is movegen's responsibility; §4.2's failure model is "make
// assumes a legal move, callers filter first".
var ErrIllegalMove = errors.New("position: illegal move")

// ErrNoHistory is returned by Undo when called on a state with nothing
// to undo.
var ErrNoHistory = errors.New("position: nothing to undo")

// moveRecord is one entry of the capture-history stack (§3.1): the move
// played, who played it, and exactly what was restored so Undo never
// needs to re-derive captures by inspecting the board.
type moveRecord struct {
	Move            Square
	Mover           Player
	Captured        []Square
	PrevTerminal    bool
	PrevWinner      Player
	PrevMaxCaptures int
	PrevMinCaptures int
}

// GameState is a single owned position: fixed N, W (win length) and C
// (capture-win threshold), per §3.1/§3.3. Clone() is the only way to
// share one across concurrent search branches.
type GameState struct {
	N, W, C int

	Board       bitboard.Board
	Side        Player
	MaxCaptures int
	MinCaptures int
	Key         Key

	Terminal bool
	Winner   Player

	zob     *bitboard.Zobrist
	history []moveRecord
}

// NewGameState creates an empty board of side n with win length w and
// capture-win threshold c, sharing the given (read-only) Zobrist table.
func NewGameState(n, w, c int, zob *bitboard.Zobrist) *GameState {
	return &GameState{
		N: n, W: w, C: c,
		Board:  bitboard.NewBoard(n),
		Side:   Max,
		Winner: NoPlayer,
		zob:    zob,
	}
}

// Clone returns an independent copy. Cheap: Board is a small value type,
// and the history slice is the only heap allocation copied.
func (gs *GameState) Clone() *GameState {
	cp := *gs
	cp.history = append([]moveRecord(nil), gs.history...)
	return &cp
}

// Get returns the occupant of (r,c).
func (gs *GameState) Get(r, c int) Player {
	return gs.Board.Get(r, c)
}

// StoneCount returns the total number of stones on the board.
func (gs *GameState) StoneCount() int {
	return gs.Board.Occupied.PopCount()
}

// Centre returns the board's centre cell, the only legal first move (§6.4).
func (gs *GameState) Centre() (int, int) {
	return gs.N / 2, gs.N / 2
}

// Depth returns the number of moves played so far (capture-stack depth
// per §3.1).
func (gs *GameState) Depth() int {
	return len(gs.history)
}

// MoveInfo is a read-only snapshot of one played move, used by the
// evaluator's tempo/history bonus (§4.4).
type MoveInfo struct {
	Square   Square
	Mover    Player
	Captured int // pairs captured by this move
}

// RecentMoves returns up to the last `window` moves played, oldest first.
func (gs *GameState) RecentMoves(window int) []MoveInfo {
	n := len(gs.history)
	start := n - window
	if start < 0 {
		start = 0
	}
	res := make([]MoveInfo, 0, n-start)
	for i := start; i < n; i++ {
		rec := gs.history[i]
		res = append(res, MoveInfo{Square: rec.Move, Mover: rec.Mover, Captured: len(rec.Captured) / 2})
	}
	return res
}

// Make plays a move at (r,c) for the side to move, in the order
// specified by §4.2: place, scan-and-capture, update terminal flags,
// flip side. Returns ErrIllegalMove for an out-of-range or occupied
// cell; does not check the double-three rule (movegen's job).
func (gs *GameState) Make(r, c int) error {
	if !gs.Board.InBounds(r, c) || gs.Board.Get(r, c) != NoPlayer {
		return ErrIllegalMove
	}
	gs.makeUnchecked(r, c)
	return nil
}

// MakeSquare is a convenience wrapper taking a packed Square.
func (gs *GameState) MakeSquare(sq Square) error {
	r, c := sq.RowCol(gs.N)
	return gs.Make(r, c)
}

func (gs *GameState) makeUnchecked(r, c int) {
	if assert.DEBUG {
		assert.Assert(gs.Board.InBounds(r, c), "GameState.Make: (%d,%d) out of bounds for N=%d", r, c, gs.N)
		assert.Assert(gs.Get(r, c) == NoPlayer, "GameState.Make: (%d,%d) already occupied", r, c)
	}

	mover := gs.Side
	opp := mover.Opponent()
	sqIdx := r*gs.N + c

	rec := moveRecord{
		Move: Square(sqIdx), Mover: mover,
		PrevTerminal: gs.Terminal, PrevWinner: gs.Winner,
		PrevMaxCaptures: gs.MaxCaptures, PrevMinCaptures: gs.MinCaptures,
	}

	// 1. place mover's stone, XOR in its piece key.
	gs.Board.Place(r, c, mover)
	gs.Key ^= Key(gs.zob.PieceKey(sqIdx, mover))

	// 2. scan all 8 directions for own-opp-opp-own, recording captures.
	var captured []Square
	for _, d := range bitboard.Directions {
		r1, c1 := r+d[0], c+d[1]
		r2, c2 := r+2*d[0], c+2*d[1]
		r3, c3 := r+3*d[0], c+3*d[1]
		if !gs.Board.InBounds(r3, c3) {
			continue
		}
		if gs.Board.Get(r1, c1) == opp && gs.Board.Get(r2, c2) == opp && gs.Board.Get(r3, c3) == mover {
			captured = append(captured, Square(r1*gs.N+c1), Square(r2*gs.N+c2))
		}
	}

	// 3. remove captured stones, credit the mover one pair each.
	for _, sq := range captured {
		rr, cc := int(sq)/gs.N, int(sq)%gs.N
		gs.Board.Remove(rr, cc)
		gs.Key ^= Key(gs.zob.PieceKey(int(sq), opp))
	}
	pairs := len(captured) / 2
	if mover == Max {
		gs.MaxCaptures += pairs
	} else {
		gs.MinCaptures += pairs
	}
	rec.Captured = captured

	// 4. update terminal flags.
	gs.updateTerminal(r, c, mover)

	// 5. flip side to move.
	gs.Key ^= Key(gs.zob.SideToMove)
	gs.Side = opp

	gs.history = append(gs.history, rec)
}

// Undo is the strict inverse of Make: it never consults the board to
// infer captures, relying solely on the capture-history stack.
func (gs *GameState) Undo() error {
	if len(gs.history) == 0 {
		return ErrNoHistory
	}
	if assert.DEBUG {
		assert.Assert(len(gs.history) > 0, "GameState.Undo: history stack unexpectedly empty")
	}
	rec := gs.history[len(gs.history)-1]
	gs.history = gs.history[:len(gs.history)-1]

	// reverse step 5.
	gs.Side = rec.Mover
	gs.Key ^= Key(gs.zob.SideToMove)

	// reverse step 4.
	gs.Terminal = rec.PrevTerminal
	gs.Winner = rec.PrevWinner

	// reverse steps 2/3: restore captured stones as the mover's opponent.
	opp := rec.Mover.Opponent()
	for _, sq := range rec.Captured {
		r, c := int(sq)/gs.N, int(sq)%gs.N
		gs.Board.Place(r, c, opp)
		gs.Key ^= Key(gs.zob.PieceKey(int(sq), opp))
	}
	pairs := len(rec.Captured) / 2
	if rec.Mover == Max {
		gs.MaxCaptures -= pairs
	} else {
		gs.MinCaptures -= pairs
	}

	// reverse step 1.
	r, c := int(rec.Move)/gs.N, int(rec.Move)%gs.N
	gs.Board.Remove(r, c)
	gs.Key ^= Key(gs.zob.PieceKey(int(rec.Move), rec.Mover))

	return nil
}

// DoNullMove flips the side to move without placing a stone, used by the
// search driver's null-move pruning (§4.6). It never touches the capture
// stack; pair it with exactly one UndoNullMove.
func (gs *GameState) DoNullMove() {
	gs.Key ^= Key(gs.zob.SideToMove)
	gs.Side = gs.Side.Opponent()
}

// UndoNullMove is the exact inverse of DoNullMove.
func (gs *GameState) UndoNullMove() {
	gs.Side = gs.Side.Opponent()
	gs.Key ^= Key(gs.zob.SideToMove)
}

// updateTerminal implements §4.2 step 4 / §6.1 / §6.3: a capture-count
// win takes priority, then a W-in-a-row win that cannot be cancelled by
// an immediate opponent capture removing one of its stones.
func (gs *GameState) updateTerminal(r, c int, mover Player) {
	capCount := gs.MaxCaptures
	if mover == Min {
		capCount = gs.MinCaptures
	}
	if capCount >= gs.C {
		gs.Terminal = true
		gs.Winner = mover
		return
	}

	if line, ok := gs.findWinningLine(r, c, mover); ok {
		cancellable := false
		for _, sq := range line {
			rr, cc := int(sq)/gs.N, int(sq)%gs.N
			if gs.canBeCaptured(rr, cc, mover) {
				cancellable = true
				break
			}
		}
		if !cancellable {
			gs.Terminal = true
			gs.Winner = mover
			return
		}
	}

	if gs.StoneCount() >= gs.N*gs.N {
		gs.Terminal = true
		gs.Winner = NoPlayer
		return
	}

	gs.Terminal = false
	gs.Winner = NoPlayer
}

// findWinningLine returns the full contiguous run of p's stones through
// (r,c), if its length is at least W.
func (gs *GameState) findWinningLine(r, c int, p Player) ([]Square, bool) {
	for _, d := range bitboard.LineDirections {
		dx, dy := d[0], d[1]
		plus := gs.Board.CountConsecutive(r, c, dx, dy, p)
		minus := gs.Board.CountConsecutive(r, c, -dx, -dy, p)
		total := 1 + plus + minus
		if total >= gs.W {
			line := make([]Square, 0, total)
			startR, startC := r-minus*dx, c-minus*dy
			for i := 0; i < total; i++ {
				rr, cc := startR+i*dx, startC+i*dy
				line = append(line, Square(rr*gs.N+cc))
			}
			return line, true
		}
	}
	return nil, false
}

// canBeCaptured reports whether an opponent placement could capture the
// stone at (r,c) belonging to mover: i.e. whether there is an empty cell
// a, with mover stones at a+d and a+2d, and an existing opponent stone at
// a+3d, such that (r,c) is one of the two mover stones in that pattern.
func (gs *GameState) canBeCaptured(r, c int, mover Player) bool {
	opp := mover.Opponent()
	for _, d := range bitboard.Directions {
		ar, ac := r-d[0], c-d[1]
		tr, tc := r+d[0], c+d[1]
		br, bc := r+2*d[0], c+2*d[1]
		// (r,c) as the stone next to the opponent: empty at r-2d, mover at r-d, opponent at r+d.
		er, ec := r-2*d[0], c-2*d[1]
		if gs.Board.InBounds(er, ec) && gs.Board.InBounds(tr, tc) &&
			gs.Board.Get(er, ec) == NoPlayer && gs.Board.Get(ar, ac) == mover && gs.Board.Get(tr, tc) == opp {
			return true
		}
		// (r,c) as the stone next to the empty cell: empty at r-d, mover at r+d, opponent at r+2d.
		if !gs.Board.InBounds(ar, ac) || !gs.Board.InBounds(tr, tc) || !gs.Board.InBounds(br, bc) {
			continue
		}
		if gs.Board.Get(ar, ac) == NoPlayer && gs.Board.Get(tr, tc) == mover && gs.Board.Get(br, bc) == opp {
			return true
		}
	}
	return false
}
