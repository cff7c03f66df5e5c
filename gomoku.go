// Package gomoku is the public programmatic surface of the engine
// (§6): a bitboard-backed Gomoku-with-captures ("Ninuki-renju"-style)
// state, its zone-restricted move generator, pattern evaluator, and a
// Lazy SMP alpha-beta search sharing one transposition table.
package gomoku

import (
	"time"

	"github.com/gomokucore/engine/internal/bitboard"
	"github.com/gomokucore/engine/internal/config"
	"github.com/gomokucore/engine/internal/evaluator"
	"github.com/gomokucore/engine/internal/movegen"
	"github.com/gomokucore/engine/internal/position"
	"github.com/gomokucore/engine/internal/search"
	"github.com/gomokucore/engine/internal/transpositiontable"
	. "github.com/gomokucore/engine/internal/types"
)

// ErrIllegalMove is returned by Make for an out-of-range or occupied
// cell (§7 IllegalMove). The core still treats make/undo as "caller
// filters first" via legal_moves/Make — this is the defensive error
// path the spec asks tests to exercise.
var ErrIllegalMove = position.ErrIllegalMove

// ErrNoHistory is returned by Undo with nothing left to undo.
var ErrNoHistory = position.ErrNoHistory

// State is one owned Gomoku position, reachable only through this
// package's functions — position.GameState stays an internal detail.
type State struct {
	gs *position.GameState
}

// NewState creates an empty board of side n, win length w, and
// capture-win threshold c (§6: new_state(N, W, C)).
func NewState(n, w, c int) *State {
	return &State{gs: position.NewGameState(n, w, c, bitboard.NewZobrist(n))}
}

// Clone returns an independent copy of state.
func (s *State) Clone() *State {
	return &State{gs: s.gs.Clone()}
}

// Size returns the board side length N.
func (s *State) Size() int {
	return s.gs.N
}

// SideToMove reports whose turn it is.
func (s *State) SideToMove() Player {
	return s.gs.Side
}

// Get returns the occupant of (r,c): Max, Min, or NoPlayer.
func (s *State) Get(r, c int) Player {
	return s.gs.Get(r, c)
}

// Captures returns (max pairs captured, min pairs captured).
func (s *State) Captures() (int, int) {
	return s.gs.MaxCaptures, s.gs.MinCaptures
}

// Terminal reports whether the game has ended, and who won (NoPlayer
// for a drawn/no-moves terminal state).
func (s *State) Terminal() (bool, Player) {
	return s.gs.Terminal, s.gs.Winner
}

// Key returns the current Zobrist hash.
func (s *State) Key() Key {
	return s.gs.Key
}

// LegalMoves returns the candidate moves for the side to move (§6:
// legal_moves(state), applying §4.3's zone-restricted policy and the
// §6.2 double-three filter) as (row, col) pairs.
func (s *State) LegalMoves() [][2]int {
	sqs := movegen.LegalMoves(s.gs)
	res := make([][2]int, len(sqs))
	for i, sq := range sqs {
		r, c := sq.RowCol(s.gs.N)
		res[i] = [2]int{r, c}
	}
	return res
}

// Make plays a move at (r,c) for the side to move (§6: make(state,
// (r,c))). Returns ErrIllegalMove if the cell is out of range or
// occupied; it does not itself enforce the double-three rule — callers
// are expected to only ever play moves drawn from LegalMoves.
func (s *State) Make(r, c int) error {
	return s.gs.Make(r, c)
}

// Undo reverses the most recent Make (§6: undo(state, (r,c)); the
// coordinate argument of the spec's surface is redundant with the
// state's own history stack, so it is dropped here). Returns
// ErrNoHistory if there is nothing to undo.
func (s *State) Undo() error {
	return s.gs.Undo()
}

// Evaluate returns the static pattern-based score of state from Max's
// perspective (§6: evaluate(state) -> i32; §4.4).
func (s *State) Evaluate() Value {
	return evaluator.Evaluate(s.gs)
}

// Limits bounds one Search call (§6: search(state, depth_limit,
// time_limit_ms?, workers?)). A zero Depth or TimeLimitMs means "no cap
// from this dimension"; at least one of them should be set. A zero
// Workers selects the configured default worker count.
type Limits struct {
	Depth       int
	TimeLimitMs int64
	Workers     int
}

// SearchResult is the structured result of Search (§6).
type SearchResult struct {
	BestMove     [2]int
	HasBestMove  bool
	Score        Value
	DepthReached int
	Nodes        uint64
	ElapsedMs    int64
	PV           [][2]int
}

// Engine owns a transposition table across many searches, the way a
// single long-lived process would reuse it move after move in a game.
// A bare State has no search of its own — Search needs somewhere to
// keep the table between calls, so it lives here rather than on State.
type Engine struct {
	s *search.Search
}

// NewEngine creates an Engine sized for boards of side n.
func NewEngine(n int) *Engine {
	return &Engine{s: search.NewSearch(n)}
}

// NewGame clears the transposition table for a fresh game.
func (e *Engine) NewGame() {
	e.s.NewGame()
}

// Search runs the Lazy SMP alpha-beta search of §4.6 against state,
// respecting limits, and returns the best move found along with the
// bookkeeping §6 specifies. Search never errors: a state with no legal
// continuation resolves to the §7 NoMoves contract (best_move = none,
// score = 0); a cancelled/timed-out search still returns the best move
// of its last completed root iteration.
func (e *Engine) Search(state *State, limits Limits) SearchResult {
	sl := search.Limits{
		Depth:   limits.Depth,
		Workers: limits.Workers,
	}
	if limits.TimeLimitMs > 0 {
		sl.MoveTime = time.Duration(limits.TimeLimitMs) * time.Millisecond
	}

	res := e.s.Run(state.gs, sl)

	out := SearchResult{
		Score:        res.Score,
		DepthReached: res.Depth,
		Nodes:        res.Nodes,
		ElapsedMs:    res.Elapsed.Milliseconds(),
	}
	if res.BestMove != SquareNone && res.Depth > 0 {
		r, c := res.BestMove.RowCol(state.gs.N)
		out.BestMove = [2]int{r, c}
		out.HasBestMove = true
	}
	out.PV = make([][2]int, len(res.PV))
	for i, sq := range res.PV {
		r, c := sq.RowCol(state.gs.N)
		out.PV[i] = [2]int{r, c}
	}
	return out
}

// TTClear empties the transposition table (§6: tt_clear()).
func (e *Engine) TTClear() {
	e.s.TT().Clear()
}

// TTStats is the summary §6's tt_stats() exposes.
type TTStats struct {
	Size       uint64
	HitRate    float64
	Collisions uint64
}

// TTStats returns a snapshot of transposition-table usage (§6:
// tt_stats() -> { size, hit_rate, collisions }).
func (e *Engine) TTStats() TTStats {
	st := e.s.TT().Stats()
	var hitRate float64
	if st.Probes > 0 {
		hitRate = float64(st.Hits) / float64(st.Probes)
	}
	return TTStats{
		Size:       e.s.TT().Len(),
		HitRate:    hitRate,
		Collisions: st.Collisions,
	}
}

// TTEntrySize is re-exported for callers sizing their own TT budget.
const TTEntrySize = transpositiontable.TtEntrySize

// Configure loads search/eval tunables from a TOML file (ambient config
// stack); see internal/config for the defaults used when Configure is
// never called. Safe to call at most once — later calls are no-ops,
// matching internal/config.Setup's own idempotence guard.
func Configure(path string) {
	config.ConfFile = path
	config.Setup()
}
