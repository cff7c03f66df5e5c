// Package types holds the small shared value types used across the
// engine: the side-to-move tag, board coordinates, moves, search values,
// Zobrist keys and bound kinds. Player and ValueType are closed sets and
// are modeled as tagged enums rather than interfaces, per the engine's
// "resolve at construction time, keep inner loops monomorphic" design.
package types

import "fmt"

// Player is the side to move: Max or Min. There is no inheritance here on
// purpose — search and eval inner loops switch on this tag directly.
type Player int8

const (
	Max Player = iota
	Min
	NoPlayer
)

// Opponent returns the other player.
func (p Player) Opponent() Player {
	switch p {
	case Max:
		return Min
	case Min:
		return Max
	default:
		return NoPlayer
	}
}

// Sign returns +1 for Max, -1 for Min. Used to fold a side-relative score
// into Max's perspective.
func (p Player) Sign() int {
	if p == Max {
		return 1
	}
	return -1
}

func (p Player) String() string {
	switch p {
	case Max:
		return "Max"
	case Min:
		return "Min"
	default:
		return "None"
	}
}

// Square is a flattened board index, row*N+col for some board size N. It
// carries no N of its own; callers supply N when they need Row/Col back.
type Square int32

// SquareNone is the sentinel for "no square".
const SquareNone Square = -1

// NewSquare packs a (row, col) pair into a Square for board size n.
func NewSquare(r, c, n int) Square {
	return Square(r*n + c)
}

// RowCol unpacks a Square back into (row, col) for board size n.
func (s Square) RowCol(n int) (int, int) {
	return int(s) / n, int(s) % n
}

func (s Square) String() string {
	if s == SquareNone {
		return "-"
	}
	return fmt.Sprintf("sq(%d)", s)
}

// Move is a single placement. Gomoku moves never capture-by-displacement
// or promote, so unlike a chess Move this is just a square plus a
// none-sentinel; multi-stone capture side effects are recorded on the
// game state's capture stack, not encoded in the move itself.
type Move Square

// MoveNone is the sentinel "no move".
const MoveNone Move = Move(SquareNone)

func (m Move) String() string {
	if m == MoveNone {
		return "none"
	}
	return fmt.Sprintf("mv(%d)", m)
}

// Key is a 64-bit Zobrist position hash.
type Key uint64

// Value is a search/evaluation score, from Max's perspective.
type Value int32

const (
	// ValueNA marks "no value computed".
	ValueNA Value = 1<<31 - 1

	// WinValue is the score of a position that is a proven win.
	WinValue Value = 10_000_000

	// LiveFourValue is the "effectively won" threshold of §4.4: any
	// live-four for the side to move scores at least WinValue-1.
	LiveFourValue Value = WinValue - 1

	// DrawValue is the value of a terminal no-moves position.
	DrawValue Value = 0
)

// ValueType is the bound kind a transposition table entry carries.
type ValueType uint8

const (
	NoValueType ValueType = iota
	Exact
	UpperBound // value at most the stored bound (fail-low, beta search)
	LowerBound // value at least the stored bound (fail-high, alpha search)
)

func (v ValueType) String() string {
	switch v {
	case Exact:
		return "EXACT"
	case UpperBound:
		return "UPPER"
	case LowerBound:
		return "LOWER"
	default:
		return "NONE"
	}
}

// Pattern is the closed set of line-pattern categories recognised by the
// evaluator (§4.4). A tagged enum, not an open class hierarchy.
type Pattern uint8

const (
	PatternNone Pattern = iota
	PatternLiveTwo
	PatternHalfFreeTwo
	PatternDeadThree
	PatternHalfFreeThree
	PatternLiveThree
	PatternDeadFour
	PatternHalfFreeFour
	PatternLiveFour
	PatternFive
	PatternJump
	PatternSplit
	PatternFork
)
