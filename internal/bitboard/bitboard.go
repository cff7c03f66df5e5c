// Package bitboard implements the three-bitset position core of §4.1: the
// Max/Min/occupied bit sets, the incremental Zobrist table, and the
// primitive operations (place, remove, get, adjacency and run-length
// scans) every higher layer builds on. A Board is a handful of machine
// words, cheap to copy by value — exactly what lets search workers clone
// a whole game state per §3.3.
package bitboard

import (
	"math/bits"

	. "github.com/gomokucore/engine/internal/types"
)

// words holds enough uint64 words for the largest supported board
// (19*19 = 361 bits -> 6 words of 64 bits each).
const words = 6

// Bits is a fixed-size bit set covering up to 384 board cells.
type Bits [words]uint64

// Set sets bit i.
func (b *Bits) Set(i int) {
	b[i>>6] |= 1 << uint(i&63)
}

// Clear clears bit i.
func (b *Bits) Clear(i int) {
	b[i>>6] &^= 1 << uint(i&63)
}

// Get reports whether bit i is set.
func (b Bits) Get(i int) bool {
	return b[i>>6]&(1<<uint(i&63)) != 0
}

// PopCount returns the number of set bits.
func (b Bits) PopCount() int {
	n := 0
	for _, w := range b {
		n += bits.OnesCount64(w)
	}
	return n
}

// Or returns the bitwise union of b and o.
func (b Bits) Or(o Bits) Bits {
	var r Bits
	for i := range b {
		r[i] = b[i] | o[i]
	}
	return r
}

// Board is the bitboard-backed position core for one board size N.
// max_stones, min_stones and occupied = max ∪ min are kept as an
// invariant after every mutation (§3.1).
type Board struct {
	N        int
	Max      Bits
	Min      Bits
	Occupied Bits
}

// NewBoard returns an empty board of side n.
func NewBoard(n int) Board {
	return Board{N: n}
}

// Get returns the occupant of (r,c): Max, Min or NoPlayer if empty.
func (b *Board) Get(r, c int) Player {
	i := r*b.N + c
	if b.Max.Get(i) {
		return Max
	}
	if b.Min.Get(i) {
		return Min
	}
	return NoPlayer
}

// InBounds reports whether (r,c) lies on the board.
func (b *Board) InBounds(r, c int) bool {
	return r >= 0 && r < b.N && c >= 0 && c < b.N
}

// place sets the player's bit and the occupied bit at (r,c). Zobrist
// maintenance is the caller's responsibility (done at the position layer,
// which knows which piece key to XOR) so this stays a pure bitboard op.
func (b *Board) place(r, c int, p Player) {
	i := r*b.N + c
	switch p {
	case Max:
		b.Max.Set(i)
	case Min:
		b.Min.Set(i)
	}
	b.Occupied.Set(i)
}

// remove clears whichever player's bit is set at (r,c), plus occupied.
// Returns the player that was removed, or NoPlayer if the cell was empty.
func (b *Board) remove(r, c int) Player {
	i := r*b.N + c
	p := b.Get(r, c)
	switch p {
	case Max:
		b.Max.Clear(i)
	case Min:
		b.Min.Clear(i)
	default:
		return NoPlayer
	}
	b.Occupied.Clear(i)
	return p
}

// Place and Remove are the exported wrappers used by the position layer,
// which pairs them with the matching Zobrist XOR.
func (b *Board) Place(r, c int, p Player) { b.place(r, c, p) }
func (b *Board) Remove(r, c int) Player   { return b.remove(r, c) }

// directions are the 8 neighbour offsets, also the 4 "line directions"
// when only (dx,dy) and its negation are considered together.
var Directions = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}

// LineDirections are the 4 distinct line directions (each paired with its
// opposite by the caller when scanning both ways from a stone).
var LineDirections = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // diagonal \
	{1, -1}, // diagonal /
}

// AdjacentToAnyStone reports whether any of the 8 neighbours of (r,c) is
// occupied. Used by the zone move-generation clause (§4.3 clause 5).
func (b *Board) AdjacentToAnyStone(r, c int) bool {
	for _, d := range Directions {
		nr, nc := r+d[0], c+d[1]
		if b.InBounds(nr, nc) && b.Get(nr, nc) != NoPlayer {
			return true
		}
	}
	return false
}

// CountConsecutive counts, starting at (r,c) EXCLUSIVE, consecutive cells
// in direction (dx,dy) owned by p, stopping at the first non-p cell or
// board edge (§4.1).
func (b *Board) CountConsecutive(r, c, dx, dy int, p Player) int {
	n := 0
	for {
		r, c = r+dx, c+dy
		if !b.InBounds(r, c) || b.Get(r, c) != p {
			break
		}
		n++
	}
	return n
}
