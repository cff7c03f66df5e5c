package bitboard

import (
	"math/rand"

	. "github.com/gomokucore/engine/internal/types"
)

// zobristSeed is a fixed constant so that two independently constructed
// Zobrist tables of the same size N always agree (§4.1: "seeded from a
// constant so two independent instances agree").
const zobristSeed = 0x9E3779B97F4A7C15

// Zobrist is an immutable, once-constructed table of pseudo-random
// 64-bit piece keys plus the side-to-move key. Per §9's "global mutable
// tables" note, this is a value built once at engine construction and
// passed by reference, never a package-level mutable global.
type Zobrist struct {
	n          int
	pieceKeys  [][2]uint64 // indexed by square, then by Player (Max=0, Min=1)
	SideToMove uint64
}

// NewZobrist builds the N²·2+1 pseudo-random key table for a board of
// side n.
func NewZobrist(n int) *Zobrist {
	seed := uint64(zobristSeed)
	rnd := rand.New(rand.NewSource(int64(seed)))
	z := &Zobrist{n: n, pieceKeys: make([][2]uint64, n*n)}
	for i := range z.pieceKeys {
		z.pieceKeys[i][0] = rnd.Uint64()
		z.pieceKeys[i][1] = rnd.Uint64()
	}
	z.SideToMove = rnd.Uint64()
	return z
}

// PieceKey returns the XOR key for placing player p at square index i
// (row*n+col).
func (z *Zobrist) PieceKey(i int, p Player) uint64 {
	if p == Max {
		return z.pieceKeys[i][0]
	}
	return z.pieceKeys[i][1]
}

// FullKey recomputes the Zobrist key for board b and side-to-move stm
// from scratch by XOR-ing every occupied cell's piece key, used by the
// incremental-vs-recomputed consistency check of §8 invariant 2.
func (z *Zobrist) FullKey(b *Board, stm Player) Key {
	var k uint64
	for i := 0; i < b.N*b.N; i++ {
		r, c := i/b.N, i%b.N
		switch b.Get(r, c) {
		case Max:
			k ^= z.PieceKey(i, Max)
		case Min:
			k ^= z.PieceKey(i, Min)
		}
	}
	if stm == Min {
		k ^= z.SideToMove
	}
	return Key(k)
}
