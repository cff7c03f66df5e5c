package bitboard

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/gomokucore/engine/internal/types"
)

func TestPlaceGetRemove(t *testing.T) {
	b := NewBoard(19)
	assert.Equal(t, NoPlayer, b.Get(9, 9))

	b.Place(9, 9, Max)
	assert.Equal(t, Max, b.Get(9, 9))
	assert.True(t, b.Occupied.Get(9*19+9))
	assert.True(t, b.Max.Get(9*19+9))
	assert.False(t, b.Min.Get(9*19+9))

	p := b.Remove(9, 9)
	assert.Equal(t, Max, p)
	assert.Equal(t, NoPlayer, b.Get(9, 9))
	assert.False(t, b.Occupied.Get(9*19+9))
}

func TestAdjacentToAnyStone(t *testing.T) {
	b := NewBoard(19)
	assert.False(t, b.AdjacentToAnyStone(5, 5))
	b.Place(5, 6, Min)
	assert.True(t, b.AdjacentToAnyStone(5, 5))
	assert.False(t, b.AdjacentToAnyStone(10, 10))
}

func TestCountConsecutive(t *testing.T) {
	b := NewBoard(19)
	b.Place(9, 9, Max)
	b.Place(9, 10, Max)
	b.Place(9, 11, Max)
	assert.Equal(t, 2, b.CountConsecutive(9, 9, 0, 1, Max))
	assert.Equal(t, 0, b.CountConsecutive(9, 9, 0, -1, Max))
	b.Place(9, 12, Min)
	assert.Equal(t, 2, b.CountConsecutive(9, 9, 0, 1, Max))
}

func TestZobristIncrementalMatchesFullRecompute(t *testing.T) {
	n := 19
	z := NewZobrist(n)
	b := NewBoard(n)
	var key uint64
	stm := Max

	rnd := rand.New(rand.NewSource(42))
	placed := map[int]Player{}
	for i := 0; i < 200; i++ {
		r, c := rnd.Intn(n), rnd.Intn(n)
		sq := r*n + c
		if _, ok := placed[sq]; ok {
			continue
		}
		placed[sq] = stm
		b.Place(r, c, stm)
		key ^= z.PieceKey(sq, stm)
		stm = stm.Opponent()
		key ^= z.SideToMove

		full := z.FullKey(&b, stm)
		assert.Equal(t, full, Key(key), "incremental key must match full recompute at step %d", i)
	}
}

func TestZobristTwoInstancesAgree(t *testing.T) {
	z1 := NewZobrist(19)
	z2 := NewZobrist(19)
	assert.Equal(t, z1.SideToMove, z2.SideToMove)
	assert.Equal(t, z1.PieceKey(42, Max), z2.PieceKey(42, Max))
	assert.Equal(t, z1.PieceKey(42, Min), z2.PieceKey(42, Min))
}
