package history

import (
	"testing"

	"github.com/stretchr/testify/assert"

	. "github.com/gomokucore/engine/internal/types"
)

func TestKillersMostRecentFirst(t *testing.T) {
	h := NewHistory(19)
	h.StoreKiller(3, Move(10))
	h.StoreKiller(3, Move(20))
	k := h.Killers(3)
	assert.Equal(t, Move(20), k[0])
	assert.Equal(t, Move(10), k[1])
}

func TestStoreKillerSameMoveIsNoOp(t *testing.T) {
	h := NewHistory(19)
	h.StoreKiller(0, Move(5))
	h.StoreKiller(0, Move(7))
	h.StoreKiller(0, Move(5))
	k := h.Killers(0)
	assert.Equal(t, Move(5), k[0])
	assert.Equal(t, Move(7), k[1])
}

func TestAddCutoffAccumulatesDepthSquared(t *testing.T) {
	h := NewHistory(19)
	h.AddCutoff(Max, Move(42), 4)
	h.AddCutoff(Max, Move(42), 3)
	assert.Equal(t, int64(16+9), h.Score(Max, Move(42)))
}

func TestNewSearchHalvesAndClearsKillers(t *testing.T) {
	h := NewHistory(19)
	h.AddCutoff(Min, Move(1), 10)
	h.StoreKiller(2, Move(1))
	before := h.Score(Min, Move(1))

	h.NewSearch()

	assert.Equal(t, before/2, h.Score(Min, Move(1)))
	assert.Equal(t, [2]Move{MoveNone, MoveNone}, h.Killers(2))
}

func TestOutOfRangePlyAndMoveAreIgnoredNotPanics(t *testing.T) {
	h := NewHistory(19)
	assert.NotPanics(t, func() {
		h.StoreKiller(-1, Move(1))
		h.StoreKiller(999, Move(1))
		h.AddCutoff(Max, Move(-1), 4)
		h.AddCutoff(Max, Move(999999), 4)
		_ = h.Score(Max, Move(-1))
		_ = h.Killers(-1)
	})
}
