package transpositiontable

import (
	. "github.com/gomokucore/engine/internal/types"
)

// TtEntry is one transposition-table slot (§4.5). Bit-packed to stay
// compact: key (8 bytes) + value (4 bytes) + move (2 bytes) + meta
// (2 bytes) = 16 bytes.
type TtEntry struct {
	key   uint64
	value int32
	move  uint16 // r*32+c, or moveNoneSentinel
	meta  uint16 // depth(8 bits) | bound(2 bits) | age/generation(6 bits)
}

// TtEntrySize is the size in bytes of one TtEntry.
const TtEntrySize = 16

const (
	ageMask    = uint16(0b0000_0000_0011_1111)
	boundMask  = uint16(0b0000_0000_1100_0000)
	boundShift = 6
	depthMask  = uint16(0b1111_1111_0000_0000)
	depthShift = 8

	moveNoneSentinel = uint16(0xFFFF)
	boardSide        = 32 // packing stride for row/col, covers N up to 31
)

func packMove(m Move, n int) uint16 {
	if m == MoveNone {
		return moveNoneSentinel
	}
	r, c := int(m)/n, int(m)%n
	return uint16(r*boardSide + c)
}

func unpackMove(packed uint16, n int) Move {
	if packed == moveNoneSentinel {
		return MoveNone
	}
	r, c := int(packed)/boardSide, int(packed)%boardSide
	return Move(r*n + c)
}

func (e *TtEntry) isEmpty() bool {
	return e.key == 0
}

func (e *TtEntry) Key() uint64 {
	return e.key
}

func (e *TtEntry) Value() Value {
	return Value(e.value)
}

func (e *TtEntry) Depth() int {
	return int((e.meta & depthMask) >> depthShift)
}

func (e *TtEntry) Bound() ValueType {
	return ValueType((e.meta & boundMask) >> boundShift)
}

func (e *TtEntry) Age() uint16 {
	return e.meta & ageMask
}

func (e *TtEntry) write(key uint64, value Value, depth int, bound ValueType, move uint16, gen uint16) {
	e.key = key
	e.value = int32(value)
	e.move = move
	if depth > 255 {
		depth = 255
	}
	e.meta = (uint16(depth) << depthShift) | (uint16(bound) << boundShift) | (gen & ageMask)
}
