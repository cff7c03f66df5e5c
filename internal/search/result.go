package search

import (
	"time"

	. "github.com/gomokucore/engine/internal/types"
)

// Result is what Run() returns: the best move found, its score from
// Max's perspective, and the bookkeeping the facade package surfaces
// to callers (§6).
type Result struct {
	BestMove Square
	Score    Value
	Depth    int // deepest root iteration any worker completed
	Nodes    uint64
	Elapsed  time.Duration
	PV       []Square
	Stats    Statistics
}
