package search

import "time"

// Limits controls one Run call (§4.6 root driver). A zero value means
// "unbounded depth, unbounded time" — callers should set at least one
// of Depth or MoveTime.
type Limits struct {
	// Depth caps the deepest iteration the root driver will start. Zero
	// means no caller cap: the driver then stops after iteration 64 at
	// the latest, or earlier when time runs out.
	Depth int

	// MoveTime, if non-zero, stops the search once elapsed; zero means
	// no time cap (depth alone decides when to stop).
	MoveTime time.Duration

	// Nodes, if non-zero, is an additional node-count cap checked at the
	// same poll points as MoveTime.
	Nodes uint64

	// Workers is the number of Lazy SMP worker goroutines (§4.6 root
	// driver). Zero selects config.Settings.Search.MaxWorkers.
	Workers int
}

// NewLimits returns an empty Limits, mirroring the teacher's
// constructor-over-zero-value convention.
func NewLimits() *Limits {
	return &Limits{}
}
