// Package search implements the root search driver of §4.6: iterative
// deepening over a Lazy SMP pool of worker goroutines that all read and
// write one shared transposition table, each running the recursive PVS
// alpha-beta of alphabeta.go on its own cloned position.
package search

import (
	"context"
	"runtime"
	"sync"
	"time"

	golog "github.com/op/go-logging"
	"golang.org/x/sync/semaphore"

	"github.com/gomokucore/engine/internal/config"
	"github.com/gomokucore/engine/internal/history"
	"github.com/gomokucore/engine/internal/logging"
	"github.com/gomokucore/engine/internal/position"
	"github.com/gomokucore/engine/internal/transpositiontable"
	. "github.com/gomokucore/engine/internal/types"
)

// workerDepthOffsets diversifies each Lazy SMP worker's iterative
// deepening schedule by a small per-worker integer (§4.6): worker i
// searches iteration `d` at depth `d+offset`, so siblings disagree
// about the board just enough to explore different parts of the tree
// while all sharing the transposition table.
var workerDepthOffsets = []int{0, -1, 1, -2, 2, 3, -1, 1, -2, 2, 3, -1, 1, -2, 0, 1}

// sharedBest is the cross-worker best-move slot of §4.6: only a result
// from a strictly deeper completed iteration, or a strictly better
// score at the same depth, replaces the current slot.
type sharedBest struct {
	mu    sync.Mutex
	has   bool
	depth int
	value Value
	move  Square
}

func (b *sharedBest) publish(depth int, value Value, move Square) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.has || depth > b.depth || (depth == b.depth && value > b.value) {
		b.has = true
		b.depth = depth
		b.value = value
		b.move = move
	}
}

type bestSnapshot struct {
	depth int
	value Value
	move  Square
}

func (b *sharedBest) snapshot() bestSnapshot {
	b.mu.Lock()
	defer b.mu.Unlock()
	return bestSnapshot{depth: b.depth, value: b.value, move: b.move}
}

// Search owns the transposition table and runs searches against it.
// One Search instance is meant to live for an entire game: NewGame
// resets it between games without discarding the allocated table.
type Search struct {
	log *golog.Logger

	tt        *transpositiontable.Table
	isRunning *semaphore.Weighted
}

// NewSearch creates a Search backed by a transposition table sized per
// config.Settings.Search.TTSizeMB for a board of side n.
func NewSearch(n int) *Search {
	return &Search{
		log:       logging.GetLog(),
		tt:        transpositiontable.NewTable(n, config.Settings.Search.TTSizeMB),
		isRunning: semaphore.NewWeighted(1),
	}
}

// NewGame clears the transposition table for a fresh game.
func (s *Search) NewGame() {
	s.tt.Clear()
}

// TT exposes the underlying transposition table, e.g. for tt_stats().
func (s *Search) TT() *transpositiontable.Table {
	return s.tt
}

// Run executes one search to completion (or until limits stop it) and
// returns the best move found, per the external interface of §6. Run
// is synchronous: it blocks until every worker has stopped. Calling Run
// while a previous call is still in flight on the same Search blocks
// until that call returns — FrankyGo's isRunning semaphore pattern,
// adapted from an async start/stop pair to a single blocking call since
// this engine has no UCI-style "ponder while waiting" mode to serve.
func (s *Search) Run(root *position.GameState, limits Limits) Result {
	_ = s.isRunning.Acquire(context.Background(), 1)
	defer s.isRunning.Release(1)

	s.tt.NewGeneration()
	startTime := time.Now()

	var deadline time.Time
	if limits.MoveTime > 0 {
		deadline = startTime.Add(limits.MoveTime)
	}

	workers := limits.Workers
	if workers <= 0 {
		workers = config.Settings.Search.MaxWorkers
	}
	if workers < 1 {
		workers = 1
	}
	if cpu := runtime.NumCPU(); workers > cpu {
		workers = cpu
	}

	maxDepth := limits.Depth
	if maxDepth <= 0 {
		maxDepth = 64
	}

	var cancelFlag int32
	shared := &sharedBest{}
	allStats := make([]Statistics, workers)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		offset := workerDepthOffsets[w%len(workerDepthOffsets)]
		go func(id, offset int) {
			defer wg.Done()
			gs := root.Clone()
			sr := &searcher{
				id:       id,
				tt:       s.tt,
				hist:     history.NewHistory(gs.N),
				cancel:   &cancelFlag,
				deadline: deadline,
				nodeCap:  limits.Nodes,
			}
			runWorker(sr, gs, maxDepth, offset, shared)
			allStats[id] = sr.stats
		}(w, offset)
	}
	wg.Wait()

	var total Statistics
	for _, st := range allStats {
		total.add(st)
	}

	snap := shared.snapshot()
	res := Result{
		BestMove: snap.move,
		Score:    snap.value * Value(root.Side.Sign()),
		Depth:    snap.depth,
		Nodes:    total.Nodes,
		Elapsed:  time.Since(startTime),
		Stats:    total,
	}
	res.PV = extractPV(s.tt, root, snap.depth)
	s.log.Infof("search done: depth=%d move=%v score=%d nodes=%d elapsed=%s",
		res.Depth, res.BestMove, res.Score, res.Nodes, res.Elapsed)
	return res
}

// runWorker drives one worker's iterative deepening loop, publishing
// only iterations it finished without being aborted.
func runWorker(sr *searcher, gs *position.GameState, maxDepth, offset int, shared *sharedBest) {
	var prevScore Value
	for iter := 1; iter <= maxDepth; iter++ {
		depth := iter + offset
		if depth < 1 {
			continue
		}
		if sr.expired() {
			return
		}

		var val Value
		var mv Move
		var aborted bool

		if config.Settings.Search.UseAspiration && iter > 3 {
			window := Value(config.Settings.Search.AspirationWindow)
			alpha := prevScore - window
			beta := prevScore + window
			for {
				val, mv, aborted = sr.searchRoot(gs, depth, alpha, beta)
				if aborted {
					break
				}
				if val <= alpha {
					sr.stats.AspirationResearches++
					alpha -= window * 4
					if alpha < -WinValue {
						alpha = -WinValue
					}
					continue
				}
				if val >= beta {
					sr.stats.AspirationResearches++
					beta += window * 4
					if beta > WinValue {
						beta = WinValue
					}
					continue
				}
				break
			}
		} else {
			val, mv, aborted = sr.searchRoot(gs, depth, -WinValue, WinValue)
		}

		if aborted {
			return
		}

		prevScore = val
		sr.stats.CurrentIterationDepth = depth
		shared.publish(depth, val, Square(mv))
	}
}

// extractPV walks the transposition table's best-move hints from root,
// replaying them on a scratch clone, up to maxLen plies or the first
// missing/terminal entry.
func extractPV(tt *transpositiontable.Table, root *position.GameState, maxLen int) []Square {
	if maxLen <= 0 {
		return nil
	}
	gs := root.Clone()
	var pv []Square
	for i := 0; i < maxLen; i++ {
		res := tt.Probe(gs.Key, 0, -WinValue, WinValue)
		if !res.Found || res.Move == MoveNone {
			break
		}
		sq := Square(res.Move)
		r, c := sq.RowCol(gs.N)
		if gs.Get(r, c) != NoPlayer {
			break
		}
		if err := gs.Make(r, c); err != nil {
			break
		}
		pv = append(pv, sq)
		if gs.Terminal {
			break
		}
	}
	return pv
}
