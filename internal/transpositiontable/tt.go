// Package transpositiontable implements the concurrent, bounded-size
// transposition table of §4.5: a racy-but-valid keyed cache of search
// results shared by reference across all Lazy SMP workers. Each bucket
// is guarded by its own lock (one of the two designs §4.5/§9 call out
// as acceptable); a reader that finds a key mismatch treats it as a
// miss, and a writer either fully replaces a bucket under its lock or
// leaves the existing entry untouched.
package transpositiontable

import (
	"math"
	"sync"
	"sync/atomic"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gomokucore/engine/internal/logging"
	. "github.com/gomokucore/engine/internal/types"
)

var out = message.NewPrinter(language.English)

// MaxSizeMB is the largest table size this implementation will honour.
const MaxSizeMB = 4096

const mb = 1024 * 1024

// bucket pairs one entry with the lock that guards it.
type bucket struct {
	mu    sync.Mutex
	entry TtEntry
}

// Stats tallies table usage, as exposed by the public tt_stats() surface.
type Stats struct {
	Puts       uint64
	Collisions uint64
	Overwrites uint64
	Updates    uint64
	Probes     uint64
	Hits       uint64
	Misses     uint64
}

// Table is the transposition table. Safe for concurrent Probe/Store from
// any number of search workers; Resize and Clear are NOT safe to call
// concurrently with an in-flight search.
type Table struct {
	n                  int
	data               []bucket
	sizeBytes          uint64
	hashMask           uint64
	maxEntries         uint64
	numberOfEntries    uint64
	generation         uint32
	stats              Stats
	statsMu            sync.Mutex
}

// NewTable creates a Table sized to sizeInMB (rounded down to a power of
// two entries) for a board of side n.
func NewTable(n, sizeInMB int) *Table {
	t := &Table{n: n}
	t.Resize(sizeInMB)
	return t
}

// Resize rebuilds the table with a new size budget. All entries are lost.
func (t *Table) Resize(sizeInMB int) {
	log := logging.GetLog()
	if sizeInMB > MaxSizeMB {
		log.Warningf("requested TT size %d MB reduced to max %d MB", sizeInMB, MaxSizeMB)
		sizeInMB = MaxSizeMB
	}
	if sizeInMB < 0 {
		sizeInMB = 0
	}
	t.sizeBytes = uint64(sizeInMB) * mb
	if t.sizeBytes == 0 {
		t.maxEntries = 0
	} else {
		t.maxEntries = 1 << uint64(math.Floor(math.Log2(float64(t.sizeBytes/TtEntrySize))))
	}
	t.hashMask = t.maxEntries - 1
	t.sizeBytes = t.maxEntries * TtEntrySize
	t.data = make([]bucket, t.maxEntries)
	t.numberOfEntries = 0
	log.Infof("TT size %d MB, capacity %d entries of %d bytes", t.sizeBytes/mb, t.maxEntries, TtEntrySize)
}

// Clear empties every bucket without changing the table's size.
func (t *Table) Clear() {
	for i := range t.data {
		t.data[i].mu.Lock()
		t.data[i].entry = TtEntry{}
		t.data[i].mu.Unlock()
	}
	atomic.StoreUint64(&t.numberOfEntries, 0)
	t.statsMu.Lock()
	t.stats = Stats{}
	t.statsMu.Unlock()
}

// NewGeneration increments the age counter used for replacement priority.
// The search driver calls this once per Search() invocation (§4.5).
func (t *Table) NewGeneration() {
	atomic.AddUint32(&t.generation, 1)
}

func (t *Table) hash(key Key) uint64 {
	if t.hashMask == 0 {
		return 0
	}
	return uint64(key) & t.hashMask
}

// ProbeResult is the outcome of a Probe call (§4.5).
type ProbeResult struct {
	Found  bool // a non-colliding entry was read
	Cutoff bool // the caller can return Value immediately
	Value  Value
	Move   Move // best-move hint, valid whenever Found is true
}

// Probe implements the probe semantics of §4.5: miss on empty/mismatched
// key; a cutoff if the stored depth is sufficient and the bound kind
// resolves the [alpha,beta] window; otherwise the stored move is
// returned as an ordering hint only.
func (t *Table) Probe(key Key, depth int, alpha, beta Value) ProbeResult {
	if len(t.data) == 0 {
		return ProbeResult{}
	}
	b := &t.data[t.hash(key)]
	b.mu.Lock()
	e := b.entry
	b.mu.Unlock()

	t.statsMu.Lock()
	t.stats.Probes++
	t.statsMu.Unlock()

	if e.isEmpty() || e.Key() != uint64(key) {
		t.statsMu.Lock()
		t.stats.Misses++
		t.statsMu.Unlock()
		return ProbeResult{}
	}

	t.statsMu.Lock()
	t.stats.Hits++
	t.statsMu.Unlock()

	res := ProbeResult{Found: true, Move: unpackMove(e.move, t.n)}
	if e.Depth() >= depth {
		switch e.Bound() {
		case Exact:
			res.Cutoff = true
			res.Value = e.Value()
		case LowerBound:
			if e.Value() >= beta {
				res.Cutoff = true
				res.Value = e.Value()
			}
		case UpperBound:
			if e.Value() <= alpha {
				res.Cutoff = true
				res.Value = e.Value()
			}
		}
	}
	return res
}

// Store implements the store semantics of §4.5: replace the bucket if
// it is empty, if the new depth is at least the stored depth, or if the
// stored entry's generation is older than the table's current one.
func (t *Table) Store(key Key, value Value, depth int, bound ValueType, move Move) {
	if len(t.data) == 0 {
		return
	}
	b := &t.data[t.hash(key)]
	gen := uint16(atomic.LoadUint32(&t.generation)) & ageMask
	packed := packMove(move, t.n)

	t.statsMu.Lock()
	t.stats.Puts++
	t.statsMu.Unlock()

	b.mu.Lock()
	defer b.mu.Unlock()

	switch {
	case b.entry.isEmpty():
		atomic.AddUint64(&t.numberOfEntries, 1)
		b.entry.write(uint64(key), value, depth, bound, packed, gen)
	case b.entry.Key() != uint64(key):
		t.statsMu.Lock()
		t.stats.Collisions++
		t.statsMu.Unlock()
		if depth >= b.entry.Depth() || b.entry.Age() != gen {
			t.statsMu.Lock()
			t.stats.Overwrites++
			t.statsMu.Unlock()
			b.entry.write(uint64(key), value, depth, bound, packed, gen)
		}
	default:
		t.statsMu.Lock()
		t.stats.Updates++
		t.statsMu.Unlock()
		if depth >= b.entry.Depth() || b.entry.Age() != gen {
			b.entry.write(uint64(key), value, depth, bound, packed, gen)
		}
	}
}

// Len returns the number of non-empty buckets (approximate under concurrency).
func (t *Table) Len() uint64 {
	return atomic.LoadUint64(&t.numberOfEntries)
}

// Hashfull returns how full the table is, in permille, as per the UCI
// convention the teacher's own TT reports in.
func (t *Table) Hashfull() int {
	if t.maxEntries == 0 {
		return 0
	}
	return int((1000 * t.Len()) / t.maxEntries)
}

// Stats returns a snapshot of the table's usage counters.
func (t *Table) Stats() Stats {
	t.statsMu.Lock()
	defer t.statsMu.Unlock()
	return t.stats
}

func (t *Table) String() string {
	s := t.Stats()
	return out.Sprintf(
		"TT: %d MB, capacity %d entries (%d bytes each), filled %d (%d%%), "+
			"puts %d updates %d collisions %d overwrites %d probes %d hits %d (%d%%) misses %d (%d%%)",
		t.sizeBytes/mb, t.maxEntries, TtEntrySize, t.Len(), t.Hashfull()/10,
		s.Puts, s.Updates, s.Collisions, s.Overwrites, s.Probes,
		s.Hits, (s.Hits*100)/(1+s.Probes), s.Misses, (s.Misses*100)/(1+s.Probes),
	)
}
