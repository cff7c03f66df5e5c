package search

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var out = message.NewPrinter(language.English)

// Statistics are extra counters not essential to a functioning search,
// exposed for diagnostics and tuning (§4.6/§4.7).
type Statistics struct {
	Nodes     uint64
	TTHits    uint64
	TTMisses  uint64
	TTCuts    uint64
	BetaCuts  uint64
	BetaCuts1 uint64 // beta cuts on the first move tried (move-ordering quality)

	NullMoveCuts         uint64
	FutilityPrunings     uint64
	LmrReductions        uint64
	LmrResearches        uint64
	AspirationResearches uint64

	CurrentIterationDepth int
}

func (s *Statistics) String() string {
	return out.Sprintf("%+v", *s)
}

func (s *Statistics) add(o Statistics) {
	s.Nodes += o.Nodes
	s.TTHits += o.TTHits
	s.TTMisses += o.TTMisses
	s.TTCuts += o.TTCuts
	s.BetaCuts += o.BetaCuts
	s.BetaCuts1 += o.BetaCuts1
	s.NullMoveCuts += o.NullMoveCuts
	s.FutilityPrunings += o.FutilityPrunings
	s.LmrReductions += o.LmrReductions
	s.LmrResearches += o.LmrResearches
	s.AspirationResearches += o.AspirationResearches
}
