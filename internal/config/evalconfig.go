package config

// evalConfiguration holds the pattern evaluator's tunable weights (§4.4).
type evalConfiguration struct {
	CaptureWeight int
	TempoWeight   int
	TempoWindow   int
}

func init() {
	Settings.Eval.CaptureWeight = 3500
	Settings.Eval.TempoWeight = 120
	Settings.Eval.TempoWindow = 8
}
