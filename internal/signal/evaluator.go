package signal

import (
	"time"

	"github.com/rs/zerolog"
)

// Decision is the outcome of one threshold evaluation, consumed immediately
// by the notifier. Nothing is carried between runs.
type Decision struct {
	Triggered bool
	Return    Return
	// At is wall-clock time in the market zone, display only.
	At time.Time
}

// Evaluator compares a weighted return against the configured threshold.
// Pure and stateless; repeated triggering on successive runs is expected
// here, suppression is the journal's concern.
type Evaluator struct {
	threshold float64
	loc       *time.Location
	log       zerolog.Logger
	now       func() time.Time
}

func NewEvaluator(threshold float64, log zerolog.Logger) *Evaluator {
	return &Evaluator{
		threshold: threshold,
		loc:       MarketZone(),
		log:       log.With().Str("component", "evaluator").Logger(),
		now:       time.Now,
	}
}

// Evaluate decides whether ret is an investment opportunity. Strictly
// less-than: a return exactly at the threshold does not trigger. A no-data
// return never triggers.
func (ev *Evaluator) Evaluate(ret Return) Decision {
	d := Decision{
		Triggered: ret.HasData() && ret.Value < ev.threshold,
		Return:    ret,
		At:        ev.now().In(ev.loc),
	}

	evt := ev.log.Info().
		Float64("weighted_return", ret.Value).
		Float64("threshold", ev.threshold).
		Int("observed", ret.Observed).
		Int("skipped", ret.Skipped).
		Bool("triggered", d.Triggered)
	switch {
	case !ret.HasData():
		evt.Msg("no holdings observed, nothing to evaluate")
	case d.Triggered:
		evt.Msg("investment opportunity found")
	default:
		evt.Msg("portfolio within threshold")
	}
	return d
}
