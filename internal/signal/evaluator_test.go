package signal

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fundwatch/internal/market"
	"fundwatch/internal/portfolio"
)

func TestEvaluateStrictThreshold(t *testing.T) {
	tests := []struct {
		name      string
		value     float64
		threshold float64
		want      bool
	}{
		{name: "exactly at threshold never triggers", value: -5.0, threshold: -5.0, want: false},
		{name: "just below triggers", value: -5.01, threshold: -5.0, want: true},
		{name: "well below triggers", value: -12.3, threshold: -5.0, want: true},
		{name: "above does not trigger", value: -1.0, threshold: -5.0, want: false},
		{name: "positive return, negative threshold", value: 1.2, threshold: -5.0, want: false},
		{name: "positive threshold", value: 0.5, threshold: 1.0, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev := NewEvaluator(tt.threshold, zerolog.Nop())
			d := ev.Evaluate(Return{Value: tt.value, Observed: 1, WeightSum: 1})
			assert.Equal(t, tt.want, d.Triggered)
			assert.InDelta(t, tt.value, d.Return.Value, 1e-9)
		})
	}
}

func TestEvaluateNoDataNeverTriggers(t *testing.T) {
	// A zero return with no observations must not be confused with "nothing
	// moved": even a threshold above zero must not fire.
	ev := NewEvaluator(1.0, zerolog.Nop())
	d := ev.Evaluate(Return{Value: 0, Observed: 0, Skipped: 3})
	assert.False(t, d.Triggered)
}

func TestEvaluateTimestampInMarketZone(t *testing.T) {
	ev := NewEvaluator(-5.0, zerolog.Nop())
	fixed := time.Date(2026, 8, 25, 9, 30, 0, 0, time.UTC)
	ev.now = func() time.Time { return fixed }

	d := ev.Evaluate(Return{Value: -1, Observed: 1})

	assert.True(t, d.At.Equal(fixed))
	zone, offset := d.At.Zone()
	assert.Equal(t, 5*3600+1800, offset, "Asia/Kolkata is UTC+05:30")
	assert.Equal(t, "IST", zone)
}

// End-to-end scenarios through engine and evaluator together.
func TestEngineEvaluatorScenarios(t *testing.T) {
	src := fakeSource{obs: map[string]market.PriceObservation{
		"A": obs("A", 100, 102), // +2%
		"B": obs("B", 100, 90),  // -10%
	}}
	pf := portfolio.Portfolio{{Symbol: "A", Weight: 60}, {Symbol: "B", Weight: 40}}
	engine := NewEngine(src, ConventionAuto, zerolog.Nop())

	ret := engine.WeightedReturn(context.Background(), pf)
	// raw = 60*2 + 40*(-10) = -280, weight sum 100 -> -2.80
	require.InDelta(t, -2.80, ret.Value, 1e-9)

	t.Run("threshold -2.5 triggers", func(t *testing.T) {
		d := NewEvaluator(-2.5, zerolog.Nop()).Evaluate(ret)
		assert.True(t, d.Triggered)
	})
	t.Run("threshold -3.0 does not trigger", func(t *testing.T) {
		d := NewEvaluator(-3.0, zerolog.Nop()).Evaluate(ret)
		assert.False(t, d.Triggered)
	})
	t.Run("B unavailable leaves positive return", func(t *testing.T) {
		partial := fakeSource{obs: map[string]market.PriceObservation{"A": obs("A", 100, 102)}}
		pRet := NewEngine(partial, ConventionAuto, zerolog.Nop()).WeightedReturn(context.Background(), pf)
		require.InDelta(t, 1.2, pRet.Value, 1e-9)
		assert.False(t, NewEvaluator(-2.5, zerolog.Nop()).Evaluate(pRet).Triggered)
	})
}
