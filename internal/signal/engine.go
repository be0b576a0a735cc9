// Package signal computes the weighted portfolio return and decides whether
// it constitutes an investment opportunity.
package signal

import (
	"context"

	"github.com/rs/zerolog"

	"fundwatch/internal/market"
	"fundwatch/internal/portfolio"
)

// Convention declares how portfolio weights are expressed.
type Convention string

const (
	// ConventionAuto infers the scale from the data: weights summing past 2
	// are treated as percent. Compatibility fallback; prefer an explicit
	// convention.
	ConventionAuto Convention = "auto"
	// ConventionPercent means weights are on a 0-100 scale.
	ConventionPercent Convention = "percent"
	// ConventionFraction means weights are fractions of one.
	ConventionFraction Convention = "fraction"
)

// autoPercentCutoff: observed weights summing past this are assumed to be on
// the 0-100 scale. Fraction weights sum toward 1, percent weights toward 100,
// so anything above 2 can only plausibly be percent.
const autoPercentCutoff = 2.0

// HoldingChange is one holding's observed day move.
type HoldingChange struct {
	Symbol    string
	Weight    float64
	ChangePct float64
}

// Return is the aggregate weighted day change of the portfolio, in percent
// of portfolio value.
type Return struct {
	// Value is meaningful only when HasData() is true.
	Value float64
	// WeightSum is the raw weight total over observed holdings.
	WeightSum float64
	Observed  int
	Skipped   int
	Breakdown []HoldingChange
}

// HasData reports whether any holding was actually observed. A Return with
// Value 0 and HasData false means "no data", not "nothing moved".
func (r Return) HasData() bool { return r.Observed > 0 }

// Engine aggregates per-holding price changes into one weighted return.
type Engine struct {
	source     market.Source
	convention Convention
	log        zerolog.Logger
}

func NewEngine(source market.Source, convention Convention, log zerolog.Logger) *Engine {
	if convention == "" {
		convention = ConventionAuto
	}
	return &Engine{
		source:     source,
		convention: convention,
		log:        log.With().Str("component", "engine").Logger(),
	}
}

// WeightedReturn fetches each holding's latest two closes and folds them into
// a single weighted figure. A holding whose fetch fails in any way is skipped;
// it contributes to neither the weighted sum nor the weight total, and never
// aborts the pass.
func (e *Engine) WeightedReturn(ctx context.Context, pf portfolio.Portfolio) Return {
	var ret Return
	var weightedSum float64

	for _, h := range pf {
		obs, err := e.source.DailyCloses(ctx, h.Symbol)
		if err != nil {
			e.log.Warn().Err(err).Str("symbol", h.Symbol).Msg("skipping holding")
			ret.Skipped++
			continue
		}
		change := obs.ChangePct()
		weightedSum += change * h.Weight
		ret.WeightSum += h.Weight
		ret.Observed++
		ret.Breakdown = append(ret.Breakdown, HoldingChange{
			Symbol:    h.Symbol,
			Weight:    h.Weight,
			ChangePct: change,
		})
		e.log.Info().
			Str("symbol", h.Symbol).
			Float64("change_pct", change).
			Float64("weight", h.Weight).
			Msg("fetched holding")
	}

	ret.Value = e.scale(weightedSum, ret.WeightSum)
	return ret
}

func (e *Engine) scale(weightedSum, weightSum float64) float64 {
	switch e.convention {
	case ConventionPercent:
		return weightedSum / 100
	case ConventionFraction:
		return weightedSum
	default:
		if weightSum > autoPercentCutoff {
			return weightedSum / 100
		}
		return weightedSum
	}
}
