// Package tracker runs one evaluation pass: weighted return, threshold
// decision, notification, journal entry.
package tracker

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"fundwatch/internal/journal"
	"fundwatch/internal/notify"
	"fundwatch/internal/portfolio"
	"fundwatch/internal/signal"
)

// marketCutoffHour: passes gated to market hours stop at 14:00 IST, leaving
// time to invest before the 14:30 same-day NAV cutoff.
const marketCutoffHour = 14

type Options struct {
	Portfolio portfolio.Portfolio
	Engine    *signal.Engine
	Evaluator *signal.Evaluator
	Notifier  notify.Notifier
	// Journal may be nil; cooldown and status then have nothing to read.
	Journal *journal.Journal
	// Cooldown 0 means re-alert on every triggering pass.
	Cooldown        time.Duration
	MarketHoursOnly bool
	Log             zerolog.Logger
}

type Tracker struct {
	pf              portfolio.Portfolio
	engine          *signal.Engine
	evaluator       *signal.Evaluator
	notifier        notify.Notifier
	journal         *journal.Journal
	cooldown        time.Duration
	marketHoursOnly bool
	loc             *time.Location
	log             zerolog.Logger
	now             func() time.Time
}

func New(opts Options) *Tracker {
	return &Tracker{
		pf:              opts.Portfolio,
		engine:          opts.Engine,
		evaluator:       opts.Evaluator,
		notifier:        opts.Notifier,
		journal:         opts.Journal,
		cooldown:        opts.Cooldown,
		marketHoursOnly: opts.MarketHoursOnly,
		loc:             signal.MarketZone(),
		log:             opts.Log.With().Str("component", "tracker").Logger(),
		now:             time.Now,
	}
}

// Name implements scheduler.Job.
func (t *Tracker) Name() string { return "portfolio-evaluation" }

// Run implements scheduler.Job.
func (t *Tracker) Run() error { return t.RunOnce(context.Background()) }

// RunOnce performs a single evaluation pass. Per-holding fetch failures and
// notification failures are absorbed here; only nothing-to-do and success
// paths remain, so the returned error is currently always nil and exists for
// the Job contract.
func (t *Tracker) RunOnce(ctx context.Context) error {
	if t.marketHoursOnly && !t.withinMarketHours() {
		t.log.Info().Msg("outside trading hours, skipping pass")
		return nil
	}

	ret := t.engine.WeightedReturn(ctx, t.pf)
	decision := t.evaluator.Evaluate(ret)

	delivered := false
	if decision.Triggered {
		if t.inCooldown() {
			t.log.Info().Dur("cooldown", t.cooldown).Msg("alert suppressed by cooldown")
		} else if err := t.notifier.AlertOpportunity(ctx, decision); err != nil {
			t.log.Warn().Err(err).Msg("alert delivery failed")
		} else {
			delivered = true
			t.log.Info().Msg("alert delivered")
		}
	}

	if t.journal != nil {
		err := t.journal.Record(journal.Entry{
			At:             decision.At,
			WeightedReturn: ret.Value,
			Observed:       ret.Observed,
			Skipped:        ret.Skipped,
			Triggered:      decision.Triggered,
			Delivered:      delivered,
		})
		if err != nil {
			t.log.Warn().Err(err).Msg("journal write failed")
		}
	}
	return nil
}

func (t *Tracker) inCooldown() bool {
	if t.cooldown <= 0 || t.journal == nil {
		return false
	}
	last, ok, err := t.journal.LastTriggered()
	if err != nil {
		t.log.Warn().Err(err).Msg("cooldown lookup failed")
		return false
	}
	return ok && t.now().Sub(last) < t.cooldown
}

// withinMarketHours reports whether now is a weekday before the IST cutoff.
func (t *Tracker) withinMarketHours() bool {
	now := t.now().In(t.loc)
	if now.Weekday() == time.Saturday || now.Weekday() == time.Sunday {
		return false
	}
	cutoff := time.Date(now.Year(), now.Month(), now.Day(), marketCutoffHour, 0, 0, 0, t.loc)
	return now.Before(cutoff)
}
