// Package market fetches daily closing prices for portfolio symbols.
package market

import (
	"context"
	"errors"
)

// PriceObservation holds the two most recent daily closes for a symbol.
type PriceObservation struct {
	Symbol       string
	PrevClose    float64
	CurrentClose float64
}

// ChangePct is the day-over-day percentage change.
func (o PriceObservation) ChangePct() float64 {
	return (o.CurrentClose - o.PrevClose) / o.PrevClose * 100
}

// ErrInsufficientHistory means the symbol resolved but returned fewer than
// two usable daily closes.
var ErrInsufficientHistory = errors.New("insufficient price history")

// Source resolves a symbol to its two most recent daily closes. Any error is
// equivalent to the caller: the holding is skipped for this pass.
type Source interface {
	DailyCloses(ctx context.Context, symbol string) (PriceObservation, error)
}
