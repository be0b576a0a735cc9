// Package portfolio loads the holdings file the tracker evaluates.
package portfolio

// Holding is one portfolio constituent: a security code usable as a price
// lookup key plus its weight. The weight may be on a 0-100 percent scale or a
// fraction of one; internal/signal resolves the convention.
type Holding struct {
	Symbol string
	Weight float64
}

// Portfolio is the full holdings list, constructed once per run and
// immutable afterwards. Duplicate symbols are tolerated; each entry
// contributes independently to the weighted sum.
type Portfolio []Holding
