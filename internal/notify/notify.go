// Package notify delivers opportunity alerts to the operator.
package notify

import (
	"context"

	"fundwatch/internal/signal"
)

// Notifier delivers one alert. Delivery is best-effort: errors are for the
// caller to log, never to escalate.
type Notifier interface {
	AlertOpportunity(ctx context.Context, d signal.Decision) error
}
