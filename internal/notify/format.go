package notify

import (
	"fmt"
	"strings"

	"fundwatch/internal/signal"
)

// FormatAlert renders the Telegram message body. HTML parse mode.
func FormatAlert(d signal.Decision) string {
	var b strings.Builder
	b.WriteString("🚨 <b>Investment Opportunity Alert!</b>\n\n")
	fmt.Fprintf(&b, "📊 Portfolio down: <b>%.2f%%</b>\n", d.Return.Value)
	fmt.Fprintf(&b, "⏰ Time: %s\n", d.At.Format("2006-01-02 15:04:05 MST"))
	if d.Return.Skipped > 0 {
		fmt.Fprintf(&b, "⚠️ Based on %d of %d holdings\n", d.Return.Observed, d.Return.Observed+d.Return.Skipped)
	}
	b.WriteString("\nRemember to invest before 2:30 PM IST for same day NAV!")
	return b.String()
}
