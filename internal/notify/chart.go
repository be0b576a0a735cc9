package notify

import (
	"errors"
	"fmt"

	"github.com/vicanso/go-charts/v2"

	"fundwatch/internal/signal"
)

// renderBreakdownChart draws a bar chart of per-holding day changes. Purely
// cosmetic: any failure here degrades the alert to text-only.
func renderBreakdownChart(breakdown []signal.HoldingChange) ([]byte, error) {
	if len(breakdown) == 0 {
		return nil, errors.New("no observed holdings to chart")
	}

	labels := make([]string, 0, len(breakdown))
	values := make([]float64, 0, len(breakdown))
	for _, h := range breakdown {
		labels = append(labels, h.Symbol)
		values = append(values, h.ChangePct)
	}

	painter, err := charts.BarRender([][]float64{values},
		charts.TitleTextOptionFunc(fmt.Sprintf("Holdings day change %% (%d observed)", len(breakdown))),
		charts.XAxisDataOptionFunc(labels),
		charts.ThemeOptionFunc(charts.ThemeLight),
	)
	if err != nil {
		return nil, err
	}
	return painter.Bytes()
}
