package market

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// yahooChartResp mirrors Yahoo v8 chart response (trimmed to needed fields).
type yahooChartResp struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"chart"`
}

// yahooSparkResp mirrors Yahoo v7 spark fallback (trimmed).
type yahooSparkResp struct {
	Spark struct {
		Result []struct {
			Symbol   string `json:"symbol"`
			Response []struct {
				Timestamp []int64   `json:"timestamp"`
				Close     []float64 `json:"close"`
			} `json:"response"`
		} `json:"result"`
		Error any `json:"error"`
	} `json:"spark"`
}

// Yahoo fetches daily closes from the Yahoo finance chart API, rotating
// between query hosts and falling back to the spark endpoint when the chart
// endpoint misbehaves.
type Yahoo struct {
	hosts    []string
	backoffs []time.Duration
	client   *http.Client
	log      zerolog.Logger
}

// NewYahoo builds the default production source.
func NewYahoo(log zerolog.Logger) *Yahoo {
	return &Yahoo{
		hosts:    []string{"https://query1.finance.yahoo.com", "https://query2.finance.yahoo.com"},
		backoffs: []time.Duration{200 * time.Millisecond, 500 * time.Millisecond, 1 * time.Second},
		client:   &http.Client{Timeout: 15 * time.Second},
		log:      log.With().Str("component", "market").Logger(),
	}
}

// DailyCloses returns the two most recent daily closes for symbol. It fetches
// a 5d window so a holiday or a partial trading day still leaves two bars.
func (y *Yahoo) DailyCloses(ctx context.Context, symbol string) (PriceObservation, error) {
	_, closes, err := y.fetchSeries(ctx, symbol, "1d", "5d")
	if err != nil {
		return PriceObservation{}, err
	}
	closes = dropUnusable(closes)
	if len(closes) < 2 {
		return PriceObservation{}, fmt.Errorf("%s: %w", symbol, ErrInsufficientHistory)
	}
	return PriceObservation{
		Symbol:       symbol,
		PrevClose:    closes[len(closes)-2],
		CurrentClose: closes[len(closes)-1],
	}, nil
}

// fetchSeries fetches timestamps and close prices for a single symbol using
// the given interval and range, trying each host with backoff before falling
// back to the spark endpoint.
func (y *Yahoo) fetchSeries(ctx context.Context, symbol, interval, rangeParam string) ([]int64, []float64, error) {
	var yc yahooChartResp
	var lastErr error
	for attempt := 0; attempt < len(y.backoffs)+1; attempt++ {
		for _, host := range y.hosts {
			url := fmt.Sprintf("%s/v8/finance/chart/%s?range=%s&interval=%s&includePrePost=false&events=div,splits", host, symbol, rangeParam, interval)
			body, err := y.get(ctx, url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			if err := json.Unmarshal(body, &yc); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo json: %v; body: %s", err, preview(body))
				continue
			}
			lastErr = nil
			break
		}
		if lastErr == nil {
			break
		}
		if attempt < len(y.backoffs) {
			if err := sleep(ctx, y.backoffs[attempt]); err != nil {
				return nil, nil, err
			}
		}
	}

	if lastErr != nil {
		ts, cl, sparkErr := y.fetchSpark(ctx, symbol, interval, rangeParam)
		if sparkErr != nil {
			return nil, nil, lastErr
		}
		return ts, cl, nil
	}

	if len(yc.Chart.Result) == 0 || len(yc.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, nil, fmt.Errorf("no data for %s", symbol)
	}
	return yc.Chart.Result[0].Timestamp, yc.Chart.Result[0].Indicators.Quote[0].Close, nil
}

func (y *Yahoo) fetchSpark(ctx context.Context, symbol, interval, rangeParam string) ([]int64, []float64, error) {
	var lastErr error
	for attempt := 0; attempt < len(y.backoffs)+1; attempt++ {
		for _, host := range y.hosts {
			url := fmt.Sprintf("%s/v7/finance/spark?symbols=%s&range=%s&interval=%s", host, strings.ToUpper(symbol), rangeParam, interval)
			body, err := y.get(ctx, url, symbol)
			if err != nil {
				lastErr = err
				continue
			}
			var sp yahooSparkResp
			if err := json.Unmarshal(body, &sp); err != nil {
				lastErr = fmt.Errorf("failed to parse yahoo spark json: %v", err)
				continue
			}
			if len(sp.Spark.Result) == 0 || len(sp.Spark.Result[0].Response) == 0 {
				lastErr = fmt.Errorf("no spark data for %s", symbol)
				continue
			}
			resp := sp.Spark.Result[0].Response[0]
			return resp.Timestamp, resp.Close, nil
		}
		if attempt < len(y.backoffs) {
			if err := sleep(ctx, y.backoffs[attempt]); err != nil {
				return nil, nil, err
			}
		}
	}
	return nil, nil, lastErr
}

// get performs one request with the browser-like headers Yahoo expects and
// normalizes the non-JSON failure modes (429 pages, HTML edge errors).
func (y *Yahoo) get(ctx context.Context, url, symbol string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15")
	req.Header.Set("Accept", "application/json, text/javascript, */*; q=0.01")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Referer", fmt.Sprintf("https://finance.yahoo.com/quote/%s/chart", strings.ToUpper(symbol)))

	resp, err := y.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read yahoo response: %w", err)
	}
	if resp.StatusCode == http.StatusTooManyRequests || strings.HasPrefix(string(body), "Edge: Too Many Requests") {
		return nil, fmt.Errorf("yahoo returned 429: Edge: Too Many Requests")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("yahoo returned %d: %s", resp.StatusCode, preview(body))
	}
	if strings.HasPrefix(string(body), "<") || strings.HasPrefix(string(body), "Edge:") {
		return nil, fmt.Errorf("yahoo returned non-json body: %s", preview(body))
	}
	return body, nil
}

// dropUnusable removes zero and negative closes; Yahoo pads missing bars
// with zeros.
func dropUnusable(closes []float64) []float64 {
	out := make([]float64, 0, len(closes))
	for _, c := range closes {
		if c <= 0 {
			continue
		}
		out = append(out, c)
	}
	return out
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 120 {
		s = s[:120]
	}
	return s
}

func sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

var _ Source = (*Yahoo)(nil)
