package datasource

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"lagrangescan/pkg/series"
)

const defaultYahooBaseURL = "https://query1.finance.yahoo.com/v8/finance/chart"

// YahooProvider pulls daily closes from the Yahoo Finance chart API. It
// needs no credentials, which makes it the fallback when Alpaca keys are
// not configured.
type YahooProvider struct {
	BaseURL string
	Range   string // Yahoo range token, e.g. "1y"
	client  *http.Client
	logger  *zap.Logger
}

func NewYahooProvider(yrange string, logger *zap.Logger) *YahooProvider {
	if yrange == "" {
		yrange = "1y"
	}
	return &YahooProvider{
		BaseURL: defaultYahooBaseURL,
		Range:   yrange,
		client:  &http.Client{Timeout: 30 * time.Second},
		logger:  logger,
	}
}

func (p *YahooProvider) Name() string { return "yahoo" }

type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

func (p *YahooProvider) DailyCloses(symbol string) (*series.PriceSeries, error) {
	url := fmt.Sprintf("%s/%s?range=%s&interval=1d", p.BaseURL, symbol, p.Range)

	req, err := http.NewRequest("GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	// Yahoo rejects requests without a browser User-Agent.
	req.Header.Set("User-Agent", "Mozilla/5.0")
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("yahoo chart request for %s: %w", symbol, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("yahoo chart API error for %s (status %d): %s", symbol, resp.StatusCode, string(body))
	}

	var chart yahooChartResponse
	if err := json.NewDecoder(resp.Body).Decode(&chart); err != nil {
		return nil, fmt.Errorf("decode yahoo response for %s: %w", symbol, err)
	}
	if chart.Chart.Error != nil {
		return nil, fmt.Errorf("%w: yahoo reported %s for %s", ErrDataUnavailable, chart.Chart.Error.Code, symbol)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, fmt.Errorf("%w: yahoo returned no quote data for %s", ErrDataUnavailable, symbol)
	}

	result := chart.Chart.Result[0]
	closes := result.Indicators.Quote[0].Close

	points := make([]series.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		// Halted or partial bars come back as null closes; skip them.
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		points = append(points, series.PricePoint{
			Time:  time.Unix(ts, 0).UTC(),
			Close: *closes[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("%w: yahoo returned no usable closes for %s", ErrDataUnavailable, symbol)
	}

	p.logger.Info("fetched daily closes",
		zap.String("provider", p.Name()),
		zap.String("symbol", symbol),
		zap.Int("bars", len(points)),
	)
	return series.New(points)
}
