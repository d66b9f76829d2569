package datasource

import (
	"fmt"
	"time"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
	"go.uber.org/zap"

	"lagrangescan/pkg/series"
)

// AlpacaProvider pulls daily bars from the Alpaca market data API.
type AlpacaProvider struct {
	client       *marketdata.Client
	lookbackDays int
	logger       *zap.Logger
}

func NewAlpacaProvider(apiKey, apiSecret string, lookbackDays int, logger *zap.Logger) *AlpacaProvider {
	return &AlpacaProvider{
		client: marketdata.NewClient(marketdata.ClientOpts{
			APIKey:    apiKey,
			APISecret: apiSecret,
		}),
		lookbackDays: lookbackDays,
		logger:       logger,
	}
}

func (p *AlpacaProvider) Name() string { return "alpaca" }

func (p *AlpacaProvider) DailyCloses(symbol string) (*series.PriceSeries, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -p.lookbackDays)

	bars, err := p.client.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame: marketdata.OneDay,
		Start:     start,
		End:       end,
	})
	if err != nil {
		return nil, fmt.Errorf("alpaca daily bars for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w: alpaca returned no daily bars for %s", ErrDataUnavailable, symbol)
	}

	points := make([]series.PricePoint, 0, len(bars))
	for _, b := range bars {
		points = append(points, series.PricePoint{Time: b.Timestamp, Close: b.Close})
	}
	p.logger.Info("fetched daily bars",
		zap.String("provider", p.Name()),
		zap.String("symbol", symbol),
		zap.Int("bars", len(points)),
	)
	return series.New(points)
}
