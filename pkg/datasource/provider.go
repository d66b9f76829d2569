package datasource

import (
	"errors"

	"lagrangescan/pkg/series"
)

// ErrDataUnavailable is returned when a provider has no data for the
// requested symbol and period. The run aborts; there are no retries.
var ErrDataUnavailable = errors.New("no data available")

// Provider fetches the historical daily closes for one symbol over the
// configured lookback.
type Provider interface {
	Name() string
	DailyCloses(symbol string) (*series.PriceSeries, error)
}
