package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"
	"github.com/tidwall/pretty"

	"lagrangescan/pkg/lagrangian"
)

// Row is one bar of the derived frame as it appears in the JSON snapshot.
// Values are rendered at fixed scale so the file diffs cleanly between
// runs.
type Row struct {
	Date            string `json:"date"`
	Close           string `json:"close"`
	Mean            string `json:"mean"`
	Velocity        string `json:"velocity"`
	PotentialEnergy string `json:"potential_energy"`
	KineticEnergy   string `json:"kinetic_energy"`
	Signal          string `json:"signal"`
	BuySignal       bool   `json:"buy_signal"`
}

type snapshot struct {
	Ticker string `json:"ticker"`
	Bars   int    `json:"bars"`
	Rows   []Row  `json:"rows"`
}

// Frame flattens the derived series into snapshot rows, flagging the bars
// where an event fired.
func Frame(d *lagrangian.DerivedSeries, events []lagrangian.Event) []Row {
	fired := make(map[int]bool, len(events))
	for _, e := range events {
		fired[e.Index] = true
	}

	rows := make([]Row, d.Series.Len())
	for i := range rows {
		rows[i] = Row{
			Date:            d.Series.Time(i).Format("2006-01-02"),
			Close:           fixed(d.Series.Close(i)),
			Mean:            fixed(d.Mean[i]),
			Velocity:        fixed(d.Velocity[i]),
			PotentialEnergy: fixed(d.PotentialEnergy[i]),
			KineticEnergy:   fixed(d.KineticEnergy[i]),
			Signal:          fixed(d.Signal[i]),
			BuySignal:       fired[i],
		}
	}
	return rows
}

// WriteSnapshot writes the pretty-printed frame next to the text report
// and returns the path.
func WriteSnapshot(dir, ticker string, d *lagrangian.DerivedSeries, events []lagrangian.Event) (string, error) {
	data, err := json.Marshal(snapshot{
		Ticker: ticker,
		Bars:   d.Series.Len(),
		Rows:   Frame(d, events),
	})
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	prettified := pretty.Pretty(data)

	path := filepath.Join(dir, fmt.Sprintf("%s_lagrangian.json", ticker))
	if err := os.WriteFile(path, prettified, 0644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// fixed renders a value with four decimal places, enough for daily closes
// and the derived energies.
func fixed(v float64) string {
	return decimal.NewFromFloat(v).Round(4).String()
}
