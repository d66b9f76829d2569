package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"lagrangescan/pkg/lagrangian"
)

// The report lines are an external contract: downstream consumers parse
// them, so the exact strings must not drift.
const (
	Header    = "--- Potential Buy Signals ---"
	NoSignals = "No buy signals identified based on the current parameters."

	dateLayout = "January 2, 2006"
)

// Render builds the report body shared by the terminal mirror and the
// report file: the header, then one line per event, or the no-signal
// sentinel when nothing fired.
func Render(events []lagrangian.Event) string {
	var b strings.Builder
	b.WriteString(Header)
	b.WriteByte('\n')
	if len(events) == 0 {
		b.WriteString(NoSignals)
		b.WriteByte('\n')
		return b.String()
	}
	for _, e := range events {
		fmt.Fprintf(&b, "Buy Signal on: %s\n", e.Time.Format(dateLayout))
	}
	return b.String()
}

// Filename is the per-run report name for a ticker.
func Filename(ticker string) string {
	return fmt.Sprintf("%s_buy_signals.txt", ticker)
}

// WriteFile writes the rendered report into dir and returns the path.
func WriteFile(dir, ticker string, events []lagrangian.Event) (string, error) {
	path := filepath.Join(dir, Filename(ticker))
	if err := os.WriteFile(path, []byte(Render(events)), 0644); err != nil {
		return "", fmt.Errorf("write report: %w", err)
	}
	return path, nil
}
