package plot

import (
	"bytes"
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	"lagrangescan/pkg/lagrangian"
)

// Chart geometry. Panels share the x axis, stacked vertically like the
// reference figure: price+mean, velocity, energies, signal.
const (
	chartWidth  = 960
	panelHeight = 220
	marginLeft  = 64
	marginRight = 24
	marginTop   = 28
	marginBot   = 24
)

type line struct {
	label  string
	color  string
	dashed bool
	values []float64
}

type panel struct {
	title   string
	lines   []line
	hline   *float64 // dashed threshold line, optional
	markers []int    // event indices, price panel only
}

// Render produces the four-panel SVG for one run.
func Render(ticker string, d *lagrangian.DerivedSeries, events []lagrangian.Event, params lagrangian.Parameters) []byte {
	markerIdx := make([]int, len(events))
	for i, e := range events {
		markerIdx[i] = e.Index
	}

	velThreshold := params.VelocityThreshold
	sigThreshold := params.SignalThreshold

	panels := []panel{
		{
			title: fmt.Sprintf("%s Price, %d-day Moving Average and Buy Signals", ticker, params.Window),
			lines: []line{
				{label: "Price", color: "#59a6ff", values: d.Series.Closes()},
				{label: "Mean", color: "#ff7a7a", dashed: true, values: d.Mean},
			},
			markers: markerIdx,
		},
		{
			title: "Price Velocity",
			lines: []line{
				{label: "Velocity", color: "#ffb454", values: d.Velocity},
			},
			hline: &velThreshold,
		},
		{
			title: "Kinetic and Potential Energy",
			lines: []line{
				{label: "Kinetic", color: "#c792ea", values: d.KineticEnergy},
				{label: "Potential", color: "#b08968", values: d.PotentialEnergy},
			},
		},
		{
			title: "Lagrangian (KE - PE)",
			lines: []line{
				{label: "Lagrangian", color: "#e6edf3", values: d.Signal},
			},
			hline: &sigThreshold,
		},
	}

	n := d.Series.Len()
	totalHeight := panelHeight * len(panels)

	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>",
		chartWidth, totalHeight, chartWidth, totalHeight)
	b.WriteString("<rect width='100%' height='100%' fill='#0b0f17'/>")

	for pi, p := range panels {
		drawPanel(&b, p, d, pi*panelHeight, n, pi == len(panels)-1)
	}

	b.WriteString("</svg>")
	return b.Bytes()
}

// WriteFile renders the chart into dir and returns the path.
func WriteFile(dir, ticker string, d *lagrangian.DerivedSeries, events []lagrangian.Event, params lagrangian.Parameters) (string, error) {
	path := filepath.Join(dir, fmt.Sprintf("%s_lagrangian.svg", ticker))
	if err := os.WriteFile(path, Render(ticker, d, events, params), 0644); err != nil {
		return "", fmt.Errorf("write chart: %w", err)
	}
	return path, nil
}

func drawPanel(b *bytes.Buffer, p panel, d *lagrangian.DerivedSeries, yOffset, n int, lastPanel bool) {
	plotW := float64(chartWidth - marginLeft - marginRight)
	plotH := float64(panelHeight - marginTop - marginBot)

	// y range over every line plus the threshold, padded a touch so flat
	// series stay visible.
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, l := range p.lines {
		for _, v := range l.values {
			minY = math.Min(minY, v)
			maxY = math.Max(maxY, v)
		}
	}
	if p.hline != nil {
		minY = math.Min(minY, *p.hline)
		maxY = math.Max(maxY, *p.hline)
	}
	if maxY == minY {
		maxY = minY + 1
	}

	sx := plotW / float64(maxInt(n-1, 1))
	sy := plotH / (maxY - minY)

	x := func(i int) float64 { return marginLeft + float64(i)*sx }
	y := func(v float64) float64 { return float64(yOffset+marginTop) + plotH - (v-minY)*sy }

	fmt.Fprintf(b, "<text x='%d' y='%d' fill='#e6edf3' font-family='Inter' font-size='13'>%s</text>",
		marginLeft, yOffset+18, p.title)

	// axes
	fmt.Fprintf(b, "<line x1='%d' y1='%.1f' x2='%d' y2='%.1f' stroke='#1f2837'/>",
		marginLeft, y(maxY), marginLeft, y(minY))
	fmt.Fprintf(b, "<line x1='%d' y1='%.1f' x2='%d' y2='%.1f' stroke='#1f2837'/>",
		marginLeft, y(minY), chartWidth-marginRight, y(minY))

	// y tick labels: min, mid, max
	for _, tick := range []float64{minY, (minY + maxY) / 2, maxY} {
		fmt.Fprintf(b, "<text x='4' y='%.1f' fill='#8b949e' font-family='Inter' font-size='10'>%s</text>",
			y(tick)+3, tickLabel(tick))
	}

	if p.hline != nil {
		fmt.Fprintf(b, "<line x1='%d' y1='%.1f' x2='%d' y2='%.1f' stroke='#8bff9b' stroke-dasharray='6,4'/>",
			marginLeft, y(*p.hline), chartWidth-marginRight, y(*p.hline))
	}

	for li, l := range p.lines {
		dash := ""
		if l.dashed {
			dash = " stroke-dasharray='5,3'"
		}
		fmt.Fprintf(b, "<polyline fill='none' stroke='%s' stroke-width='1.5'%s points='", l.color, dash)
		for i, v := range l.values {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(b, "%.2f,%.2f", x(i), y(v))
		}
		b.WriteString("'/>")

		// legend swatch + label in the top-right corner of the panel
		lx := chartWidth - marginRight - 130
		ly := yOffset + 16 + li*14
		fmt.Fprintf(b, "<rect x='%d' y='%d' width='10' height='3' fill='%s'/>", lx, ly-3, l.color)
		fmt.Fprintf(b, "<text x='%d' y='%d' fill='#8b949e' font-family='Inter' font-size='10'>%s</text>",
			lx+14, ly, l.label)
	}

	// buy-signal markers: upward triangles on the closing price
	for _, i := range p.markers {
		cx := x(i)
		cy := y(d.Series.Close(i))
		fmt.Fprintf(b, "<polygon class='buy-marker' points='%.2f,%.2f %.2f,%.2f %.2f,%.2f' fill='#8bff9b'/>",
			cx, cy-8, cx-5, cy+1, cx+5, cy+1)
	}

	// dates along the bottom panel only
	if lastPanel && n > 0 {
		idxs := []int{0, (n - 1) / 2, n - 1}
		for _, i := range idxs {
			fmt.Fprintf(b, "<text x='%.1f' y='%d' fill='#8b949e' font-family='Inter' font-size='10' text-anchor='middle'>%s</text>",
				x(i), yOffset+panelHeight-6, d.Series.Time(i).Format("2006-01-02"))
		}
	}
}

func tickLabel(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
