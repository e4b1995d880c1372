// Package chart renders the three dashboard views and the console bar chart
// as PNG images using gonum/plot. Renderers accept already-aggregated data
// and return the encoded image; an empty input produces an empty chart.
package chart

import (
	"bytes"
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"gastos/internal/report"
)

const (
	chartWidth  = 8 * vg.Inch
	chartHeight = 4 * vg.Inch
)

// CategoryBars renders per-category totals as discrete bars.
func CategoryBars(totals []report.CategoryTotal) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Gasto por categoría"
	p.X.Label.Text = "Categoría"
	p.Y.Label.Text = "Monto"

	if len(totals) > 0 {
		values := make(plotter.Values, len(totals))
		names := make([]string, len(totals))
		for i, t := range totals {
			values[i] = t.Amount.Float()
			names[i] = t.Category
		}
		bars, err := plotter.NewBarChart(values, vg.Points(30))
		if err != nil {
			return nil, fmt.Errorf("build bar chart: %w", err)
		}
		bars.Color = plotutil.Color(0)
		p.Add(bars)
		p.NominalX(names...)
	}
	return render(p)
}

// TimeSeries renders per-date totals as a connected line, chronologically.
func TimeSeries(points []report.DatePoint) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Gasto en el tiempo"
	p.X.Label.Text = "Fecha"
	p.Y.Label.Text = "Monto"
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006-01-02"}

	if len(points) > 0 {
		pts := make(plotter.XYs, len(points))
		for i, dp := range points {
			pts[i].X = float64(dp.Date.Unix())
			pts[i].Y = dp.Amount.Float()
		}
		if err := plotutil.AddLinePoints(p, "Gasto", pts); err != nil {
			return nil, fmt.Errorf("build time series: %w", err)
		}
	}
	return render(p)
}

// CategoryShare renders each category's proportion of the whole as stacked
// segments of a single bar. Non-positive categories arrive already excluded.
func CategoryShare(shares []report.Share) ([]byte, error) {
	p := plot.New()
	p.Title.Text = "Distribución del gasto por categoría"
	p.Y.Label.Text = "Proporción"
	p.Legend.Top = true

	var prev *plotter.BarChart
	for i, sh := range shares {
		seg, err := plotter.NewBarChart(plotter.Values{sh.Fraction}, vg.Points(60))
		if err != nil {
			return nil, fmt.Errorf("build share segment %s: %w", sh.Category, err)
		}
		seg.Color = plotutil.Color(i)
		seg.LineStyle.Width = 0
		if prev != nil {
			seg.StackOn(prev)
		}
		p.Add(seg)
		p.Legend.Add(sh.Category, seg)
		prev = seg
	}
	p.NominalX("Total")
	return render(p)
}

func render(p *plot.Plot) ([]byte, error) {
	wt, err := p.WriterTo(chartWidth, chartHeight, "png")
	if err != nil {
		return nil, fmt.Errorf("encode chart: %w", err)
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("write chart: %w", err)
	}
	return buf.Bytes(), nil
}
