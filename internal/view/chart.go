package view

import (
	"strconv"
	"strings"

	"wallet-analyzer-go/internal/models"
)

const (
	DefaultChartWidth  = 960
	DefaultChartHeight = 360

	chartPadLeft   = 64
	chartPadRight  = 16
	chartPadTop    = 16
	chartPadBottom = 32
)

// PlotPoint is a chart point projected into viewport coordinates.
type PlotPoint struct {
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
	Date  string  `json:"date"`
	Value float64 `json:"value"`
	Label string  `json:"label"`
}

// TimeSeriesChart is the line chart of the cumulative profit/loss series.
// Points keep the input order one to one.
type TimeSeriesChart struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`

	// Plot area bounds in viewport coordinates.
	Left   float64 `json:"left"`
	Right  float64 `json:"right"`
	Top    float64 `json:"top"`
	Bottom float64 `json:"bottom"`

	// BaselineY is the y coordinate of zero, or the vertical middle for a flat chart.
	BaselineY float64 `json:"baseline_y"`

	Points   []PlotPoint `json:"points"`
	Polyline string      `json:"polyline"`
	Empty    bool        `json:"empty"`

	MinLabel  string `json:"min_label"`
	MaxLabel  string `json:"max_label"`
	FirstDate string `json:"first_date"`
	LastDate  string `json:"last_date"`
}

// NewTimeSeriesChart projects points onto a width x height viewport. The value axis
// always spans zero. An empty sequence yields an empty chart with a flat baseline.
func NewTimeSeriesChart(points []models.ChartPoint, width, height float64) TimeSeriesChart {
	if width <= chartPadLeft+chartPadRight {
		width = DefaultChartWidth
	}
	if height <= chartPadTop+chartPadBottom {
		height = DefaultChartHeight
	}

	c := TimeSeriesChart{
		Width:  width,
		Height: height,
		Left:   chartPadLeft,
		Right:  width - chartPadRight,
		Top:    chartPadTop,
		Bottom: height - chartPadBottom,
		Points: make([]PlotPoint, 0, len(points)),
		Empty:  len(points) == 0,
	}
	plotW := c.Right - c.Left
	plotH := c.Bottom - c.Top

	lo, hi := 0.0, 0.0
	for _, p := range points {
		if p.Pnl < lo {
			lo = p.Pnl
		}
		if p.Pnl > hi {
			hi = p.Pnl
		}
	}
	c.MinLabel = FormatAmount(lo)
	c.MaxLabel = FormatAmount(hi)

	flat := hi == lo
	yOf := func(v float64) float64 {
		if flat {
			return c.Top + plotH/2
		}
		return c.Top + (hi-v)/(hi-lo)*plotH
	}
	c.BaselineY = yOf(0)

	var sb strings.Builder
	for i, p := range points {
		x := c.Left + plotW/2
		if len(points) > 1 {
			x = c.Left + float64(i)*plotW/float64(len(points)-1)
		}
		pp := PlotPoint{
			X:     x,
			Y:     yOf(p.Pnl),
			Date:  p.Date,
			Value: p.Pnl,
			Label: p.Date + ": " + FormatUSD(p.Pnl),
		}
		c.Points = append(c.Points, pp)

		if i > 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(coord(pp.X))
		sb.WriteByte(',')
		sb.WriteString(coord(pp.Y))
	}
	c.Polyline = sb.String()

	if len(points) > 0 {
		c.FirstDate = points[0].Date
		c.LastDate = points[len(points)-1].Date
	}
	return c
}

// Values returns the series values in order.
func (c TimeSeriesChart) Values() []float64 {
	values := make([]float64, len(c.Points))
	for i, p := range c.Points {
		values[i] = p.Value
	}
	return values
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
