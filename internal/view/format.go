// Package view derives display-ready values from an analysis result. It holds no
// state; the same input always yields the same output.
package view

import "strconv"

// Polarity drives the positive/negative styling of a figure.
type Polarity string

const (
	PolarityPositive Polarity = "positive"
	PolarityNegative Polarity = "negative"
)

// PolarityOf classifies v by sign alone. Zero counts as positive.
func PolarityOf(v float64) Polarity {
	if v < 0 {
		return PolarityNegative
	}
	return PolarityPositive
}

// FormatAmount renders v with exactly two decimals.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}

// FormatUSD renders v as a dollar amount with exactly two decimals.
func FormatUSD(v float64) string {
	return "$" + FormatAmount(v)
}

// Figure is a formatted amount with its polarity.
type Figure struct {
	Value    float64  `json:"value"`
	Text     string   `json:"text"`
	Polarity Polarity `json:"polarity"`
}

// NewFigure formats v as a dollar figure.
func NewFigure(v float64) Figure {
	return Figure{Value: v, Text: FormatUSD(v), Polarity: PolarityOf(v)}
}

// Positive reports whether the figure uses positive styling.
func (f Figure) Positive() bool {
	return f.Polarity == PolarityPositive
}
