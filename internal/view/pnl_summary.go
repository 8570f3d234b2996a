package view

import "wallet-analyzer-go/internal/models"

var windowTitles = map[models.Window]string{
	models.Window7d:      "Last 7 Days",
	models.Window30d:     "Last 30 Days",
	models.Window90d:     "Last 90 Days",
	models.WindowAllTime: "All Time",
}

// PnlCard summarizes one aggregation window. Realized and unrealized carry
// their own polarity.
type PnlCard struct {
	Window     models.Window `json:"window"`
	Title      string        `json:"title"`
	Realized   Figure        `json:"realized"`
	Unrealized Figure        `json:"unrealized"`
}

// PnlSummary holds one card per window in display order.
type PnlSummary struct {
	Cards []PnlCard `json:"cards"`
}

// NewPnlSummary builds the four window cards. Windows missing from pnl show zeros.
func NewPnlSummary(pnl map[models.Window]models.Pnl) PnlSummary {
	cards := make([]PnlCard, 0, len(models.Windows))
	for _, w := range models.Windows {
		p := pnl[w] // zero value when absent
		cards = append(cards, PnlCard{
			Window:     w,
			Title:      windowTitles[w],
			Realized:   NewFigure(p.Realized),
			Unrealized: NewFigure(p.Unrealized),
		})
	}
	return PnlSummary{Cards: cards}
}

// Card returns the card for w.
func (s PnlSummary) Card(w models.Window) (PnlCard, bool) {
	for _, c := range s.Cards {
		if c.Window == w {
			return c, true
		}
	}
	return PnlCard{}, false
}
