package view

import (
	"time"

	"wallet-analyzer-go/internal/models"
)

// DefaultTimeLayout is used when no layout is configured.
const DefaultTimeLayout = "2006-01-02 15:04:05"

// LedgerRow is the display form of one trade record.
type LedgerRow struct {
	Index        int    `json:"index"`
	Time         string `json:"time"`
	Type         string `json:"type"`
	FromToken    string `json:"from_token"`
	ToToken      string `json:"to_token"`
	Price        string `json:"price"`
	ProfitOrLoss Figure `json:"profit_or_loss"`
}

// TradeLedger is a one to one projection of the trade ledger, in ledger order.
type TradeLedger struct {
	Rows []LedgerRow `json:"rows"`
}

// NewTradeLedger formats every record. Timestamps are epoch seconds shown in loc
// using layout.
func NewTradeLedger(ledger []models.TradeRecord, loc *time.Location, layout string) TradeLedger {
	if loc == nil {
		loc = time.Local
	}
	if layout == "" {
		layout = DefaultTimeLayout
	}

	rows := make([]LedgerRow, len(ledger))
	for i, t := range ledger {
		rows[i] = LedgerRow{
			Index:        i,
			Time:         time.Unix(t.Timestamp, 0).In(loc).Format(layout),
			Type:         t.Type,
			FromToken:    t.FromToken,
			ToToken:      t.ToToken,
			Price:        formatPrice(t.PriceAfter60s),
			ProfitOrLoss: NewFigure(t.ProfitOrLoss),
		}
	}
	return TradeLedger{Rows: rows}
}

// formatPrice leaves the cell blank when the price was not reported.
func formatPrice(p *float64) string {
	if p == nil {
		return ""
	}
	return FormatUSD(*p)
}

// Empty reports whether the ledger has no rows.
func (l TradeLedger) Empty() bool {
	return len(l.Rows) == 0
}
