package models

// TradeRecord is one entry of the trade ledger returned by the analysis service.
// Fields the service sends beyond these are ignored when decoding.
type TradeRecord struct {
	Timestamp     int64    `json:"timestamp"` // epoch seconds
	Type          string   `json:"type"`
	FromToken     string   `json:"from_token"`
	ToToken       string   `json:"to_token"`
	PriceAfter60s *float64 `json:"price_after_60s"` // nil when the service does not report it
	ProfitOrLoss  float64  `json:"profit_or_loss"`
}
