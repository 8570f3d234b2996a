package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Window identifies one of the fixed profit/loss aggregation windows.
type Window string

const (
	Window7d      Window = "7d"
	Window30d     Window = "30d"
	Window90d     Window = "90d"
	WindowAllTime Window = "all_time"
)

// Windows lists the aggregation windows in display order.
var Windows = []Window{Window7d, Window30d, Window90d, WindowAllTime}

// Pnl holds realized and unrealized profit/loss. The two are independently signed.
type Pnl struct {
	Realized   float64 `json:"realized"`
	Unrealized float64 `json:"unrealized"`
}

// ChartPoint is one point of the cumulative profit/loss series.
type ChartPoint struct {
	Date string  `json:"date"`
	Pnl  float64 `json:"pnl"`
}

// AnalysisResult is the body of a successful analysis response.
// It is never mutated after decoding; a new submission replaces it.
type AnalysisResult struct {
	WalletAddress string         `json:"wallet_address"`
	Pnl           map[Window]Pnl `json:"pnl"`
	ChartData     []ChartPoint   `json:"chart_data"`
	TradeLedger   []TradeRecord  `json:"trade_ledger"`
}

// PnlFor returns the value for window w, or the zero Pnl when the service omitted it.
func (r *AnalysisResult) PnlFor(w Window) Pnl {
	if r == nil {
		return Pnl{}
	}
	return r.Pnl[w]
}

var errNotObject = errors.New("body is not a JSON object")

// DecodeAnalysisResult parses a response body into an AnalysisResult.
func DecodeAnalysisResult(body []byte) (*AnalysisResult, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, errNotObject
	}

	var result AnalysisResult
	if err := json.Unmarshal(trimmed, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis result: %w", err)
	}
	if result.ChartData == nil {
		result.ChartData = []ChartPoint{}
	}
	if result.TradeLedger == nil {
		result.TradeLedger = []TradeRecord{}
	}
	return &result, nil
}
