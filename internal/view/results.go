package view

import (
	"time"

	"wallet-analyzer-go/internal/models"
)

// Options controls formatting of the results.
type Options struct {
	Location    *time.Location
	TimeLayout  string
	ChartWidth  float64
	ChartHeight float64
	ExportPath  string
}

// Results composes everything shown for one analysis result, in display order.
type Results struct {
	WalletAddress string          `json:"wallet_address"`
	ExportPath    string          `json:"export_path"`
	Summary       PnlSummary      `json:"summary"`
	Chart         TimeSeriesChart `json:"chart"`
	Ledger        TradeLedger     `json:"ledger"`
}

// NewResults derives the results view. It returns nil when there is no result.
func NewResults(result *models.AnalysisResult, opts Options) *Results {
	if result == nil {
		return nil
	}
	return &Results{
		WalletAddress: result.WalletAddress,
		ExportPath:    opts.ExportPath,
		Summary:       NewPnlSummary(result.Pnl),
		Chart:         NewTimeSeriesChart(result.ChartData, opts.ChartWidth, opts.ChartHeight),
		Ledger:        NewTradeLedger(result.TradeLedger, opts.Location, opts.TimeLayout),
	}
}
