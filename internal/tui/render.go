package tui

import (
	"fmt"
	"strings"

	"wallet-analyzer-go/internal/view"

	"github.com/charmbracelet/lipgloss"
)

var sparkChars = []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

const emptySparkWidth = 24

// Sparkline draws one glyph per value, in order. Values are scaled between the
// series minimum and maximum; a flat or empty series draws a flat line.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return strings.Repeat(string(sparkChars[0]), emptySparkWidth)
	}

	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}

	var sb strings.Builder
	for _, v := range values {
		if hi == lo {
			sb.WriteRune(sparkChars[len(sparkChars)/2])
			continue
		}
		idx := int((v - lo) / (hi - lo) * float64(len(sparkChars)-1))
		sb.WriteRune(sparkChars[idx])
	}
	return sb.String()
}

func renderSummary(s Styles, summary view.PnlSummary) string {
	cards := make([]string, 0, len(summary.Cards))
	for _, c := range summary.Cards {
		cards = append(cards, s.Card.Render(lipgloss.JoinVertical(lipgloss.Left,
			s.CardHead.Render(c.Title),
			"Realized:   "+s.Figure(c.Realized),
			"Unrealized: "+s.Figure(c.Unrealized),
		)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func renderChart(s Styles, chart view.TimeSeriesChart) string {
	line := s.Chart.Render(Sparkline(chart.Values()))
	if chart.Empty {
		return line + "\n" + s.Muted.Render("No chart data")
	}
	return fmt.Sprintf("%s\n%s  %s .. %s  (min %s, max %s)",
		line,
		s.Muted.Render("range"),
		chart.FirstDate, chart.LastDate,
		chart.MinLabel, chart.MaxLabel,
	)
}

var ledgerHeader = []string{"Timestamp", "Type", "From Token", "To Token", "Price (+60s)", "Profit/Loss"}

func renderLedger(s Styles, ledger view.TradeLedger) string {
	widths := make([]int, len(ledgerHeader))
	for i, h := range ledgerHeader {
		widths[i] = lipgloss.Width(h)
	}
	cells := make([][]string, len(ledger.Rows))
	for i, r := range ledger.Rows {
		cells[i] = []string{r.Time, r.Type, r.FromToken, r.ToToken, r.Price, r.ProfitOrLoss.Text}
		for j, c := range cells[i] {
			if w := lipgloss.Width(c); w > widths[j] {
				widths[j] = w
			}
		}
	}

	pad := func(text string, width int) string {
		return text + strings.Repeat(" ", width-lipgloss.Width(text))
	}

	var sb strings.Builder
	head := make([]string, len(ledgerHeader))
	for i, h := range ledgerHeader {
		head[i] = pad(h, widths[i])
	}
	sb.WriteString(s.Muted.Render(strings.Join(head, "  ")))

	for i, r := range ledger.Rows {
		sb.WriteByte('\n')
		row := make([]string, len(cells[i]))
		for j, c := range cells[i] {
			row[j] = pad(c, widths[j])
		}
		// Style after padding so escape codes do not skew the widths.
		row[len(row)-1] = s.Figure(view.Figure{Text: row[len(row)-1], Polarity: r.ProfitOrLoss.Polarity})
		sb.WriteString(strings.Join(row, "  "))
	}
	if ledger.Empty() {
		sb.WriteString("\n" + s.Muted.Render("No trades"))
	}
	return sb.String()
}

// RenderResults draws the results region: wallet label, export hint, summary,
// chart and ledger in that order.
func RenderResults(s Styles, r *view.Results) string {
	if r == nil {
		return ""
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		"Analysis for: "+s.Wallet.Render(r.WalletAddress)+"  "+s.Muted.Render("[ctrl+e] Download Ledger (CSV)"),
		"",
		renderSummary(s, r.Summary),
		s.Heading.Render("Performance Chart"),
		renderChart(s, r.Chart),
		s.Heading.Render("Trade Ledger"),
		renderLedger(s, r.Ledger),
	)
}
