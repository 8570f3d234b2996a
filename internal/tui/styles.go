package tui

import (
	"wallet-analyzer-go/internal/view"

	"github.com/charmbracelet/lipgloss"
)

// Palette defines the colors of the terminal dashboard.
type Palette struct {
	Primary   lipgloss.Color
	Text      lipgloss.Color
	TextMuted lipgloss.Color
	Success   lipgloss.Color
	Error     lipgloss.Color
	Chart     lipgloss.Color
}

// DefaultPalette mirrors the web dashboard colors.
func DefaultPalette() Palette {
	return Palette{
		Primary:   lipgloss.Color("#2563EB"),
		Text:      lipgloss.Color("#F9FAFB"),
		TextMuted: lipgloss.Color("#9CA3AF"),
		Success:   lipgloss.Color("#4ADE80"),
		Error:     lipgloss.Color("#F87171"),
		Chart:     lipgloss.Color("#38B2AC"),
	}
}

// Styles groups the lipgloss styles used by the view.
type Styles struct {
	Title    lipgloss.Style
	Muted    lipgloss.Style
	Error    lipgloss.Style
	Wallet   lipgloss.Style
	Card     lipgloss.Style
	CardHead lipgloss.Style
	Heading  lipgloss.Style
	Positive lipgloss.Style
	Negative lipgloss.Style
	Chart    lipgloss.Style
	Button   lipgloss.Style
	Disabled lipgloss.Style
}

// NewStyles creates styles with the given palette.
func NewStyles(p Palette) Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Foreground(p.Text).Bold(true).MarginBottom(1),
		Muted:    lipgloss.NewStyle().Foreground(p.TextMuted),
		Error:    lipgloss.NewStyle().Foreground(p.Error).Bold(true),
		Wallet:   lipgloss.NewStyle().Foreground(p.Primary).Bold(true),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.TextMuted).Padding(0, 1).MarginRight(1),
		CardHead: lipgloss.NewStyle().Foreground(p.Text).Bold(true),
		Heading:  lipgloss.NewStyle().Foreground(p.Text).Bold(true).MarginTop(1),
		Positive: lipgloss.NewStyle().Foreground(p.Success),
		Negative: lipgloss.NewStyle().Foreground(p.Error),
		Chart:    lipgloss.NewStyle().Foreground(p.Chart),
		Button:   lipgloss.NewStyle().Foreground(p.Text).Background(p.Primary).Padding(0, 1),
		Disabled: lipgloss.NewStyle().Foreground(p.TextMuted).Padding(0, 1),
	}
}

// Figure renders a figure with its polarity color.
func (s Styles) Figure(f view.Figure) string {
	if f.Positive() {
		return s.Positive.Render(f.Text)
	}
	return s.Negative.Render(f.Text)
}
