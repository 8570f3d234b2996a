package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"wallet-analyzer-go/internal/dashboard"
	"wallet-analyzer-go/internal/export"
	"wallet-analyzer-go/internal/view"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/afero"
)

// analysisDoneMsg carries the controller state once a request has completed.
type analysisDoneMsg struct {
	state dashboard.Snapshot
}

// exportDoneMsg reports the outcome of a ledger export.
type exportDoneMsg struct {
	path string
	err  error
}

// Model is the terminal dashboard. All submission state lives in the controller.
type Model struct {
	ctx       context.Context
	ctrl      *dashboard.Controller
	exporter  *export.LedgerExporter
	outFs     afero.Fs
	exportDir string
	opts      view.Options
	styles    Styles

	input   textinput.Model
	spinner spinner.Model
	status  string
	width   int
}

// New creates the dashboard model. Exported ledgers are written to exportDir on outFs.
func New(ctx context.Context, ctrl *dashboard.Controller, exporter *export.LedgerExporter, outFs afero.Fs, exportDir string, opts view.Options) Model {
	ti := textinput.New()
	ti.Placeholder = "Enter Solana wallet address"
	ti.CharLimit = 128
	ti.Width = 50
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		ctx:       ctx,
		ctrl:      ctrl,
		exporter:  exporter,
		outFs:     outFs,
		exportDir: exportDir,
		opts:      opts,
		styles:    NewStyles(DefaultPalette()),
		input:     ti,
		spinner:   sp,
	}
}

// Init starts the cursor blink.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles key presses and async completions.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, tea.Quit
		case "enter":
			return m.submit()
		case "ctrl+e":
			return m, m.exportCmd()
		}

	case analysisDoneMsg:
		return m, nil

	case exportDoneMsg:
		if msg.err != nil {
			m.status = "Export failed: " + msg.err.Error()
		} else {
			m.status = "Saved " + msg.path
		}
		return m, nil

	case spinner.TickMsg:
		if !m.ctrl.State().IsLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.ctrl.SetAddress(m.input.Value())
	return m, cmd
}

// submit is ignored while a request is in flight, like the disabled web trigger.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.ctrl.State().IsLoading {
		return m, nil
	}
	m.status = ""

	_, run := m.ctrl.Begin(m.input.Value())
	if run == nil {
		return m, nil
	}

	ctx := m.ctx
	return m, tea.Batch(m.spinner.Tick, func() tea.Msg {
		return analysisDoneMsg{state: run(ctx)}
	})
}

func (m Model) exportCmd() tea.Cmd {
	snap := m.ctrl.State()
	if !snap.HasResult() {
		return nil
	}
	ledger := snap.Result.TradeLedger
	wallet := snap.Result.WalletAddress

	return func() tea.Msg {
		var path string
		err := m.exporter.With(ledger, wallet, func(d *export.Download) error {
			f, err := d.Open()
			if err != nil {
				return err
			}
			defer f.Close()

			if err := m.outFs.MkdirAll(m.exportDir, 0o755); err != nil {
				return err
			}
			path = filepath.Join(m.exportDir, diskName(d.Filename))
			return afero.WriteReader(m.outFs, path, f)
		})
		return exportDoneMsg{path: path, err: err}
	}
}

// diskName keeps a download name inside the export directory.
func diskName(name string) string {
	return strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == filepath.Separator {
			return '_'
		}
		return r
	}, name)
}

// View renders the dashboard.
func (m Model) View() string {
	s := m.styles
	state := m.ctrl.State()

	var sb strings.Builder
	sb.WriteString(s.Title.Render("Wallet Profitability Analyzer"))
	sb.WriteString("\n")

	button := s.Button.Render("Analyse")
	if state.IsLoading {
		button = s.Disabled.Render("Analyzing...")
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Center, m.input.View(), "  ", button))
	sb.WriteString("\n")

	if state.Error != "" {
		sb.WriteString("\n" + s.Error.Render(state.Error) + "\n")
	}
	if state.IsLoading {
		sb.WriteString(fmt.Sprintf("\n%s Loading analysis...\n", m.spinner.View()))
	}

	if state.HasResult() {
		sb.WriteString("\n")
		sb.WriteString(RenderResults(s, view.NewResults(state.Result, m.opts)))
		sb.WriteString("\n")
	}

	if m.status != "" {
		sb.WriteString("\n" + s.Muted.Render(m.status) + "\n")
	}
	sb.WriteString("\n" + s.Muted.Render("enter: analyse • ctrl+e: export ledger • esc: quit"))
	return sb.String()
}
