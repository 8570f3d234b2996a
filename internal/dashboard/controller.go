package dashboard

import (
	"context"
	"strings"
	"sync"

	"wallet-analyzer-go/internal/analysis"
	"wallet-analyzer-go/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Controller owns the submission state and issues analysis requests.
// It is the only writer of that state; readers get Snapshots.
//
// Every request bumps a generation counter. A response that arrives after a newer
// request has started is discarded, so the most recent request owns the state.
type Controller struct {
	analyzer analysis.ClientInterface
	logger   *zap.Logger

	mu         sync.RWMutex
	state      Snapshot
	generation uint64
}

// NewController creates a controller in the Idle phase.
func NewController(analyzer analysis.ClientInterface, logger *zap.Logger) *Controller {
	return &Controller{
		analyzer: analyzer,
		logger:   logger.Named("controller"),
	}
}

// State returns a copy of the current state.
func (c *Controller) State() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// SetAddress records the current input value without submitting it.
func (c *Controller) SetAddress(address string) {
	c.mu.Lock()
	c.state.WalletAddress = address
	c.mu.Unlock()
}

// Begin validates address and moves the state machine. For a blank address it records
// ErrAddressRequired and returns a nil run func; no request is made, and the displayed
// result and any request in flight are left alone. Otherwise the phase becomes
// Submitting and run performs the single request when called.
func (c *Controller) Begin(address string) (Snapshot, func(ctx context.Context) Snapshot) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.WalletAddress = address

	if strings.TrimSpace(address) == "" {
		if !c.state.IsLoading {
			c.state.Phase = PhaseFailed
		}
		c.state.Error = ErrAddressRequired.Error()
		c.logger.Debug("Rejected blank wallet address")
		return c.state, nil
	}

	c.generation++
	c.state.Phase = PhaseSubmitting
	c.state.IsLoading = true
	c.state.Result = nil
	c.state.Error = ""

	gen := c.generation
	log := c.logger.With(
		zap.String("wallet_address", address),
		zap.String("correlation_id", uuid.New().String()),
		zap.Uint64("generation", gen),
	)
	log.Info("Submitting analysis request")

	return c.state, func(ctx context.Context) Snapshot {
		result, err := c.analyzer.Analyze(ctx, address)
		return c.complete(log, gen, address, result, err)
	}
}

// Submit validates address and, if valid, performs the analysis request inline.
func (c *Controller) Submit(ctx context.Context, address string) Snapshot {
	snap, run := c.Begin(address)
	if run == nil {
		return snap
	}
	return run(ctx)
}

// SubmitAsync is Submit with the request running on its own goroutine. The returned
// snapshot reflects the state right after validation.
func (c *Controller) SubmitAsync(ctx context.Context, address string) Snapshot {
	snap, run := c.Begin(address)
	if run != nil {
		go run(ctx)
	}
	return snap
}

func (c *Controller) complete(log *zap.Logger, gen uint64, address string, result *models.AnalysisResult, err error) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	if gen != c.generation {
		log.Info("Discarding stale analysis response", zap.Uint64("current_generation", c.generation))
		return c.state
	}

	c.state.IsLoading = false
	if err == nil && result == nil {
		err = analysis.ErrParse
	}
	if err != nil {
		log.Warn("Analysis failed", zap.Error(err))
		c.state.Phase = PhaseFailed
		c.state.Result = nil
		c.state.Error = analysis.UserMessage(err)
		return c.state
	}

	if result.WalletAddress == "" {
		result.WalletAddress = address
	}
	c.state.Phase = PhaseSuccess
	c.state.Result = result
	c.state.Error = ""
	log.Info("Analysis completed", zap.Int("trades", len(result.TradeLedger)))
	return c.state
}
