package analysis

import (
	"context"
	"fmt"
	"net/http"

	"wallet-analyzer-go/internal/config"
	"wallet-analyzer-go/internal/models"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const defaultPath = "/analyze"

// ClientInterface defines the interface for the remote analysis service.
type ClientInterface interface {
	Analyze(ctx context.Context, walletAddress string) (*models.AnalysisResult, error)
}

// Client calls the remote analysis service.
// It implements the ClientInterface.
type Client struct {
	client  *resty.Client
	path    string
	logger  *zap.Logger
	limiter *rate.Limiter
}

// ensure Client implements the interface
var _ ClientInterface = (*Client)(nil)

// AnalyzeRequest is the body sent to the analysis endpoint.
type AnalyzeRequest struct {
	WalletAddress string `json:"wallet_address"`
}

// NewClient creates a new analysis service client.
func NewClient(cfg *config.Analyzer, logger *zap.Logger) *Client {
	client := resty.New().SetBaseURL(cfg.BaseURL)
	if cfg.Timeout > 0 {
		client.SetTimeout(cfg.Timeout)
	}

	path := cfg.Path
	if path == "" {
		path = defaultPath
	}

	limit := rate.Inf
	if cfg.RateLimit > 0 {
		limit = rate.Limit(cfg.RateLimit)
	}
	burst := cfg.RateLimitBurst
	if burst < 1 {
		burst = 1
	}

	logger.Info("Using analysis service", zap.String("base_url", cfg.BaseURL), zap.String("path", path))

	return &Client{
		client:  client,
		path:    path,
		logger:  logger,
		limiter: rate.NewLimiter(limit, burst),
	}
}

// Analyze requests a profitability analysis for walletAddress. It issues exactly one
// request; failures are returned wrapped in ErrTransport, ErrService or ErrParse.
func (c *Client) Analyze(ctx context.Context, walletAddress string) (*models.AnalysisResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("%w: rate limiter wait failed: %v", ErrTransport, err)
	}

	c.logger.Debug("Executing request",
		zap.String("method", http.MethodPost),
		zap.String("url", c.client.BaseURL+c.path),
		zap.String("wallet_address", walletAddress),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json").
		SetBody(AnalyzeRequest{WalletAddress: walletAddress}).
		Post(c.path)
	if err != nil {
		c.logger.Error("Analysis request failed", zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}

	if !resp.IsSuccess() {
		c.logger.Warn("Analysis service returned non-success status",
			zap.Int("status", resp.StatusCode()),
			zap.String("wallet_address", walletAddress),
		)
		return nil, fmt.Errorf("%w: status %s", ErrService, resp.Status())
	}

	result, err := models.DecodeAnalysisResult(resp.Body())
	if err != nil {
		c.logger.Error("Failed to parse analysis response", zap.Error(err), zap.Int("bytes", len(resp.Body())))
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}

	c.logger.Info("Analysis received",
		zap.String("wallet_address", walletAddress),
		zap.Int("trades", len(result.TradeLedger)),
		zap.Int("chart_points", len(result.ChartData)),
	)
	return result, nil
}
