package dashboard

import (
	"context"
	"fmt"
	"testing"
	"time"

	"wallet-analyzer-go/internal/analysis"
	"wallet-analyzer-go/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockAnalyzer is a mock implementation of analysis.ClientInterface.
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Analyze(ctx context.Context, walletAddress string) (*models.AnalysisResult, error) {
	args := m.Called(ctx, walletAddress)
	result, _ := args.Get(0).(*models.AnalysisResult)
	return result, args.Error(1)
}

func price(v float64) *float64 { return &v }

func scenarioResult() *models.AnalysisResult {
	return &models.AnalysisResult{
		Pnl: map[models.Window]models.Pnl{
			models.Window7d:      {Realized: 10, Unrealized: -2},
			models.WindowAllTime: {Realized: 10, Unrealized: -2},
		},
		ChartData: []models.ChartPoint{{Date: "2024-01-01", Pnl: 0}, {Date: "2024-01-02", Pnl: 10}},
		TradeLedger: []models.TradeRecord{{
			Timestamp: 1704067200, Type: "buy", FromToken: "SOL", ToToken: "USDC",
			PriceAfter60s: price(100.5), ProfitOrLoss: 10,
		}},
	}
}

func TestController_InitialState(t *testing.T) {
	c := NewController(new(MockAnalyzer), zap.NewNop())

	s := c.State()
	assert.Equal(t, PhaseIdle, s.Phase)
	assert.Empty(t, s.WalletAddress)
	assert.False(t, s.IsLoading)
	assert.Nil(t, s.Result)
	assert.Empty(t, s.Error)
	assert.False(t, s.HasResult())
}

func TestController_Submit_BlankAddress(t *testing.T) {
	for _, address := range []string{"", "   ", "\t\n"} {
		t.Run(fmt.Sprintf("%q", address), func(t *testing.T) {
			mockAnalyzer := new(MockAnalyzer)
			c := NewController(mockAnalyzer, zap.NewNop())

			snap, run := c.Begin(address)

			assert.Nil(t, run)
			assert.Equal(t, PhaseFailed, snap.Phase)
			assert.Equal(t, "address required", snap.Error)
			assert.False(t, snap.IsLoading)
			mockAnalyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
		})
	}
}

func TestController_Submit_Success(t *testing.T) {
	// Arrange
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.Anything, "Abc123").Return(scenarioResult(), nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	// Act
	snap, run := c.Begin("Abc123")
	require.NotNil(t, run)

	// Assert the Submitting transition before the response arrives
	assert.Equal(t, PhaseSubmitting, snap.Phase)
	assert.True(t, snap.IsLoading)
	assert.Nil(t, snap.Result)
	assert.Empty(t, snap.Error)

	final := run(context.Background())
	assert.Equal(t, PhaseSuccess, final.Phase)
	assert.False(t, final.IsLoading)
	assert.Empty(t, final.Error)
	require.NotNil(t, final.Result)
	assert.Equal(t, "Abc123", final.Result.WalletAddress, "missing wallet_address is filled from the submission")
	assert.True(t, final.HasResult())
	assert.Equal(t, final, c.State())
	mockAnalyzer.AssertExpectations(t)
}

func TestController_Submit_Failures(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		message string
	}{
		{"service", fmt.Errorf("%w: status 500", analysis.ErrService), "Failed to fetch analysis from the backend."},
		{"transport", fmt.Errorf("%w: connection refused", analysis.ErrTransport), "Failed to fetch analysis from the backend."},
		{"parse", fmt.Errorf("%w: bad body", analysis.ErrParse), "The analysis service returned an unexpected response."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mockAnalyzer := new(MockAnalyzer)
			mockAnalyzer.On("Analyze", mock.Anything, "Abc123").Return(nil, tc.err).Once()
			c := NewController(mockAnalyzer, zap.NewNop())

			snap := c.Submit(context.Background(), "Abc123")

			assert.Equal(t, PhaseFailed, snap.Phase)
			assert.Equal(t, tc.message, snap.Error)
			assert.False(t, snap.IsLoading)
			assert.Nil(t, snap.Result)
			assert.False(t, snap.HasResult())
			mockAnalyzer.AssertExpectations(t)
		})
	}
}

func TestController_Submit_NilResultIsParseFailure(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.Anything, "w").Return(nil, nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	snap := c.Submit(context.Background(), "w")

	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, analysis.UserMessage(analysis.ErrParse), snap.Error)
}

func TestController_RecoversAfterFailure(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.Anything, "bad").Return(nil, analysis.ErrService).Once()
	mockAnalyzer.On("Analyze", mock.Anything, "good").Return(scenarioResult(), nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	first := c.Submit(context.Background(), "bad")
	require.Equal(t, PhaseFailed, first.Phase)

	second := c.Submit(context.Background(), "good")
	assert.Equal(t, PhaseSuccess, second.Phase)
	assert.Empty(t, second.Error, "a successful submission clears prior errors")
	mockAnalyzer.AssertExpectations(t)
}

func TestController_StaleResponseDiscarded(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	older := &models.AnalysisResult{WalletAddress: "older"}
	newer := &models.AnalysisResult{WalletAddress: "newer"}
	mockAnalyzer.On("Analyze", mock.Anything, "older").Return(older, nil).Once()
	mockAnalyzer.On("Analyze", mock.Anything, "newer").Return(newer, nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	_, runOlder := c.Begin("older")
	_, runNewer := c.Begin("newer")

	// The newer request resolves first, then the older one arrives late.
	afterNewer := runNewer(context.Background())
	require.Equal(t, PhaseSuccess, afterNewer.Phase)

	afterOlder := runOlder(context.Background())
	assert.Equal(t, "newer", afterOlder.Result.WalletAddress)
	assert.Equal(t, "newer", c.State().Result.WalletAddress)
	mockAnalyzer.AssertExpectations(t)
}

func TestController_BlankSubmissionKeepsResult(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.Anything, "w").Return(scenarioResult(), nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	prior := c.Submit(context.Background(), "w")
	require.Equal(t, PhaseSuccess, prior.Phase)

	snap, run := c.Begin("  ")

	assert.Nil(t, run)
	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.Equal(t, ErrAddressRequired.Error(), snap.Error)
	assert.False(t, snap.IsLoading)
	assert.Same(t, prior.Result, snap.Result, "no request began, so the result stays")
	assert.True(t, snap.HasResult())
	mockAnalyzer.AssertNumberOfCalls(t, "Analyze", 1)
}

func TestController_BlankSubmissionLeavesInFlightRequest(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.Anything, "w").Return(scenarioResult(), nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	_, run := c.Begin("w")
	blank, blankRun := c.Begin(" ")

	assert.Nil(t, blankRun)
	assert.Equal(t, PhaseSubmitting, blank.Phase, "only a response ends Submitting")
	assert.True(t, blank.IsLoading)
	assert.Equal(t, ErrAddressRequired.Error(), blank.Error)

	snap := run(context.Background())

	assert.Equal(t, PhaseSuccess, snap.Phase)
	assert.Empty(t, snap.Error)
	assert.NotNil(t, snap.Result)
	mockAnalyzer.AssertExpectations(t)
}

func TestController_SubmitAsync(t *testing.T) {
	release := make(chan time.Time)
	mockAnalyzer := new(MockAnalyzer)
	mockAnalyzer.On("Analyze", mock.Anything, "Abc123").
		WaitUntil(release).
		Return(scenarioResult(), nil).Once()
	c := NewController(mockAnalyzer, zap.NewNop())

	snap := c.SubmitAsync(context.Background(), "Abc123")
	assert.True(t, snap.IsLoading)
	assert.True(t, c.State().IsLoading)

	c.SetAddress("Abc1234") // typing while in flight is allowed
	assert.Equal(t, "Abc1234", c.State().WalletAddress)

	close(release)
	assert.Eventually(t, func() bool {
		return c.State().Phase == PhaseSuccess
	}, time.Second, 5*time.Millisecond)
	assert.False(t, c.State().IsLoading)
	mockAnalyzer.AssertExpectations(t)
}

func TestController_SubmitAsync_Blank(t *testing.T) {
	mockAnalyzer := new(MockAnalyzer)
	c := NewController(mockAnalyzer, zap.NewNop())

	snap := c.SubmitAsync(context.Background(), "")

	assert.Equal(t, PhaseFailed, snap.Phase)
	assert.False(t, snap.IsLoading)
	mockAnalyzer.AssertNotCalled(t, "Analyze", mock.Anything, mock.Anything)
}

func TestPhase_MarshalText(t *testing.T) {
	for phase, name := range map[Phase]string{
		PhaseIdle: "idle", PhaseSubmitting: "submitting", PhaseSuccess: "success", PhaseFailed: "failed", Phase(9): "unknown",
	} {
		text, err := phase.MarshalText()
		assert.NoError(t, err)
		assert.Equal(t, name, string(text))
	}
}

func TestPhase_UnmarshalText(t *testing.T) {
	var p Phase
	require.NoError(t, p.UnmarshalText([]byte("submitting")))
	assert.Equal(t, PhaseSubmitting, p)
	assert.Error(t, p.UnmarshalText([]byte("unknown")))
}
