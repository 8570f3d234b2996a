package dashboard

import (
	"errors"
	"fmt"

	"wallet-analyzer-go/internal/models"
)

// ErrAddressRequired is reported when a blank wallet address is submitted.
var ErrAddressRequired = errors.New("address required")

// Phase is the state of the submission state machine.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseSubmitting
	PhaseSuccess
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseSubmitting:
		return "submitting"
	case PhaseSuccess:
		return "success"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// MarshalText renders the phase by name in JSON.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText parses a phase name produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	for _, candidate := range []Phase{PhaseIdle, PhaseSubmitting, PhaseSuccess, PhaseFailed} {
		if candidate.String() == string(text) {
			*p = candidate
			return nil
		}
	}
	return fmt.Errorf("unknown phase %q", text)
}

// Snapshot is a read-only copy of the controller state.
type Snapshot struct {
	Phase         Phase                  `json:"phase"`
	WalletAddress string                 `json:"wallet_address"`
	IsLoading     bool                   `json:"is_loading"`
	Result        *models.AnalysisResult `json:"result"`
	Error         string                 `json:"error,omitempty"`
}

// HasResult reports whether the results region should be shown. A result stays
// visible next to a validation error until the next request begins.
func (s Snapshot) HasResult() bool {
	return s.Result != nil
}
