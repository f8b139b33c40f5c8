package biometric

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/MrEthical07/authcore/apperr"
)

// State is the gate's position in its challenge lifecycle.
type State int

const (
	StateIdle State = iota
	StateAuthenticating
	StateResolved
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAuthenticating:
		return "authenticating"
	case StateResolved:
		return "resolved"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Reason classifies a failed challenge.
type Reason string

const (
	ReasonNone         Reason = ""
	ReasonUserCancel   Reason = "user_cancel"
	ReasonSystemCancel Reason = "system_cancel"
	ReasonFailed       Reason = "failed"
	ReasonLockout      Reason = "lockout"
	ReasonNotAvailable Reason = "not_available"
	ReasonInProgress   Reason = "in_progress"
)

const platformNotAvailable = "not_available"

// Outcome is the resolved result of Authenticate.
type Outcome struct {
	Success bool
	Reason  Reason
	Error   string
}

// Cancelled reports a user or system cancellation.
func (o Outcome) Cancelled() bool {
	return o.Reason == ReasonUserCancel || o.Reason == ReasonSystemCancel
}

// AppError converts a failed outcome into the shared error taxonomy. It
// returns nil for a success.
func (o Outcome) AppError() *apperr.Error {
	if o.Success {
		return nil
	}
	if o.Reason == ReasonNotAvailable {
		return apperr.BiometricNotAvailable(o.Error)
	}
	return apperr.BiometricFailed(o.Error)
}

// Gate serializes biometric challenges against one Hardware.
type Gate struct {
	hw  Hardware
	log zerolog.Logger

	mu    sync.Mutex
	state State
	last  Outcome
}

// NewGate returns a Gate over hw. A nil hw behaves as Unavailable.
func NewGate(hw Hardware, logger *zerolog.Logger) *Gate {
	if hw == nil {
		hw = Unavailable{}
	}
	l := zerolog.Nop()
	if logger != nil {
		l = *logger
	}
	return &Gate{hw: hw, log: l.With().Str("component", "biometric").Logger()}
}

// CheckAvailability reports whether a sensor is present and enrolled. It
// fails closed.
func (g *Gate) CheckAvailability(ctx context.Context) (available bool) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Warn().Interface("panic", r).Msg("biometric probe panicked")
			available = false
		}
	}()

	present, err := g.hw.HasHardware(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("biometric hardware probe failed")
		return false
	}
	if !present {
		return false
	}
	enrolled, err := g.hw.IsEnrolled(ctx)
	if err != nil {
		g.log.Warn().Err(err).Msg("biometric enrollment probe failed")
		return false
	}
	return enrolled
}

// Authenticate runs one challenge. A call made while another is running
// resolves immediately with ReasonInProgress.
func (g *Gate) Authenticate(ctx context.Context, promptText string) Outcome {
	g.mu.Lock()
	if g.state == StateAuthenticating {
		g.mu.Unlock()
		return Outcome{Reason: ReasonInProgress, Error: "biometric prompt already showing"}
	}
	g.state = StateAuthenticating
	g.mu.Unlock()

	out := g.challenge(ctx, promptText)

	g.mu.Lock()
	g.state = StateResolved
	g.last = out
	g.mu.Unlock()
	return out
}

func (g *Gate) challenge(ctx context.Context, promptText string) (out Outcome) {
	defer func() {
		if r := recover(); r != nil {
			g.log.Warn().Interface("panic", r).Msg("biometric challenge panicked")
			out = Outcome{Reason: ReasonSystemCancel, Error: fmt.Sprint(r)}
		}
	}()

	if !g.CheckAvailability(ctx) {
		return Outcome{Reason: ReasonNotAvailable, Error: apperr.CodeBiometricNotAvailable.DefaultMessage()}
	}

	res, err := g.hw.Authenticate(ctx, Prompt{Text: promptText})
	if err != nil {
		g.log.Warn().Err(err).Msg("biometric challenge failed")
		return Outcome{Reason: ReasonSystemCancel, Error: err.Error()}
	}
	if res.Success {
		return Outcome{Success: true}
	}

	reason := classify(res.Error)
	msg := res.Error
	if msg == "" {
		msg = apperr.CodeBiometricFailed.DefaultMessage()
	}
	return Outcome{Reason: reason, Error: msg}
}

// classify maps platform reason strings onto Reason.
func classify(platform string) Reason {
	switch strings.ToLower(strings.TrimSpace(platform)) {
	case "user_cancel", "app_cancel", "user_fallback":
		return ReasonUserCancel
	case "system_cancel":
		return ReasonSystemCancel
	case "lockout", "lockout_permanent":
		return ReasonLockout
	case platformNotAvailable, "not_enrolled", "passcode_not_set":
		return ReasonNotAvailable
	default:
		return ReasonFailed
	}
}

// State returns the current lifecycle state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Last returns the most recent resolved outcome.
func (g *Gate) Last() Outcome {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.last
}

// Reset returns a resolved gate to Idle. It does nothing mid-challenge.
func (g *Gate) Reset() {
	g.mu.Lock()
	if g.state == StateResolved {
		g.state = StateIdle
		g.last = Outcome{}
	}
	g.mu.Unlock()
}
