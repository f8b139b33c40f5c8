package biometric

import "context"

// Prompt is what the platform dialog shows.
type Prompt struct {
	Text                  string
	CancelLabel           string
	AllowDeviceCredential bool
}

// HardwareResult is the raw platform answer. Error carries the platform's
// reason string when Success is false.
type HardwareResult struct {
	Success bool
	Error   string
}

// Hardware is the platform biometric API.
type Hardware interface {
	HasHardware(ctx context.Context) (bool, error)
	IsEnrolled(ctx context.Context) (bool, error)
	Authenticate(ctx context.Context, prompt Prompt) (HardwareResult, error)
}

// Unavailable is Hardware for runtimes without a biometric sensor.
type Unavailable struct{}

func (Unavailable) HasHardware(context.Context) (bool, error) { return false, nil }
func (Unavailable) IsEnrolled(context.Context) (bool, error) { return false, nil }

func (Unavailable) Authenticate(context.Context, Prompt) (HardwareResult, error) {
	return HardwareResult{Error: platformNotAvailable}, nil
}
