//go:build biometricdev

package biometric

import "context"

// DevHardware always reports an enrolled sensor and accepts every challenge.
// It exists for emulators and is not compiled into release builds.
type DevHardware struct{}

func (DevHardware) HasHardware(context.Context) (bool, error) { return true, nil }
func (DevHardware) IsEnrolled(context.Context) (bool, error) { return true, nil }

func (DevHardware) Authenticate(context.Context, Prompt) (HardwareResult, error) {
	return HardwareResult{Success: true}, nil
}
