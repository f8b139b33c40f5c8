package credstore

import (
	"errors"
	"strings"
)

var ErrUnknownKey = errors.New("credstore: unknown key")

// Key is a logical, backend-agnostic storage key.
type Key string

const (
	KeyAuthToken           Key = "AUTH_TOKEN"
	KeyUserData            Key = "USER_DATA"
	KeyBiometricEnabled    Key = "BIOMETRIC_ENABLED"
	KeyUsernameRemembered  Key = "USERNAME_REMEMBERED"
	KeyOnboardingCompleted Key = "ONBOARDING_COMPLETED"
	KeyDeviceID            Key = "DEVICE_ID"
)

var allKeys = [...]Key{
	KeyAuthToken,
	KeyUserData,
	KeyBiometricEnabled,
	KeyUsernameRemembered,
	KeyOnboardingCompleted,
	KeyDeviceID,
}

// Keys lists every logical key the store persists.
func Keys() []Key {
	out := make([]Key, len(allKeys))
	copy(out, allKeys[:])
	return out
}

// ParseKey matches s against the logical keys, ignoring case.
func ParseKey(s string) (Key, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	for _, k := range allKeys {
		if string(k) == s {
			return k, nil
		}
	}
	return "", ErrUnknownKey
}

// authKeys are removed by EndSession. ClearSession also removes the
// remembered username. Onboarding and device id survive both.
var authKeys = [...]Key{
	KeyAuthToken,
	KeyUserData,
	KeyBiometricEnabled,
}

const (
	flagEnabled  = "true"
	flagDisabled = "false"

	// DefaultSecureSizeLimit is the largest value size, exclusive, that is
	// routed to the secure backend.
	DefaultSecureSizeLimit = 2048
)
