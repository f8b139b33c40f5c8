package password

import (
	"errors"
	"unicode"
)

var (
	ErrTooShort      = errors.New("password too short")
	ErrMismatch      = errors.New("passwords do not match")
	ErrMissingLetter = errors.New("password must contain a letter")
	ErrMissingDigit  = errors.New("password must contain a digit")
)

// Policy is the client-side password rule set. The server may enforce more.
type Policy struct {
	MinLength     int
	RequireLetter bool
	RequireDigit  bool
}

// DefaultPolicy requires at least 8 characters.
func DefaultPolicy() Policy {
	return Policy{MinLength: 8}
}

// Check validates pw and that confirmation matches it. Length counts runes.
func (p Policy) Check(pw, confirmation string) error {
	minLen := p.MinLength
	if minLen <= 0 {
		minLen = DefaultPolicy().MinLength
	}
	if len([]rune(pw)) < minLen {
		return ErrTooShort
	}

	var hasLetter, hasDigit bool
	for _, r := range pw {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if p.RequireLetter && !hasLetter {
		return ErrMissingLetter
	}
	if p.RequireDigit && !hasDigit {
		return ErrMissingDigit
	}

	if pw != confirmation {
		return ErrMismatch
	}
	return nil
}
