// Package profile holds the signed-in user's profile as returned by the
// remote auth service and persisted by the credential store.
package profile

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrInvalidUser = errors.New("invalid user profile")

// User is the persisted profile. Avatar may hold inline image data, which is
// why encoded profiles can exceed the secure backend size limit.
type User struct {
	ID            string            `json:"id"`
	Username      string            `json:"username"`
	Email         string            `json:"email,omitempty"`
	Name          string            `json:"name,omitempty"`
	Phone         string            `json:"phone,omitempty"`
	AccountNumber string            `json:"accountNumber,omitempty"`
	Avatar        string            `json:"avatar,omitempty"`
	Extra         map[string]string `json:"extra,omitempty"`
}

// Validate requires the identifying fields.
func (u *User) Validate() error {
	if u == nil || strings.TrimSpace(u.ID) == "" || strings.TrimSpace(u.Username) == "" {
		return ErrInvalidUser
	}
	return nil
}

// Clone returns a deep copy.
func (u *User) Clone() *User {
	if u == nil {
		return nil
	}
	out := *u
	if u.Extra != nil {
		out.Extra = make(map[string]string, len(u.Extra))
		for k, v := range u.Extra {
			out.Extra[k] = v
		}
	}
	return &out
}

// Encode returns the JSON form used for storage.
func Encode(u *User) (string, error) {
	if err := u.Validate(); err != nil {
		return "", err
	}
	b, err := json.Marshal(u)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Decode parses a stored profile and validates it.
func Decode(raw string) (*User, error) {
	var u User
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil, err
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}
	return &u, nil
}
