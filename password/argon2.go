package password

import (
	"crypto/rand"
	"errors"
	"io"

	"golang.org/x/crypto/argon2"
)

const (
	minMemoryKB    uint32 = 8 * 1024
	minTimeCost    uint32 = 1
	minParallelism uint8  = 1
	minSaltLength  uint32 = 16
	minKeyLength   uint32 = 16
)

var ErrEmptyPassphrase = errors.New("passphrase must not be empty")

// KDFParams are the Argon2id cost parameters. They are persisted next to the
// salt so a store written with older parameters can still be opened.
type KDFParams struct {
	Memory      uint32 `json:"m"`
	Time        uint32 `json:"t"`
	Parallelism uint8  `json:"p"`
	SaltLength  uint32 `json:"s"`
	KeyLength   uint32 `json:"k"`
}

// DefaultKDFParams returns parameters suited to an interactive unlock on a
// phone-class device.
func DefaultKDFParams() KDFParams {
	return KDFParams{
		Memory:      64 * 1024,
		Time:        3,
		Parallelism: 2,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// Validate rejects parameters below the supported floor.
func (p KDFParams) Validate() error {
	if p.Memory < minMemoryKB {
		return errors.New("kdf memory must be >= 8192 KB")
	}
	if p.Time < minTimeCost {
		return errors.New("kdf time must be >= 1")
	}
	if p.Parallelism < minParallelism {
		return errors.New("kdf parallelism must be >= 1")
	}
	if p.SaltLength < minSaltLength {
		return errors.New("kdf salt length must be >= 16")
	}
	if p.KeyLength < minKeyLength {
		return errors.New("kdf key length must be >= 16")
	}
	return nil
}

// NewSalt returns p.SaltLength random bytes.
func NewSalt(p KDFParams) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	salt := make([]byte, p.SaltLength)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return nil, err
	}
	return salt, nil
}

// DeriveKey stretches passphrase into a p.KeyLength key bound to salt.
// Passphrase bytes are used exactly as provided (no Unicode normalization).
func DeriveKey(passphrase string, salt []byte, p KDFParams) ([]byte, error) {
	if passphrase == "" {
		return nil, ErrEmptyPassphrase
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	if len(salt) < int(minSaltLength) {
		return nil, errors.New("kdf salt too short")
	}

	return argon2.IDKey(
		[]byte(passphrase),
		salt,
		p.Time,
		p.Memory,
		p.Parallelism,
		p.KeyLength,
	), nil
}
