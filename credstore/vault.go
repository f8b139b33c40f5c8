package credstore

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"sync"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/MrEthical07/authcore/password"
)

const vaultFormatVersion = 1

var ErrWrongPassphrase = errors.New("credstore: wrong passphrase or corrupted vault")

// vaultBlob is the on-disk envelope. The plaintext is the JSON key/value map.
type vaultBlob struct {
	V      int                `json:"v"`
	KDF    password.KDFParams `json:"kdf"`
	Salt   []byte             `json:"salt"`
	Nonce  []byte             `json:"nonce"`
	Cipher []byte             `json:"cipher"`
}

// Vault is a secure Backend that seals every key into one file with
// XChaCha20-Poly1305 under an Argon2id key derived from a passphrase. It is
// the keychain stand-in for runtimes that supply a device secret instead of a
// platform keychain.
type Vault struct {
	path       string
	passphrase string
	params     password.KDFParams

	mu        sync.Mutex
	key       []byte
	salt      []byte
	keyParams password.KDFParams
}

// NewVault prepares a vault at path. Nothing is read or derived until first use.
func NewVault(path, passphrase string, params password.KDFParams) (*Vault, error) {
	if passphrase == "" {
		return nil, password.ErrEmptyPassphrase
	}
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &Vault{path: path, passphrase: passphrase, params: params}, nil
}

func vaultAAD(version int, salt []byte) []byte {
	aad := []byte("authcore-vault:v" + strconv.Itoa(version) + ":")
	return append(aad, salt...)
}

func (v *Vault) keyFor(salt []byte, params password.KDFParams) ([]byte, error) {
	if v.key != nil && bytes.Equal(v.salt, salt) && v.keyParams == params {
		return v.key, nil
	}
	key, err := password.DeriveKey(v.passphrase, salt, params)
	if err != nil {
		return nil, err
	}
	v.wipe()
	v.key = key
	v.salt = append([]byte(nil), salt...)
	v.keyParams = params
	return key, nil
}

func (v *Vault) load() (map[string]string, error) {
	values := make(map[string]string)

	b, err := readFile(v.path)
	if err != nil || b == nil {
		return values, err
	}

	var blob vaultBlob
	if err := json.Unmarshal(b, &blob); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
	}
	if blob.V != vaultFormatVersion {
		return nil, fmt.Errorf("credstore: unsupported vault version %d", blob.V)
	}
	if len(blob.Nonce) != chacha20poly1305.NonceSizeX {
		return nil, ErrWrongPassphrase
	}

	key, err := v.keyFor(blob.Salt, blob.KDF)
	if err != nil {
		return nil, err
	}
	aead, err := chacha20poly1305.NewX(key)
	if err != nil {
		return nil, err
	}
	plain, err := aead.Open(nil, blob.Nonce, blob.Cipher, vaultAAD(blob.V, blob.Salt))
	if err != nil {
		return nil, ErrWrongPassphrase
	}
	if err := json.Unmarshal(plain, &values); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWrongPassphrase, err)
	}
	return values, nil
}

func (v *Vault) save(values map[string]string) error {
	if v.key == nil {
		salt, err := password.NewSalt(v.params)
		if err != nil {
			return err
		}
		if _, err := v.keyFor(salt, v.params); err != nil {
			return err
		}
	}

	plain, err := json.Marshal(values)
	if err != nil {
		return err
	}
	aead, err := chacha20poly1305.NewX(v.key)
	if err != nil {
		return err
	}
	nonce := make([]byte, chacha20poly1305.NonceSizeX)
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return err
	}

	blob := vaultBlob{
		V:      vaultFormatVersion,
		KDF:    v.keyParams,
		Salt:   v.salt,
		Nonce:  nonce,
		Cipher: aead.Seal(nil, nonce, plain, vaultAAD(vaultFormatVersion, v.salt)),
	}
	b, err := json.Marshal(blob)
	if err != nil {
		return err
	}
	return writeFile(v.path, b, 0o600)
}

// Get decrypts the vault and returns the value stored under key.
func (v *Vault) Get(_ context.Context, key string) (string, bool, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	values, err := v.load()
	if err != nil {
		return "", false, err
	}
	value, ok := values[key]
	return value, ok, nil
}

// Set stores value under key and re-encrypts the vault.
func (v *Vault) Set(_ context.Context, key, value string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	values, err := v.load()
	if err != nil {
		return err
	}
	values[key] = value
	return v.save(values)
}

// Delete removes key and re-encrypts the vault.
func (v *Vault) Delete(_ context.Context, key string) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	values, err := v.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return v.save(values)
}

// Lock drops the cached key; the next access derives it again.
func (v *Vault) Lock() {
	v.mu.Lock()
	v.wipe()
	v.mu.Unlock()
}

func (v *Vault) wipe() {
	for i := range v.key {
		v.key[i] = 0
	}
	v.key = nil
	v.salt = nil
}
