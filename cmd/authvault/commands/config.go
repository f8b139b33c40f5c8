package commands

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

const (
	envHome        = "AUTHVAULT_HOME"
	envPassphrase  = "AUTHVAULT_PASSPHRASE"
	envRedisAddr   = "AUTHVAULT_REDIS_ADDR"
	envRedisPrefix = "AUTHVAULT_REDIS_PREFIX"
	envLogLevel    = "AUTHVAULT_LOG_LEVEL"

	vaultFile    = "vault.json"
	fallbackFile = "store.json"
)

// settings is the resolved CLI configuration.
type settings struct {
	home        string
	passphrase  string
	redisAddr   string
	redisPrefix string
	logLevel    string
}

// loadEnv reads a .env file when one exists. A missing file is not an error.
// The process environment is not modified.
func loadEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return map[string]string{}, nil
		}
		return nil, err
	}
	return vars, nil
}

// fillFromEnv sets every empty field from its environment variable, then
// from the .env values. An exported but empty variable does not hide the file.
func (s *settings) fillFromEnv(file map[string]string) {
	lookup := func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return file[key]
	}
	setIfEmpty(&s.home, lookup(envHome))
	setIfEmpty(&s.passphrase, lookup(envPassphrase))
	setIfEmpty(&s.redisAddr, lookup(envRedisAddr))
	setIfEmpty(&s.redisPrefix, lookup(envRedisPrefix))
	setIfEmpty(&s.logLevel, lookup(envLogLevel))
}

func setIfEmpty(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}

func (s *settings) resolveHome() error {
	if s.home != "" {
		return nil
	}
	dir, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	s.home = filepath.Join(dir, ".authvault")
	return nil
}

func (s *settings) logger() (zerolog.Logger, error) {
	level := zerolog.WarnLevel
	if s.logLevel != "" {
		parsed, err := zerolog.ParseLevel(s.logLevel)
		if err != nil {
			return zerolog.Nop(), err
		}
		level = parsed
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Str("app", "authvault").
		Logger(), nil
}
