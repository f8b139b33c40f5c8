package credstore

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

var (
	ErrNoFallback  = errors.New("credstore: fallback backend required")
	ErrWriteFailed = errors.New("credstore: write failed")
	ErrEmptyValue  = errors.New("credstore: empty value")
)

// Options configures a Store. A nil Secure models a runtime that offers no
// secure backend; every key is then routed to Fallback.
type Options struct {
	Secure          Backend
	Fallback        Backend
	SecureSizeLimit int
	Logger          *zerolog.Logger
}

type namedBackend struct {
	name string
	b    Backend
}

// Store routes credential reads and writes across the configured backends.
// It is safe for concurrent use; concurrent writes to one key are
// last-writer-wins.
type Store struct {
	secure    namedBackend
	fallback  namedBackend
	sizeLimit int
	log       zerolog.Logger

	mu         sync.Mutex
	tombstones map[Key]struct{}
}

// New validates opts and returns a Store.
func New(opts Options) (*Store, error) {
	if opts.Fallback == nil {
		return nil, ErrNoFallback
	}
	limit := opts.SecureSizeLimit
	if limit <= 0 {
		limit = DefaultSecureSizeLimit
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	s := &Store{
		fallback:   namedBackend{name: "fallback", b: opts.Fallback},
		sizeLimit:  limit,
		log:        logger.With().Str("component", "credstore").Logger(),
		tombstones: make(map[Key]struct{}),
	}
	if opts.Secure != nil {
		s.secure = namedBackend{name: "secure", b: opts.Secure}
	}
	return s, nil
}

// HasSecureBackend reports whether small values are written to a secure
// backend.
func (s *Store) HasSecureBackend() bool {
	return s.secure.b != nil
}

// backends returns the configured backends, secure first.
func (s *Store) backends() []namedBackend {
	if s.secure.b == nil {
		return []namedBackend{s.fallback}
	}
	return []namedBackend{s.secure, s.fallback}
}

func (s *Store) route(value string) (primary, other namedBackend) {
	if s.secure.b != nil && len(value) < s.sizeLimit {
		return s.secure, s.fallback
	}
	return s.fallback, s.secure
}

// Get returns the stored value for key. It never fails: backend errors are
// logged and treated as absence for that backend.
func (s *Store) Get(ctx context.Context, key Key) (string, bool) {
	if s.isTombstoned(key) {
		s.retryDelete(ctx, key)
		return "", false
	}

	for _, nb := range s.backends() {
		value, found, err := nb.b.Get(ctx, string(key))
		if err != nil {
			s.logFailure("get", nb.name, key, err)
			continue
		}
		if found {
			return value, true
		}
	}
	return "", false
}

// Set writes value under key on the backend chosen by its size, then removes
// any copy held by the other backend.
func (s *Store) Set(ctx context.Context, key Key, value string) error {
	primary, other := s.route(value)

	if err := primary.b.Set(ctx, string(key), value); err != nil {
		s.logFailure("set", primary.name, key, err)
		return fmt.Errorf("%w: %s on %s backend: %v", ErrWriteFailed, key, primary.name, err)
	}

	if other.b != nil {
		if err := other.b.Delete(ctx, string(key)); err != nil {
			s.logFailure("delete_stale", other.name, key, err)
			// A stale secure copy would shadow the value just written.
			if other.name == "secure" {
				return fmt.Errorf("%w: %s: stale copy on secure backend: %v", ErrWriteFailed, key, err)
			}
		}
	}

	s.clearTombstone(key)
	return nil
}

// Delete removes key from every backend. Failures are logged, and the key is
// tombstoned so it reads as absent until a later Set.
func (s *Store) Delete(ctx context.Context, key Key) {
	if !s.deleteEverywhere(ctx, key) {
		s.tombstone(key)
	}
}

func (s *Store) deleteEverywhere(ctx context.Context, key Key) bool {
	ok := true
	for _, nb := range s.backends() {
		if err := nb.b.Delete(ctx, string(key)); err != nil {
			s.logFailure("delete", nb.name, key, err)
			ok = false
		}
	}
	return ok
}

func (s *Store) retryDelete(ctx context.Context, key Key) {
	if s.deleteEverywhere(ctx, key) {
		s.clearTombstone(key)
	}
}

func (s *Store) isTombstoned(key Key) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.tombstones[key]
	return ok
}

func (s *Store) tombstone(key Key) {
	s.mu.Lock()
	s.tombstones[key] = struct{}{}
	s.mu.Unlock()
}

func (s *Store) clearTombstone(key Key) {
	s.mu.Lock()
	delete(s.tombstones, key)
	s.mu.Unlock()
}

func (s *Store) logFailure(op, backend string, key Key, err error) {
	s.log.Warn().
		Err(err).
		Str("op", op).
		Str("backend", backend).
		Str("key", string(key)).
		Msg("credential backend failure")
}
