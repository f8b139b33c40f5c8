package credstore

import "context"

// Backend is one physical key-value store. Every method may fail; a failure
// means the backend is unavailable, never that the key is absent.
type Backend interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
