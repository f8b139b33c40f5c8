package credstore

import (
	"context"
	"encoding/json"
	"sync"
)

// JSONFile is an unencrypted Backend that keeps every key in one JSON file.
// It is the fallback backend for desktop builds.
type JSONFile struct {
	path string
	mu   sync.Mutex
}

// NewJSONFile returns a backend persisted as plain JSON at path. The file is
// created on the first write.
func NewJSONFile(path string) *JSONFile {
	return &JSONFile{path: path}
}

func (f *JSONFile) load() (map[string]string, error) {
	values := make(map[string]string)
	b, err := readFile(f.path)
	if err != nil || b == nil {
		return values, err
	}
	if err := json.Unmarshal(b, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func (f *JSONFile) save(values map[string]string) error {
	b, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return err
	}
	return writeFile(f.path, b, 0o600)
}

// Get reads key from the file. A missing file reads as empty.
func (f *JSONFile) Get(_ context.Context, key string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Set rewrites the file with key set to value.
func (f *JSONFile) Set(_ context.Context, key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	values[key] = value
	return f.save(values)
}

// Delete rewrites the file without key.
func (f *JSONFile) Delete(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return f.save(values)
}

// Keys returns the stored key names.
func (f *JSONFile) Keys(_ context.Context) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	values, err := f.load()
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	return keys, nil
}
