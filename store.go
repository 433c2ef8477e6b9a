package cashbill

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultKey is the store entry holding the invoice history.
const DefaultKey = "invoiceHistory"

// Store is a key-value storage for blobs.
//
// Get returns an error matching fs.ErrNotExist when the key has never been set.
// Calls may block, callers wait for them to return before going on.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// FileStore stores each key in its own file "<key>.json" inside a directory.
//
// Writes go through a temporary file renamed in place, readers never see a
// partially written value. Concurrent writers are last-writer-wins.
type FileStore struct {
	dir string
}

// NewFileStore returns a store in dir. The directory is created on first write.
func NewFileStore(dir string) *FileStore { return &FileStore{dir: dir} }

// Dir returns the store directory.
func (s *FileStore) Dir() string { return s.dir }

// Path returns the file that holds key.
func (s *FileStore) Path(key string) string { return filepath.Join(s.dir, key+".json") }

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid store key %q", key)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := checkKey(key); err != nil {
		return nil, err
	}
	return os.ReadFile(s.Path(key))
}

func (s *FileStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := checkKey(key); err != nil {
		return err
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return fmt.Errorf("cannot create store directory: %w", err)
	}
	f, err := os.CreateTemp(s.dir, key+".*.tmp")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if _, err := f.Write(value); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, s.Path(key)); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// MemoryStore is a Store kept in memory. Its zero value is ready to use.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string][]byte
}

func (s *MemoryStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	if !ok {
		return nil, fmt.Errorf("key %q: %w", key, fs.ErrNotExist)
	}
	return append([]byte(nil), v...), nil
}

func (s *MemoryStore) Set(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string][]byte)
	}
	s.values[key] = append([]byte(nil), value...)
	return nil
}
