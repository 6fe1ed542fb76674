package storage

import (
	"bytes"
	"context"
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	gocache "github.com/patrickmn/go-cache"
)

func init() {
	gob.Register("") // values are always strings
}

// Local is a go-cache backed store. When it has a filename, every Set writes
// the whole item map to that file as GOB before returning.
type Local struct {
	mu       sync.Mutex
	inner    *gocache.Cache
	filename string
}

// NewMemory creates a store that lives only in process memory.
func NewMemory() *Local {
	return &Local{inner: gocache.New(gocache.NoExpiration, 0)}
}

// LoadLocal loads a store from a GOB file. A missing file yields an empty
// store; an undecodable one is logged and replaced on the next Set.
func LoadLocal(filename string) (*Local, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		if os.IsNotExist(err) {
			l := NewMemory()
			l.filename = filename
			return l, nil
		}
		return nil, err
	}
	dec := gob.NewDecoder(bytes.NewBuffer(data))
	items := map[string]gocache.Item{}
	if err := dec.Decode(&items); err != nil {
		slog.Warn("store decode error, starting fresh", "file", filename, "error", err)
		l := NewMemory()
		l.filename = filename
		return l, nil
	}
	return &Local{
		inner:    gocache.NewFrom(gocache.NoExpiration, 0, items),
		filename: filename,
	}, nil
}

// Get retrieves a value by key.
func (l *Local) Get(_ context.Context, key string) (string, bool, error) {
	val, found := l.inner.Get(key)
	if !found {
		return "", false, nil
	}
	s, ok := val.(string)
	if !ok {
		return "", false, fmt.Errorf("key %q holds %T, not a string", key, val)
	}
	return s, true, nil
}

// Set stores a value without expiration and saves the file, if any.
func (l *Local) Set(_ context.Context, key, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.inner.Set(key, value, gocache.NoExpiration)
	if l.filename == "" {
		return nil
	}
	return l.saveLocked()
}

func (l *Local) saveLocked() error {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(l.inner.Items()); err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(l.filename), 0o700); err != nil {
		return err
	}
	return os.WriteFile(l.filename, buf.Bytes(), 0o600)
}
