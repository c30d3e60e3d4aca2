// Package memory is the in-process storage backend used in development.
// Upload and fetch URLs point back at the application server's /uploads
// endpoints, so no external object store is needed.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/dmitrijs2005/printdraft/internal/server/storage"
)

type Store struct {
	baseURL string

	mu      sync.RWMutex
	objects map[string][]byte
}

// New builds a store whose URLs are rooted at baseURL, the externally
// reachable address of the application server.
func New(baseURL string) *Store {
	return &Store{
		baseURL: strings.TrimRight(baseURL, "/"),
		objects: make(map[string][]byte),
	}
}

func (s *Store) url(key string) string {
	return s.baseURL + "/uploads/" + key
}

func (s *Store) UploadURL(_ context.Context, key string) (string, error) {
	return s.url(key), nil
}

func (s *Store) FetchURL(_ context.Context, key string) (string, error) {
	return s.url(key), nil
}

func (s *Store) Put(_ context.Context, key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.objects[key] = data
	return nil
}

func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.objects[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return data, nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.objects, key)
	return nil
}
