package cache

import (
	"context"
	"sync"

	"github.com/olegsm/imagewall/internal/client/models"
)

// MemoryStore is an in-memory Store used in tests and as a fallback when no
// durable cache path is configured.
type MemoryStore struct {
	mu       sync.Mutex
	snapshot []*models.Entry
	images   map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{images: make(map[string]string)}
}

func (s *MemoryStore) Snapshot(ctx context.Context) ([]*models.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]*models.Entry(nil), s.snapshot...), nil
}

func (s *MemoryStore) SaveSnapshot(ctx context.Context, entries []*models.Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = append([]*models.Entry(nil), entries...)
	return nil
}

func (s *MemoryStore) DropFromSnapshot(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	kept := make([]*models.Entry, 0, len(s.snapshot))
	for _, e := range s.snapshot {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	s.snapshot = kept
	return nil
}

func (s *MemoryStore) ImageURL(ctx context.Context, fileRef string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.images[fileRef], nil
}

func (s *MemoryStore) SaveImageURL(ctx context.Context, fileRef, url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images[fileRef] = url
	return nil
}

func (s *MemoryStore) DropImage(ctx context.Context, fileRef string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.images, fileRef)
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
	s.images = make(map[string]string)
	return nil
}
