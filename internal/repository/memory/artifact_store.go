package memory

import (
	"context"
	"sort"
	"sync"

	"livelabs-be/internal/repository/contract"
)

// ArtifactStore keeps exported reports in a map, for tests.
type ArtifactStore struct {
	mu    sync.Mutex
	files map[string][]byte
}

func NewArtifactStore() contract.ArtifactStore {
	return &ArtifactStore{files: make(map[string][]byte)}
}

func (s *ArtifactStore) Write(ctx context.Context, name string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := make([]byte, len(data))
	copy(cp, data)
	s.files[name] = cp
	return nil
}

func (s *ArtifactStore) Read(ctx context.Context, name string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.files[name]
	if !ok {
		return nil, nil
	}
	return data, nil
}

func (s *ArtifactStore) List(ctx context.Context) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}
