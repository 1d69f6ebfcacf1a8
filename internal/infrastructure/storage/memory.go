package storage

import (
	"context"
	"sync"
)

var _ BlobStore = (*MemoryStore)(nil)

// MemoryStore implementação volátil do BlobStore, usada em desenvolvimento e
// nos testes de unidade. SetMulti aplica todas as chaves sob a mesma trava.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore constrói o store vazio.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Get devolve o blob da chave, ou ok=false se ausente.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.blobs[key]
	if !ok {
		return nil, false, nil
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return cp, true, nil
}

// SetMulti grava todas as chaves de uma vez.
func (s *MemoryStore) SetMulti(_ context.Context, blobs map[string][]byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, data := range blobs {
		cp := make([]byte, len(data))
		copy(cp, data)
		s.blobs[key] = cp
	}
	return nil
}
