package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
)

// MemoryStore keeps documents in process memory.
type MemoryStore struct {
	mu    sync.RWMutex
	docs  map[Ref][]byte
	locks *userLocks
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		docs:  make(map[Ref][]byte),
		locks: newUserLocks(),
	}
}

func (s *MemoryStore) Get(_ context.Context, ref Ref, dest any) (bool, error) {
	s.mu.RLock()
	body, ok := s.docs[ref]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal %s/%s: %w", ref.Collection, ref.Key, err)
	}
	return true, nil
}

func (s *MemoryStore) Put(_ context.Context, ref Ref, value any) error {
	body, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal %s/%s: %w", ref.Collection, ref.Key, err)
	}
	s.mu.Lock()
	s.docs[ref] = body
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, ref Ref) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.docs[ref]; !ok {
		return false, nil
	}
	delete(s.docs, ref)
	return true, nil
}

func (s *MemoryStore) List(_ context.Context, userID, collection string) ([]Document, error) {
	s.mu.RLock()
	var docs []Document
	for ref, body := range s.docs {
		if ref.UserID == userID && ref.Collection == collection {
			docs = append(docs, Document{Key: ref.Key, Body: body})
		}
	}
	s.mu.RUnlock()

	sort.Slice(docs, func(i, j int) bool { return docs[i].Key < docs[j].Key })
	return docs, nil
}

func (s *MemoryStore) Lock(_ context.Context, userID string) (func(), error) {
	return s.locks.lock(userID), nil
}
