package memstore

import (
	"context"
	"errors"
	"sync"
)

// ErrWriteFailed is returned by Set while FailSets is on.
var ErrWriteFailed = errors.New("memstore: write failed")

// Store keeps slots in a map. Nothing survives the process.
type Store struct {
	mu     sync.Mutex
	data   map[string]string
	failed bool
	sets   int
}

func New() *Store {
	return &Store{data: map[string]string{}}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failed {
		return ErrWriteFailed
	}
	s.data[key] = value
	s.sets++
	return nil
}

// FailSets makes every following Set fail (or succeed again with false).
func (s *Store) FailSets(fail bool) {
	s.mu.Lock()
	s.failed = fail
	s.mu.Unlock()
}

// Sets reports how many writes went through.
func (s *Store) Sets() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sets
}
