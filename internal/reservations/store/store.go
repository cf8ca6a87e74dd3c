// Package store is the in-memory reservation record map. It has no range
// logic; the ledger owns day-level state and the service keeps the two
// consistent.
package store

import (
	"fmt"
	"sync"

	reserrors "campsite/internal/reservations/errors"
	"campsite/pkg/model"
)

type Store struct {
	mu           sync.RWMutex
	reservations map[string]*model.Reservation
}

func New() *Store {
	return &Store{reservations: make(map[string]*model.Reservation)}
}

// Get returns a copy of the record, or ErrNotFound.
func (s *Store) Get(id string) (*model.Reservation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, reserrors.ErrNotFound
	}
	return res.Clone(), nil
}

// Put inserts a new record. A duplicate id is a programming error (ids are
// freshly generated UUIDs), reported rather than silently overwritten.
func (s *Store) Put(res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.reservations[res.ID]; exists {
		return fmt.Errorf("reservation id %s already exists", res.ID)
	}
	s.reservations[res.ID] = res.Clone()
	return nil
}

// Update overwrites an existing record, or returns ErrNotFound.
func (s *Store) Update(res *model.Reservation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.reservations[res.ID]; !ok {
		return reserrors.ErrNotFound
	}
	s.reservations[res.ID] = res.Clone()
	return nil
}

// Remove deletes and returns the record, or ErrNotFound.
func (s *Store) Remove(id string) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, ok := s.reservations[id]
	if !ok {
		return nil, reserrors.ErrNotFound
	}
	delete(s.reservations, id)
	return res, nil
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.reservations)
}
