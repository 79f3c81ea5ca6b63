package store

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"phonebook/internal/person/models"
	"phonebook/pkg/sentinel"
)

// InMemory keeps persons in insertion order behind a mutex. It backs unit
// tests and the default server configuration when no database is wired.
type InMemory struct {
	mu      sync.RWMutex
	index   map[uuid.UUID]int
	persons []models.Person
}

func NewInMemory() *InMemory {
	return &InMemory{index: make(map[uuid.UUID]int)}
}

func (s *InMemory) List(_ context.Context) ([]models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Person, len(s.persons))
	copy(out, s.persons)
	return out, nil
}

func (s *InMemory) FindByID(_ context.Context, id uuid.UUID) (models.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.index[id]
	if !ok {
		return models.Person{}, sentinel.ErrNotFound
	}
	return s.persons[i], nil
}

func (s *InMemory) Insert(_ context.Context, person models.Person) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index[person.ID] = len(s.persons)
	s.persons = append(s.persons, person)
	return nil
}

func (s *InMemory) Update(_ context.Context, person models.Person) (models.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[person.ID]
	if !ok {
		return models.Person{}, sentinel.ErrNotFound
	}
	s.persons[i] = person
	return person, nil
}

func (s *InMemory) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[id]
	if !ok {
		// Idempotent: deleting an absent person is not an error.
		return nil
	}
	delete(s.index, id)
	s.persons = slices.Delete(s.persons, i, i+1)
	for j := i; j < len(s.persons); j++ {
		s.index[s.persons[j].ID] = j
	}
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.persons), nil
}
