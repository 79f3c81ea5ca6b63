package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"phonebook/internal/person/models"
	"phonebook/pkg/sentinel"
)

type MemoryStoreSuite struct {
	suite.Suite
	store *InMemory
	ctx   context.Context
}

func (s *MemoryStoreSuite) SetupTest() {
	s.store = NewInMemory()
	s.ctx = context.Background()
}

func TestMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(MemoryStoreSuite))
}

func newPerson(name, number string) models.Person {
	return models.Person{ID: uuid.New(), Name: name, Number: number}
}

func (s *MemoryStoreSuite) TestInsertAndLookups() {
	s.Run("inserts and finds by id", func() {
		p := newPerson("Arto Hellas", "040-123456")
		s.Require().NoError(s.store.Insert(s.ctx, p))

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(p, found)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.FindByID(s.ctx, uuid.New())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestListPreservesInsertionOrder() {
	names := []string{"Arto Hellas", "Ada Lovelace", "Dan Abramov", "Mary Poppendieck"}
	for i, name := range names {
		s.Require().NoError(s.store.Insert(s.ctx, newPerson(name, "000"+string(rune('0'+i)))))
	}

	persons, err := s.store.List(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(persons, len(names))
	for i, p := range persons {
		s.Equal(names[i], p.Name)
	}
}

func (s *MemoryStoreSuite) TestUpdate() {
	s.Run("replaces name and number, keeps id", func() {
		p := newPerson("Arto Hellas", "040-123456")
		s.Require().NoError(s.store.Insert(s.ctx, p))

		updated, err := s.store.Update(s.ctx, models.Person{ID: p.ID, Name: p.Name, Number: "045-999999"})
		s.Require().NoError(err)
		s.Equal(p.ID, updated.ID)
		s.Equal("045-999999", updated.Number)

		found, err := s.store.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal("045-999999", found.Number)
	})

	s.Run("returns ErrNotFound for unknown id", func() {
		_, err := s.store.Update(s.ctx, newPerson("Nobody", "123"))
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *MemoryStoreSuite) TestDelete() {
	s.Run("removes the person and preserves order of the rest", func() {
		a := newPerson("Arto Hellas", "1")
		b := newPerson("Ada Lovelace", "2")
		c := newPerson("Dan Abramov", "3")
		for _, p := range []models.Person{a, b, c} {
			s.Require().NoError(s.store.Insert(s.ctx, p))
		}

		s.Require().NoError(s.store.Delete(s.ctx, b.ID))

		persons, err := s.store.List(s.ctx)
		s.Require().NoError(err)
		s.Require().Len(persons, 2)
		s.Equal(a.ID, persons[0].ID)
		s.Equal(c.ID, persons[1].ID)

		found, err := s.store.FindByID(s.ctx, c.ID)
		s.Require().NoError(err)
		s.Equal(c, found)
	})

	s.Run("deleting an absent id succeeds", func() {
		s.Require().NoError(s.store.Delete(s.ctx, uuid.New()))
	})
}

func (s *MemoryStoreSuite) TestCount() {
	count, err := s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Zero(count)

	s.Require().NoError(s.store.Insert(s.ctx, newPerson("Arto Hellas", "040-123456")))

	count, err = s.store.Count(s.ctx)
	s.Require().NoError(err)
	s.Equal(1, count)
}
