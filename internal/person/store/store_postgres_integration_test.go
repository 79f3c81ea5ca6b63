//go:build integration

package store_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"phonebook/internal/person/models"
	"phonebook/internal/person/store"
	"phonebook/pkg/sentinel"
	"phonebook/pkg/testutil/containers"
)

type PostgresStoreSuite struct {
	suite.Suite
	postgres *containers.PostgresContainer
	store    *store.Postgres
}

func TestPostgresStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresStoreSuite))
}

func (s *PostgresStoreSuite) SetupSuite() {
	s.postgres = containers.NewPostgresContainer(s.T())
	s.store = store.NewPostgres(s.postgres.Pool)
	s.Require().NoError(s.store.EnsureSchema(context.Background()))
}

func (s *PostgresStoreSuite) SetupTest() {
	s.Require().NoError(s.postgres.TruncatePersons(context.Background()))
}

func (s *PostgresStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	p := models.Person{ID: uuid.New(), Name: "Ada Lovelace", Number: "39-44-5323523"}

	s.Require().NoError(s.store.Insert(ctx, p))

	found, err := s.store.FindByID(ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(p, found)

	persons, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(persons, 1)
	s.Equal(p, persons[0])

	s.Require().NoError(s.store.Delete(ctx, p.ID))

	persons, err = s.store.List(ctx)
	s.Require().NoError(err)
	s.Empty(persons)
}

func (s *PostgresStoreSuite) TestListOrderFollowsInsertion() {
	ctx := context.Background()
	names := []string{"Arto Hellas", "Ada Lovelace", "Dan Abramov", "Mary Poppendieck"}
	for _, name := range names {
		s.Require().NoError(s.store.Insert(ctx, models.Person{ID: uuid.New(), Name: name, Number: "000"}))
	}

	persons, err := s.store.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(persons, len(names))
	for i, p := range persons {
		s.Equal(names[i], p.Name)
	}
}

func (s *PostgresStoreSuite) TestUpdate() {
	ctx := context.Background()
	p := models.Person{ID: uuid.New(), Name: "Arto Hellas", Number: "040-123456"}
	s.Require().NoError(s.store.Insert(ctx, p))

	updated, err := s.store.Update(ctx, models.Person{ID: p.ID, Name: p.Name, Number: "045-999999"})
	s.Require().NoError(err)
	s.Equal("045-999999", updated.Number)

	_, err = s.store.Update(ctx, models.Person{ID: uuid.New(), Name: "Nobody", Number: "1"})
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresStoreSuite) TestDeleteIsIdempotent() {
	ctx := context.Background()
	s.Require().NoError(s.store.Delete(ctx, uuid.New()))

	count, err := s.store.Count(ctx)
	s.Require().NoError(err)
	s.Zero(count)
}
