package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"phonebook/internal/person/models"
	"phonebook/pkg/sentinel"
)

// Schema creates the persons table. The seq column preserves insertion
// order so List matches the natural order clients saw at insert time.
const Schema = `
CREATE TABLE IF NOT EXISTS persons (
	seq    BIGINT GENERATED ALWAYS AS IDENTITY,
	id     UUID PRIMARY KEY,
	name   TEXT NOT NULL,
	number TEXT NOT NULL
);`

// Postgres persists persons in PostgreSQL through a pgx pool.
type Postgres struct {
	pool *pgxpool.Pool
}

func NewPostgres(pool *pgxpool.Pool) *Postgres {
	return &Postgres{pool: pool}
}

// EnsureSchema applies the table definition. Called at boot and by the
// integration suite; the DDL is idempotent.
func (s *Postgres) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, Schema); err != nil {
		return fmt.Errorf("ensure persons schema: %w", err)
	}
	return nil
}

func (s *Postgres) List(ctx context.Context) ([]models.Person, error) {
	rows, err := s.pool.Query(ctx, `SELECT id, name, number FROM persons ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	defer rows.Close()

	var persons []models.Person
	for rows.Next() {
		var p models.Person
		if err := rows.Scan(&p.ID, &p.Name, &p.Number); err != nil {
			return nil, fmt.Errorf("scan person: %w", err)
		}
		persons = append(persons, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	return persons, nil
}

func (s *Postgres) FindByID(ctx context.Context, id uuid.UUID) (models.Person, error) {
	var p models.Person
	err := s.pool.QueryRow(ctx,
		`SELECT id, name, number FROM persons WHERE id = $1`, id,
	).Scan(&p.ID, &p.Name, &p.Number)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Person{}, sentinel.ErrNotFound
		}
		return models.Person{}, fmt.Errorf("find person: %w", err)
	}
	return p, nil
}

func (s *Postgres) Insert(ctx context.Context, person models.Person) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO persons (id, name, number) VALUES ($1, $2, $3)`,
		person.ID, person.Name, person.Number,
	)
	if err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *Postgres) Update(ctx context.Context, person models.Person) (models.Person, error) {
	tag, err := s.pool.Exec(ctx,
		`UPDATE persons SET name = $2, number = $3 WHERE id = $1`,
		person.ID, person.Name, person.Number,
	)
	if err != nil {
		return models.Person{}, fmt.Errorf("update person: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return models.Person{}, sentinel.ErrNotFound
	}
	return person, nil
}

func (s *Postgres) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM persons WHERE id = $1`, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

func (s *Postgres) Count(ctx context.Context) (int, error) {
	var count int
	if err := s.pool.QueryRow(ctx, `SELECT COUNT(*) FROM persons`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return count, nil
}
