package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"phonebook/internal/person/models"
	"phonebook/pkg/sentinel"
)

const (
	personKeyPrefix = "person:"
	orderKey        = "persons:order"
)

// Redis keeps each person in a hash keyed person:<id> and tracks insertion
// order in the persons:order list so List stays in natural order.
type Redis struct {
	client *redis.Client
}

func NewRedis(client *redis.Client) *Redis {
	return &Redis{client: client}
}

func personKey(id uuid.UUID) string {
	return personKeyPrefix + id.String()
}

func (s *Redis) List(ctx context.Context) ([]models.Person, error) {
	ids, err := s.client.LRange(ctx, orderKey, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("list person ids: %w", err)
	}

	var persons []models.Person
	for _, raw := range ids {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("corrupt order entry %q: %w", raw, err)
		}
		p, err := s.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, sentinel.ErrNotFound) {
				// Hash expired or removed out of band; skip the orphan.
				continue
			}
			return nil, err
		}
		persons = append(persons, p)
	}
	return persons, nil
}

func (s *Redis) FindByID(ctx context.Context, id uuid.UUID) (models.Person, error) {
	fields, err := s.client.HGetAll(ctx, personKey(id)).Result()
	if err != nil {
		return models.Person{}, fmt.Errorf("find person: %w", err)
	}
	if len(fields) == 0 {
		return models.Person{}, sentinel.ErrNotFound
	}
	return models.Person{ID: id, Name: fields["name"], Number: fields["number"]}, nil
}

func (s *Redis) Insert(ctx context.Context, person models.Person) error {
	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, personKey(person.ID), "name", person.Name, "number", person.Number)
	pipe.RPush(ctx, orderKey, person.ID.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

func (s *Redis) Update(ctx context.Context, person models.Person) (models.Person, error) {
	exists, err := s.client.Exists(ctx, personKey(person.ID)).Result()
	if err != nil {
		return models.Person{}, fmt.Errorf("update person: %w", err)
	}
	if exists == 0 {
		return models.Person{}, sentinel.ErrNotFound
	}
	err = s.client.HSet(ctx, personKey(person.ID), "name", person.Name, "number", person.Number).Err()
	if err != nil {
		return models.Person{}, fmt.Errorf("update person: %w", err)
	}
	return person, nil
}

func (s *Redis) Delete(ctx context.Context, id uuid.UUID) error {
	pipe := s.client.TxPipeline()
	pipe.Del(ctx, personKey(id))
	pipe.LRem(ctx, orderKey, 0, id.String())
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	return nil
}

func (s *Redis) Count(ctx context.Context) (int, error) {
	n, err := s.client.LLen(ctx, orderKey).Result()
	if err != nil {
		return 0, fmt.Errorf("count persons: %w", err)
	}
	return int(n), nil
}
