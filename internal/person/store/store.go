package store

import (
	"context"

	"github.com/google/uuid"

	"phonebook/internal/person/models"
)

// Store is the collection of person documents. Implementations must keep
// List in natural (insertion) order and return sentinel.ErrNotFound where
// noted; services translate those into transport errors.
//
// Delete is idempotent: removing an id that is already gone is a success.
type Store interface {
	List(ctx context.Context) ([]models.Person, error)
	FindByID(ctx context.Context, id uuid.UUID) (models.Person, error)
	Insert(ctx context.Context, person models.Person) error
	Update(ctx context.Context, person models.Person) (models.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Count(ctx context.Context) (int, error)
}
