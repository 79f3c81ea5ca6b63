package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"phonebook/internal/person/metrics"
	"phonebook/internal/person/models"
	"phonebook/internal/person/store"
)

// Service implements the phonebook operations over a collection store. It
// owns presence validation and metrics; the store decides existence facts.
type Service struct {
	store   store.Store
	logger  *slog.Logger
	metrics *metrics.Metrics
	tracer  trace.Tracer
}

// Info is the payload behind the /info endpoint: the record count and the
// server time at which it was taken.
type Info struct {
	Count int
	Time  time.Time
}

func New(s store.Store, logger *slog.Logger, m *metrics.Metrics) *Service {
	return &Service{
		store:   s,
		logger:  logger,
		metrics: m,
		tracer:  otel.Tracer("phonebook/person"),
	}
}

func (s *Service) List(ctx context.Context) ([]models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.List")
	defer span.End()

	persons, err := s.store.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list persons: %w", err)
	}
	if persons == nil {
		persons = []models.Person{}
	}
	return persons, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.Get")
	defer span.End()

	return s.store.FindByID(ctx, id)
}

// Create validates presence of both fields and inserts the person with a
// freshly assigned id. Duplicate names are allowed here on purpose:
// uniqueness is the client's call, and its submit flow offers a number
// replacement instead of rejecting the name.
func (s *Service) Create(ctx context.Context, req models.PersonRequest) (models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.Create")
	defer span.End()

	if err := validate(req); err != nil {
		return models.Person{}, err
	}

	person := models.Person{
		ID:     uuid.New(),
		Name:   req.Name,
		Number: req.Number,
	}
	if err := s.store.Insert(ctx, person); err != nil {
		return models.Person{}, fmt.Errorf("create person: %w", err)
	}

	span.SetAttributes(attribute.String("person.id", person.ID.String()))
	if s.metrics != nil {
		s.metrics.PersonsCreated.Inc()
	}
	s.logger.InfoContext(ctx, "person created", "id", person.ID, "name", person.Name)
	return person, nil
}

func (s *Service) Update(ctx context.Context, id uuid.UUID, req models.PersonRequest) (models.Person, error) {
	ctx, span := s.tracer.Start(ctx, "person.Update")
	defer span.End()

	if err := validate(req); err != nil {
		return models.Person{}, err
	}

	updated, err := s.store.Update(ctx, models.Person{ID: id, Name: req.Name, Number: req.Number})
	if err != nil {
		return models.Person{}, err
	}
	if s.metrics != nil {
		s.metrics.PersonsUpdated.Inc()
	}
	s.logger.InfoContext(ctx, "person updated", "id", id, "name", req.Name)
	return updated, nil
}

// Delete removes the person. Deleting an id that is already gone succeeds;
// clients treat delete as idempotent.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	ctx, span := s.tracer.Start(ctx, "person.Delete")
	defer span.End()

	if err := s.store.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete person: %w", err)
	}
	if s.metrics != nil {
		s.metrics.PersonsDeleted.Inc()
	}
	s.logger.InfoContext(ctx, "person deleted", "id", id)
	return nil
}

func (s *Service) Info(ctx context.Context) (Info, error) {
	ctx, span := s.tracer.Start(ctx, "person.Info")
	defer span.End()

	count, err := s.store.Count(ctx)
	if err != nil {
		return Info{}, fmt.Errorf("count persons: %w", err)
	}
	return Info{Count: count, Time: time.Now()}, nil
}

func validate(req models.PersonRequest) error {
	if req.Name == "" {
		return &models.MissingFieldError{Field: "name"}
	}
	if req.Number == "" {
		return &models.MissingFieldError{Field: "number"}
	}
	return nil
}
