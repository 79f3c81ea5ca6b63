package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"phonebook/internal/person/models"
	"phonebook/internal/person/service"
	"phonebook/pkg/sentinel"
)

// Service defines the person operations the transport layer depends on.
type Service interface {
	List(ctx context.Context) ([]models.Person, error)
	Get(ctx context.Context, id uuid.UUID) (models.Person, error)
	Create(ctx context.Context, req models.PersonRequest) (models.Person, error)
	Update(ctx context.Context, id uuid.UUID, req models.PersonRequest) (models.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
	Info(ctx context.Context) (service.Info, error)
}

// Handler is the thin HTTP layer over the person service. It decodes and
// encodes JSON and maps domain errors to status codes; business rules live
// in the service.
type Handler struct {
	persons Service
	logger  *slog.Logger
}

func New(persons Service, logger *slog.Logger) *Handler {
	return &Handler{persons: persons, logger: logger}
}

// Register mounts the person routes on the given router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/api/persons", h.handleList)
	r.Post("/api/persons", h.handleCreate)
	r.Get("/api/persons/{id}", h.handleGet)
	r.Put("/api/persons/{id}", h.handleUpdate)
	r.Delete("/api/persons/{id}", h.handleDelete)
	r.Get("/info", h.handleInfo)
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	persons, err := h.persons.List(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, persons)
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	person, err := h.persons.Get(r.Context(), id)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req models.PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &models.ValidationError{Message: "invalid request body"})
		return
	}
	person, err := h.persons.Create(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	var req models.PersonRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.writeError(w, r, &models.ValidationError{Message: "invalid request body"})
		return
	}
	person, err := h.persons.Update(r.Context(), id, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, person)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := models.ParseID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.persons.Delete(r.Context(), id); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleInfo answers with a small HTML fragment: the record count and the
// server time.
func (h *Handler) handleInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.persons.Info(r.Context())
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprintf(w, "<p>Phonebook has info for %d people</p><p>%s</p>",
		info.Count, info.Time.Format("Mon Jan 02 2006 15:04:05 GMT-0700 (MST)"))
}

// writeError translates domain errors into the HTTP contract: malformed ids
// and validation failures are 400 with a JSON error envelope, missing
// persons are an empty 404, anything else is a 500.
func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var missing *models.MissingFieldError
	var invalid *models.ValidationError

	switch {
	case errors.Is(err, sentinel.ErrMalformedID):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "malformatted id"})
	case errors.As(err, &missing), errors.As(err, &invalid):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, sentinel.ErrNotFound):
		w.WriteHeader(http.StatusNotFound)
	default:
		h.logger.ErrorContext(r.Context(), "unhandled error", "method", r.Method, "path", r.URL.Path, "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal server error"})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
