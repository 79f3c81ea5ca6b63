package handler_test

import (
	"net/http"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"phonebook/internal/person/handler"
	"phonebook/internal/person/models"
	"phonebook/internal/person/service"
	"phonebook/internal/person/store"
	"phonebook/internal/platform/logger"
	"phonebook/pkg/testutil"
)

func newRouter() http.Handler {
	svc := service.New(store.NewInMemory(), logger.NewNop(), nil)
	h := handler.New(svc, logger.NewNop())
	r := chi.NewRouter()
	h.Register(r)
	return r
}

func createPerson(t *testing.T, router http.Handler, name, number string) models.Person {
	t.Helper()
	rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/persons",
		models.PersonRequest{Name: name, Number: number}))
	testutil.AssertStatus(t, rr, http.StatusOK)
	return testutil.UnmarshalResponse[models.Person](t, rr)
}

func TestCreateAndList(t *testing.T) {
	router := newRouter()

	created := createPerson(t, router, "Ada Lovelace", "39-44-5323523")
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "Ada Lovelace", created.Name)
	assert.Equal(t, "39-44-5323523", created.Number)

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	persons := testutil.UnmarshalResponse[[]models.Person](t, rr)
	require.Len(t, persons, 1)
	assert.Equal(t, created, persons[0])
}

func TestCreateMissingFields(t *testing.T) {
	router := newRouter()

	t.Run("missing name", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/persons",
			models.PersonRequest{Number: "040-123456"}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorPayload(t, rr, "name missing")
	})

	t.Run("missing number", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPost, "/api/persons",
			models.PersonRequest{Name: "Arto Hellas"}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorPayload(t, rr, "number missing")
	})

	t.Run("nothing was inserted", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons"))
		persons := testutil.UnmarshalResponse[[]models.Person](t, rr)
		assert.Empty(t, persons)
	})
}

func TestGetByID(t *testing.T) {
	router := newRouter()
	created := createPerson(t, router, "Arto Hellas", "040-123456")

	t.Run("existing person", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons/"+created.ID.String()))
		testutil.AssertStatus(t, rr, http.StatusOK)
		assert.Equal(t, created, testutil.UnmarshalResponse[models.Person](t, rr))
	})

	t.Run("well-formed but absent id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons/"+uuid.NewString()))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons/not-a-uuid"))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorPayload(t, rr, "malformatted id")
	})
}

func TestUpdate(t *testing.T) {
	router := newRouter()
	created := createPerson(t, router, "Arto Hellas", "040-123456")

	t.Run("replaces the number, keeps id and name", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/api/persons/"+created.ID.String(),
			models.PersonRequest{Name: created.Name, Number: "045-999999"}))
		testutil.AssertStatus(t, rr, http.StatusOK)
		updated := testutil.UnmarshalResponse[models.Person](t, rr)
		assert.Equal(t, created.ID, updated.ID)
		assert.Equal(t, created.Name, updated.Name)
		assert.Equal(t, "045-999999", updated.Number)
	})

	t.Run("malformed id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/api/persons/oops",
			models.PersonRequest{Name: "X", Number: "1"}))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
		testutil.AssertErrorPayload(t, rr, "malformatted id")
	})

	t.Run("absent id", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewJSONRequest(t, http.MethodPut, "/api/persons/"+uuid.NewString(),
			models.PersonRequest{Name: "X", Number: "1"}))
		testutil.AssertStatus(t, rr, http.StatusNotFound)
	})
}

func TestDelete(t *testing.T) {
	router := newRouter()
	created := createPerson(t, router, "Ada Lovelace", "39-44-5323523")

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/api/persons/"+created.ID.String()))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons"))
	assert.Empty(t, testutil.UnmarshalResponse[[]models.Person](t, rr))

	t.Run("deleting again still answers 204", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/api/persons/"+created.ID.String()))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	t.Run("malformed id answers 400", func(t *testing.T) {
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/api/persons/oops"))
		testutil.AssertStatus(t, rr, http.StatusBadRequest)
	})
}

func TestInfo(t *testing.T) {
	router := newRouter()
	createPerson(t, router, "Arto Hellas", "040-123456")
	createPerson(t, router, "Ada Lovelace", "39-44-5323523")

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/info"))
	testutil.AssertStatus(t, rr, http.StatusOK)
	assert.Contains(t, rr.Header().Get("Content-Type"), "text/html")
	body := rr.Body.String()
	assert.Contains(t, body, "<p>Phonebook has info for 2 people</p>")
	assert.True(t, strings.Count(body, "<p>") == 2, "expected count and time paragraphs")
}

// Full lifecycle: create, list, delete, list.
func TestLifecycleScenario(t *testing.T) {
	router := newRouter()

	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons"))
	require.Empty(t, testutil.UnmarshalResponse[[]models.Person](t, rr))

	created := createPerson(t, router, "Ada Lovelace", "39-44-5323523")

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons"))
	persons := testutil.UnmarshalResponse[[]models.Person](t, rr)
	require.Len(t, persons, 1)
	assert.Equal(t, "Ada Lovelace", persons[0].Name)
	assert.Equal(t, "39-44-5323523", persons[0].Number)
	assert.NotEqual(t, uuid.Nil, persons[0].ID)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodDelete, "/api/persons/"+created.ID.String()))
	testutil.AssertStatus(t, rr, http.StatusNoContent)

	rr = testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/api/persons"))
	assert.Empty(t, testutil.UnmarshalResponse[[]models.Person](t, rr))
}
