// Package apiclient is the HTTP collaborator the sync core mutates the
// server collection through.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"phonebook/internal/person/models"
)

// APIError carries the server's error payload. Its message is what the sync
// core shows in the notification banner.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
}

// Client talks to the phonebook API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) GetAll(ctx context.Context) ([]models.Person, error) {
	var persons []models.Person
	if err := c.do(ctx, http.MethodGet, "/api/persons", nil, &persons); err != nil {
		return nil, err
	}
	return persons, nil
}

func (c *Client) Get(ctx context.Context, id uuid.UUID) (models.Person, error) {
	var person models.Person
	err := c.do(ctx, http.MethodGet, "/api/persons/"+id.String(), nil, &person)
	return person, err
}

func (c *Client) Create(ctx context.Context, req models.PersonRequest) (models.Person, error) {
	var person models.Person
	err := c.do(ctx, http.MethodPost, "/api/persons", req, &person)
	return person, err
}

func (c *Client) Update(ctx context.Context, id uuid.UUID, req models.PersonRequest) (models.Person, error) {
	var person models.Person
	err := c.do(ctx, http.MethodPut, "/api/persons/"+id.String(), req, &person)
	return person, err
}

func (c *Client) Delete(ctx context.Context, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/api/persons/"+id.String(), nil, nil)
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return decodeError(resp)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// decodeError reads the {"error": ...} envelope; responses without one (the
// empty 404s) fall back to a generic message.
func decodeError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}

	var envelope struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err == nil && envelope.Error != "" {
		apiErr.Message = envelope.Error
	} else {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
