package sync

import (
	"context"
	"errors"
	"fmt"
	stdsync "sync"
	"time"

	"github.com/google/uuid"

	"phonebook/internal/apiclient"
	"phonebook/internal/person/models"
	"phonebook/pkg/sentinel"
)

// NoteTTL is how long a notification stays visible before its timer clears
// it.
const NoteTTL = 5 * time.Second

// API is the server collaborator the core mutates through. Satisfied by
// *apiclient.Client.
type API interface {
	GetAll(ctx context.Context) ([]models.Person, error)
	Create(ctx context.Context, req models.PersonRequest) (models.Person, error)
	Update(ctx context.Context, id uuid.UUID, req models.PersonRequest) (models.Person, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// ConfirmKind says what a staged Confirmation will do when confirmed.
type ConfirmKind string

const (
	ConfirmReplace ConfirmKind = "replace"
	ConfirmDelete  ConfirmKind = "delete"
)

// Confirmation is a staged mutation awaiting the user's yes/no. Nothing has
// been sent to the server yet; declining is simply dropping the value.
type Confirmation struct {
	Kind   ConfirmKind
	Person models.Person
	Prompt string
}

// Core reconciles the client-held person list with the server across
// mutations. All state transitions go through the pure reducers in state.go;
// the core contributes I/O, locking, the per-identifier in-flight guard and
// the notification clear timers.
type Core struct {
	mu       stdsync.Mutex
	api      API
	state    State
	inflight map[uuid.UUID]struct{}

	// afterFunc is swapped out by tests to control timer firing.
	afterFunc func(d time.Duration, f func()) *time.Timer
	// onChange, when set, runs after every applied transition (including
	// timer-driven clears) so a UI can refresh.
	onChange func()
}

// Option configures a Core.
type Option func(*Core)

// WithOnChange registers a callback invoked after every state transition.
func WithOnChange(fn func()) Option {
	return func(c *Core) { c.onChange = fn }
}

// WithAfterFunc replaces the timer used for notification expiry. Tests use
// it to fire clears deterministically.
func WithAfterFunc(fn func(d time.Duration, f func()) *time.Timer) Option {
	return func(c *Core) { c.afterFunc = fn }
}

func New(api API, opts ...Option) *Core {
	c := &Core{
		api:       api,
		inflight:  make(map[uuid.UUID]struct{}),
		afterFunc: time.AfterFunc,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Load fetches the whole collection once and replaces the local list. On
// failure the list stays empty and an error notification is shown; there is
// no retry.
func (c *Core) Load(ctx context.Context) error {
	persons, err := c.api.GetAll(ctx)
	if err != nil {
		c.apply(loadFailed{message: errorMessage(err)})
		return fmt.Errorf("initial load: %w", err)
	}
	c.apply(loadSucceeded{persons: persons})
	return nil
}

// Snapshot returns a copy of the current state for rendering.
func (c *Core) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state
	s.Persons = append([]models.Person(nil), c.state.Persons...)
	return s
}

func (c *Core) SetFilter(text string)      { c.apply(setFilter{text: text}) }
func (c *Core) SetDraftName(text string)   { c.apply(setDraftName{text: text}) }
func (c *Core) SetDraftNumber(text string) { c.apply(setDraftNumber{text: text}) }

// Submit runs the submit-new-contact protocol on the current drafts. When
// the draft name exactly matches an existing contact it stages a replace
// and returns the Confirmation without touching anything; otherwise it
// creates the contact immediately. A nil Confirmation means the submission
// was handled (created, or failed with an error notification).
func (c *Core) Submit(ctx context.Context) (*Confirmation, error) {
	c.mu.Lock()
	name := c.state.DraftName
	number := c.state.DraftNumber
	existing, found := c.state.findByName(name)
	c.mu.Unlock()

	if found {
		return &Confirmation{
			Kind:   ConfirmReplace,
			Person: existing,
			Prompt: name + " is already added to phonebook, replace the old number with a new one?",
		}, nil
	}

	created, err := c.api.Create(ctx, models.PersonRequest{Name: name, Number: number})
	if err != nil {
		c.apply(createFailed{message: errorMessage(err)})
		return nil, err
	}
	c.apply(createSucceeded{person: created})
	return nil, nil
}

// RequestDelete stages the delete protocol for the given person. The
// returned Confirmation carries the prompt; nothing is sent until Confirm.
// Unknown ids yield a nil Confirmation and no state change.
func (c *Core) RequestDelete(id uuid.UUID) *Confirmation {
	c.mu.Lock()
	defer c.mu.Unlock()
	person, ok := c.state.findByID(id)
	if !ok {
		return nil
	}
	return &Confirmation{
		Kind:   ConfirmDelete,
		Person: person,
		Prompt: "Delete " + person.Name + "?",
	}
}

// Confirm executes a staged mutation. A second mutation on a contact whose
// request is still in flight is rejected with sentinel.ErrBusy instead of
// racing. Declining a confirmation is done by never calling Confirm.
func (c *Core) Confirm(ctx context.Context, conf *Confirmation) error {
	if conf == nil {
		return nil
	}

	id := conf.Person.ID
	c.mu.Lock()
	if _, busy := c.inflight[id]; busy {
		c.mu.Unlock()
		return fmt.Errorf("%w: %s", sentinel.ErrBusy, conf.Person.Name)
	}
	c.inflight[id] = struct{}{}
	name := c.state.DraftName
	number := c.state.DraftNumber
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		delete(c.inflight, id)
		c.mu.Unlock()
	}()

	switch conf.Kind {
	case ConfirmReplace:
		// The draft name equals the existing name by construction; the
		// server receives both fields regardless.
		updated, err := c.api.Update(ctx, id, models.PersonRequest{Name: name, Number: number})
		if err != nil {
			c.apply(updateFailed{message: errorMessage(err)})
			return err
		}
		c.apply(updateSucceeded{person: updated})
		return nil
	case ConfirmDelete:
		if err := c.api.Delete(ctx, id); err != nil {
			// Error banner, untouched list. The person may already be
			// gone server-side; the next load reconciles that.
			c.apply(deleteFailed{message: errorMessage(err)})
			return err
		}
		c.apply(deleteSucceeded{id: id, name: conf.Person.Name})
		return nil
	default:
		return fmt.Errorf("unknown confirmation kind %q", conf.Kind)
	}
}

// apply runs one reducer step under the lock, schedules the clear timer for
// any fresh notification, and wakes the subscriber.
func (c *Core) apply(a action) {
	c.mu.Lock()
	before := c.state.Note.Seq
	c.state = reduce(c.state, a)
	note := c.state.Note
	c.mu.Unlock()

	if note.Seq != before && note.Message != "" {
		seq := note.Seq
		c.afterFunc(NoteTTL, func() { c.expireNotification(seq) })
	}
	if c.onChange != nil {
		c.onChange()
	}
}

func (c *Core) expireNotification(seq uint64) {
	c.apply(clearNotification{seq: seq})
}

// errorMessage prefers the server-provided error payload, which is what the
// notification banner displays.
func errorMessage(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message
	}
	return err.Error()
}
