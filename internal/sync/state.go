package sync

import (
	"slices"
	"strings"

	"github.com/google/uuid"

	"phonebook/internal/person/models"
)

// NoteKind classifies a notification so the presentation can style the
// banner per outcome.
type NoteKind string

const (
	NoteAdded   NoteKind = "added"
	NoteUpdated NoteKind = "updated"
	NoteDeleted NoteKind = "deleted"
	NoteError   NoteKind = "error"
)

// Notification is the ephemeral status banner. A zero Message means no
// banner is shown. Seq increases monotonically with every notification so a
// stale clear timer cannot erase a newer message.
type Notification struct {
	Message string
	Kind    NoteKind
	Seq     uint64
}

// State is the client-held mirror of the server collection plus the form
// drafts, filter text and notification banner. It is an immutable value:
// reducers return a new State and never touch the input.
type State struct {
	Persons     []models.Person
	Filter      string
	DraftName   string
	DraftNumber string
	Note        Notification
}

// Visible derives the filtered view: persons whose name contains the filter
// text as a case-insensitive substring. Persons itself is never mutated.
func (s State) Visible() []models.Person {
	if s.Filter == "" {
		return slices.Clone(s.Persons)
	}
	needle := strings.ToLower(s.Filter)
	var out []models.Person
	for _, p := range s.Persons {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			out = append(out, p)
		}
	}
	return out
}

// findByName does the duplicate detection of the submit protocol: exact,
// case-sensitive match, deliberately stricter than the case-insensitive
// filter above.
func (s State) findByName(name string) (models.Person, bool) {
	for _, p := range s.Persons {
		if p.Name == name {
			return p, true
		}
	}
	return models.Person{}, false
}

func (s State) findByID(id uuid.UUID) (models.Person, bool) {
	for _, p := range s.Persons {
		if p.ID == id {
			return p, true
		}
	}
	return models.Person{}, false
}

// Actions are the protocol steps of the sync core. Every state transition
// is one reducer case; nothing mutates State directly.
type action interface{ isAction() }

type loadSucceeded struct{ persons []models.Person }
type loadFailed struct{ message string }
type createSucceeded struct{ person models.Person }
type createFailed struct{ message string }
type updateSucceeded struct{ person models.Person }
type updateFailed struct{ message string }
type deleteSucceeded struct {
	id   uuid.UUID
	name string
}
type deleteFailed struct{ message string }
type setFilter struct{ text string }
type setDraftName struct{ text string }
type setDraftNumber struct{ text string }
type clearNotification struct{ seq uint64 }

func (loadSucceeded) isAction()     {}
func (loadFailed) isAction()        {}
func (createSucceeded) isAction()   {}
func (createFailed) isAction()      {}
func (updateSucceeded) isAction()   {}
func (updateFailed) isAction()      {}
func (deleteSucceeded) isAction()   {}
func (deleteFailed) isAction()      {}
func (setFilter) isAction()         {}
func (setDraftName) isAction()      {}
func (setDraftNumber) isAction()    {}
func (clearNotification) isAction() {}

// reduce applies one protocol step. It is pure: no I/O, no timers, no
// mutation of the input state. Timer scheduling belongs to the Core.
func reduce(s State, a action) State {
	switch a := a.(type) {
	case loadSucceeded:
		s.Persons = slices.Clone(a.persons)
	case loadFailed:
		s = notify(s, a.message, NoteError)
	case createSucceeded:
		s.Persons = append(slices.Clone(s.Persons), a.person)
		s.DraftName = ""
		s.DraftNumber = ""
		s = notify(s, "Added "+a.person.Name, NoteAdded)
	case createFailed:
		// Persons and drafts stay as they are so the user can correct
		// the form and resubmit.
		s = notify(s, a.message, NoteError)
	case updateSucceeded:
		persons := slices.Clone(s.Persons)
		for i, p := range persons {
			if p.ID == a.person.ID {
				persons[i] = a.person
			}
		}
		s.Persons = persons
		s.DraftName = ""
		s.DraftNumber = ""
		s = notify(s, "Updated the number of "+a.person.Name, NoteUpdated)
	case updateFailed:
		s = notify(s, a.message, NoteError)
	case deleteSucceeded:
		persons := slices.Clone(s.Persons)
		persons = slices.DeleteFunc(persons, func(p models.Person) bool {
			return p.ID == a.id
		})
		s.Persons = persons
		s = notify(s, "Deleted "+a.name, NoteDeleted)
	case deleteFailed:
		s = notify(s, a.message, NoteError)
	case setFilter:
		s.Filter = a.text
	case setDraftName:
		s.DraftName = a.text
	case setDraftNumber:
		s.DraftNumber = a.text
	case clearNotification:
		// Only the timer belonging to the displayed notification may
		// clear it; stale timers are no-ops.
		if s.Note.Seq == a.seq {
			s.Note.Message = ""
			s.Note.Kind = ""
		}
	}
	return s
}

// notify supersedes whatever banner is showing. Latest wins; there is no
// queueing.
func notify(s State, message string, kind NoteKind) State {
	s.Note = Notification{Message: message, Kind: kind, Seq: s.Note.Seq + 1}
	return s
}
