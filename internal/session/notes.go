package session

import (
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/pulse/internal/models"
)

// NoteInput carries the caller-supplied fields of a new note.
type NoteInput struct {
	Title     string
	Text      string
	DueTime   time.Time
	Priority  models.Priority
	Recurring models.Recurrence
}

// AddNote validates and stores a new note at the head of the list.
func (s *Session) AddNote(in NoteInput) (models.Note, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return models.Note{}, fmt.Errorf("failed to generate note id: %w", err)
	}
	n := models.Note{
		ID:        id.String(),
		Title:     in.Title,
		Text:      in.Text,
		DueTime:   in.DueTime,
		Priority:  in.Priority,
		Recurring: in.Recurring,
		CreatedAt: s.now().UnixMilli(),
	}
	n.ApplyDefaults()
	if err := n.Validate(); err != nil {
		return models.Note{}, fmt.Errorf("invalid note: %w", err)
	}

	err = s.update(func() error {
		s.notes = append([]models.Note{n}, s.notes...)
		return nil
	})
	return n, err
}

// Notes returns a copy of the note list, newest first.
func (s *Session) Notes() ([]models.Note, error) {
	var out []models.Note
	err := s.read(func() { out = slices.Clone(s.notes) })
	if out == nil {
		out = []models.Note{}
	}
	return out, err
}

func (s *Session) Note(id string) (models.Note, error) {
	var (
		n     models.Note
		found bool
	)
	if err := s.read(func() {
		if i := s.indexOf(id); i >= 0 {
			n, found = s.notes[i], true
		}
	}); err != nil {
		return models.Note{}, err
	}
	if !found {
		return models.Note{}, fmt.Errorf("%w: %s", ErrNoteNotFound, id)
	}
	return n, nil
}

func (s *Session) indexOf(id string) int {
	return slices.IndexFunc(s.notes, func(n models.Note) bool { return n.ID == id })
}

// editNote applies fn to the note with id and persists.
func (s *Session) editNote(id string, fn func(*models.Note)) (models.Note, error) {
	var out models.Note
	err := s.update(func() error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
		}
		fn(&s.notes[i])
		out = s.notes[i]
		return nil
	})
	return out, err
}

// ToggleNote flips a note's completed flag.
func (s *Session) ToggleNote(id string) (models.Note, error) {
	return s.editNote(id, func(n *models.Note) { n.Completed = !n.Completed })
}

// SnoozeNote moves a note to now+minutes and re-arms it.
func (s *Session) SnoozeNote(id string, minutes int) (models.Note, error) {
	if minutes <= 0 {
		return models.Note{}, fmt.Errorf("snooze minutes must be positive, got %d", minutes)
	}
	now := s.now()
	return s.editNote(id, func(n *models.Note) { n.Snooze(now, time.Duration(minutes)*time.Minute) })
}

func (s *Session) DeleteNote(id string) error {
	return s.update(func() error {
		i := s.indexOf(id)
		if i < 0 {
			return fmt.Errorf("%w: %s", ErrNoteNotFound, id)
		}
		s.notes = slices.Delete(s.notes, i, i+1)
		return nil
	})
}

// FireDueNotes rolls over every note due at now and persists once if any
// changed. It returns the fired notes as they were before rollover, for the
// caller to deliver.
func (s *Session) FireDueNotes(now time.Time) ([]models.Note, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}

	var fired []models.Note
	for i := range s.notes {
		if !s.notes[i].IsDue(now) {
			continue
		}
		fired = append(fired, s.notes[i])
		s.notes[i].Rollover()
	}
	if len(fired) == 0 {
		return nil, nil
	}
	return fired, s.persistLocked()
}
