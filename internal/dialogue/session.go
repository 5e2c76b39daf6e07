// Package dialogue implements the conversation core: session state, the
// intent router, and the slot-filling reservation flow.
package dialogue

import (
	"errors"
	"sync"

	"github.com/google/uuid"

	"kira/internal/models"
)

// PendingBotText is the sentinel reply a turn carries between submission
// and classifier resolution.
const PendingBotText = "Loading..."

var (
	ErrEmptyInput        = errors.New("empty input")
	ErrMissingCredential = errors.New("no API credential configured")
	ErrTurnNotFound      = errors.New("turn not found")
	ErrNotCommittable    = errors.New("turn has no committable reservation draft")
)

// Reply is a resolved assistant turn: text, optional quick-reply buttons,
// and an optional reservation draft form.
type Reply struct {
	Text    string
	Options []models.Option
	Form    *models.DraftForm
}

// Session is the ordered dialogue history. Turns are append-only; the only
// permitted mutation is resolving a turn's reply through the handle Begin
// returned, so a slow classification can never clobber a newer turn.
type Session struct {
	mu    sync.Mutex
	id    string
	turns []*models.Turn
	index map[string]int
}

func NewSession() *Session {
	return &Session{
		id:    uuid.New().String(),
		index: make(map[string]int),
	}
}

func (s *Session) ID() string {
	return s.id
}

// Begin appends a pending turn for the given user text and returns its
// handle.
func (s *Session) Begin(user string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	turn := &models.Turn{
		ID:      uuid.New().String(),
		User:    user,
		Bot:     PendingBotText,
		Pending: true,
	}
	s.index[turn.ID] = len(s.turns)
	s.turns = append(s.turns, turn)
	return turn.ID
}

// Resolve writes the reply into the turn the handle points at. Earlier
// turns are never touched.
func (s *Session) Resolve(id string, reply Reply) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return ErrTurnNotFound
	}
	turn := s.turns[i]
	turn.Bot = reply.Text
	turn.Options = reply.Options
	turn.Form = reply.Form
	turn.Pending = false
	return nil
}

// BeginCommit atomically claims the turn's reservation draft for commit.
// It fails if the turn has no form, the draft is incomplete, or a commit
// was already claimed, so the same draft can never be committed twice.
func (s *Session) BeginCommit(id string) (models.ReservationDraft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.ReservationDraft{}, ErrTurnNotFound
	}
	form := s.turns[i].Form
	if form == nil || !form.CanCommit || form.Committed {
		return models.ReservationDraft{}, ErrNotCommittable
	}
	form.Committed = true
	return form.Draft, nil
}

// Turn returns a copy of the turn with the given handle.
func (s *Session) Turn(id string) (models.Turn, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return models.Turn{}, false
	}
	return copyTurn(s.turns[i]), true
}

// Turns returns a copy of the whole history in order.
func (s *Session) Turns() []models.Turn {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]models.Turn, len(s.turns))
	for i, t := range s.turns {
		out[i] = copyTurn(t)
	}
	return out
}

func (s *Session) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.turns)
}

func copyTurn(t *models.Turn) models.Turn {
	out := *t
	out.Options = append([]models.Option(nil), t.Options...)
	if t.Form != nil {
		form := *t.Form
		out.Form = &form
	}
	return out
}
