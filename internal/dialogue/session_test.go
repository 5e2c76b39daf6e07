package dialogue

import (
	"testing"

	"kira/internal/models"
)

func TestResolveWritesThroughHandle(t *testing.T) {
	s := NewSession()

	first := s.Begin("첫 질문")
	second := s.Begin("두 번째 질문")

	// Resolve out of order: the slow first classification must land on the
	// first turn, not the latest one.
	if err := s.Resolve(second, Reply{Text: "두 번째 답"}); err != nil {
		t.Fatalf("Resolve(second): %v", err)
	}
	if err := s.Resolve(first, Reply{Text: "첫 번째 답"}); err != nil {
		t.Fatalf("Resolve(first): %v", err)
	}

	turns := s.Turns()
	if turns[0].Bot != "첫 번째 답" || turns[1].Bot != "두 번째 답" {
		t.Fatalf("out-of-order resolution corrupted turns: %q / %q", turns[0].Bot, turns[1].Bot)
	}
}

func TestResolveUnknownHandle(t *testing.T) {
	s := NewSession()
	if err := s.Resolve("nope", Reply{Text: "x"}); err != ErrTurnNotFound {
		t.Fatalf("expected ErrTurnNotFound, got %v", err)
	}
}

func TestBeginLeavesTurnPending(t *testing.T) {
	s := NewSession()
	id := s.Begin("hello")

	turn, ok := s.Turn(id)
	if !ok {
		t.Fatal("turn not found by handle")
	}
	if !turn.Pending || turn.Bot != PendingBotText {
		t.Fatalf("fresh turn = %+v, want pending sentinel", turn)
	}
}

func TestTurnsReturnsCopies(t *testing.T) {
	s := NewSession()
	id := s.Begin("user text")
	s.Resolve(id, Reply{
		Text:    "bot text",
		Options: []models.Option{{Label: "a", FullText: "b"}},
		Form:    &models.DraftForm{CanCommit: true},
	})

	turns := s.Turns()
	turns[0].User = "mutated"
	turns[0].Options[0].Label = "mutated"
	turns[0].Form.CanCommit = false

	fresh, _ := s.Turn(id)
	if fresh.User != "user text" || fresh.Options[0].Label != "a" || !fresh.Form.CanCommit {
		t.Fatalf("session state leaked through Turns copies: %+v", fresh)
	}
}

func TestBeginCommitClaimsOnce(t *testing.T) {
	s := NewSession()
	id := s.Begin("예약")
	s.Resolve(id, Reply{Form: &models.DraftForm{
		Draft:     models.ReservationDraft{Room: "Lounge A", IsComplete: true},
		CanCommit: true,
	}})

	if _, err := s.BeginCommit(id); err != nil {
		t.Fatalf("first BeginCommit: %v", err)
	}
	if _, err := s.BeginCommit(id); err != ErrNotCommittable {
		t.Fatalf("second BeginCommit: got %v, want ErrNotCommittable", err)
	}
}
