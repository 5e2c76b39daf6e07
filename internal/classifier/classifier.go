package classifier

import (
	"context"
	"errors"

	"kira/internal/models"
)

// ErrMalformedResponse is returned when the language model's reply cannot
// be parsed into an IntentResult or lacks the intentType discriminant.
// No retry is attempted; the caller surfaces a degraded reply instead.
var ErrMalformedResponse = errors.New("malformed classifier response")

// Classifier turns a user utterance, in the context of the prior dialogue
// and the room catalog, into a structured IntentResult.
type Classifier interface {
	// Configured reports whether a credential is present. When false,
	// Classify must not be called.
	Configured() bool

	Classify(ctx context.Context, history []models.Turn, input string, rooms []models.Room) (*models.IntentResult, error)
}
