package classifier

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"kira/internal/models"
)

var testRooms = []models.Room{
	{ID: "R1", Name: "Lounge A", Location: "B1"},
	{ID: "R2", Name: "Creative Studio", Location: "5F"},
}

type capturedRequest struct {
	Model    string `json:"model"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
	ResponseFormat json.RawMessage `json:"response_format"`
}

// newFakeOpenAI serves a canned chat-completion whose content is the given
// JSON document, capturing the last request for inspection.
func newFakeOpenAI(t *testing.T, content string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	captured := &capturedRequest{}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		body := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]any{"role": "assistant", "content": content}},
			},
		}
		json.NewEncoder(w).Encode(body)
	}))
	return ts, captured
}

func newTestClassifier(url string) *OpenAIClassifier {
	clf := NewOpenAIClassifier("test-key", "gpt-4o-2024-08-06", 800, 0.7, zap.NewNop())
	clf.SetAPIURL(url + "/v1")
	clf.SetClock(func() time.Time {
		return time.Date(2025, 3, 10, 14, 0, 0, 0, models.KST)
	})
	return clf
}

func TestClassifyParsesIntentResult(t *testing.T) {
	content := `{
		"intentType": "reserve a room",
		"paramsForReservation": {
			"room": "Lounge A",
			"startDateTime": "2025-03-11 14:00",
			"isComplete": false
		}
	}`
	ts, _ := newFakeOpenAI(t, content)
	defer ts.Close()

	clf := newTestClassifier(ts.URL)
	result, err := clf.Classify(context.Background(), nil, "Lounge A 예약하고 싶어요", testRooms)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.IntentType != models.IntentReserveRoom {
		t.Errorf("intentType = %q", result.IntentType)
	}
	if result.Reservation == nil || result.Reservation.Room != "Lounge A" {
		t.Errorf("reservation payload = %+v", result.Reservation)
	}
	if result.Reservation.IsComplete {
		t.Error("isComplete should be false")
	}
}

func TestClassifyPromptEmbedsCatalogHistoryAndClock(t *testing.T) {
	ts, captured := newFakeOpenAI(t, `{"intentType":"greeting","responseForGreeting":{"message":"hi"}}`)
	defer ts.Close()

	clf := newTestClassifier(ts.URL)
	history := []models.Turn{
		{User: "안녕", Bot: "안녕하세요!"},
	}
	if _, err := clf.Classify(context.Background(), history, "방 보여줘", testRooms); err != nil {
		t.Fatalf("Classify: %v", err)
	}

	if len(captured.Messages) != 2 {
		t.Fatalf("expected system + user messages, got %d", len(captured.Messages))
	}
	system := captured.Messages[0].Content
	for _, want := range []string{
		"- NAME:Lounge A, LOCATION:B1",
		"- NAME:Creative Studio, LOCATION:5F",
		"2025-03-10 14:00:00",
		`"user":"안녕"`,
		`"bot":"안녕하세요!"`,
	} {
		if !strings.Contains(system, want) {
			t.Errorf("system prompt missing %q", want)
		}
	}
	if captured.Messages[1].Content != "방 보여줘" {
		t.Errorf("user message = %q", captured.Messages[1].Content)
	}

	// The schema must close the intent enum and constrain the room slot
	// to catalog names.
	schema := string(captured.ResponseFormat)
	for _, want := range []string{`"cancel a reservation"`, `"Lounge A"`, `"intentType"`} {
		if !strings.Contains(schema, want) {
			t.Errorf("response_format missing %q: %s", want, schema)
		}
	}
}

func TestClassifyMalformedJSON(t *testing.T) {
	ts, _ := newFakeOpenAI(t, "I would love to help you reserve a room!")
	defer ts.Close()

	clf := newTestClassifier(ts.URL)
	_, err := clf.Classify(context.Background(), nil, "안녕", testRooms)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestClassifyMissingIntentType(t *testing.T) {
	ts, _ := newFakeOpenAI(t, `{"responseForGreeting":{"message":"hello"}}`)
	defer ts.Close()

	clf := newTestClassifier(ts.URL)
	_, err := clf.Classify(context.Background(), nil, "안녕", testRooms)
	if !errors.Is(err, ErrMalformedResponse) {
		t.Fatalf("expected ErrMalformedResponse, got %v", err)
	}
}

func TestClassifyServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":{"message":"boom"}}`)
	}))
	defer ts.Close()

	clf := newTestClassifier(ts.URL)
	if _, err := clf.Classify(context.Background(), nil, "안녕", testRooms); err == nil {
		t.Fatal("expected error from failing server")
	}
}

func TestConfigured(t *testing.T) {
	if NewOpenAIClassifier("", "m", 1, 0, zap.NewNop()).Configured() {
		t.Error("empty key must not report configured")
	}
	if !NewOpenAIClassifier("sk-test", "m", 1, 0, zap.NewNop()).Configured() {
		t.Error("non-empty key must report configured")
	}
}
