package classifier

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"go.uber.org/zap"

	"kira/internal/models"
)

// OpenAIClassifier classifies utterances with a chat-completion call
// constrained by a JSON schema, so the model can only answer with one of
// the seven intents and slots drawn from the room catalog.
type OpenAIClassifier struct {
	client      *openai.Client
	apiKey      string
	model       string
	maxTokens   int
	temperature float64
	logger      *zap.Logger

	// now is injectable so tests can pin the wall clock the prompt embeds.
	now func() time.Time
}

func NewOpenAIClassifier(apiKey, model string, maxTokens int, temperature float64, logger *zap.Logger) *OpenAIClassifier {
	return &OpenAIClassifier{
		client:      openai.NewClient(apiKey),
		apiKey:      apiKey,
		model:       model,
		maxTokens:   maxTokens,
		temperature: temperature,
		logger:      logger,
		now:         time.Now,
	}
}

// SetAPIURL points the client at a different base URL, used by tests to
// target a fake server.
func (c *OpenAIClassifier) SetAPIURL(url string) {
	config := openai.DefaultConfig(c.apiKey)
	config.BaseURL = url
	c.client = openai.NewClientWithConfig(config)
}

// SetClock overrides the wall clock embedded in prompts.
func (c *OpenAIClassifier) SetClock(now func() time.Time) {
	c.now = now
}

func (c *OpenAIClassifier) Configured() bool {
	return c.apiKey != ""
}

func (c *OpenAIClassifier) Classify(ctx context.Context, history []models.Turn, input string, rooms []models.Room) (*models.IntentResult, error) {
	schema := intentSchema(rooms)

	resp, err := c.client.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.model,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: c.systemPrompt(history, rooms),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: input,
				},
			},
			MaxTokens:   c.maxTokens,
			Temperature: float32(c.temperature),
			ResponseFormat: &openai.ChatCompletionResponseFormat{
				Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
				JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
					Name:   "intent",
					Schema: &schema,
				},
			},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("chat completion failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices returned", ErrMalformedResponse)
	}

	raw := strings.TrimSpace(resp.Choices[0].Message.Content)
	var result models.IntentResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		c.logger.Error("Failed to parse classifier response",
			zap.Error(err),
			zap.String("response", raw))
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if result.IntentType == "" {
		c.logger.Error("Classifier response missing intentType",
			zap.String("response", raw))
		return nil, fmt.Errorf("%w: missing intentType", ErrMalformedResponse)
	}
	if !models.KnownIntent(result.IntentType) {
		// The schema should make this impossible; the synthesizer still
		// handles it with a fixed fallback.
		c.logger.Warn("Classifier returned an intent outside the enum",
			zap.String("intent_type", string(result.IntentType)))
	}

	return &result, nil
}

// promptTurn is the slimmed dialogue shape serialized into the prompt so
// the model can re-derive earlier slot values from raw history.
type promptTurn struct {
	User    string          `json:"user"`
	Bot     string          `json:"bot"`
	Options []models.Option `json:"options,omitempty"`
}

func (c *OpenAIClassifier) systemPrompt(history []models.Turn, rooms []models.Room) string {
	roomLines := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomLines = append(roomLines, "- NAME:"+room.Name+", LOCATION:"+room.Location)
	}

	turns := make([]promptTurn, 0, len(history))
	for _, t := range history {
		turns = append(turns, promptTurn{User: t.User, Bot: t.Bot, Options: t.Options})
	}
	dialogues, err := json.Marshal(turns)
	if err != nil {
		dialogues = []byte("[]")
	}

	now := c.now().In(models.KST)

	return fmt.Sprintf(`You are a helpful assistant named KIRA that helps the user reserve rooms in ID KAIST.

All Rooms in ID KAIST:
%s

Based on the previous dialogues and the user's current input, you need to detect the user's intentType and
provide the necessary information to help the user. Possible types of intentType are "greeting", "reserve a
room", "list all rooms", "view reservations", "cancel a reservation", "get help", and "others".
- If the detected intentType is "greeting", provide a greeting message and show options for various functions.
- If the detected intentType is "reserve a room", try to extract necessary parameters for the
reservation, such as start/end datetime, room, purpose, and user's email.
- If the detected intentType is "list all rooms", provide a list of all available rooms.
- If the detected intentType is "view reservations", try to extract parameters such as the name of the
room to check.
- If the detected intentType is "cancel a reservation", try to extract the reservation ID.
- If the detected intentType is "get help", provide general information about the chatbot.
- If the detected intentType is "others", provide any relevant responding message

When the intent is "view reservations", require start and end date inputs.

All date and time values should be in the format "YYYY-MM-DD" and "HH:MM" respectively, in Korean
Standard Time (KST), based on the current date and time.

* Current date and time is %s
* You must either provide answers in Korean or English based on the user's input.
* Use linebreaks where necessary.

Previous dialogues:
%s

If your response includes multiple options or user-selectable choices,
provide them as an "options" field like this:

"options": [
  { "label": "예약 확인", "fullText": "특정 방의 예약을 확인하고 싶어요" },
  { "label": "회의실 예약", "fullText": "새로운 회의실을 예약하고 싶어요" }
]

- label: A short keyword or phrase for button text (e.g., "예약 확인")
- fullText: A more complete sentence or phrase that will be used when the button is clicked
`,
		strings.Join(roomLines, "\n"),
		now.Format("2006-01-02 15:04:05"),
		string(dialogues),
	)
}

// intentSchema builds the response schema: intentType is a closed enum and
// the reservation room slot is constrained to the catalog's room names.
func intentSchema(rooms []models.Room) jsonschema.Definition {
	roomNames := make([]string, 0, len(rooms))
	for _, room := range rooms {
		roomNames = append(roomNames, room.Name)
	}

	return jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"intentType": {
				Type: jsonschema.String,
				Enum: []string{
					string(models.IntentGreeting),
					string(models.IntentReserveRoom),
					string(models.IntentListAllRooms),
					string(models.IntentViewReservations),
					string(models.IntentCancelReservation),
					string(models.IntentGetHelp),
					string(models.IntentOthers),
				},
			},
			"responseForGreeting": {
				Type:        jsonschema.Object,
				Description: "Response for greeting",
				Properties: map[string]jsonschema.Definition{
					"message": {Type: jsonschema.String},
				},
			},
			"paramsForReservation": {
				Type:        jsonschema.Object,
				Description: "Parameters extracted for making a new reservation",
				Properties: map[string]jsonschema.Definition{
					"startDateTime": {Type: jsonschema.String},
					"endDateTime":   {Type: jsonschema.String},
					"room": {
						Type:        jsonschema.String,
						Enum:        roomNames,
						Description: "Room name. It should be one of the room names in the list of All Rooms in ID KAIST.",
					},
					"purpose":    {Type: jsonschema.String},
					"user_email": {Type: jsonschema.String},
					"isComplete": {
						Type:        jsonschema.Boolean,
						Description: "Indicates whether all the properties are complete or not.",
					},
				},
			},
			"paramsForListAllRooms": {
				Type:        jsonschema.String,
				Description: "Response for listing all rooms intent. It should be a string of all room names and their information with line breaks.",
			},
			"paramsForViewReservations": {
				Type:        jsonschema.Object,
				Description: "Parameters for view reservations",
				Properties: map[string]jsonschema.Definition{
					"room": {Type: jsonschema.String},
					"startDateTime": {
						Type:        jsonschema.String,
						Description: "Start date time of the reservation",
					},
					"endDateTime": {
						Type:        jsonschema.String,
						Description: "End date time of the reservation",
					},
				},
			},
			"responseForGetHelp": {
				Type:        jsonschema.Object,
				Description: "Response for getting help",
				Properties: map[string]jsonschema.Definition{
					"message": {Type: jsonschema.String},
				},
			},
			"responseForOthers": {
				Type:        jsonschema.Object,
				Description: "Response for other types of intent",
				Properties: map[string]jsonschema.Definition{
					"message": {Type: jsonschema.String},
				},
			},
			"options": {
				Type:        jsonschema.Array,
				Description: "Optional user choices for buttons",
				Items: &jsonschema.Definition{
					Type: jsonschema.Object,
					Properties: map[string]jsonschema.Definition{
						"label":    {Type: jsonschema.String, Description: "Short keyword for the button"},
						"fullText": {Type: jsonschema.String, Description: "Detailed message related to this option"},
					},
					Required: []string{"label", "fullText"},
				},
			},
		},
		Required: []string{"intentType"},
	}
}
