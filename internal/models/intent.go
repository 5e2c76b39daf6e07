package models

// IntentType is the classified purpose of a user utterance. The values
// match the enum the language model is constrained to, so they appear in
// wire form exactly as written here.
type IntentType string

const (
	IntentGreeting          IntentType = "greeting"
	IntentReserveRoom       IntentType = "reserve a room"
	IntentListAllRooms      IntentType = "list all rooms"
	IntentViewReservations  IntentType = "view reservations"
	IntentCancelReservation IntentType = "cancel a reservation"
	IntentGetHelp           IntentType = "get help"
	IntentOthers            IntentType = "others"
)

// IntentResult is the structured classifier output: a union tagged by
// IntentType where every payload other than the tag may be absent.
type IntentResult struct {
	IntentType IntentType `json:"intentType"`

	Greeting         *MessagePayload   `json:"responseForGreeting,omitempty"`
	Reservation      *ReservationDraft `json:"paramsForReservation,omitempty"`
	ListAllRooms     string            `json:"paramsForListAllRooms,omitempty"`
	ViewReservations *ViewQuery        `json:"paramsForViewReservations,omitempty"`
	GetHelp          *MessagePayload   `json:"responseForGetHelp,omitempty"`
	Others           *MessagePayload   `json:"responseForOthers,omitempty"`

	// Options are model-suggested quick replies, attachable to any variant.
	Options []Option `json:"options,omitempty"`
}

// MessagePayload carries a single free-text reply from the model.
type MessagePayload struct {
	Message string `json:"message"`
}

// ReservationDraft holds the slots extracted so far toward a reservation.
// Date and time values are "YYYY-MM-DD HH:MM" strings in KST; empty means
// the slot has not been filled yet. IsComplete is the model's own judgment
// that every slot is present.
type ReservationDraft struct {
	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
	Room          string `json:"room,omitempty"`
	Purpose       string `json:"purpose,omitempty"`
	UserEmail     string `json:"user_email,omitempty"`
	IsComplete    bool   `json:"isComplete,omitempty"`
}

// ViewQuery holds the slots for a reservation lookup. All fields optional;
// the synthesizer walks the user through whichever are missing.
type ViewQuery struct {
	Room          string `json:"room,omitempty"`
	StartDateTime string `json:"startDateTime,omitempty"`
	EndDateTime   string `json:"endDateTime,omitempty"`
}

// KnownIntent reports whether t is one of the seven classifier intents.
func KnownIntent(t IntentType) bool {
	switch t {
	case IntentGreeting, IntentReserveRoom, IntentListAllRooms,
		IntentViewReservations, IntentCancelReservation, IntentGetHelp, IntentOthers:
		return true
	}
	return false
}
