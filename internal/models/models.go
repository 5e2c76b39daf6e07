package models

import "time"

// Room is one reservable space from the catalog.
type Room struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Location string `json:"location"`
}

// Option is a quick-reply button: a short label and the full sentence
// submitted on the user's behalf when the button is pressed.
type Option struct {
	Label    string `json:"label"`
	FullText string `json:"fullText"`
}

// Reservation is a committed booking as persisted by the store.
type Reservation struct {
	ID            string    `json:"id"`
	Room          string    `json:"room"`
	StartDateTime time.Time `json:"startDateTime"`
	EndDateTime   time.Time `json:"endDateTime"`
	Purpose       string    `json:"purpose"`
	UserEmail     string    `json:"user_email"`
}

// DraftForm is a reservation draft rendered into a turn, awaiting commit.
// Commit is allowed only while CanCommit is set and Committed is not.
type DraftForm struct {
	Draft     ReservationDraft `json:"draft"`
	CanCommit bool             `json:"canCommit"`
	Committed bool             `json:"committed"`
}

// Turn is one user message plus its assistant reply. Between submission
// and classification the reply holds the pending sentinel text and
// Pending is true.
type Turn struct {
	ID      string     `json:"id"`
	User    string     `json:"user"`
	Bot     string     `json:"bot"`
	Options []Option   `json:"options,omitempty"`
	Form    *DraftForm `json:"form,omitempty"`
	Pending bool       `json:"pending"`
}
