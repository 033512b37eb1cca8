package model

import (
	"net/mail"
	"strings"
	"time"
)

// Event is the fully resolved meeting, ready to be serialized.
type Event struct {
	UID string

	Summary     string
	Location    string
	Description string

	// Organizer is nil when the invite does not name one completely.
	Organizer *Organizer

	// Start / End are zone-aware.
	Start time.Time
	End   time.Time

	// Stamp is when this event object was created (DTSTAMP).
	Stamp time.Time
}

// Organizer is the meeting organizer. Both parts are always set.
type Organizer struct {
	Name  string
	Email string
}

// NewOrganizer returns nil unless name and email are both non-empty and
// email is a plain address. A partial organizer is never built.
func NewOrganizer(name, email string) *Organizer {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" {
		return nil
	}

	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Name != "" {
		return nil
	}
	return &Organizer{Name: name, Email: addr.Address}
}

// MailTo returns the organizer as a mailto: URI.
func (o *Organizer) MailTo() string {
	return "mailto:" + o.Email
}
