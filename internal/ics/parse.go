package ics

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ParsedEvent is what ParseEvent reads back from a single-event document.
type ParsedEvent struct {
	ProductID string
	Version   string

	UID   string
	Start time.Time
	End   time.Time

	// Organizer is the raw ORGANIZER value (a mailto: URI) and
	// OrganizerCN its CN parameter; both empty when absent.
	Organizer   string
	OrganizerCN string
}

// ParseEvent parses a document produced by Encode and checks that it is a
// well-formed single-event calendar: PRODID and VERSION set, exactly one
// VEVENT, and that event carrying UID, DTSTART and DTEND.
func ParseEvent(data []byte) (ParsedEvent, error) {
	var out ParsedEvent
	if len(data) == 0 {
		return out, errors.New("ics: empty document")
	}

	cal, err := ical.ParseCalendar(bytes.NewReader(data))
	if err != nil {
		return out, fmt.Errorf("ics: parse: %w", err)
	}

	for _, prop := range cal.CalendarProperties {
		switch prop.IANAToken {
		case string(ical.PropertyProductId):
			out.ProductID = prop.Value
		case string(ical.PropertyVersion):
			out.Version = prop.Value
		}
	}
	if out.ProductID == "" {
		return out, errors.New("ics: missing PRODID")
	}
	if out.Version != Version {
		return out, fmt.Errorf("ics: VERSION is %q, want %q", out.Version, Version)
	}

	events := cal.Events()
	if len(events) != 1 {
		return out, fmt.Errorf("ics: want exactly one VEVENT, got %d", len(events))
	}
	ve := events[0]

	uidProp := ve.GetProperty(ical.ComponentPropertyUniqueId)
	if uidProp == nil || uidProp.Value == "" {
		return out, errors.New("ics: missing UID")
	}
	out.UID = uidProp.Value

	if ve.GetProperty(ical.ComponentPropertyDtStart) == nil {
		return out, errors.New("ics: missing DTSTART")
	}
	if out.Start, err = ve.GetStartAt(); err != nil {
		return out, fmt.Errorf("ics: DTSTART: %w", err)
	}
	if ve.GetProperty(ical.ComponentPropertyDtEnd) == nil {
		return out, errors.New("ics: missing DTEND")
	}
	if out.End, err = ve.GetEndAt(); err != nil {
		return out, fmt.Errorf("ics: DTEND: %w", err)
	}

	if p := ve.GetProperty(ical.ComponentPropertyOrganizer); p != nil {
		out.Organizer = p.Value
		if cns, ok := p.ICalParameters[string(ical.ParameterCn)]; ok && len(cns) > 0 {
			out.OrganizerCN = cns[0]
		}
		if !strings.HasPrefix(strings.ToLower(out.Organizer), "mailto:") {
			return out, fmt.Errorf("ics: ORGANIZER %q is not a mailto URI", out.Organizer)
		}
	}

	return out, nil
}
