// Package ics serializes a meeting into an iCalendar document and checks
// the result.
package ics

import (
	"errors"
	"strings"
	"time"
	"unicode"

	ical "github.com/arran4/golang-ical"

	"tnef2ics/internal/model"
)

// Version is the iCalendar VERSION written to every document.
const Version = "2.0"

// Options control document-level properties.
type Options struct {
	// ProductID is the PRODID value. Required.
	ProductID string
}

// Encode renders ev as a calendar holding exactly one VEVENT. DTSTART and
// DTEND are written in UTC; LOCATION and ORGANIZER only when present.
func Encode(ev model.Event, opts Options) ([]byte, error) {
	if opts.ProductID == "" {
		return nil, errors.New("ics: product id is empty")
	}
	if ev.UID == "" {
		return nil, errors.New("ics: event has no UID")
	}
	if ev.Start.IsZero() || ev.End.IsZero() {
		return nil, errors.New("ics: event has no start or end")
	}

	cal := ical.NewCalendar()
	cal.SetProductId(opts.ProductID)
	cal.SetVersion(Version)

	stamp := ev.Stamp
	if stamp.IsZero() {
		stamp = time.Now()
	}

	ve := cal.AddEvent(ev.UID)
	ve.SetDtStampTime(stamp)
	ve.SetSummary(ev.Summary)
	if ev.Location != "" {
		ve.SetLocation(ev.Location)
	}
	if ev.Organizer != nil {
		setOrganizer(ve, ev.Organizer)
	}
	ve.SetStartAt(ev.Start)
	ve.SetEndAt(ev.End)
	ve.SetDescription(ev.Description)

	return []byte(cal.Serialize()), nil
}

// setOrganizer adds ORGANIZER with a quoted CN. golang-ical backslash-escapes
// parameter values, which RFC 5545 readers do not undo, so the CN goes into
// the name part of the content line where it is written verbatim.
func setOrganizer(ve *ical.VEvent, o *model.Organizer) {
	token := string(ical.ComponentPropertyOrganizer)
	if cn := quoteParam(o.Name); cn != `""` {
		token += ";" + string(ical.ParameterCn) + "=" + cn
	}
	ve.Properties = append(ve.Properties, ical.IANAProperty{
		BaseProperty: ical.BaseProperty{
			IANAToken:      token,
			Value:          o.MailTo(),
			ICalParameters: map[string][]string{},
		},
	})
}

// quoteParam renders s as an RFC 5545 quoted-string. DQUOTE and control
// characters cannot appear inside one and are dropped.
func quoteParam(s string) string {
	s = strings.Map(func(r rune) rune {
		if r == '"' || (unicode.IsControl(r) && r != '\t') {
			return -1
		}
		return r
	}, s)
	return `"` + strings.TrimSpace(s) + `"`
}
