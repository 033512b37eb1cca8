package tz

import (
	"errors"
	"fmt"
	"time"

	appLog "tnef2ics/internal/log"
	"tnef2ics/internal/mapi"
)

// ErrNoDate means the message lacks a usable start or end timestamp.
var ErrNoDate = errors.New("no date information")

// Normalize decodes the raw start and end timestamps and anchors their
// wall-clock values in the zone chosen by p. A missing or undecodable
// timestamp yields ErrNoDate.
func Normalize(start, end *mapi.Value, description string, p Policy) (time.Time, time.Time, error) {
	if p == nil {
		p = UTCPolicy{}
	}

	s, err := decode("start", start)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	e, err := decode("end", end)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}

	if off, ok := ParseOffset(description); ok {
		appLog.Debug("stated time zone", "description", description, "offset", off.String(), "policy", p.Name())
	} else if description != "" {
		appLog.Debug("stated time zone has no offset", "description", description, "policy", p.Name())
	}

	loc := p.Location(description)
	return attach(s, loc), attach(e, loc), nil
}

func decode(which string, v *mapi.Value) (time.Time, error) {
	if v == nil {
		return time.Time{}, fmt.Errorf("%w: %s missing", ErrNoDate, which)
	}
	t, err := v.Time()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %s: %v", ErrNoDate, which, err)
	}
	return t, nil
}

// attach keeps the wall clock of t and replaces its zone with loc. The
// fraction of a second is dropped; iCalendar times have whole seconds.
func attach(t time.Time, loc *time.Location) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, loc)
}
