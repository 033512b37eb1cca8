package tz

import (
	"fmt"
	"time"
)

// Policy decides which zone the extracted timestamps are attached to,
// given the message's time zone description.
type Policy interface {
	Location(description string) *time.Location
	Name() string
}

// UTCPolicy attaches UTC regardless of the description. Timestamps in
// TNEF meeting requests are already UTC; the description only says which
// zone the organizer saw them in.
type UTCPolicy struct{}

func (UTCPolicy) Location(string) *time.Location { return time.UTC }

func (UTCPolicy) Name() string { return "utc" }

// OffsetPolicy attaches the fixed zone parsed from the description, and
// UTC when the description has no readable offset.
type OffsetPolicy struct{}

func (OffsetPolicy) Location(description string) *time.Location {
	if off, ok := ParseOffset(description); ok {
		return off.Location()
	}
	return time.UTC
}

func (OffsetPolicy) Name() string { return "offset" }

// PolicyByName maps a config value to a Policy.
func PolicyByName(name string) (Policy, error) {
	switch name {
	case "", "utc":
		return UTCPolicy{}, nil
	case "offset":
		return OffsetPolicy{}, nil
	default:
		return nil, fmt.Errorf("unknown zone policy %q", name)
	}
}
