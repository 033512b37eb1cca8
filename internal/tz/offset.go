// Package tz turns the zone-less timestamps of a meeting request into
// zone-aware instants.
package tz

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var offsetPattern = regexp.MustCompile(`UTC([+-])(\d\d):(\d\d)`)

// Offset is a fixed displacement from UTC. Hours and Minutes are
// magnitudes; the sign is carried separately.
type Offset struct {
	Negative bool
	Hours    int
	Minutes  int
}

// ParseOffset finds the first "UTC±HH:MM" in s, e.g. in
// "(UTC-05:00) Eastern Time (US & Canada)". ok is false when there is no
// such substring or its digits cannot be read; that is not the same as a
// zero offset.
func ParseOffset(s string) (off Offset, ok bool) {
	m := offsetPattern.FindStringSubmatch(s)
	if m == nil {
		return Offset{}, false
	}

	hours, err := magnitude(m[2])
	if err != nil {
		return Offset{}, false
	}
	minutes, err := magnitude(m[3])
	if err != nil {
		return Offset{}, false
	}

	return Offset{Negative: m[1] == "-", Hours: hours, Minutes: minutes}, true
}

// magnitude reads a two-digit group; "00" strips to "" and counts as zero.
func magnitude(digits string) (int, error) {
	digits = strings.TrimLeft(digits, "0")
	if digits == "" {
		return 0, nil
	}
	return strconv.Atoi(digits)
}

// Duration returns the signed offset.
func (o Offset) Duration() time.Duration {
	d := time.Duration(o.Hours)*time.Hour + time.Duration(o.Minutes)*time.Minute
	if o.Negative {
		return -d
	}
	return d
}

// Location returns a fixed zone named after the offset.
func (o Offset) Location() *time.Location {
	return time.FixedZone(o.String(), int(o.Duration()/time.Second))
}

func (o Offset) String() string {
	sign := "+"
	if o.Negative {
		sign = "-"
	}
	return fmt.Sprintf("UTC%s%02d:%02d", sign, o.Hours, o.Minutes)
}
