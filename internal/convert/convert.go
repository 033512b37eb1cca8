// Package convert turns a TNEF meeting request into an .ics file.
package convert

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/encoding"

	"tnef2ics/internal/htmltext"
	"tnef2ics/internal/ics"
	appLog "tnef2ics/internal/log"
	"tnef2ics/internal/mapi"
	"tnef2ics/internal/model"
	"tnef2ics/internal/tnef"
	"tnef2ics/internal/tz"
)

// uidNamespace scopes the name-based UUIDs used as event UIDs.
var uidNamespace = uuid.NewSHA1(uuid.NameSpaceDNS, []byte("tnef2ics"))

// Options configure a conversion.
type Options struct {
	// ProductID is the calendar PRODID.
	ProductID string

	// Policy attaches a zone to the extracted timestamps. Nil means UTC.
	Policy tz.Policy

	// Charset decodes 8-bit strings and HTML bodies without a declared
	// charset. Nil means the bytes are taken as they are.
	Charset encoding.Encoding

	// Now stamps the event (DTSTAMP). Nil means time.Now.
	Now func() time.Time
}

// Run reads the TNEF container at inPath and writes the invite to outPath.
// Nothing is written unless the event could be fully built and encoded.
func Run(inPath, outPath string, opts Options) error {
	msg, err := tnef.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", inPath, err)
	}

	ev, err := BuildEvent(msg, opts)
	if err != nil {
		return err
	}

	data, err := ics.Encode(ev, ics.Options{ProductID: opts.ProductID})
	if err != nil {
		return fmt.Errorf("encode: %w", err)
	}

	parsed, err := ics.ParseEvent(data)
	if err != nil {
		return fmt.Errorf("encoded calendar is not well-formed: %w", err)
	}
	if !parsed.Start.Equal(ev.Start) || !parsed.End.Equal(ev.End) {
		return fmt.Errorf("encoded calendar has %v-%v, want %v-%v", parsed.Start, parsed.End, ev.Start, ev.End)
	}

	if err := ics.WriteFile(outPath, data); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}

	appLog.Info("invite written",
		"output", outPath,
		"uid", ev.UID,
		"summary", ev.Summary,
		"start", ev.Start.Format(time.RFC3339),
		"end", ev.End.Format(time.RFC3339),
		"organizer", ev.Organizer != nil,
	)
	return nil
}

// BuildEvent resolves the message properties into an event. Only missing
// or unreadable dates are fatal (tz.ErrNoDate); other gaps leave the
// corresponding field empty.
func BuildEvent(msg *tnef.Message, opts Options) (model.Event, error) {
	fields := mapi.Resolve(msg.Props)

	description := text(fields.TZDescription, opts.Charset, "time_zone_description")
	start, end, err := tz.Normalize(fields.Start, fields.End, description, opts.Policy)
	if err != nil {
		return model.Event{}, err
	}

	ev := model.Event{
		Summary:     text(fields.Subject, opts.Charset, "subject"),
		Location:    text(fields.Location, opts.Charset, "location"),
		Description: body(msg, opts.Charset),
		Start:       start,
		End:         end,
	}

	ev.Organizer = model.NewOrganizer(
		text(fields.OrganizerName, opts.Charset, "organizer_name"),
		text(fields.OrganizerEmail, opts.Charset, "organizer_email"),
	)
	if ev.Organizer == nil && (fields.OrganizerName != nil || fields.OrganizerEmail != nil) {
		appLog.Debug("organizer omitted",
			"has_name", fields.OrganizerName != nil,
			"has_email", fields.OrganizerEmail != nil,
		)
	}

	ev.UID = eventUID(ev)

	now := time.Now
	if opts.Now != nil {
		now = opts.Now
	}
	ev.Stamp = now().UTC()

	return ev, nil
}

// text decodes an optional string field; absent or unreadable yields "".
func text(v *mapi.Value, charset encoding.Encoding, field string) string {
	if v == nil {
		return ""
	}
	s, err := v.String(charset)
	if err != nil {
		appLog.Warn("property ignored", "field", field, "err", err)
		return ""
	}
	return s
}

// body prefers the HTML body and falls back to the plain one.
func body(msg *tnef.Message, charset encoding.Encoding) string {
	if len(msg.HTML) > 0 {
		return htmltext.Extract(htmltext.DecodeBody(msg.HTML, charset))
	}
	if msg.Text != nil {
		return strings.TrimSpace(text(msg.Text, charset, "body"))
	}
	return ""
}

// eventUID derives the UID from summary, start and organizer, so the
// same invite always converts to the same UID.
func eventUID(ev model.Event) string {
	var key strings.Builder
	key.WriteString(ev.Summary)
	key.WriteByte(0)
	key.WriteString(ev.Start.UTC().Format(time.RFC3339))
	key.WriteByte(0)
	if ev.Organizer != nil {
		key.WriteString(strings.ToLower(ev.Organizer.Email))
	}
	return uuid.NewSHA1(uidNamespace, []byte(key.String())).String()
}
