// Package tnef reads a TNEF (winmail.dat) container and exposes its MAPI
// property records and message body.
package tnef

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	tnefdec "github.com/teamwork/tnef"

	appLog "tnef2ics/internal/log"
	"tnef2ics/internal/mapi"
)

// Signature is the little-endian magic number every TNEF stream starts with.
const Signature uint32 = 0x223E9F78

const (
	levelMessage = 0x01
	attBody      = 0x800C
)

// ErrNotTNEF is returned for input that does not carry the TNEF signature.
var ErrNotTNEF = errors.New("tnef: not a TNEF stream")

// Message is the decoded content of a TNEF container.
type Message struct {
	// Props are the message-level MAPI properties in stream order.
	Props []mapi.Property

	// HTML is the raw PR_BODY_HTML payload, in whatever charset the sender
	// used. Nil when the message has no HTML body.
	HTML []byte

	// Text is the plain-text body: PR_BODY, or the attBody attribute when
	// PR_BODY is missing. Nil when neither is present.
	Text *mapi.Value
}

// ReadFile reads and decodes the container at path. The file is read in
// one go and closed before decoding starts.
func ReadFile(path string) (*Message, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("tnef: read %s: %w", path, err)
	}
	return Decode(data)
}

// Decode decodes a TNEF stream held in memory.
func Decode(data []byte) (msg *Message, err error) {
	if len(data) < 6 || binary.LittleEndian.Uint32(data[:4]) != Signature {
		return nil, ErrNotTNEF
	}

	// The decoder slices into data on trust; a truncated stream must come
	// back as an error rather than take the process down.
	defer func() {
		if r := recover(); r != nil {
			msg = nil
			err = fmt.Errorf("tnef: malformed stream: %v", r)
		}
	}()

	raw, err := tnefdec.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("tnef: decode: %w", err)
	}

	msg = &Message{
		Props: make([]mapi.Property, 0, len(raw.Attributes)),
		HTML:  raw.BodyHTML,
	}
	for _, a := range raw.Attributes {
		p := mapi.Property{
			Tag:  uint16(a.Name),
			Type: uint16(a.Type),
			Data: a.Data,
		}
		msg.Props = append(msg.Props, p)

		switch p.Tag {
		case mapi.TagBodyHTML:
			if len(msg.HTML) == 0 {
				msg.HTML = p.Data
			}
		case mapi.TagBody:
			v := p.Value()
			msg.Text = &v
		}
	}

	if msg.Text == nil {
		if body := legacyBody(data); len(body) > 0 {
			msg.Text = &mapi.Value{Type: mapi.TypeString8, Data: body}
		}
	}

	appLog.Debug("tnef decoded",
		"props", len(msg.Props),
		"html_bytes", len(msg.HTML),
		"has_text", msg.Text != nil,
		"attachments", len(raw.Attachments),
	)
	return msg, nil
}

// legacyBody returns the payload of the message-level attBody attribute,
// which the decoder does not surface. Each attribute is a level byte, a
// 32-bit id (low word) and type (high word), a 32-bit length, the payload
// and a 16-bit checksum.
func legacyBody(data []byte) []byte {
	le := binary.LittleEndian
	for p := 6; p+9 <= len(data); {
		level := data[p]
		id := le.Uint16(data[p+1:])
		size := int(le.Uint32(data[p+5:]))
		p += 9
		if size > len(data)-p {
			return nil
		}
		if level == levelMessage && id == attBody {
			return data[p : p+size]
		}
		p += size + 2
	}
	return nil
}
