// Package tneftest builds small TNEF streams for tests.
package tneftest

import (
	"bytes"
	"encoding/binary"
	"os"
	"testing"
	"time"

	"golang.org/x/text/encoding/unicode"

	"tnef2ics/internal/mapi"
)

const (
	levelMessage = 0x01

	attBody      = 0x800C
	attMAPIProps = 0x9003

	atpText = 0x0001
	atpByte = 0x0006
)

// psetidAppointment is the named-property set used by Outlook for
// appointment properties such as the location.
var psetidAppointment = []byte{
	0x02, 0x20, 0x06, 0x00, 0x00, 0x00, 0x00, 0x00,
	0xC0, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x46,
}

// Builder accumulates message properties and renders a TNEF stream.
type Builder struct {
	props   []mapi.Property
	attBody []byte
}

// New returns an empty Builder.
func New() *Builder {
	return &Builder{}
}

// Unicode adds a PT_UNICODE property.
func (b *Builder) Unicode(tag uint16, s string) *Builder {
	enc := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewEncoder()
	data, err := enc.Bytes([]byte(s + "\x00"))
	if err != nil {
		panic(err)
	}
	return b.Prop(mapi.Property{Tag: tag, Type: mapi.TypeUnicode, Data: data})
}

// String8 adds a PT_STRING8 property with the given raw bytes.
func (b *Builder) String8(tag uint16, raw []byte) *Builder {
	data := make([]byte, len(raw)+1)
	copy(data, raw)
	return b.Prop(mapi.Property{Tag: tag, Type: mapi.TypeString8, Data: data})
}

// Binary adds a PT_BINARY property.
func (b *Builder) Binary(tag uint16, raw []byte) *Builder {
	return b.Prop(mapi.Property{Tag: tag, Type: mapi.TypeBinary, Data: raw})
}

// Time adds a PT_SYSTIME property.
func (b *Builder) Time(tag uint16, t time.Time) *Builder {
	return b.Prop(mapi.Property{Tag: tag, Type: mapi.TypeSysTime, Data: mapi.FileTime(t)})
}

// Prop adds an arbitrary property.
func (b *Builder) Prop(p mapi.Property) *Builder {
	b.props = append(b.props, p)
	return b
}

// AttBody sets the legacy attBody attribute.
func (b *Builder) AttBody(s string) *Builder {
	b.attBody = []byte(s)
	return b
}

// Bytes renders the stream.
func (b *Builder) Bytes() []byte {
	var out bytes.Buffer
	le := binary.LittleEndian

	_ = binary.Write(&out, le, uint32(0x223E9F78))
	_ = binary.Write(&out, le, uint16(0x0001)) // legacy key

	if b.attBody != nil {
		writeAttribute(&out, attBody, atpText, b.attBody)
	}
	writeAttribute(&out, attMAPIProps, atpByte, b.mapiBlock())

	return out.Bytes()
}

// WriteFile renders the stream to path and returns it.
func (b *Builder) WriteFile(t *testing.T, path string) string {
	t.Helper()
	if err := os.WriteFile(path, b.Bytes(), 0o600); err != nil {
		t.Fatalf("write tnef fixture: %v", err)
	}
	return path
}

func (b *Builder) mapiBlock() []byte {
	var blk bytes.Buffer
	le := binary.LittleEndian

	_ = binary.Write(&blk, le, uint32(len(b.props)))
	for _, p := range b.props {
		_ = binary.Write(&blk, le, p.Type)
		_ = binary.Write(&blk, le, p.Tag)
		if p.Tag >= 0x8000 {
			blk.Write(psetidAppointment)
			_ = binary.Write(&blk, le, uint32(0))        // MNID_ID
			_ = binary.Write(&blk, le, uint32(p.Tag))    // LID
		}

		switch p.Type {
		case mapi.TypeString8, mapi.TypeUnicode, mapi.TypeBinary:
			_ = binary.Write(&blk, le, uint32(1))
			_ = binary.Write(&blk, le, uint32(len(p.Data)))
			blk.Write(p.Data)
			blk.Write(make([]byte, pad4(len(p.Data))))
		default:
			blk.Write(p.Data)
			blk.Write(make([]byte, pad4(len(p.Data))))
		}
	}
	return blk.Bytes()
}

func writeAttribute(out *bytes.Buffer, id, typ uint16, data []byte) {
	le := binary.LittleEndian
	out.WriteByte(levelMessage)
	_ = binary.Write(out, le, id)
	_ = binary.Write(out, le, typ)
	_ = binary.Write(out, le, uint32(len(data)))
	out.Write(data)

	var sum uint16
	for _, c := range data {
		sum += uint16(c)
	}
	_ = binary.Write(out, le, sum)
}

func pad4(n int) int {
	return (4 - n%4) % 4
}
