package mapi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
)

// ErrWrongType is returned when a value is decoded as a type it does not
// carry.
var ErrWrongType = errors.New("mapi: wrong property type")

// FILETIME counts 100ns intervals since 1601-01-01; this is the offset of
// the Unix epoch in those units.
const filetimeUnixEpoch = 116444736000000000

// Value is the opaque payload of a property record.
type Value struct {
	Type uint16
	Data []byte
}

// String decodes a PT_UNICODE or PT_STRING8 value. charset decodes 8-bit
// strings; nil means the bytes are taken as UTF-8. Trailing NULs are
// stripped.
func (v Value) String(charset encoding.Encoding) (string, error) {
	var (
		s   string
		err error
	)
	switch v.Type {
	case TypeUnicode:
		dec := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
		var b []byte
		b, err = dec.Bytes(v.Data)
		s = string(b)
	case TypeString8:
		if charset == nil {
			s = string(v.Data)
			break
		}
		var b []byte
		b, err = charset.NewDecoder().Bytes(v.Data)
		s = string(b)
	default:
		return "", fmt.Errorf("%w: 0x%04X is not a string", ErrWrongType, v.Type)
	}
	if err != nil {
		return "", fmt.Errorf("mapi: decode string: %w", err)
	}
	return strings.TrimRight(s, "\x00"), nil
}

// Time decodes a PT_SYSTIME value. MAPI timestamps carry no zone of their
// own: the result is the civil time as a time.Time in UTC and callers
// decide which zone it really belongs to.
func (v Value) Time() (time.Time, error) {
	if v.Type != TypeSysTime {
		return time.Time{}, fmt.Errorf("%w: 0x%04X is not a timestamp", ErrWrongType, v.Type)
	}
	if len(v.Data) != 8 {
		return time.Time{}, fmt.Errorf("mapi: timestamp has %d bytes, want 8", len(v.Data))
	}
	ft := int64(binary.LittleEndian.Uint64(v.Data))
	if ft <= 0 {
		return time.Time{}, errors.New("mapi: empty timestamp")
	}
	unix100ns := ft - filetimeUnixEpoch
	return time.Unix(unix100ns/1e7, (unix100ns%1e7)*100).UTC(), nil
}

// FileTime encodes t as a PT_SYSTIME payload. It is the inverse of Time.
func FileTime(t time.Time) []byte {
	ft := t.UTC().UnixNano()/100 + filetimeUnixEpoch
	b := make([]byte, 8)
	binary.LittleEndian.PutUint64(b, uint64(ft))
	return b
}
