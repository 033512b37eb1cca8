package tnef_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tnef2ics/internal/mapi"
	"tnef2ics/internal/tnef"
	"tnef2ics/internal/tnef/tneftest"
)

func TestDecode_Properties(t *testing.T) {
	start := time.Date(2024, 6, 3, 13, 30, 0, 0, time.UTC)
	data := tneftest.New().
		Unicode(mapi.TagSubject, "Quarterly review").
		Time(mapi.TagStartDate, start).
		Unicode(mapi.TagLocation, "Room 12").
		Binary(mapi.TagBodyHTML, []byte("<body>hi</body>")).
		Bytes()

	msg, err := tnef.Decode(data)
	if err != nil {
		t.Fatalf("Decode() returned an error: %v", err)
	}

	f := mapi.Resolve(msg.Props)
	if f.Subject == nil {
		t.Fatal("Expected subject property")
	}
	subject, err := f.Subject.String(nil)
	if err != nil {
		t.Fatalf("String() returned an error: %v", err)
	}
	if subject != "Quarterly review" {
		t.Errorf("Expected subject 'Quarterly review', got %q", subject)
	}

	if f.Location == nil {
		t.Fatal("Expected named location property")
	}

	got, err := f.Start.Time()
	if err != nil {
		t.Fatalf("Time() returned an error: %v", err)
	}
	if !got.Equal(start) {
		t.Errorf("Expected start %v, got %v", start, got)
	}

	if string(msg.HTML) != "<body>hi</body>" {
		t.Errorf("Expected HTML body, got %q", msg.HTML)
	}
}

func TestDecode_PlainBodyFallback(t *testing.T) {
	data := tneftest.New().
		Unicode(mapi.TagSubject, "x").
		AttBody("plain text body").
		Bytes()

	msg, err := tnef.Decode(data)
	if err != nil {
		t.Fatalf("Decode() returned an error: %v", err)
	}
	if len(msg.HTML) != 0 {
		t.Errorf("Expected no HTML body, got %q", msg.HTML)
	}
	if msg.Text == nil {
		t.Fatal("Expected plain text body")
	}
	text, err := msg.Text.String(nil)
	if err != nil {
		t.Fatalf("String() returned an error: %v", err)
	}
	if text != "plain text body" {
		t.Errorf("Expected plain text body, got %q", text)
	}
}

func TestDecode_PlainBodyPrefersPRBody(t *testing.T) {
	data := tneftest.New().
		String8(mapi.TagBody, []byte("from PR_BODY")).
		AttBody("from attBody").
		Bytes()

	msg, err := tnef.Decode(data)
	if err != nil {
		t.Fatalf("Decode() returned an error: %v", err)
	}
	if msg.Text == nil {
		t.Fatal("Expected plain text body")
	}
	text, err := msg.Text.String(nil)
	if err != nil {
		t.Fatalf("String() returned an error: %v", err)
	}
	if text != "from PR_BODY" {
		t.Errorf("Expected PR_BODY to win, got %q", text)
	}
}

func TestDecode_NoPlainBody(t *testing.T) {
	msg, err := tnef.Decode(tneftest.New().Unicode(mapi.TagSubject, "x").Bytes())
	if err != nil {
		t.Fatalf("Decode() returned an error: %v", err)
	}
	if msg.Text != nil {
		t.Errorf("Expected no plain text body, got %+v", msg.Text)
	}
}

func TestDecode_NotTNEF(t *testing.T) {
	for _, data := range [][]byte{nil, []byte("BEGIN:VCALENDAR"), {0x78, 0x9F, 0x3E}} {
		if _, err := tnef.Decode(data); !errors.Is(err, tnef.ErrNotTNEF) {
			t.Errorf("Decode(%q): expected ErrNotTNEF, got %v", data, err)
		}
	}
}

func TestDecode_TruncatedDoesNotPanic(t *testing.T) {
	data := tneftest.New().Unicode(mapi.TagSubject, "Quarterly review").Bytes()

	// Chop the stream in the middle of the MAPI block. Either outcome is
	// fine as long as it is not a panic.
	_, _ = tnef.Decode(data[:len(data)-12])
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "winmail.dat")
	tneftest.New().Unicode(mapi.TagCreatorName, "Ada").WriteFile(t, path)

	msg, err := tnef.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() returned an error: %v", err)
	}
	if f := mapi.Resolve(msg.Props); f.OrganizerName == nil {
		t.Error("Expected organizer name property")
	}

	if _, err := tnef.ReadFile(filepath.Join(t.TempDir(), "missing.dat")); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Expected os.ErrNotExist for missing file, got %v", err)
	}
}
