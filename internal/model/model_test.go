package model

import "testing"

func TestNewOrganizer(t *testing.T) {
	tests := []struct {
		name, email string
		wantNil     bool
		wantEmail   string
	}{
		{"Ada Lovelace", "ada@example.com", false, "ada@example.com"},
		{" Ada ", " ada@example.com ", false, "ada@example.com"},
		{"Ada", "", true, ""},
		{"", "ada@example.com", true, ""},
		{"Ada", "not an address", true, ""},
		// Exchange-internal sender addresses are X.500 DNs, not mail addresses.
		{"Ada", "/O=EXCHANGELABS/OU=EXCHANGE ADMINISTRATIVE GROUP/CN=RECIPIENTS/CN=ADA", true, ""},
		{"Ada", "Ada <ada@example.com>", true, ""},
	}

	for _, tt := range tests {
		got := NewOrganizer(tt.name, tt.email)
		if tt.wantNil {
			if got != nil {
				t.Errorf("NewOrganizer(%q, %q) = %+v, want nil", tt.name, tt.email, got)
			}
			continue
		}
		if got == nil {
			t.Errorf("NewOrganizer(%q, %q) = nil, want organizer", tt.name, tt.email)
			continue
		}
		if got.Email != tt.wantEmail {
			t.Errorf("NewOrganizer(%q, %q).Email = %q, want %q", tt.name, tt.email, got.Email, tt.wantEmail)
		}
	}
}

func TestOrganizerMailTo(t *testing.T) {
	o := NewOrganizer("Ada", "ada@example.com")
	if o == nil {
		t.Fatal("Expected organizer")
	}
	if got := o.MailTo(); got != "mailto:ada@example.com" {
		t.Errorf("Expected mailto:ada@example.com, got %q", got)
	}
}
