// Package mapi models the MAPI property records carried in a TNEF message
// and resolves the handful of them needed to build a meeting invite.
package mapi

import "fmt"

// MAPI property types used by this package.
const (
	TypeString8 uint16 = 0x001E
	TypeUnicode uint16 = 0x001F
	TypeSysTime uint16 = 0x0040
	TypeBinary  uint16 = 0x0102
)

// Property tags (the low 16 bits of a MAPI property tag).
const (
	TagSubject             uint16 = 0x0037
	TagStartDate           uint16 = 0x0060
	TagEndDate             uint16 = 0x0061
	TagSenderEmailAddress  uint16 = 0x0C1F
	TagBody                uint16 = 0x1000
	TagBodyHTML            uint16 = 0x1013
	TagCreatorName         uint16 = 0x3FF8
	TagLocation            uint16 = 0x8208
	TagTimeZoneDescription uint16 = 0x8234
)

// Kind identifies the properties the resolver cares about.
type Kind int

const (
	KindUnknown Kind = iota
	KindSubject
	KindLocation
	KindTimeZoneDescription
	KindStartDate
	KindEndDate
	KindCreatorName
	KindSenderEmailAddress
)

var kindByTag = map[uint16]Kind{
	TagSubject:             KindSubject,
	TagLocation:            KindLocation,
	TagTimeZoneDescription: KindTimeZoneDescription,
	TagStartDate:           KindStartDate,
	TagEndDate:             KindEndDate,
	TagCreatorName:         KindCreatorName,
	TagSenderEmailAddress:  KindSenderEmailAddress,
}

var nameByTag = map[uint16]string{
	TagSubject:             "MAPI_SUBJECT",
	TagStartDate:           "MAPI_START_DATE",
	TagEndDate:             "MAPI_END_DATE",
	TagSenderEmailAddress:  "MAPI_SENDER_EMAIL_ADDRESS",
	TagBody:                "MAPI_BODY",
	TagBodyHTML:            "MAPI_BODY_HTML",
	TagCreatorName:         "MAPI_CREATOR_NAME",
	TagLocation:            "MAPI_OUTLOOK_LOCATION",
	TagTimeZoneDescription: "MAPI_TIME_ZONE_DESCRIPTION",
}

// Property is a single MAPI property record as decoded from the container.
type Property struct {
	Tag  uint16
	Type uint16
	Data []byte
}

// Kind maps the property tag to a recognized kind, or KindUnknown.
func (p Property) Kind() Kind {
	return kindByTag[p.Tag]
}

// Name returns the conventional MAPI name of the property, or its tag in
// hex when the tag is not one this package knows.
func (p Property) Name() string {
	if n, ok := nameByTag[p.Tag]; ok {
		return n
	}
	return fmt.Sprintf("0x%04X", p.Tag)
}

// Value returns the property's typed payload.
func (p Property) Value() Value {
	return Value{Type: p.Type, Data: p.Data}
}

func (k Kind) String() string {
	switch k {
	case KindSubject:
		return "subject"
	case KindLocation:
		return "location"
	case KindTimeZoneDescription:
		return "time_zone_description"
	case KindStartDate:
		return "start_date"
	case KindEndDate:
		return "end_date"
	case KindCreatorName:
		return "creator_name"
	case KindSenderEmailAddress:
		return "sender_email_address"
	default:
		return "unknown"
	}
}
