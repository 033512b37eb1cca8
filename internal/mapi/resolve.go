package mapi

import appLog "tnef2ics/internal/log"

// Fields holds the resolved invite properties. A nil field was not present
// in the message.
type Fields struct {
	Subject        *Value
	Location       *Value
	TZDescription  *Value
	Start          *Value
	End            *Value
	OrganizerName  *Value
	OrganizerEmail *Value
}

// Resolve scans props once and picks out the recognized kinds. When a kind
// occurs more than once the last record wins. Nothing is defaulted here.
func Resolve(props []Property) Fields {
	var f Fields
	seen := make(map[Kind]bool)
	for _, p := range props {
		k := p.Kind()
		if k == KindUnknown {
			continue
		}
		if seen[k] {
			appLog.Debug("duplicate property, keeping the later one", "property", p.Name(), "kind", k)
		}
		seen[k] = true

		v := p.Value()
		switch k {
		case KindSubject:
			f.Subject = &v
		case KindLocation:
			f.Location = &v
		case KindTimeZoneDescription:
			f.TZDescription = &v
		case KindStartDate:
			f.Start = &v
		case KindEndDate:
			f.End = &v
		case KindCreatorName:
			f.OrganizerName = &v
		case KindSenderEmailAddress:
			f.OrganizerEmail = &v
		}
	}
	return f
}
