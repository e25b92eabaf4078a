package candidates

import "strings"

// Field names an intake field of the candidate profile.
type Field string

const (
	FieldName  Field = "name"
	FieldPhone Field = "phone"
	FieldEmail Field = "email"
)

// RequiredFields is the order in which unresolved fields are prompted for.
var RequiredFields = []Field{FieldName, FieldPhone, FieldEmail}

// Profile holds the candidate's contact details. An empty value means unresolved.
type Profile struct {
	Name  string `json:"name,omitempty"`  // Full name
	Phone string `json:"phone,omitempty"` // Phone number as typed or extracted
	Email string `json:"email,omitempty"` // Contact email
}

// Get returns the value stored for field.
func (p Profile) Get(field Field) string {
	switch field {
	case FieldName:
		return p.Name
	case FieldPhone:
		return p.Phone
	case FieldEmail:
		return p.Email
	}
	return ""
}

// Set stores value for field. Unknown fields are ignored.
func (p *Profile) Set(field Field, value string) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldName:
		p.Name = value
	case FieldPhone:
		p.Phone = value
	case FieldEmail:
		p.Email = value
	}
}

// Missing lists the required fields that are still unresolved, in prompt order.
func (p Profile) Missing() []Field {
	var missing []Field
	for _, f := range RequiredFields {
		if strings.TrimSpace(p.Get(f)) == "" {
			missing = append(missing, f)
		}
	}
	return missing
}

// Complete reports whether every required field is resolved.
func (p Profile) Complete() bool {
	return len(p.Missing()) == 0
}

// Merge overlays the non-empty fields of other onto p.
func (p Profile) Merge(other Profile) Profile {
	for _, f := range RequiredFields {
		if v := strings.TrimSpace(other.Get(f)); v != "" {
			p.Set(f, v)
		}
	}
	return p
}
