// internal/form/definition.go
//
// Contact – Forms subsystem: field definitions.
//
// Context
//   The contact form has a fixed set of four fields.  Rather than discovering
//   fields at runtime, each one is declared here as a Field constant plus a
//   FieldDef row carrying the presentation metadata the renderer needs
//   (label, placeholder, input type, and display test id).  The validation
//   rules live in validate.go and are keyed by the same Field constants.
//
// Style
//   Two-space sentence spacing, Oxford comma, concise inline notes.
//
//------------------------------------------------------------------------------

package form

import (
	"errors"
	"fmt"
)

// Field names one input on the contact form.  The string value is the wire
// name used in POST bodies and JSON payloads.
type Field string

const (
	FirstName Field = "firstName"
	LastName  Field = "lastName"
	Email     Field = "email"
	Message   Field = "message"
)

// ErrUnknownField is returned by ParseField for names outside the form.
var ErrUnknownField = errors.New("unknown form field")

// FieldDef describes how a single field is presented.  Validation metadata is
// deliberately absent; see the rule table in validate.go.
type FieldDef struct {
	Name        Field
	Label       string // Human-readable label.
	Type        string // text, email, or textarea.
	Placeholder string // Optional placeholder text.
	DisplayID   string // data-testid of the submitted-value region.
	DisplayName string // Prefix shown in the submitted-value region.
}

// fieldDefs lists every field in display order.
var fieldDefs = []FieldDef{
	{Name: FirstName, Label: "First Name*", Type: "text", Placeholder: "Edd", DisplayID: "firstnameDisplay", DisplayName: "First Name"},
	{Name: LastName, Label: "Last Name*", Type: "text", Placeholder: "Burke", DisplayID: "lastnameDisplay", DisplayName: "Last Name"},
	{Name: Email, Label: "Email*", Type: "email", Placeholder: "bluebill1049@hotmail.com", DisplayID: "emailDisplay", DisplayName: "Email"},
	{Name: Message, Label: "Message", Type: "textarea", DisplayID: "messageDisplay", DisplayName: "Message"},
}

// Fields returns every field in display order.
func Fields() []Field {
	out := make([]Field, len(fieldDefs))
	for i, fd := range fieldDefs {
		out[i] = fd.Name
	}
	return out
}

// Definitions returns a copy of the field table in display order.
func Definitions() []FieldDef {
	out := make([]FieldDef, len(fieldDefs))
	copy(out, fieldDefs)
	return out
}

// Definition returns the FieldDef for f.  The boolean is false when f is not
// part of the form.
func Definition(f Field) (FieldDef, bool) {
	for _, fd := range fieldDefs {
		if fd.Name == f {
			return fd, true
		}
	}
	return FieldDef{}, false
}

// ParseField maps a wire name to its Field.  Matching is exact; the wire
// names are camelCase and case-sensitive.
func ParseField(name string) (Field, error) {
	if _, ok := Definition(Field(name)); ok {
		return Field(name), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
}

// position returns the display index of f, or len(fieldDefs) when unknown.
func position(f Field) int {
	for i, fd := range fieldDefs {
		if fd.Name == f {
			return i
		}
	}
	return len(fieldDefs)
}
