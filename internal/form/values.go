// internal/form/values.go
//
// Contact – Forms subsystem: current field values.
//
//------------------------------------------------------------------------------

package form

// Values holds the raw user input for every field.  Message is optional: nil
// means the visitor never typed into it, while a non-nil pointer to "" means
// the field was typed and then cleared.
type Values struct {
	FirstName string  `json:"firstName"`
	LastName  string  `json:"lastName"`
	Email     string  `json:"email"`
	Message   *string `json:"message,omitempty"`
}

// Get returns the current value of f.  An untyped message reads as "".
func (v Values) Get(f Field) string {
	switch f {
	case FirstName:
		return v.FirstName
	case LastName:
		return v.LastName
	case Email:
		return v.Email
	case Message:
		if v.Message == nil {
			return ""
		}
		return *v.Message
	default:
		return ""
	}
}

// HasMessage reports whether the message field has ever been set.
func (v Values) HasMessage() bool { return v.Message != nil }

// set stores s into f.  Unknown fields are ignored; callers validate names
// with ParseField first.
func (v *Values) set(f Field, s string) {
	switch f {
	case FirstName:
		v.FirstName = s
	case LastName:
		v.LastName = s
	case Email:
		v.Email = s
	case Message:
		v.Message = &s
	}
}

// clone returns a deep copy so snapshots never share the message pointer
// with live state.
func (v Values) clone() Values {
	out := v
	if v.Message != nil {
		m := *v.Message
		out.Message = &m
	}
	return out
}
