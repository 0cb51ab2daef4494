// internal/form/validate.go
//
// Contact – Forms subsystem: validation engine.
//
// Context
//   Validate maps the current Values to an ErrorSet.  The rules are an
//   explicit table of (field, predicate, message) rows.  Predicates are
//   go-playground/validator tags checked one value at a time with Var, so the
//   form struct is never walked by reflection.  Every row is evaluated
//   independently and all violations are reported together.
//
// Workflow
//   •  Validate walks the rule table and records the message of each failing
//      row under its field.
//   •  ErrorSet.List orders errors by field display order so submit logs
//      and metrics see fields in a stable order.
//   •  Validation failures are data, not errors.  Validate never fails.
//
//------------------------------------------------------------------------------

package form

import (
	"sort"

	"github.com/go-playground/validator/v10"
)

// -----------------------------------------------------------------------------
// Error types
// -----------------------------------------------------------------------------

// ErrorField describes a single validation failure so the template can render
// a field-level message.
type ErrorField struct {
	Name    Field  `json:"name"`
	Message string `json:"message"`
}

// ErrorSet maps each failing field to its user-facing message.  An empty set
// means the form is valid.
type ErrorSet map[Field]string

// Valid reports whether the set holds no errors.
func (e ErrorSet) Valid() bool { return len(e) == 0 }

// Has reports whether f currently has an error.
func (e ErrorSet) Has(f Field) bool {
	_, ok := e[f]
	return ok
}

// List returns the errors in field display order.
func (e ErrorSet) List() []ErrorField {
	out := make([]ErrorField, 0, len(e))
	for f, msg := range e {
		out = append(out, ErrorField{Name: f, Message: msg})
	}
	sort.Slice(out, func(i, j int) bool { return position(out[i].Name) < position(out[j].Name) })
	return out
}

// only returns the subset of e whose fields are in keep.
func (e ErrorSet) only(keep map[Field]bool) ErrorSet {
	out := make(ErrorSet, len(e))
	for f, msg := range e {
		if keep[f] {
			out[f] = msg
		}
	}
	return out
}

// -----------------------------------------------------------------------------
// Rule table
// -----------------------------------------------------------------------------

// rule binds one field to a validator tag and the message shown on failure.
type rule struct {
	field   Field
	tag     string
	message string
}

// rules is the complete validation table.  The message field has no row.
// "required,min=5" makes an empty first name fail with the length message,
// and "required,email" does the same for an empty email.
var rules = []rule{
	{FirstName, "required,min=5", "Error: firstName must have at least 5 characters."},
	{LastName, "required", "Error: lastName is a required field."},
	{Email, "required,email", "Error: email must be a valid email address."},
}

// validate is safe for concurrent use and caches parsed tags.
var validate = validator.New()

// -----------------------------------------------------------------------------
// Public API
// -----------------------------------------------------------------------------

// Validate returns every rule violation for v.  The result is a fresh map and
// depends only on v.
func Validate(v Values) ErrorSet {
	errs := make(ErrorSet)
	for _, r := range rules {
		if err := validate.Var(v.Get(r.field), r.tag); err != nil {
			errs[r.field] = r.message
		}
	}
	return errs
}
