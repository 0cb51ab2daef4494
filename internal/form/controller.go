// internal/form/controller.go
//
// Contact – Forms subsystem: form state controller.
//
// Context
//   A Controller owns one visitor's form state: the current Values, the
//   ErrorSet derived from them, the set of fields the visitor has touched,
//   and the last accepted submission.  It has two triggers.
//
//   •  Change stores a value and recomputes the full ErrorSet immediately.
//   •  Submit recomputes the ErrorSet and, only when it is empty, records a
//      deep copy of the Values as the submitted snapshot.
//
//   Errors are shown for touched fields only.  Submit touches every field,
//   so a rejected submit surfaces all current errors.
//
//   A Controller is not safe for concurrent use.  The session store
//   serializes access per visitor.
//
//------------------------------------------------------------------------------

package form

// Result reports the outcome of one Submit.
type Result struct {
	Accepted bool     // True when the ErrorSet was empty.
	Errors   ErrorSet // All current errors; empty when accepted.
	Snapshot Values   // Copy of the submitted values; zero when rejected.
}

// Controller mediates between change events, the validation engine, and
// submission.
type Controller struct {
	values    Values
	errs      ErrorSet
	touched   map[Field]bool
	submitted *Values
}

// NewController returns a Controller with empty values and no snapshot.
func NewController() *Controller {
	c := &Controller{}
	c.Reset()
	return c
}

// Reset discards all values, errors, and the snapshot.
func (c *Controller) Reset() {
	c.values = Values{}
	c.errs = Validate(c.values)
	c.touched = make(map[Field]bool, len(fieldDefs))
	c.submitted = nil
}

// Change stores value into f, recomputes the ErrorSet, and returns the errors
// now visible.  Unknown fields are rejected with ErrUnknownField and leave the
// state untouched.
func (c *Controller) Change(f Field, value string) (ErrorSet, error) {
	if _, err := ParseField(string(f)); err != nil {
		return nil, err
	}
	c.values.set(f, value)
	c.touched[f] = true
	c.errs = Validate(c.values)
	return c.Visible(), nil
}

// Submit validates the current values.  On success the snapshot is replaced
// with a copy of the values; on failure the snapshot is left as it was.  The
// values themselves are never cleared.
func (c *Controller) Submit() Result {
	c.errs = Validate(c.values)
	for _, f := range Fields() {
		c.touched[f] = true
	}

	if !c.errs.Valid() {
		return Result{Errors: c.Errors()}
	}

	snap := c.values.clone()
	c.submitted = &snap
	return Result{Accepted: true, Errors: ErrorSet{}, Snapshot: snap.clone()}
}

// Values returns a copy of the current values.
func (c *Controller) Values() Values { return c.values.clone() }

// Errors returns a copy of the full ErrorSet, touched or not.
func (c *Controller) Errors() ErrorSet {
	out := make(ErrorSet, len(c.errs))
	for f, msg := range c.errs {
		out[f] = msg
	}
	return out
}

// Visible returns the errors for fields the visitor has touched.
func (c *Controller) Visible() ErrorSet { return c.errs.only(c.touched) }

// Submitted returns the last accepted snapshot.  The boolean is false until
// the first accepted Submit.
func (c *Controller) Submitted() (Values, bool) {
	if c.submitted == nil {
		return Values{}, false
	}
	return c.submitted.clone(), true
}
