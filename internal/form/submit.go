// internal/form/submit.go
//
// Contact – Forms subsystem: consolidated Submit helper.
//
// Context
//   A plain HTML POST carries every field at once, while the live endpoint
//   sends one field per request.  HandleSubmit bridges the two: each posted
//   value that differs from the Controller's current value is replayed as a
//   change event, then Submit runs.  An untouched, empty message therefore
//   stays "never typed" even though the browser posts it as "".
//
//------------------------------------------------------------------------------

package form

import (
	"net/http"
	"net/url"
)

// ApplyPosted replays posted values into c as change events and returns the
// fields that changed.  Fields absent from posted, or equal to the current
// value, are skipped.
func ApplyPosted(c *Controller, posted url.Values) []Field {
	var changed []Field
	cur := c.Values()
	for _, f := range Fields() {
		raw, ok := posted[string(f)]
		if !ok || len(raw) == 0 {
			continue
		}
		if raw[0] == cur.Get(f) {
			continue
		}
		if _, err := c.Change(f, raw[0]); err != nil {
			continue
		}
		changed = append(changed, f)
	}
	return changed
}

// HandleSubmit parses r, applies the posted values to c, and submits.  The
// error is non-nil only when the body cannot be parsed; a rejected submit is
// reported through Result.Accepted.
func HandleSubmit(c *Controller, r *http.Request) (Result, error) {
	if err := r.ParseForm(); err != nil {
		return Result{}, err
	}
	ApplyPosted(c, r.PostForm)
	return c.Submit(), nil
}
