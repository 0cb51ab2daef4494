// internal/form/renderer.go
//
// Contact – Forms subsystem: HTML renderer.
//
// Context
//   Converts one Controller's state into the contact page.  The page carries
//   the four inputs, one error element per visible error, a CSRF token, and,
//   once a submission has been accepted, the submitted-value regions.
//
// Workflow
//   •  NewPage snapshots a Controller into a Page (plain data, safe to render
//      after the session lock is released).
//   •  RenderPage executes the embedded template into w.
//   •  Error elements and submitted-value regions carry data-testid hooks
//      ("error", "firstnameDisplay", and so on) so themes and browser tests
//      can find them.
//
// Style
//   Output HTML is plain, with no framework classes, so themes can
//   style via element selectors or class hooks.  Each input gets id="fld-{name}"
//   and is wrapped in <div class="form-field"> for consistent styling.
//
//------------------------------------------------------------------------------

package form

import (
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// FieldView is one input as rendered: its definition, current value, and
// visible error (empty when none).
type FieldView struct {
	FieldDef
	Value string
	Error string
}

// DisplayRow is one submitted-value region.
type DisplayRow struct {
	ID    string // data-testid
	Label string
	Value string
}

// Page is the render model for the contact page.
type Page struct {
	Title     string
	Fields    []FieldView
	Submitted []DisplayRow // nil until the first accepted submit.
	CSRFToken string
}

// HasErrors reports whether any field shows an error.
func (p Page) HasErrors() bool {
	for _, f := range p.Fields {
		if f.Error != "" {
			return true
		}
	}
	return false
}

// NewPage builds the render model from c.  token is embedded as the hidden
// csrf_token input.
func NewPage(c *Controller, token string) Page {
	vals := c.Values()
	visible := c.Visible()

	p := Page{Title: "Contact Form", CSRFToken: token}
	for _, fd := range Definitions() {
		p.Fields = append(p.Fields, FieldView{
			FieldDef: fd,
			Value:    vals.Get(fd.Name),
			Error:    visible[fd.Name],
		})
	}

	if snap, ok := c.Submitted(); ok {
		p.Submitted = displayRows(snap)
	}
	return p
}

// displayRows lists the submitted-value regions for snap.  The message
// region is omitted when the message was never typed.
func displayRows(snap Values) []DisplayRow {
	defs := Definitions()
	rows := make([]DisplayRow, 0, len(defs))
	for _, fd := range defs {
		if fd.Name == Message && !snap.HasMessage() {
			continue
		}
		rows = append(rows, DisplayRow{
			ID:    fd.DisplayID,
			Label: fd.DisplayName,
			Value: snap.Get(fd.Name),
		})
	}
	return rows
}

// RenderPage writes the full contact page for p to w.
func RenderPage(w io.Writer, p Page) error {
	return pageTmpl.ExecuteTemplate(w, "contact.html", p)
}
