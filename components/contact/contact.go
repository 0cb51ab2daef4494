// components/contact/contact.go
//
// Contact component – page, submit, and live-validation endpoints.
//
// Routes (mounted under /contact)
//
//	GET  /contact          full page: inputs, visible errors, submitted values
//	POST /contact          form-encoded submit; 200 accepted, 422 rejected
//	POST /contact/change   one live change event; JSON errors
//	GET  /contact/state    JSON errors and submitted snapshot
//	POST /contact/reset    drop the visitor's state; 303 to /contact
//	GET  /contact/live.js  live-validation script
//
// Every POST must carry a CSRF token in the csrf_token field or the
// X-CSRF-Token header.
//
//------------------------------------------------------------------------------

package contact

import (
	"bytes"
	"embed"
	"encoding/json"
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/yanizio/contact/internal/component"
	"github.com/yanizio/contact/internal/form"
	"github.com/yanizio/contact/internal/metrics"
	"github.com/yanizio/contact/internal/requestinfo"
	"github.com/yanizio/contact/internal/session"
)

//go:embed static/live.js
var staticFS embed.FS

// Compile-time assertions.
var (
	_ component.Component   = (*Component)(nil)
	_ component.Initializer = (*Component)(nil)
)

// Component serves the contact form.
type Component struct {
	log     *zap.SugaredLogger
	store   *session.Store
	cookies session.Cookies
	tokens  *form.TokenSigner
	script  []byte
}

// New returns the contact component.  Register it with component.Register.
func New(log *zap.SugaredLogger, store *session.Store, cookies session.Cookies, tokens *form.TokenSigner) *Component {
	return &Component{log: log, store: store, cookies: cookies, tokens: tokens}
}

/*────────────────── component.Component methods ───────────────────────────*/

// Name returns the canonical component key.
func (c *Component) Name() string { return "contact" }

// Init loads the embedded script once.
func (c *Component) Init() error {
	b, err := fs.ReadFile(staticFS, "static/live.js")
	if err != nil {
		return err
	}
	c.script = b
	return nil
}

// Routes builds the router mounted at “/contact”.
func (c *Component) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/", c.handlePage)
	r.Get("/state", c.handleState)
	r.Get("/live.js", c.handleScript)

	r.Group(func(p chi.Router) {
		p.Use(c.requireToken)
		p.Post("/", c.handleSubmit)
		p.Post("/change", c.handleChange)
		p.Post("/reset", c.handleReset)
	})
	return r
}

/*──────────────────────────── Handlers ─────────────────────────────────────*/

func (c *Component) handlePage(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	tok, err := c.tokens.Generate()
	if err != nil {
		c.fail(w, "csrf token", err)
		return
	}

	var page form.Page
	c.store.Do(id, func(ctrl *form.Controller) { page = form.NewPage(ctrl, tok) })
	c.renderPage(w, http.StatusOK, page)
}

func (c *Component) handleSubmit(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}
	tok, err := c.tokens.Generate()
	if err != nil {
		c.fail(w, "csrf token", err)
		return
	}

	var (
		res  form.Result
		page form.Page
	)
	c.store.Do(id, func(ctrl *form.Controller) {
		res, err = form.HandleSubmit(ctrl, r)
		page = form.NewPage(ctrl, tok)
	})
	if err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}

	logFields := append([]any{"session", shortID(id)}, visitorFields(r)...)

	if !res.Accepted {
		metrics.SubmissionsTotal.WithLabelValues(metrics.ResultRejected).Inc()
		failed := make([]string, 0, len(res.Errors))
		for _, fe := range res.Errors.List() {
			metrics.ValidationErrorsTotal.WithLabelValues(string(fe.Name)).Inc()
			failed = append(failed, string(fe.Name))
		}
		c.log.Infow("contact rejected", append(logFields, "fields", failed)...)
		c.renderPage(w, http.StatusUnprocessableEntity, page)
		return
	}

	metrics.SubmissionsTotal.WithLabelValues(metrics.ResultAccepted).Inc()
	c.log.Infow("contact submitted", append(logFields, "message", res.Snapshot.HasMessage())...)
	c.renderPage(w, http.StatusOK, page)
}

// changeResponse is the JSON body of POST /contact/change.
type changeResponse struct {
	Errors form.ErrorSet `json:"errors"`
	Valid  bool          `json:"valid"`
}

func (c *Component) handleChange(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	f := form.Field(r.PostFormValue("field"))
	value := r.PostFormValue("value")

	var (
		resp changeResponse
		err  error
	)
	c.store.Do(id, func(ctrl *form.Controller) {
		if resp.Errors, err = ctrl.Change(f, value); err == nil {
			resp.Valid = ctrl.Errors().Valid()
		}
	})
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	metrics.FieldChangesTotal.WithLabelValues(string(f)).Inc()
	writeJSON(w, http.StatusOK, resp)
}

// stateResponse is the JSON body of GET /contact/state.
type stateResponse struct {
	Errors    form.ErrorSet `json:"errors"`
	Submitted *form.Values  `json:"submitted"`
}

func (c *Component) handleState(w http.ResponseWriter, r *http.Request) {
	id, ok := c.sessionID(w, r)
	if !ok {
		return
	}

	var resp stateResponse
	c.store.Do(id, func(ctrl *form.Controller) {
		resp.Errors = ctrl.Visible()
		if snap, ok := ctrl.Submitted(); ok {
			resp.Submitted = &snap
		}
	})
	writeJSON(w, http.StatusOK, resp)
}

func (c *Component) handleReset(w http.ResponseWriter, r *http.Request) {
	if ck, err := r.Cookie(session.CookieName); err == nil {
		c.store.Delete(ck.Value)
	}
	c.cookies.Clear(w)
	http.Redirect(w, r, "/contact", http.StatusSeeOther)
}

func (c *Component) handleScript(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
	_, _ = w.Write(c.script)
}

/*──────────────────────────── Helpers ──────────────────────────────────────*/

// requireToken rejects POSTs without a valid CSRF token.
func (c *Component) requireToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tok := r.Header.Get("X-CSRF-Token")
		if tok == "" {
			tok = r.PostFormValue("csrf_token")
		}
		if !c.tokens.Verify(tok) {
			metrics.CSRFFailuresTotal.Inc()
			c.log.Warnw("csrf token rejected", "path", r.URL.Path)
			http.Error(w, "Security token invalid.  Please refresh and try again.", http.StatusForbidden)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (c *Component) sessionID(w http.ResponseWriter, r *http.Request) (string, bool) {
	id, err := c.cookies.ID(w, r)
	if err != nil {
		c.fail(w, "session id", err)
		return "", false
	}
	return id, true
}

// renderPage buffers the page so a template error can still become a 500.
func (c *Component) renderPage(w http.ResponseWriter, status int, page form.Page) {
	var buf bytes.Buffer
	if err := form.RenderPage(&buf, page); err != nil {
		c.fail(w, "render contact page", err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// visitorFields flattens the request info attached by requestinfo.Enrich
// into zap key/value pairs.  It returns nil when the middleware did not run.
func visitorFields(r *http.Request) []any {
	ri := requestinfo.FromContext(r.Context())
	if ri == nil {
		return nil
	}
	fields := []any{
		"browser", ri.UA.Browser,
		"browser_version", ri.UA.Version,
		"os", ri.UA.OS,
		"os_version", ri.UA.OSVersion,
		"platform", ri.UA.Platform,
		"device", ri.UA.Device,
		"bot", ri.UA.IsBot,
		"lang", ri.UA.PrimaryLang,
		"country", ri.Geo.CountryISO,
		"city", ri.Geo.City,
		"received", ri.Timestamp,
	}
	if ri.URL != nil {
		fields = append(fields, "path", ri.URL.Path)
	}
	return fields
}

func (c *Component) fail(w http.ResponseWriter, what string, err error) {
	c.log.Errorw(what+" failed", "err", err)
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// shortID keeps session ids out of logs while still letting operators
// correlate one visitor's events.
func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
