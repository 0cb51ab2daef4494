// components/contact/contact_test.go
//
// End-to-end tests for the contact component.
//
// Context
// -------
// Each test drives a real httptest.Server through an http.Client with a
// cookie jar, so one test is one visitor.  Typing into a field is a POST to
// /contact/change; clicking submit is a form POST to /contact carrying every
// input the page holds, exactly as a browser would send it.
//
// Notes
// -----
// • Oxford commas, two spaces after periods.

package contact

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/yanizio/contact/internal/form"
	"github.com/yanizio/contact/internal/requestinfo"
	"github.com/yanizio/contact/internal/session"
)

const (
	msgFirstName = "Error: firstName must have at least 5 characters."
	msgLastName  = "Error: lastName is a required field."
	msgEmail     = "Error: email must be a valid email address."
	longMessage  = "This is a message and I can write whatever I want"
)

// visitor is one browser session against the test server.
type visitor struct {
	t      *testing.T
	srv    *httptest.Server
	client *http.Client
	tokens *form.TokenSigner
	typed  url.Values // what the inputs currently hold
}

func newVisitor(t *testing.T) *visitor {
	t.Helper()
	return newLoggedVisitor(t, zap.NewNop().Sugar())
}

// newLoggedVisitor is newVisitor with the component logging to log.
func newLoggedVisitor(t *testing.T, log *zap.SugaredLogger) *visitor {
	t.Helper()

	store, err := session.NewStore(100)
	require.NoError(t, err)
	tokens, err := form.NewTokenSigner(nil, time.Hour)
	require.NoError(t, err)

	c := New(log, store, session.Cookies{}, tokens)
	require.NoError(t, c.Init())

	r := chi.NewRouter()
	r.Use(requestinfo.Enrich)
	r.Mount("/contact", c.Routes())
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &visitor{
		t:      t,
		srv:    srv,
		client: &http.Client{Jar: jar},
		tokens: tokens,
		typed:  url.Values{"firstName": {""}, "lastName": {""}, "email": {""}, "message": {""}},
	}
}

func (v *visitor) token() string {
	tok, err := v.tokens.Generate()
	require.NoError(v.t, err)
	return tok
}

func (v *visitor) page() (int, string) {
	v.t.Helper()
	resp, err := v.client.Get(v.srv.URL + "/contact")
	require.NoError(v.t, err)
	return readBody(v.t, resp)
}

// typeInto mimics a visitor typing value into field.
func (v *visitor) typeInto(field, value string) changeResponse {
	v.t.Helper()
	v.typed.Set(field, value)

	req, err := http.NewRequest(http.MethodPost, v.srv.URL+"/contact/change",
		strings.NewReader(url.Values{"field": {field}, "value": {value}}.Encode()))
	require.NoError(v.t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", v.token())

	resp, err := v.client.Do(req)
	require.NoError(v.t, err)
	defer resp.Body.Close()
	require.Equal(v.t, http.StatusOK, resp.StatusCode)

	var out changeResponse
	require.NoError(v.t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// submit mimics clicking the submit button.
func (v *visitor) submit() (int, string) {
	v.t.Helper()
	body := url.Values{}
	for k, vals := range v.typed {
		body[k] = vals
	}
	body.Set("csrf_token", v.token())

	resp, err := v.client.PostForm(v.srv.URL+"/contact", body)
	require.NoError(v.t, err)
	return readBody(v.t, resp)
}

func readBody(t *testing.T, resp *http.Response) (int, string) {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(b)
}

func countErrors(html string) int { return strings.Count(html, `data-testid="error"`) }

/*──────────────────────────── Page ─────────────────────────────────────────*/

func TestPage_RendersWithoutErrors(t *testing.T) {
	v := newVisitor(t)

	code, html := v.page()

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, strings.ToLower(html), "contact form")
	assert.Zero(t, countErrors(html))
	assert.NotContains(t, html, "Display")
}

/*──────────────────────────── Live validation ──────────────────────────────*/

func TestChange_ShortFirstNameShowsOneError(t *testing.T) {
	v := newVisitor(t)

	out := v.typeInto("firstName", "Jaco")

	require.Len(t, out.Errors, 1)
	assert.Equal(t, msgFirstName, out.Errors[form.FirstName])
	assert.False(t, out.Valid)

	_, html := v.page()
	assert.Equal(t, 1, countErrors(html))
	assert.Contains(t, html, msgFirstName)
}

func TestChange_InvalidEmail(t *testing.T) {
	v := newVisitor(t)

	out := v.typeInto("email", "i")

	require.Len(t, out.Errors, 1)
	assert.Equal(t, msgEmail, out.Errors[form.Email])
}

func TestChange_UnknownField(t *testing.T) {
	v := newVisitor(t)

	req, err := http.NewRequest(http.MethodPost, v.srv.URL+"/contact/change",
		strings.NewReader("field=phone&value=555"))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("X-CSRF-Token", v.token())

	resp, err := v.client.Do(req)
	require.NoError(t, err)
	code, body := readBody(t, resp)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Contains(t, body, `"error":"unknown form field: \"phone\""`)

	// The rejected event leaves the visitor's state alone.
	assert.Empty(t, v.typeInto("email", "bluebill1049@hotmail.com").Errors)
}

/*──────────────────────────── Submit ───────────────────────────────────────*/

func TestSubmit_EmptyShowsThreeErrors(t *testing.T) {
	v := newVisitor(t)

	code, html := v.submit()

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, 3, countErrors(html))
	assert.Contains(t, html, msgFirstName)
	assert.Contains(t, html, msgLastName)
	assert.Contains(t, html, msgEmail)
}

func TestSubmit_MissingEmail(t *testing.T) {
	v := newVisitor(t)
	v.typeInto("firstName", "Jacob")
	v.typeInto("lastName", "Lang")

	code, html := v.submit()

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, 1, countErrors(html))
	assert.NotContains(t, html, msgFirstName)
	assert.NotContains(t, html, msgLastName)
	assert.Contains(t, html, msgEmail)
}

func TestSubmit_MissingLastName(t *testing.T) {
	v := newVisitor(t)
	v.typeInto("firstName", "Jacob")
	v.typeInto("email", "bluebill1049@hotmail.com")

	code, html := v.submit()

	assert.Equal(t, http.StatusUnprocessableEntity, code)
	assert.Equal(t, 1, countErrors(html))
	assert.Contains(t, html, msgLastName)
}

func TestSubmit_WithoutMessageHidesMessageDisplay(t *testing.T) {
	v := newVisitor(t)
	v.typeInto("firstName", "Jacob")
	v.typeInto("lastName", "Lang")
	v.typeInto("email", "bluebill1049@hotmail.com")

	code, html := v.submit()

	assert.Equal(t, http.StatusOK, code)
	assert.Zero(t, countErrors(html))
	assert.Contains(t, html, `data-testid="firstnameDisplay"`)
	assert.NotContains(t, html, "messageDisplay")
}

func TestSubmit_AllFieldsDisplayed(t *testing.T) {
	v := newVisitor(t)
	v.typeInto("firstName", "Jacob")
	v.typeInto("lastName", "Lang")
	v.typeInto("email", "bluebill1049@hotmail.com")
	v.typeInto("message", longMessage)

	code, html := v.submit()

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, html, `<p data-testid="firstnameDisplay">First Name: Jacob</p>`)
	assert.Contains(t, html, `<p data-testid="lastnameDisplay">Last Name: Lang</p>`)
	assert.Contains(t, html, `<p data-testid="emailDisplay">Email: bluebill1049@hotmail.com</p>`)
	assert.Contains(t, html, `<p data-testid="messageDisplay">Message: `+longMessage+`</p>`)
}

func TestSubmit_PlainFormPostWithoutLiveEvents(t *testing.T) {
	v := newVisitor(t)
	v.typed.Set("firstName", "Jacob")
	v.typed.Set("lastName", "Lang")
	v.typed.Set("email", "bluebill1049@hotmail.com")

	code, html := v.submit()

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, html, `data-testid="emailDisplay"`)
	assert.NotContains(t, html, "messageDisplay")
}

func TestSubmit_RequiresToken(t *testing.T) {
	v := newVisitor(t)

	resp, err := v.client.PostForm(v.srv.URL+"/contact", url.Values{"firstName": {"Jacob"}})
	require.NoError(t, err)
	code, _ := readBody(t, resp)

	assert.Equal(t, http.StatusForbidden, code)
}

func TestSubmit_LogsVisitorDetails(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	v := newLoggedVisitor(t, zap.New(core).Sugar())

	v.submit()
	v.typeInto("firstName", "Jacob")
	v.typeInto("lastName", "Lang")
	v.typeInto("email", "bluebill1049@hotmail.com")
	v.submit()

	rejected := logs.FilterMessage("contact rejected").All()
	require.Len(t, rejected, 1)
	assert.Equal(t, []any{"firstName", "lastName", "email"}, rejected[0].ContextMap()["fields"])

	accepted := logs.FilterMessage("contact submitted").All()
	require.Len(t, accepted, 1)
	fields := accepted[0].ContextMap()
	assert.Equal(t, "/contact", fields["path"])
	assert.Equal(t, false, fields["message"])
	for _, key := range []string{"browser", "browser_version", "os", "os_version", "platform", "device", "bot", "lang", "country", "city", "received"} {
		assert.Contains(t, fields, key)
	}
}

/*──────────────────────────── State and reset ──────────────────────────────*/

func TestState_ReflectsSnapshot(t *testing.T) {
	v := newVisitor(t)
	v.typeInto("firstName", "Jacob")
	v.typeInto("lastName", "Lang")
	v.typeInto("email", "bluebill1049@hotmail.com")
	v.submit()

	resp, err := v.client.Get(v.srv.URL + "/contact/state")
	require.NoError(t, err)
	defer resp.Body.Close()

	var st stateResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&st))
	assert.Empty(t, st.Errors)
	require.NotNil(t, st.Submitted)
	assert.Equal(t, "Jacob", st.Submitted.FirstName)
	assert.False(t, st.Submitted.HasMessage())
}

func TestReset_ClearsState(t *testing.T) {
	v := newVisitor(t)
	v.typeInto("firstName", "Jaco")

	resp, err := v.client.PostForm(v.srv.URL+"/contact/reset", url.Values{"csrf_token": {v.token()}})
	require.NoError(t, err)
	code, html := readBody(t, resp)

	assert.Equal(t, http.StatusOK, code) // client followed the 303
	assert.Zero(t, countErrors(html))
}

func TestScript_Served(t *testing.T) {
	v := newVisitor(t)

	resp, err := v.client.Get(v.srv.URL + "/contact/live.js")
	require.NoError(t, err)
	code, body := readBody(t, resp)

	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, resp.Header.Get("Content-Type"), "javascript")
	assert.Contains(t, body, "/contact/change")
}
