package requestinfo

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/avct/uasurfer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const chromeMac = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) " +
	"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.6367.91 Safari/537.36"

func TestEnrich_AttachesInfo(t *testing.T) {
	var got *RequestInfo
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = FromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/contact?x=1", nil)
	req.Header.Set("User-Agent", chromeMac)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("X-Forwarded-For", "203.0.113.7, 10.0.0.1")

	Enrich(next).ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, got)
	assert.Equal(t, "Chrome", got.UA.Browser)
	assert.Equal(t, "Desktop", got.UA.Device)
	assert.False(t, got.UA.IsBot)
	assert.Equal(t, "en-us", got.UA.PrimaryLang)
	assert.Equal(t, "203.0.113.7", got.Geo.IP.String())
	assert.Empty(t, got.Geo.CountryISO)
	assert.Equal(t, "/contact", got.URL.Path)
}

func TestFromContext_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, FromContext(req.Context()))
}

func TestClientIP_Fallbacks(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = "198.51.100.2:4321"
	assert.Equal(t, "198.51.100.2", clientIP(req).String())

	req.Header.Set("X-Real-Ip", "192.0.2.9")
	assert.Equal(t, "192.0.2.9", clientIP(req).String())
}

func TestTrimVersion(t *testing.T) {
	assert.Equal(t, "0", trimVersion(uasurferVersion(0, 0, 0)))
	assert.Equal(t, "124", trimVersion(uasurferVersion(124, 0, 0)))
	assert.Equal(t, "10.15.7", trimVersion(uasurferVersion(10, 15, 7)))
}

func uasurferVersion(major, minor, patch int) uasurfer.Version {
	return uasurfer.Version{Major: major, Minor: minor, Patch: patch}
}

func TestInitGeo_EmptyPathDisabled(t *testing.T) {
	require.NoError(t, InitGeo(""))
	assert.NoError(t, CloseGeo())
	assert.Error(t, InitGeo("/nonexistent/GeoLite2-City.mmdb"))
}
