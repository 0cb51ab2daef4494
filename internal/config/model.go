// internal/config/model.go
//
// Typed configuration model for the contact service.
//
// Context
// -------
// These structs define the shape of the configuration tree that
// `internal/config/loader.go` builds from three overlay layers:
//
//   • optional `.env`                           – dotenv values,
//   • `conf/global.yaml`                        – primary static file,
//   • `CONTACT_`-prefixed environment overrides – highest precedence.
//
// Validation happens immediately after unmarshal; the app fails fast if
// required fields are missing.
//
// Notes
// -----
//   • Struct tags use `koanf:"…"`, not `yaml:"…"`.  Koanf ignores `yaml` tags
//     unless configured otherwise.
//   • The `Paths` block is filled at runtime; YAML must not try to set it.
//   • Oxford commas, two spaces after periods.  No em-dash.

package config

import "time"

//
// HTTP section
//

// HTTP holds web-server tunables.
type HTTP struct {
	ListenAddr   string        `koanf:"listen_addr"   validate:"required,hostname_port"`
	ForceHTTPS   bool          `koanf:"force_https"`
	ReadTimeout  time.Duration `koanf:"read_timeout"  validate:"gt=0"`
	WriteTimeout time.Duration `koanf:"write_timeout" validate:"gt=0"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"  validate:"gt=0"`
}

//
// Session section
//

// Session bounds the in-memory store of per-visitor form state.
type Session struct {
	MaxEntries   int  `koanf:"max_entries"   validate:"min=1"`
	CookieSecure bool `koanf:"cookie_secure"`
}

//
// Security section
//

// Security holds the CSRF key and token lifetime.  CSRFKey is base64url
// without padding and must decode to at least 32 bytes.  Leave it empty in
// development to get a random per-process key.
type Security struct {
	CSRFKey     string        `koanf:"csrf_key"      validate:"omitempty,base64rawurl"`
	TokenMaxAge time.Duration `koanf:"token_max_age" validate:"gt=0"`
}

//
// GeoIP section
//

// GeoIP points at an optional MaxMind GeoLite2-City database.
type GeoIP struct {
	DBPath string `koanf:"db_path" validate:"omitempty,file"`
}

//
// Log section
//

// Log controls the zap logger.
type Log struct {
	Tee   bool   `koanf:"tee"`
	Level string `koanf:"level" validate:"omitempty,oneof=debug info warn error"`
}

//
// Paths section (runtime only)
//

// Paths is resolved at runtime, never set in YAML or env.  The loader
// discovers `Root` (repo root or CONTACT_ROOT override) so later code can
// build absolute file paths.
type Paths struct {
	Root string // CONTACT_ROOT or discovered parent
}

//
// Root aggregate
//

// Config is the aggregate returned by Load().  Treat it as read-only.
type Config struct {
	HTTP     HTTP     `koanf:"http"`
	Session  Session  `koanf:"session"`
	Security Security `koanf:"security"`
	GeoIP    GeoIP    `koanf:"geoip"`
	Log      Log      `koanf:"log"`
	Paths    Paths    `koanf:"-"` // not loaded from config files
}

// defaults are loaded before the YAML layer so a minimal file still yields
// a runnable config.
var defaults = map[string]any{
	"http.listen_addr":       ":8080",
	"http.read_timeout":      "10s",
	"http.write_timeout":     "15s",
	"http.idle_timeout":      "60s",
	"session.max_entries":    10000,
	"security.token_max_age": "2h",
	"log.level":              "info",
}
