// internal/config/validator.go
//
// Thin wrapper around go-playground/validator.
//
// Context
// -------
// `internal/config/loader.go` calls `validateStruct` immediately after it
// unmarshals the merged Koanf tree into a `Config` instance.  Any tag
// mismatch or validation error aborts startup, ensuring the binary never
// runs with partial, malformed, or missing configuration.
//
// Built-in rules carry most of the load (`required`, `hostname_port`,
// `base64rawurl`, `oneof`).  The one cross-field rule, a minimum decoded
// CSRF key length, is registered as a struct-level check below.
//
// Notes
// -----
//   • Oxford commas, two spaces after periods.
//   • Section dividers use the simple comment style requested.

package config

import (
	"encoding/base64"

	"github.com/go-playground/validator/v10"
)

//
// validator instance (package-level singleton)
//

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	val.RegisterStructValidation(securityLevel, Security{})
	return val
}

// securityLevel rejects CSRF keys that decode to fewer than 32 bytes.
func securityLevel(sl validator.StructLevel) {
	sec := sl.Current().Interface().(Security)
	if sec.CSRFKey == "" {
		return
	}
	raw, err := base64.RawURLEncoding.DecodeString(sec.CSRFKey)
	if err == nil && len(raw) < 32 {
		sl.ReportError(sec.CSRFKey, "CSRFKey", "csrf_key", "min32bytes", "")
	}
}

//
// public API
//

// validateStruct returns the first validation error, or nil on success.
func validateStruct(c *Config) error {
	return v.Struct(c)
}
