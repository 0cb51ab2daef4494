// internal/form/csrf.go
//
// Contact – Forms subsystem: stateless CSRF token utilities.
//
// Context
//   The contact page embeds a hidden `csrf_token` input generated at render
//   time, and the live-validation script echoes it in an X-CSRF-Token header.
//   The server verifies the token on every POST to ensure the request came
//   from a page it rendered.  Tokens are *stateless*:
//
//      base64url( nonce | unixMicro | HMAC_SHA256(secret, nonce+unixMicro) )
//
//   •  nonce – 16 random bytes.  Prevents replay across visitors.
//   •  unixMicro – microseconds since Unix epoch, 8 bytes, big-endian.
//   •  HMAC – calculated with the configured secret.  Verifies authenticity.
//
//   Validation checks the signature and ensures the timestamp is within
//   maxAge.  No server-side state is required.
//
// Workflow
//   •  NewTokenSigner(secret, maxAge) → signer shared by all handlers.
//   •  Generate()                     → token string for the renderer.
//   •  Verify(tok)                    → constant-time verify; false on failure.
//
//------------------------------------------------------------------------------

package form

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const (
	nonceBytes    = 16
	tokenBytes    = nonceBytes + 8 + sha256.Size // nonce + ts + sig
	minSecretSize = 32
	clockSkew     = time.Minute
)

// ErrShortSecret is returned when the configured key is under 32 bytes.
var ErrShortSecret = errors.New("csrf secret must be at least 32 bytes")

// TokenSigner issues and verifies CSRF tokens.  It is safe for concurrent
// use.
type TokenSigner struct {
	secret []byte
	maxAge time.Duration
	now    func() time.Time
}

// NewTokenSigner returns a signer for secret.  An empty secret yields a random
// ephemeral key, so tokens stop verifying after a restart.
func NewTokenSigner(secret []byte, maxAge time.Duration) (*TokenSigner, error) {
	if len(secret) == 0 {
		secret = make([]byte, minSecretSize)
		if _, err := rand.Read(secret); err != nil {
			return nil, fmt.Errorf("generate csrf secret: %w", err)
		}
	}
	if len(secret) < minSecretSize {
		return nil, ErrShortSecret
	}
	return &TokenSigner{secret: secret, maxAge: maxAge, now: time.Now}, nil
}

// DecodeSecret parses a base64url (unpadded) key as stored in configuration.
// An empty string decodes to nil.
func DecodeSecret(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	b, err := base64.RawURLEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("decode csrf secret: %w", err)
	}
	return b, nil
}

// Generate creates a new token.  Call once per page render.
func (s *TokenSigner) Generate() (string, error) {
	nonce := make([]byte, nonceBytes)
	if _, err := rand.Read(nonce); err != nil {
		return "", err
	}

	ts := make([]byte, 8)
	binary.BigEndian.PutUint64(ts, uint64(s.now().UnixMicro()))

	buf := make([]byte, 0, tokenBytes)
	buf = append(buf, nonce...)
	buf = append(buf, ts...)
	buf = append(buf, s.sign(nonce, ts)...)

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Verify returns true if tok passes HMAC and age checks.
func (s *TokenSigner) Verify(tok string) bool {
	raw, err := base64.RawURLEncoding.DecodeString(tok)
	if err != nil || len(raw) != tokenBytes {
		return false
	}

	nonce := raw[:nonceBytes]
	tsBytes := raw[nonceBytes : nonceBytes+8]
	sig := raw[nonceBytes+8:]

	issued := time.UnixMicro(int64(binary.BigEndian.Uint64(tsBytes)))
	now := s.now()
	if now.Sub(issued) > s.maxAge || issued.Sub(now) > clockSkew {
		return false
	}

	return hmac.Equal(sig, s.sign(nonce, tsBytes))
}

func (s *TokenSigner) sign(nonce, ts []byte) []byte {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(nonce)
	mac.Write(ts)
	return mac.Sum(nil)
}
