// Package auth checks the shared-secret bearer credential. Clients present
// either the secret itself or a token signed with it.
package auth

import (
	"crypto/subtle"
	"errors"
	"strings"
	"time"
)

var (
	// ErrUnauthorized is returned for a missing or wrong credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrNoSecret is returned when tokens are requested without a configured secret.
	ErrNoSecret = errors.New("no secret configured")
)

// Authenticator validates bearer credentials against a shared secret.
type Authenticator struct {
	secret []byte
	now    func() time.Time
}

// New returns an Authenticator. An empty secret disables authentication.
func New(secret string) *Authenticator {
	return &Authenticator{
		secret: []byte(strings.TrimSpace(secret)),
		now:    time.Now,
	}
}

// Enabled reports whether a secret is configured.
func (a *Authenticator) Enabled() bool {
	return len(a.secret) > 0
}

// Check accepts credential when auth is disabled, when it equals the secret,
// or when it is a valid token signed with the secret.
func (a *Authenticator) Check(credential string) error {
	if !a.Enabled() {
		return nil
	}
	credential = strings.TrimSpace(credential)
	if credential == "" {
		return ErrUnauthorized
	}
	if subtle.ConstantTimeCompare([]byte(credential), a.secret) == 1 {
		return nil
	}
	if _, err := a.ValidateToken(credential); err == nil {
		return nil
	}
	return ErrUnauthorized
}
