// Package auth implements password hashing and the issuance and verification
// of the HS256 access and refresh tokens handed out at login.
//
// Access and refresh tokens are signed with distinct secrets, so a leaked key
// only compromises one token class.
package auth

import (
	"errors"
	"time"
)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

// Config holds the immutable token settings. It is built once at startup.
type Config struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	// Issuer is written to the iss claim when non-empty.
	Issuer string
}

// Clock returns the current time. Tests substitute a fixed clock.
type Clock func() time.Time

// Option customises an Issuer or a Verifier.
type Option func(*options)

type options struct {
	now Clock
}

// WithClock overrides time.Now.
func WithClock(now Clock) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func (c Config) validate() error {
	if len(c.AccessSecret) == 0 || len(c.RefreshSecret) == 0 {
		return errors.New("auth: access and refresh secrets are required")
	}
	if string(c.AccessSecret) == string(c.RefreshSecret) {
		return errors.New("auth: access and refresh secrets must differ")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.AccessTTL <= 0 {
		c.AccessTTL = DefaultAccessTTL
	}
	if c.RefreshTTL <= 0 {
		c.RefreshTTL = DefaultRefreshTTL
	}
	return c
}
