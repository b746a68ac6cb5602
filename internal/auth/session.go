// Package auth holds the process-wide "logged in" flag.
package auth

import "sync/atomic"

// Session is a login flag. The zero value is logged out.
type Session struct {
	authenticated atomic.Bool
}

// IsAuthenticated reports the current value.
func (s *Session) IsAuthenticated() bool {
	return s.authenticated.Load()
}

// Login marks the session authenticated. There is no logout.
func (s *Session) Login() {
	s.authenticated.Store(true)
}

var defaultSession Session

// Default returns the process-wide session.
func Default() *Session {
	return &defaultSession
}
