package domain

import "time"

// Session is the server-side state behind an opaque token. The browser only
// ever holds the token; everything else stays in the session store.
//
// Sessions use fixed-window expiry: ExpiresAt is set once at creation and is
// never extended on access.
type Session struct {
	Token     string    `json:"token"`
	User      User      `json:"user"`
	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session is past its expiry at the given
// instant. An expired session is equivalent to no session.
func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}
