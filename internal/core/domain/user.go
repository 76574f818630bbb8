package domain

import "time"

const (
	RoleAdmin  = "admin"
	RoleViewer = "viewer"
)

// User models an authenticated actor. Once attached to a session it is
// immutable; the gateway keeps no durable user store of its own — identity
// comes from the configured credential backend.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Role      string    `json:"role"`
	LoginTime time.Time `json:"loginTime"`
}
