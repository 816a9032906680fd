// Package session holds the console's in-memory authentication state and
// the provider that owns it.
package session

// User is the authenticated identity
type User struct {
	UserID   string
	Username string
}

// Session is the in-memory record of the current authentication status.
// Invariant: Authenticated is true iff Token is non-empty, and User is set
// iff Token is set; the three fields only ever change together.
type Session struct {
	Authenticated bool
	Token         string
	User          *User
}
