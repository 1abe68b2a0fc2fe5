package domain

import "errors"

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")

// ErrInvalidSession covers every failed credential check: missing token,
// bad signature, malformed payload, or expiry. Callers are deliberately not
// told which check failed.
var ErrInvalidSession = errors.New("invalid session")

// Session is the identity decoded from a verified token. It is ephemeral
// and never persisted; validity of the token does not imply the referenced
// user or affiliate rows still exist.
type Session struct {
	UserID      string
	AffiliateID string // empty unless UserType is affiliate
	Role        Role
	UserType    UserType
}

// Identity is the re-checked result of a full authentication pass: the user
// row always present, the affiliate row only for affiliate-type sessions.
type Identity struct {
	User      *User
	Affiliate *Affiliate
}
