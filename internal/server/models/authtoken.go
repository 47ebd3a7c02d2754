package models

import "time"

// AuthToken is an opaque bearer credential owned by exactly one user.
// Tokens carry no expiry; there is no revocation flow either, a token stays
// valid until its row is removed by hand.
type AuthToken struct {
	ID        int64
	UserID    int64
	Token     string
	CreatedAt time.Time
}
