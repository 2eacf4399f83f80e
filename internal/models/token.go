package models

import (
	"time"
)

// Claims is the payload recovered from a validated token.
// Timestamps are seconds since epoch, matching the wire format.
type Claims struct {
	Subject   string `json:"sub"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// IssuedToken is a freshly signed token together with its expiry
type IssuedToken struct {
	Value     string
	ExpiresAt time.Time
}
