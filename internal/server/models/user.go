package models

import "time"

// User is a stored account record. Email is unique across all records and is
// compared as an exact byte match, both for the uniqueness constraint and for
// login lookups. PasswordHash holds a bcrypt digest; the plaintext password is
// never stored, and the hash must never appear in any external projection.
type User struct {
	ID           string
	Name         string
	Email        string
	CellPhone    string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
