package models

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash []byte
	Salt         []byte
	CreatedAt    time.Time
}

// Identity is the authenticated caller of a request. Every task operation
// receives it explicitly.
type Identity struct {
	UserID string
	Name   string
}
