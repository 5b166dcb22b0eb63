package model

import "time"

// PlayerID uniquely identifies a player across the system
type PlayerID string

// Player represents an authenticated participant
type Player struct {
	ID        PlayerID
	Email     string
	CreatedAt time.Time
}

// Account extends Player with credential data.
// Stored separately so password hashes never travel with sessions.
type Account struct {
	PlayerID     PlayerID
	Email        string // login email (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
