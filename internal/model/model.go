// Package model holds the persistence records of the application.
//
// These are the rows the repository layer reads and writes. They carry
// every stored column, secrets included, and are never serialized to
// clients directly: the schema package builds the public views from them.
package model

import "time"

// Supervisor owns a set of users. HashedPassword is a bcrypt hash.
type Supervisor struct {
	ID             int64     `db:"id"`
	Email          string    `db:"email"`
	HashedPassword string    `db:"hashed_password"`
	IsAdmin        bool      `db:"is_admin"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`

	Users []User `db:"-"`
}

// User is a monitored person belonging to one supervisor.
type User struct {
	ID           int64     `db:"id"`
	SupervisorID int64     `db:"supervisor_id"`
	Name         string    `db:"name"`
	ProfileImage string    `db:"profile_image"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`

	SocialNetworks []SocialNetwork `db:"-"`
}

// SocialNetwork is an account linked to a user. EncryptedPassword holds the
// sealed credential (nonce + ciphertext).
type SocialNetwork struct {
	ID                int64     `db:"id"`
	UserID            int64     `db:"user_id"`
	Name              string    `db:"name"`
	Email             string    `db:"email"`
	EncryptedPassword []byte    `db:"encrypted_password"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`

	Scores []Score `db:"-"`
}

// Score is one dated measurement for a social network account.
type Score struct {
	ID              int64     `db:"id"`
	SocialNetworkID int64     `db:"social_network_id"`
	Score1          float64   `db:"score_1"`
	Score2          float64   `db:"score_2"`
	Score3          float64   `db:"score_3"`
	Score4          float64   `db:"score_4"`
	Date            time.Time `db:"date"`
	CreatedAt       time.Time `db:"created_at"`
}
