package main

import "time"

type user struct {
	ID           int       `json:"id"`
	CreatedAt    time.Time `json:"created_at"`
	Email        string    `json:"email"`
	FirstName    string    `json:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty"`
	PasswordHash []byte    `json:"-"`
}

// session rows back the cookie value handed out at login. Expired rows are
// treated as absent by every lookup even before the sweeper removes them.
type session struct {
	ID        string
	UserID    int
	CreatedAt time.Time
	ExpiresAt time.Time
}

type passwordResetToken struct {
	Token     string
	Email     string
	CreatedAt time.Time
	ExpiresAt time.Time
	Used      bool
}

type todo struct {
	ID          int        `json:"id"`
	CreatedAt   time.Time  `json:"created_at"`
	UserID      int        `json:"user_id"`
	Text        string     `json:"text"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at"`
}
