package domain

import "time"

type User struct {
	ID           int64
	Email        string
	Username     string
	PasswordHash string `json:"-"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Identity is the public projection of a user that travels with an
// authenticated request.
type Identity struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

func (u *User) Identity() Identity {
	return Identity{
		ID:       u.ID,
		Email:    u.Email,
		Username: u.Username,
	}
}
