package entity

import "time"

// AdminUsername is the only identity allowed to manage accounts.
const AdminUsername = "admin"

// User represents an account row in the `users` table.
type User struct {
	ID                  string    `db:"id"`
	Username            string    `db:"username"`
	PasswordHash        string    `db:"password_hash"`
	IsTemporaryPassword bool      `db:"is_temporary_password"`
	CreatedAt           time.Time `db:"created_at"`
	UpdatedAt           time.Time `db:"updated_at"`
}

// Identity is what a successful authentication yields and what a session
// carries. It never contains credential material.
type Identity struct {
	ID                  string
	Username            string
	IsTemporaryPassword bool
}

func (i Identity) IsAdmin() bool { return i.Username == AdminUsername }

func (u *User) Identity() Identity {
	return Identity{ID: u.ID, Username: u.Username, IsTemporaryPassword: u.IsTemporaryPassword}
}
