package models

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Role is the closed set of user roles. Anything that is not an admin or
// a teacher carries no write privileges.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleOther   Role = "other"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleTeacher, RoleOther:
		return true
	}
	return false
}

// User represents an account in the system. Users are created by an admin
// (or by the bootstrap seed); there is no self-registration.
type User struct {
	ID           int64     `json:"id"`
	Role         Role      `json:"role"`
	FullName     string    `json:"full_name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	SubmittedBy  *int64    `json:"submitted_by"`
	CreatedAt    time.Time `json:"created_at"`
}

// SetPassword hashes the plaintext password with bcrypt and stores the
// digest on the user. The plaintext is never retained.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the plaintext password matches the stored
// digest. It returns false for any mismatch and never panics on bad input.
func (u *User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
