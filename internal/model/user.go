package model

import "time"

// Role names carried in the access token's role claim.
const (
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table. PasswordHash is never serialised.
//
// Fields:
//
//	ID           – primary key identifier of the user.
//	Email        – unique, lower-cased email address.
//	PasswordHash – bcrypt hashed password.
//	Role         – USER or ADMIN.
//	CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    `json:"id"`    // users.id
	Email        string    `json:"email"` // users.email
	PasswordHash string    `json:"-"`     // users.password_hash
	Role         string    `json:"role"`  // users.role
	CreatedAt    time.Time `json:"-"`     // users.created_at
}
