package model

import (
	"time"

	"github.com/honeyflow/hive-api/internal/auth"
)

// User represents an application user record as stored in the `users`
// table. PasswordHash never leaves the repository layer; handlers expose
// users through OwnerSummary or dedicated response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Email        – unique, stored trimmed and lower-cased.
//  PasswordHash – bcrypt hashed password.
//  FullName     – display name of the user.
//  Role         – one of the closed role enum values.
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           uint64    // users.id
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	FullName     string    // users.full_name
	Role         auth.Role // users.role
	CreatedAt    time.Time // users.created_at
}

// OwnerSummary is the trimmed-down view of a user attached to hive
// responses. Only id, fullName and email are ever exposed.
type OwnerSummary struct {
	ID       uint64 `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// Summary converts a full user row into its public owner summary.
func (u *User) Summary() *OwnerSummary {
	return &OwnerSummary{ID: u.ID, FullName: u.FullName, Email: u.Email}
}
