package domain

import "time"

type UserRole string

const (
	RoleDemo    UserRole = "demo"
	RoleCommon  UserRole = "common"
	RolePremium UserRole = "premium"
)

// User is the account record the session subsystem authenticates against.
// Passwords are stored as argon2id hashes, never in plaintext.
type User struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Email        string    `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"not null"`
	Role         UserRole  `json:"role" gorm:"size:16;default:common"`
	IsActive     bool      `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
