package domain

import "time"

// Role is the kind of account a user registered as.
type Role string

const (
	RoleDonor Role = "donor"
	RoleNGO   Role = "ngo"
)

// User represents a login account.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"passwordHash"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}
