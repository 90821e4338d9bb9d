package user

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("user not found")
)

// User is a staff account (shop admin or barber) for the management console.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Role         string // auth.RoleAdmin or auth.RoleBarber
	CreatedAt    time.Time
	LastLoginAt  *time.Time
	IsActive     bool
}
