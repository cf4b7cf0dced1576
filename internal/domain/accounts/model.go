package accounts

import (
	"strings"
	"time"

	"pet-dispatch/internal/ports/auth"
)

// Account es un usuario registrado con su rol explícito (user o guide).
type Account struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string

	FirstName string
	LastName  string

	Role      auth.Role
	CreatedAt time.Time
}

func (a Account) FullName() string {
	return strings.TrimSpace(a.FirstName + " " + a.LastName)
}
