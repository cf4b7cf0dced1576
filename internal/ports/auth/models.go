package auth

import "strings"

// Role es el rol explícito del actor autenticado.
type Role string

const (
	RoleUser  Role = "user"
	RoleGuide Role = "guide"
)

func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, true
	case RoleGuide:
		return RoleGuide, true
	default:
		return "", false
	}
}

// Claims representa la información extraída del token.
type Claims struct {
	UserID string
	Email  string
	Role   Role
}

// IsGuide es el predicado de capacidad para operaciones de guía.
func (c Claims) IsGuide() bool {
	return c.Role == RoleGuide
}
