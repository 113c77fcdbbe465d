package domain

import "github.com/golang-jwt/jwt/v5"

const (
	RoleAuthenticated = "authenticated"
	RoleServiceRole   = "service_role"
)

// Claims são as claims emitidas pelo backend hospedado; o usuário vem em "sub"
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

func (c *Claims) IsService() bool {
	return c.Role == RoleServiceRole
}
