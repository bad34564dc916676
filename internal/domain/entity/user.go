package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin = "admin"
	RoleSaler = "saler"
)

// ValidRole verifica que el rol sea uno de los conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleSaler
}

// User usuario del sistema (login por username/password).
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         string // admin | saler
	CreatedAt    time.Time
}
