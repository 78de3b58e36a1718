package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	LoginID      string // 6-12 caracteres alfanuméricos, único
	Name         string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, manager, operator
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
