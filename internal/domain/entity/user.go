package entity

import "time"

// User representa un usuario del sistema. Solo los usuarios activos pueden iniciar sesión.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
