package entity

import "time"

// Perfiles válidos para User.
const (
	ProfileAdmin    = "Administrador"
	ProfileOperator = "Operador"
)

// User representa un usuario del sistema. Email es único (case-insensitive).
type User struct {
	ID           string
	Name         string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Profile      string // Administrador, Operador
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidProfile indica si el perfil es uno de los soportados.
func ValidProfile(p string) bool {
	return p == ProfileAdmin || p == ProfileOperator
}
