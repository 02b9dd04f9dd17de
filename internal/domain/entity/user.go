package entity

import "time"

// Roles de la aplicación.
const (
	RoleOperador = "operador" // puede editar la configuración del cierre
	RoleStaff    = "staff"    // sesión anónima de piso: registra movimientos y deshace
)

// User cuenta de operador (las sesiones de piso son anónimas y no se persisten).
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Status       string // active | disabled
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
