package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound            = errors.New("recurso no encontrado")
	ErrUserNotFound        = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists  = errors.New("el email ya está registrado")
	ErrInvalidInput        = errors.New("entrada inválida")
	ErrUnauthorized        = errors.New("no autorizado")
	ErrForbidden           = errors.New("acceso denegado")
	ErrConflict            = errors.New("conflicto con el estado actual")
	ErrEmptyMovement       = errors.New("nada para guardar")
	ErrInvalidRoute        = errors.New("ruta inválida")
	ErrUnknownSector       = errors.New("sector desconocido")
	ErrUnknownMovement     = errors.New("movimiento desconocido")
	ErrTransactionNotFound = errors.New("transacción no encontrada o ya deshecha")
	ErrInvalidResetTime    = errors.New("horario de cierre inválido, formato esperado HH:MM")
)
