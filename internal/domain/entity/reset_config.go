package entity

// ResetDateLayout formato del marcador de último cierre (fecha calendario).
const ResetDateLayout = "2006-01-02"

// ResetTimeLayout formato del horario de cierre configurado.
const ResetTimeLayout = "15:04"

// ResetConfig configuración del cierre diario: horario configurado (HH:MM) y
// marcador de la última fecha en que el cierre se completó.
// Invariante: una vez que LastResetDate es la fecha de hoy, ningún intento
// duplicado del mismo día puede volver a ejecutar el cierre (guarda de
// idempotencia, evaluada dentro de la transacción condicional).
type ResetConfig struct {
	ResetTime     string `json:"resetTime"`     // HH:MM
	LastResetDate string `json:"lastResetDate"` // YYYY-MM-DD
}
