package dto

// SettingsResponse configuración del cierre diario.
type SettingsResponse struct {
	ResetTime     string `json:"resetTime"`
	LastResetDate string `json:"lastResetDate"`
}

// UpdateSettingsRequest edición del horario de cierre. El marcador de último
// cierre no es editable por usuarios; solo lo avanza el controlador.
type UpdateSettingsRequest struct {
	ResetTime string `json:"resetTime"`
}

// ResetStatusResponse estado del controlador de cierre.
type ResetStatusResponse struct {
	State         string `json:"state"` // IDLE | CHECKING | RESETTING
	ResetTime     string `json:"resetTime"`
	LastResetDate string `json:"lastResetDate"`
}
