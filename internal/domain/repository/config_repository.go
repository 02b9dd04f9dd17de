package repository

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// ConfigRepository configuración del cierre diario (fila única).
type ConfigRepository interface {
	// Get devuelve la configuración vigente.
	Get(ctx context.Context) (*entity.ResetConfig, error)
	// Save reemplaza la configuración (ediciones del operador).
	Save(ctx context.Context, cfg *entity.ResetConfig) error
	// GetForUpdate lee la configuración bloqueando la fila (SELECT FOR UPDATE).
	// Solo válido dentro de una transacción: es la guarda que serializa los
	// cierres concurrentes de varios procesos.
	GetForUpdate(ctx context.Context) (*entity.ResetConfig, error)
	// SetLastResetDate avanza solo el marcador de último cierre.
	SetLastResetDate(ctx context.Context, date string) error
}
