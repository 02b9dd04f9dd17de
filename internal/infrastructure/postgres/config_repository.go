package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

var _ repository.ConfigRepository = (*ConfigRepo)(nil)

// ConfigRepo implementación de ConfigRepository sobre PostgreSQL (fila única, id = 1).
type ConfigRepo struct {
	q Querier
}

// NewConfigRepository construye el adaptador. Pasar pool o tx (Querier).
func NewConfigRepository(q Querier) *ConfigRepo {
	return &ConfigRepo{q: q}
}

// Get devuelve la configuración vigente.
func (r *ConfigRepo) Get(ctx context.Context) (*entity.ResetConfig, error) {
	return r.get(ctx, `SELECT reset_time, last_reset_date FROM app_config WHERE id = 1`)
}

// GetForUpdate lee la configuración bloqueando la fila. Solo dentro de una tx:
// serializa la guarda del cierre entre procesos concurrentes.
func (r *ConfigRepo) GetForUpdate(ctx context.Context) (*entity.ResetConfig, error) {
	return r.get(ctx, `SELECT reset_time, last_reset_date FROM app_config WHERE id = 1 FOR UPDATE`)
}

func (r *ConfigRepo) get(ctx context.Context, query string) (*entity.ResetConfig, error) {
	var cfg entity.ResetConfig
	err := r.q.QueryRow(ctx, query).Scan(&cfg.ResetTime, &cfg.LastResetDate)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// La fila se siembra en EnsureSchema; si falta, defaults seguros.
			return &entity.ResetConfig{ResetTime: "05:00"}, nil
		}
		return nil, fmt.Errorf("get config: %w", err)
	}
	return &cfg, nil
}

// Save reemplaza la configuración completa.
func (r *ConfigRepo) Save(ctx context.Context, cfg *entity.ResetConfig) error {
	query := `
		INSERT INTO app_config (id, reset_time, last_reset_date)
		VALUES (1, $1, $2)
		ON CONFLICT (id) DO UPDATE SET reset_time = EXCLUDED.reset_time, last_reset_date = EXCLUDED.last_reset_date`
	if _, err := r.q.Exec(ctx, query, cfg.ResetTime, cfg.LastResetDate); err != nil {
		return fmt.Errorf("save config: %w", err)
	}
	return nil
}

// SetLastResetDate avanza solo el marcador de último cierre.
func (r *ConfigRepo) SetLastResetDate(ctx context.Context, date string) error {
	if _, err := r.q.Exec(ctx, `UPDATE app_config SET last_reset_date = $1 WHERE id = 1`, date); err != nil {
		return fmt.Errorf("set last reset date: %w", err)
	}
	return nil
}
