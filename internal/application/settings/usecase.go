package settings

import (
	"context"
	"time"

	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// UseCase lectura y edición de la configuración del cierre diario.
type UseCase struct {
	configRepo repository.ConfigRepository
	watcher    *stock.Watcher
}

// NewUseCase construye el caso de uso.
func NewUseCase(configRepo repository.ConfigRepository, watcher *stock.Watcher) *UseCase {
	return &UseCase{configRepo: configRepo, watcher: watcher}
}

// Get devuelve la configuración vigente.
func (uc *UseCase) Get(ctx context.Context) (*entity.ResetConfig, error) {
	return uc.configRepo.Get(ctx)
}

// UpdateResetTime cambia el horario del cierre. Única validación: formato
// HH:MM. El marcador de último cierre se preserva tal cual está; solo lo
// avanza el controlador de cierre.
func (uc *UseCase) UpdateResetTime(ctx context.Context, resetTime string) (*entity.ResetConfig, error) {
	if _, err := time.Parse(entity.ResetTimeLayout, resetTime); err != nil {
		return nil, domain.ErrInvalidResetTime
	}
	cfg, err := uc.configRepo.Get(ctx)
	if err != nil {
		return nil, err
	}
	cfg.ResetTime = resetTime
	if err := uc.configRepo.Save(ctx, cfg); err != nil {
		return nil, err
	}
	uc.watcher.Publish(stock.Event{Kind: stock.EventConfig})
	return cfg, nil
}
