package settings_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/candystock-api/internal/application/settings"
	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// configRepoStub fila única de configuración en memoria.
type configRepoStub struct {
	cfg entity.ResetConfig
}

func (s *configRepoStub) Get(ctx context.Context) (*entity.ResetConfig, error) {
	cfg := s.cfg
	return &cfg, nil
}

func (s *configRepoStub) Save(ctx context.Context, cfg *entity.ResetConfig) error {
	s.cfg = *cfg
	return nil
}

func (s *configRepoStub) GetForUpdate(ctx context.Context) (*entity.ResetConfig, error) {
	cfg := s.cfg
	return &cfg, nil
}

func (s *configRepoStub) SetLastResetDate(ctx context.Context, date string) error {
	s.cfg.LastResetDate = date
	return nil
}

func TestUpdateResetTime_GuardaYNotifica(t *testing.T) {
	repo := &configRepoStub{cfg: entity.ResetConfig{ResetTime: "05:00", LastResetDate: "2026-08-29"}}
	watcher := stock.NewWatcher()
	uc := settings.NewUseCase(repo, watcher)
	_, events := watcher.Subscribe()

	cfg, err := uc.UpdateResetTime(context.Background(), "21:30")
	require.NoError(t, err)

	assert.Equal(t, "21:30", cfg.ResetTime)
	assert.Equal(t, "21:30", repo.cfg.ResetTime, "el nuevo horario debe persistirse")
	assert.Equal(t, "2026-08-29", repo.cfg.LastResetDate,
		"editar el horario no debe tocar el marcador de último cierre")

	select {
	case ev := <-events:
		assert.Equal(t, stock.EventConfig, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("el cambio de configuración debe publicarse a los suscriptores")
	}
}

func TestUpdateResetTime_FormatoInvalido(t *testing.T) {
	repo := &configRepoStub{cfg: entity.ResetConfig{ResetTime: "05:00"}}
	uc := settings.NewUseCase(repo, stock.NewWatcher())

	for _, bad := range []string{"", "25:00", "12:75", "0730", "mediodía"} {
		_, err := uc.UpdateResetTime(context.Background(), bad)
		assert.ErrorIs(t, err, domain.ErrInvalidResetTime, "%q no es un horario HH:MM válido", bad)
	}
	assert.Equal(t, "05:00", repo.cfg.ResetTime, "un horario inválido no debe persistirse")
}

func TestGet_DevuelveLaConfiguracionVigente(t *testing.T) {
	repo := &configRepoStub{cfg: entity.ResetConfig{ResetTime: "06:15", LastResetDate: "2026-08-30"}}
	uc := settings.NewUseCase(repo, stock.NewWatcher())

	cfg, err := uc.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "06:15", cfg.ResetTime)
	assert.Equal(t, "2026-08-30", cfg.LastResetDate)
}
