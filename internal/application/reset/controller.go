package reset

import (
	"context"
	"sync"
	"time"

	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
	"github.com/jhoicas/candystock-api/pkg/logger"
)

// Estados del controlador de cierre.
const (
	StateIdle      = "IDLE"
	StateChecking  = "CHECKING"
	StateResetting = "RESETTING"
)

// Controller ejecuta el cierre diario: al cruzar el horario configurado en un
// día calendario nuevo, archiva el ledger actual como "día anterior", lo
// limpia, avanza el marcador de último cierre y purga el log de transacciones.
//
// El disparo es por polling de reloj (no hay scheduler del lado del storage).
// La corrección no depende de la frecuencia del polling sino de la atomicidad
// de la guarda: varios procesos pueden chequear a la vez y chocar sin daño,
// porque el que pierde la transacción condicional ve el marcador ya avanzado
// y no hace nada.
type Controller struct {
	txRunner   TxRunner
	configRepo repository.ConfigRepository
	ledgerRepo repository.LedgerRepository
	logRepo    repository.TransactionLogRepository
	watcher    *stock.Watcher
	clock      Clock
	log        *logger.Logger

	pollInterval time.Duration
	displayDelay time.Duration

	mu    sync.RWMutex
	state string
}

// Options tuning del controlador.
type Options struct {
	PollInterval time.Duration // default 60s
	DisplayDelay time.Duration // cuánto se sostiene RESETTING tras un cierre; default 3s
	Clock        Clock         // default reloj real
}

// NewController construye el controlador.
func NewController(
	txRunner TxRunner,
	configRepo repository.ConfigRepository,
	ledgerRepo repository.LedgerRepository,
	logRepo repository.TransactionLogRepository,
	watcher *stock.Watcher,
	log *logger.Logger,
	opts Options,
) *Controller {
	if opts.PollInterval <= 0 {
		opts.PollInterval = time.Minute
	}
	if opts.DisplayDelay <= 0 {
		opts.DisplayDelay = 3 * time.Second
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock()
	}
	return &Controller{
		txRunner:     txRunner,
		configRepo:   configRepo,
		ledgerRepo:   ledgerRepo,
		logRepo:      logRepo,
		watcher:      watcher,
		clock:        opts.Clock,
		log:          log,
		pollInterval: opts.PollInterval,
		displayDelay: opts.DisplayDelay,
		state:        StateIdle,
	}
}

// State estado actual (IDLE, CHECKING o RESETTING).
func (c *Controller) State() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

func (c *Controller) setState(s string) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Run chequea al arrancar y después una vez por intervalo, hasta que el
// contexto se cancele. Un error en un tick se loguea y se reintenta en el
// siguiente; nada acá es fatal para el proceso.
func (c *Controller) Run(ctx context.Context) {
	if _, err := c.CheckAndRun(ctx); err != nil {
		c.log.Error().Err(err).Msg("chequeo de cierre diario")
	}
	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := c.CheckAndRun(ctx); err != nil {
				c.log.Error().Err(err).Msg("chequeo de cierre diario")
			}
		}
	}
}

// CheckAndRun un tick del controlador. Devuelve true si ESTE proceso ejecutó
// el cierre (los perdedores de la carrera y los no-op devuelven false).
func (c *Controller) CheckAndRun(ctx context.Context) (bool, error) {
	c.setState(StateChecking)
	defer func() {
		// RESETTING ya volvió a IDLE por su propio camino
		if c.State() == StateChecking {
			c.setState(StateIdle)
		}
	}()

	cfg, err := c.configRepo.Get(ctx)
	if err != nil {
		return false, err
	}

	now := c.clock.Now()
	threshold, err := thresholdFor(cfg.ResetTime, now)
	if err != nil {
		return false, err
	}

	// Todavía no es hora: nada que hacer.
	if now.Before(threshold) {
		return false, nil
	}

	today := now.Format(entity.ResetDateLayout)
	// El marcador ya es de hoy: el cierre de hoy ya ocurrió.
	if cfg.LastResetDate == today {
		return false, nil
	}

	performed := false
	err = c.txRunner.RunCierre(ctx, func(
		ledgerRepo repository.LedgerRepository,
		configRepo repository.ConfigRepository,
	) error {
		// Releer el marcador con la fila bloqueada: si otro proceso ya avanzó
		// la fecha, este pierde la carrera y no produce ningún efecto.
		sc, err := configRepo.GetForUpdate(ctx)
		if err != nil {
			return err
		}
		if sc.LastResetDate == today {
			return nil
		}
		if err := ledgerRepo.Archive(ctx); err != nil {
			return err
		}
		if err := ledgerRepo.Clear(ctx); err != nil {
			return err
		}
		if err := configRepo.SetLastResetDate(ctx, today); err != nil {
			return err
		}
		performed = true
		return nil
	})
	if err != nil {
		// La transacción aborta limpia, sin efecto parcial; reintento en el
		// próximo tick.
		return false, err
	}
	if !performed {
		return false, nil
	}

	c.setState(StateResetting)
	c.log.Info().Str("fecha", today).Msg("cierre diario ejecutado")

	// Purga del historial: fuera de la transacción y a mejor esfuerzo. Si
	// falla quedan entradas viejas referenciando el período anterior; se
	// tolera y no se reintenta.
	if n, err := c.logRepo.PurgeAll(ctx); err != nil {
		c.log.Warn().Err(err).Msg("purga del historial tras el cierre")
	} else {
		c.log.Info().Int64("entradas", n).Msg("historial purgado")
	}

	c.notifyReset(ctx)

	// Sostener el indicador de cierre un momento aunque la operación haya
	// sido instantánea.
	select {
	case <-c.clock.After(c.displayDelay):
	case <-ctx.Done():
	}
	c.setState(StateIdle)
	return true, nil
}

func (c *Controller) notifyReset(ctx context.Context) {
	snap, err := c.ledgerRepo.Current(ctx)
	if err != nil {
		c.watcher.Publish(stock.Event{Kind: stock.EventReset})
		return
	}
	c.watcher.Publish(stock.Event{Kind: stock.EventReset, Stock: snap})
}

// thresholdFor arma el instante del umbral de hoy a partir del HH:MM configurado.
func thresholdFor(resetTime string, now time.Time) (time.Time, error) {
	t, err := time.Parse(entity.ResetTimeLayout, resetTime)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(now.Year(), now.Month(), now.Day(), t.Hour(), t.Minute(), 0, 0, now.Location()), nil
}
