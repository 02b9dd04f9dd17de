package reset_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/candystock-api/internal/application/reset"
	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain/catalog"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
	"github.com/jhoicas/candystock-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Backend en memoria
//
// Emula la semántica que el cierre necesita del storage real: RunCierre corre
// la función con un lock tomado (la fila de configuración bloqueada) y
// restaura el estado si falla, igual que un abort de transacción. Varios
// controladores compartiendo el mismo backend compiten como procesos reales.
// ──────────────────────────────────────────────────────────────────────────────

type cierreBackend struct {
	mu       sync.Mutex
	current  entity.StockLedger
	previous entity.StockLedger
	log      []*entity.Transaction
	cfg      entity.ResetConfig

	purgeErr error // si se setea, la purga del historial falla
}

func newCierreBackend(resetTime, lastResetDate string) *cierreBackend {
	return &cierreBackend{
		current:  entity.NewStockLedger(catalog.MovementIDs()),
		previous: entity.NewStockLedger(catalog.MovementIDs()),
		cfg:      entity.ResetConfig{ResetTime: resetTime, LastResetDate: lastResetDate},
	}
}

// Los repos atados a la transacción (los que RunCierre pasa a la función) no
// toman el lock: RunCierre ya lo sostiene. Los repos usados fuera de la
// transacción sí lo toman, porque otra réplica puede estar mutando.

type cierreLedgerRepo struct{ b *cierreBackend }

func (r *cierreLedgerRepo) Current(ctx context.Context) (entity.StockLedger, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return r.b.current.Clone(), nil
}

func (r *cierreLedgerRepo) Previous(ctx context.Context) (entity.StockLedger, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return r.b.previous.Clone(), nil
}

func (r *cierreLedgerRepo) ApplyDeltas(ctx context.Context, moveID string, deltas map[string]int64) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.current.Apply(moveID, deltas)
	return nil
}

func (r *cierreLedgerRepo) Archive(ctx context.Context) error {
	r.b.previous = r.b.current.Clone()
	return nil
}

func (r *cierreLedgerRepo) Clear(ctx context.Context) error {
	r.b.current = entity.NewStockLedger(catalog.MovementIDs())
	return nil
}

type cierreConfigRepo struct{ b *cierreBackend }

func (r *cierreConfigRepo) Get(ctx context.Context) (*entity.ResetConfig, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	cfg := r.b.cfg
	return &cfg, nil
}

func (r *cierreConfigRepo) Save(ctx context.Context, cfg *entity.ResetConfig) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.cfg = *cfg
	return nil
}

func (r *cierreConfigRepo) GetForUpdate(ctx context.Context) (*entity.ResetConfig, error) {
	cfg := r.b.cfg
	return &cfg, nil
}

func (r *cierreConfigRepo) SetLastResetDate(ctx context.Context, date string) error {
	r.b.cfg.LastResetDate = date
	return nil
}

type cierreLogRepo struct{ b *cierreBackend }

func (r *cierreLogRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	r.b.log = append(r.b.log, tx)
	return nil
}

func (r *cierreLogRepo) Delete(ctx context.Context, id string) (*entity.Transaction, error) {
	return nil, nil
}

func (r *cierreLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	return append([]*entity.Transaction(nil), r.b.log...), nil
}

func (r *cierreLogRepo) PurgeAll(ctx context.Context) (int64, error) {
	r.b.mu.Lock()
	defer r.b.mu.Unlock()
	if r.b.purgeErr != nil {
		return 0, r.b.purgeErr
	}
	n := int64(len(r.b.log))
	r.b.log = nil
	return n, nil
}

type cierreTxRunner struct{ b *cierreBackend }

// RunCierre toma el lock del backend durante toda la función, como el
// SELECT FOR UPDATE serializa los cierres concurrentes en el storage real.
func (tr *cierreTxRunner) RunCierre(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	configRepo repository.ConfigRepository,
) error) error {
	tr.b.mu.Lock()
	defer tr.b.mu.Unlock()

	savedCurrent := tr.b.current.Clone()
	savedPrevious := tr.b.previous.Clone()
	savedCfg := tr.b.cfg

	err := fn(&cierreLedgerRepo{b: tr.b}, &cierreConfigRepo{b: tr.b})
	if err != nil {
		tr.b.current = savedCurrent
		tr.b.previous = savedPrevious
		tr.b.cfg = savedCfg
	}
	return err
}

var _ reset.TxRunner = (*cierreTxRunner)(nil)
var _ repository.LedgerRepository = (*cierreLedgerRepo)(nil)
var _ repository.ConfigRepository = (*cierreConfigRepo)(nil)
var _ repository.TransactionLogRepository = (*cierreLogRepo)(nil)

// fakeClock reloj fijo; After dispara de inmediato para que el delay de
// exhibición no frene los tests.
type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) After(d time.Duration) <-chan time.Time {
	ch := make(chan time.Time, 1)
	ch <- c.now
	return ch
}

func buildController(b *cierreBackend, clock reset.Clock) (*reset.Controller, *stock.Watcher) {
	watcher := stock.NewWatcher()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	c := reset.NewController(
		&cierreTxRunner{b: b},
		&cierreConfigRepo{b: b},
		&cierreLedgerRepo{b: b},
		&cierreLogRepo{b: b},
		watcher,
		log,
		reset.Options{Clock: clock},
	)
	return c, watcher
}

func at(t *testing.T, value string) time.Time {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04", value)
	require.NoError(t, err)
	return ts
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests CheckAndRun
// ──────────────────────────────────────────────────────────────────────────────

func TestCheckAndRun_AntesDelUmbral_NoHaceNada(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	b.current.Apply("move_2", map[string]int64{"balde": 7})
	controller, _ := buildController(b, &fakeClock{now: at(t, "2026-08-30 04:30")})

	performed, err := controller.CheckAndRun(context.Background())
	require.NoError(t, err)

	assert.False(t, performed)
	assert.Equal(t, int64(7), b.current.Get("move_2", "balde"), "el acumulado no debe tocarse")
	assert.Equal(t, "2026-08-29", b.cfg.LastResetDate, "el marcador no debe avanzar")
}

func TestCheckAndRun_MarcadorYaEsDeHoy_Idempotente(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-30")
	b.current.Apply("move_2", map[string]int64{"balde": 7})
	controller, _ := buildController(b, &fakeClock{now: at(t, "2026-08-30 06:00")})

	performed, err := controller.CheckAndRun(context.Background())
	require.NoError(t, err)

	assert.False(t, performed, "con el marcador ya en hoy, el cierre de hoy ya ocurrió")
	assert.Equal(t, int64(7), b.current.Get("move_2", "balde"))
}

func TestCheckAndRun_CruzadoElUmbral_EjecutaElCierre(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	b.current.Apply("move_2", map[string]int64{"balde": 7, "latas": 3})
	b.log = []*entity.Transaction{{ID: "tx-1"}, {ID: "tx-2"}}
	controller, watcher := buildController(b, &fakeClock{now: at(t, "2026-08-30 05:01")})
	_, events := watcher.Subscribe()

	performed, err := controller.CheckAndRun(context.Background())
	require.NoError(t, err)
	require.True(t, performed)

	// El acumulado pasó al slot del día anterior y el actual quedó vacío
	assert.Equal(t, int64(7), b.previous.Get("move_2", "balde"))
	assert.Equal(t, int64(3), b.previous.Get("move_2", "latas"))
	assert.Equal(t, int64(0), b.current.Get("move_2", "balde"))

	assert.Equal(t, "2026-08-30", b.cfg.LastResetDate, "el marcador debe avanzar a hoy")
	assert.Empty(t, b.log, "el historial debe purgarse tras el cierre")
	assert.Equal(t, reset.StateIdle, controller.State(), "el controlador vuelve a IDLE")

	select {
	case ev := <-events:
		assert.Equal(t, stock.EventReset, ev.Kind)
	case <-time.After(time.Second):
		t.Fatal("el cierre debe publicar un evento a los suscriptores")
	}
}

func TestCheckAndRun_SegundoTickDelMismoDia_NoOp(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	controller, _ := buildController(b, &fakeClock{now: at(t, "2026-08-30 05:01")})
	ctx := context.Background()

	performed, err := controller.CheckAndRun(ctx)
	require.NoError(t, err)
	require.True(t, performed)

	performed, err = controller.CheckAndRun(ctx)
	require.NoError(t, err)
	assert.False(t, performed, "el mismo día nunca se cierra dos veces")
}

// Dos controladores sobre el mismo backend emulan dos réplicas del servicio:
// exactamente uno debe ejecutar el cierre, el otro pierde la guarda y no
// produce ningún efecto.
func TestCheckAndRun_DosReplicas_SoloUnaEjecuta(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	b.current.Apply("move_2", map[string]int64{"balde": 4})
	clock := &fakeClock{now: at(t, "2026-08-30 05:01")}
	c1, _ := buildController(b, clock)
	c2, _ := buildController(b, clock)
	ctx := context.Background()

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i, c := range []*reset.Controller{c1, c2} {
		wg.Add(1)
		go func(i int, c *reset.Controller) {
			defer wg.Done()
			performed, err := c.CheckAndRun(ctx)
			assert.NoError(t, err)
			results[i] = performed
		}(i, c)
	}
	wg.Wait()

	wins := 0
	for _, r := range results {
		if r {
			wins++
		}
	}
	assert.Equal(t, 1, wins, "exactamente una réplica debe ganar la carrera del cierre")
	assert.Equal(t, int64(4), b.previous.Get("move_2", "balde"),
		"el archivo debe aplicarse una sola vez")
	assert.Equal(t, int64(0), b.current.Get("move_2", "balde"))
}

// Nota: el perdedor puede llegar con el marcador ya en hoy y no abrir la
// transacción, o abrirla y ver el marcador avanzado al releerlo con la fila
// bloqueada; en ambos caminos el resultado es el mismo no-op.
func TestCheckAndRun_PerdedorSecuencial_NoOp(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	clock := &fakeClock{now: at(t, "2026-08-30 05:01")}
	winner, _ := buildController(b, clock)
	loser, _ := buildController(b, clock)
	ctx := context.Background()

	performed, err := winner.CheckAndRun(ctx)
	require.NoError(t, err)
	require.True(t, performed)

	performed, err = loser.CheckAndRun(ctx)
	require.NoError(t, err)
	assert.False(t, performed)
}

func TestCheckAndRun_FalloDePurga_ElCierreIgualVale(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	b.log = []*entity.Transaction{{ID: "tx-1"}}
	b.purgeErr = errors.New("storage caído")
	controller, _ := buildController(b, &fakeClock{now: at(t, "2026-08-30 05:01")})

	performed, err := controller.CheckAndRun(context.Background())
	require.NoError(t, err, "la purga es a mejor esfuerzo, su fallo no es fatal")

	assert.True(t, performed)
	assert.Equal(t, "2026-08-30", b.cfg.LastResetDate, "el marcador queda avanzado igual")
	assert.Len(t, b.log, 1, "las entradas viejas quedan hasta la próxima purga")
}

func TestCheckAndRun_HorarioCorrupto_RetornaError(t *testing.T) {
	b := newCierreBackend("no-es-hora", "2026-08-29")
	controller, _ := buildController(b, &fakeClock{now: at(t, "2026-08-30 12:00")})

	performed, err := controller.CheckAndRun(context.Background())
	assert.Error(t, err)
	assert.False(t, performed)
}

func TestCheckAndRun_ElArchivoPisaElAnterior(t *testing.T) {
	b := newCierreBackend("05:00", "2026-08-29")
	b.previous.Apply("move_1", map[string]int64{"botellas": 9}) // archivo de hace dos días
	b.current.Apply("move_2", map[string]int64{"balde": 1})
	controller, _ := buildController(b, &fakeClock{now: at(t, "2026-08-30 05:01")})

	performed, err := controller.CheckAndRun(context.Background())
	require.NoError(t, err)
	require.True(t, performed)

	assert.Equal(t, int64(0), b.previous.Get("move_1", "botellas"),
		"el slot del día anterior guarda un solo día, el archivo viejo se pisa")
	assert.Equal(t, int64(1), b.previous.Get("move_2", "balde"))
}
