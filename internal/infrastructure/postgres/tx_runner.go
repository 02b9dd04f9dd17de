package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/candystock-api/internal/application/reset"
	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// Ensure TxRunner implements stock.TxRunner and reset.TxRunner.
var _ stock.TxRunner = (*TxRunner)(nil)
var _ reset.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Es el grupo atómico de commit/undo: incrementos del
// ledger y entradas del log aplican todo o nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	logRepo repository.TransactionLogRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledgerRepo := NewLedgerRepository(tx)
	logRepo := NewTransactionLogRepository(tx)

	if err := fn(ledgerRepo, logRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunCierre inicia la transacción condicional del cierre diario: guarda
// (marcador con fila bloqueada) y efectos (archivar, limpiar, avanzar
// marcador) en el mismo grupo atómico.
func (r *TxRunner) RunCierre(ctx context.Context, fn func(
	ledgerRepo repository.LedgerRepository,
	configRepo repository.ConfigRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ledgerRepo := NewLedgerRepository(tx)
	configRepo := NewConfigRepository(tx)

	if err := fn(ledgerRepo, configRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
