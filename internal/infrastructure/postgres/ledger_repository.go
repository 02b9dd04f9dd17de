package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/candystock-api/internal/domain/catalog"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con pool o tx).
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

// Current snapshot del acumulado del período actual.
func (r *LedgerRepo) Current(ctx context.Context) (entity.StockLedger, error) {
	return r.snapshot(ctx, "stock_current")
}

// Previous snapshot archivado en el último cierre.
func (r *LedgerRepo) Previous(ctx context.Context) (entity.StockLedger, error) {
	return r.snapshot(ctx, "stock_previous")
}

func (r *LedgerRepo) snapshot(ctx context.Context, table string) (entity.StockLedger, error) {
	// table es uno de dos literales internos, nunca input de usuario
	query := fmt.Sprintf(`SELECT move_id, product_id, quantity FROM %s`, table)
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("leer %s: %w", table, err)
	}
	defer rows.Close()

	// Ledger vacío con una entrada por movimiento declarado, como el
	// documento inicial del sistema original.
	ledger := entity.NewStockLedger(catalog.MovementIDs())
	for rows.Next() {
		var moveID, productID string
		var qty int64
		if err := rows.Scan(&moveID, &productID, &qty); err != nil {
			return nil, fmt.Errorf("scan %s: %w", table, err)
		}
		cell, ok := ledger[moveID]
		if !ok {
			cell = map[string]int64{}
			ledger[moveID] = cell
		}
		cell[productID] = qty
	}
	return ledger, rows.Err()
}

// ApplyDeltas aplica quantity += delta por producto, resuelto en el servidor.
// Upsert conmutativo: dos commits concurrentes sobre la misma celda suman
// ambos sin importar el orden; nunca se lee-modifica-escribe el acumulado.
func (r *LedgerRepo) ApplyDeltas(ctx context.Context, moveID string, deltas map[string]int64) error {
	query := `
		INSERT INTO stock_current (move_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (move_id, product_id)
		DO UPDATE SET quantity = stock_current.quantity + EXCLUDED.quantity`
	for productID, delta := range deltas {
		if _, err := r.q.Exec(ctx, query, moveID, productID, delta); err != nil {
			return fmt.Errorf("incrementar %s/%s: %w", moveID, productID, err)
		}
	}
	return nil
}

// Archive pisa el slot del día anterior con el acumulado actual.
// Solo tiene sentido dentro de la transacción del cierre.
func (r *LedgerRepo) Archive(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_previous`); err != nil {
		return fmt.Errorf("vaciar stock_previous: %w", err)
	}
	query := `
		INSERT INTO stock_previous (move_id, product_id, quantity)
		SELECT move_id, product_id, quantity FROM stock_current`
	if _, err := r.q.Exec(ctx, query); err != nil {
		return fmt.Errorf("archivar stock: %w", err)
	}
	return nil
}

// Clear vacía el acumulado actual.
func (r *LedgerRepo) Clear(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM stock_current`); err != nil {
		return fmt.Errorf("limpiar stock_current: %w", err)
	}
	return nil
}
