package repository

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// LedgerRepository acceso al ledger de stock (acumulado actual y archivo del
// día anterior).
//
// ApplyDeltas debe implementarse con el primitivo de incremento conmutativo
// del storage (value += delta resuelto en el servidor), nunca con
// leer-modificar-escribir del documento completo: dos commits concurrentes de
// clientes distintos deben aplicar ambos sin importar el orden de llegada.
// Archive y Clear solo tienen sentido dentro de la transacción condicional
// del cierre diario.
type LedgerRepository interface {
	// Current devuelve el snapshot del acumulado del período actual.
	Current(ctx context.Context) (entity.StockLedger, error)
	// Previous devuelve el snapshot archivado en el último cierre.
	Previous(ctx context.Context) (entity.StockLedger, error)
	// ApplyDeltas incrementa ledger[moveID][producto] += delta para cada par,
	// de forma conmutativa en el servidor.
	ApplyDeltas(ctx context.Context, moveID string, deltas map[string]int64) error
	// Archive copia el acumulado actual al slot del día anterior (lo pisa).
	Archive(ctx context.Context) error
	// Clear vacía el acumulado actual.
	Clear(ctx context.Context) error
}
