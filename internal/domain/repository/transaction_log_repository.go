package repository

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// TransactionLogRepository log append-only (con borrado compensatorio) de
// acciones aceptadas. Fuente de verdad del undo y del historial de la UI.
type TransactionLogRepository interface {
	// Create persiste una entrada; el timestamp lo asigna el servidor de BD
	// y queda reflejado en tx.Timestamp al retornar.
	Create(ctx context.Context, tx *entity.Transaction) error
	// Delete borra una entrada por id y la devuelve. Devuelve nil (sin error)
	// si la entrada ya no existe: el caller decide si eso es un conflicto.
	Delete(ctx context.Context, id string) (*entity.Transaction, error)
	// List devuelve entradas en orden cronológico inverso (más nuevas primero).
	List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error)
	// PurgeAll borra todas las entradas (limpieza del cierre diario).
	// Devuelve cuántas se borraron.
	PurgeAll(ctx context.Context) (int64, error)
}
