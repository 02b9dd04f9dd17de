package stock

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// UndoTransactionUseCase deshace una entrada exacta del log: borra la entrada
// y aplica los deltas negados sobre las mismas celdas, en la misma transacción
// y por el mismo primitivo conmutativo. Nunca se reconstruye el estado desde
// un snapshot local: eso pisaría escrituras concurrentes de otros clientes.
type UndoTransactionUseCase struct {
	txRunner   TxRunner
	ledgerRepo repository.LedgerRepository
	watcher    *Watcher
}

// NewUndoTransactionUseCase construye el caso de uso.
func NewUndoTransactionUseCase(txRunner TxRunner, ledgerRepo repository.LedgerRepository, watcher *Watcher) *UndoTransactionUseCase {
	return &UndoTransactionUseCase{txRunner: txRunner, ledgerRepo: ledgerRepo, watcher: watcher}
}

// Undo deshace la transacción con ese id.
//
// El borrado es condicional: si la entrada ya no existe (doble undo, o la
// purga de un cierre llegó primero) falla con ErrTransactionNotFound sin
// aplicar ningún decremento. El decremento no se recorta en cero: deshacer
// fuera de orden puede dejar una celda negativa y eso se tolera, porque la
// celda es una suma de deltas con signo.
func (uc *UndoTransactionUseCase) Undo(ctx context.Context, id string) (*entity.Transaction, error) {
	var undone *entity.Transaction
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		logRepo repository.TransactionLogRepository,
	) error {
		entry, err := logRepo.Delete(ctx, id)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrTransactionNotFound
		}
		if err := ledgerRepo.ApplyDeltas(ctx, entry.MoveID, entry.Inverse()); err != nil {
			return err
		}
		undone = entry
		return nil
	})
	if err != nil {
		return nil, err
	}

	snap, snapErr := uc.ledgerRepo.Current(ctx)
	if snapErr != nil {
		uc.watcher.Publish(Event{Kind: EventStock})
	} else {
		uc.watcher.Publish(Event{Kind: EventStock, Stock: snap})
	}
	return undone, nil
}
