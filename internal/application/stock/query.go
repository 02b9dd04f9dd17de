package stock

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// QueryUseCase lecturas de solo consulta: snapshots del ledger e historial.
type QueryUseCase struct {
	ledgerRepo repository.LedgerRepository
	logRepo    repository.TransactionLogRepository
}

// NewQueryUseCase construye el caso de uso.
func NewQueryUseCase(ledgerRepo repository.LedgerRepository, logRepo repository.TransactionLogRepository) *QueryUseCase {
	return &QueryUseCase{ledgerRepo: ledgerRepo, logRepo: logRepo}
}

// CurrentStock snapshot del acumulado del período actual.
func (uc *QueryUseCase) CurrentStock(ctx context.Context) (entity.StockLedger, error) {
	return uc.ledgerRepo.Current(ctx)
}

// PreviousStock snapshot archivado en el último cierre (solo lectura hasta el próximo).
func (uc *QueryUseCase) PreviousStock(ctx context.Context) (entity.StockLedger, error) {
	return uc.ledgerRepo.Previous(ctx)
}

// History entradas del log, más nuevas primero.
func (uc *QueryUseCase) History(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	return uc.logRepo.List(ctx, limit, offset)
}
