package stock

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Es la única vía por la que el motor de stock
// muta estado: el grupo completo (incrementos + entradas del log) aplica todo
// o nada, nunca parcial.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		logRepo repository.TransactionLogRepository,
	) error) error
}
