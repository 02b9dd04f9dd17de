package reset

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// TxRunner ejecuta el cierre diario dentro de una transacción de BD, pasando
// repositorios atados a esa tx. La guarda de idempotencia (releer el marcador
// con la fila bloqueada) y los efectos (archivar, limpiar, avanzar marcador)
// viven en el mismo grupo atómico: de dos procesos que corren a la vez, solo
// uno puede ganar.
type TxRunner interface {
	RunCierre(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		configRepo repository.ConfigRepository,
	) error) error
}
