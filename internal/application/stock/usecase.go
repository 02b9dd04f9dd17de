package stock

import (
	"context"

	"github.com/jhoicas/candystock-api/internal/domain"
	"github.com/jhoicas/candystock-api/internal/domain/catalog"
	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

// RegisterMovementUseCase registra movimientos de stock de forma transaccional:
// por cada arista de la secuencia, un incremento conmutativo en el ledger más
// una entrada en el log de transacciones, todo en un único grupo atómico.
type RegisterMovementUseCase struct {
	txRunner   TxRunner
	ledgerRepo repository.LedgerRepository
	watcher    *Watcher
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner, ledgerRepo repository.LedgerRepository, watcher *Watcher) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner, ledgerRepo: ledgerRepo, watcher: watcher}
}

// MovementInput entrada ya resuelta: secuencia ordenada y explícita de aristas
// (el resolver de rutas corre en el borde, nunca acá) más los deltas por
// producto de la carga del usuario. Cada arista recibe los mismos valores.
type MovementInput struct {
	UserID string
	Moves  []entity.MovementType
	Values map[string]int64
}

// ResolveMoves normaliza el request del borde a la secuencia explícita de
// aristas: un move_id concreto, o la expansión de (from, to) por el catálogo.
func ResolveMoves(moveID, fromSector, toSector string) ([]entity.MovementType, error) {
	if moveID != "" {
		m, ok := catalog.MovementByID(moveID)
		if !ok {
			return nil, domain.ErrUnknownMovement
		}
		return []entity.MovementType{m}, nil
	}
	if _, ok := catalog.SectorByID(fromSector); !ok {
		return nil, domain.ErrUnknownSector
	}
	if _, ok := catalog.SectorByID(toSector); !ok {
		return nil, domain.ErrUnknownSector
	}
	moves := catalog.ResolveRoute(fromSector, toSector)
	if len(moves) == 0 {
		return nil, domain.ErrInvalidRoute
	}
	return moves, nil
}

// Register valida y persiste el movimiento. Devuelve las entradas creadas en
// el log (una por arista, con timestamp asignado por el servidor de BD).
//
// Validación antes de tocar el storage: se filtran los deltas en cero; si no
// queda ninguno, ErrEmptyMovement ("nada para guardar"). Las cantidades de una
// carga son positivas: las correcciones se hacen deshaciendo la transacción,
// no cargando negativos.
func (uc *RegisterMovementUseCase) Register(ctx context.Context, input MovementInput) ([]*entity.Transaction, error) {
	if len(input.Moves) == 0 {
		return nil, domain.ErrInvalidRoute
	}

	deltas := make(map[string]int64, len(input.Values))
	for productID, v := range input.Values {
		if v == 0 {
			continue
		}
		if v < 0 {
			return nil, domain.ErrInvalidInput
		}
		if _, ok := catalog.ProductByID(productID); !ok {
			return nil, domain.ErrNotFound
		}
		deltas[productID] = v
	}
	if len(deltas) == 0 {
		return nil, domain.ErrEmptyMovement
	}

	created := make([]*entity.Transaction, 0, len(input.Moves))
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		logRepo repository.TransactionLogRepository,
	) error {
		for _, move := range input.Moves {
			if err := ledgerRepo.ApplyDeltas(ctx, move.ID, deltas); err != nil {
				return err
			}
			tx := &entity.Transaction{
				MoveID: move.ID,
				Values: deltas,
				UserID: input.UserID,
			}
			if err := logRepo.Create(ctx, tx); err != nil {
				return err
			}
			created = append(created, tx)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifyStock(ctx)
	return created, nil
}

// notifyStock publica el snapshot actual a los suscriptores en vivo.
// Si la relectura falla se publica el evento sin snapshot: los clientes
// refrescan por su cuenta.
func (uc *RegisterMovementUseCase) notifyStock(ctx context.Context) {
	snap, err := uc.ledgerRepo.Current(ctx)
	if err != nil {
		uc.watcher.Publish(Event{Kind: EventStock})
		return
	}
	uc.watcher.Publish(Event{Kind: EventStock, Stock: snap})
}
