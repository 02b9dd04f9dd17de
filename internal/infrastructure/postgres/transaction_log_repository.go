package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
	"github.com/jhoicas/candystock-api/internal/domain/repository"
)

var _ repository.TransactionLogRepository = (*TransactionLogRepo)(nil)

// TransactionLogRepo implementación sobre PostgreSQL (usable con pool o tx).
type TransactionLogRepo struct {
	q Querier
}

// NewTransactionLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTransactionLogRepository(q Querier) *TransactionLogRepo {
	return &TransactionLogRepo{q: q}
}

// Create persiste una entrada. El timestamp lo asigna now() del servidor y se
// devuelve por RETURNING, nunca el reloj del cliente.
func (r *TransactionLogRepo) Create(ctx context.Context, tx *entity.Transaction) error {
	if tx.ID == "" {
		tx.ID = uuid.New().String()
	}
	query := `
		INSERT INTO stock_transactions (id, move_id, deltas, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING ts`
	err := r.q.QueryRow(ctx, query, tx.ID, tx.MoveID, tx.Values, tx.UserID).Scan(&tx.Timestamp)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	return nil
}

// Delete borra una entrada por id y la devuelve; nil si ya no existe.
// El RETURNING hace el borrado condicional: dentro de una tx, nadie puede
// deshacer dos veces la misma entrada.
func (r *TransactionLogRepo) Delete(ctx context.Context, id string) (*entity.Transaction, error) {
	query := `
		DELETE FROM stock_transactions WHERE id = $1
		RETURNING id, move_id, deltas, ts, user_id`
	var t entity.Transaction
	err := r.q.QueryRow(ctx, query, id).Scan(&t.ID, &t.MoveID, &t.Values, &t.Timestamp, &t.UserID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("delete transaction: %w", err)
	}
	return &t, nil
}

// List entradas más nuevas primero (el ts del servidor es la única señal
// confiable de orden entre clientes).
func (r *TransactionLogRepo) List(ctx context.Context, limit, offset int) ([]*entity.Transaction, error) {
	query := `
		SELECT id, move_id, deltas, ts, user_id
		FROM stock_transactions
		ORDER BY ts DESC
		LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Transaction
	for rows.Next() {
		var t entity.Transaction
		if err := rows.Scan(&t.ID, &t.MoveID, &t.Values, &t.Timestamp, &t.UserID); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// PurgeAll borra todas las entradas y devuelve cuántas eran.
func (r *TransactionLogRepo) PurgeAll(ctx context.Context) (int64, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM stock_transactions`)
	if err != nil {
		return 0, fmt.Errorf("purge transactions: %w", err)
	}
	return tag.RowsAffected(), nil
}
