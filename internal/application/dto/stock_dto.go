package dto

import (
	"time"

	"github.com/jhoicas/candystock-api/internal/domain/entity"
)

// RegisterMovementRequest alta de un movimiento de stock.
// O bien MoveID (una arista concreta), o bien FromSector+ToSector (la ruta se
// expande en el borde a la cadena de aristas intermedias). Values trae las
// cantidades por producto; los ceros se filtran antes de tocar el storage.
type RegisterMovementRequest struct {
	MoveID     string           `json:"move_id"`
	FromSector string           `json:"from_sector"`
	ToSector   string           `json:"to_sector"`
	Values     map[string]int64 `json:"values"`
}

// RegisterMovementResponse resultado del alta: aristas afectadas y entradas
// creadas en el log (una por arista).
type RegisterMovementResponse struct {
	MoveIDs      []string              `json:"move_ids"`
	Transactions []TransactionResponse `json:"transactions"`
}

// TransactionResponse entrada del historial.
type TransactionResponse struct {
	ID        string           `json:"id"`
	MoveID    string           `json:"moveId"`
	Values    map[string]int64 `json:"values"`
	Timestamp time.Time        `json:"timestamp"`
	UserID    string           `json:"userId"`
}

// ToTransactionResponse convierte la entidad al DTO de salida.
func ToTransactionResponse(t *entity.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:        t.ID,
		MoveID:    t.MoveID,
		Values:    t.Values,
		Timestamp: t.Timestamp,
		UserID:    t.UserID,
	}
}

// StockResponse snapshot del ledger (actual o del día anterior).
type StockResponse struct {
	Stock entity.StockLedger `json:"stock"`
}

// CatalogResponse catálogo estático para la UI.
type CatalogResponse struct {
	Products  []entity.Product      `json:"products"`
	Sectors   []entity.Sector       `json:"sectors"`
	Movements []entity.MovementType `json:"movements"`
	Order     []string              `json:"sectorOrder"`
}
