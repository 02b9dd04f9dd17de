package entity

import "time"

// Transaction entrada del log de transacciones: un registro inmutable (hasta
// su borrado) por cada movimiento aceptado contra una arista. Una acción de
// usuario que expande una ruta genera una entrada por arista, todas con el
// mismo mapa de valores.
// Timestamp lo asigna el servidor de base de datos, no el cliente.
type Transaction struct {
	ID        string           `json:"id"`
	MoveID    string           `json:"moveId"`
	Values    map[string]int64 `json:"values"` // producto -> delta aplicado
	Timestamp time.Time        `json:"timestamp"`
	UserID    string           `json:"userId"`
}

// Inverse devuelve los deltas negados, para aplicar el undo compensatorio.
func (t *Transaction) Inverse() map[string]int64 {
	inv := make(map[string]int64, len(t.Values))
	for productID, d := range t.Values {
		inv[productID] = -d
	}
	return inv
}
