package entity

// StockLedger acumulado del período actual: movimiento -> producto -> cantidad.
// Las cantidades son sumas de deltas con signo aplicadas con incrementos
// conmutativos en el storage; un producto ausente del mapa vale cero.
type StockLedger map[string]map[string]int64

// NewStockLedger crea un ledger vacío con una entrada por movimiento declarado,
// igual que el documento inicial del sistema original.
func NewStockLedger(moveIDs []string) StockLedger {
	l := make(StockLedger, len(moveIDs))
	for _, id := range moveIDs {
		l[id] = map[string]int64{}
	}
	return l
}

// Get devuelve la cantidad acumulada de un producto en un movimiento (cero si ausente).
func (l StockLedger) Get(moveID, productID string) int64 {
	if l == nil {
		return 0
	}
	return l[moveID][productID]
}

// Apply suma los deltas sobre un movimiento. Solo para cálculo en memoria
// (tests, proyecciones); la persistencia real usa el incremento conmutativo
// del storage, nunca esta ruta.
func (l StockLedger) Apply(moveID string, deltas map[string]int64) {
	cell, ok := l[moveID]
	if !ok {
		cell = map[string]int64{}
		l[moveID] = cell
	}
	for productID, d := range deltas {
		cell[productID] += d
	}
}

// Clone copia profunda del ledger.
func (l StockLedger) Clone() StockLedger {
	out := make(StockLedger, len(l))
	for moveID, cell := range l {
		c := make(map[string]int64, len(cell))
		for productID, qty := range cell {
			c[productID] = qty
		}
		out[moveID] = c
	}
	return out
}
