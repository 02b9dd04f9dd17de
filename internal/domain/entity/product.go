package entity

// Product un SKU del catálogo de candy. Color y Text son metadatos de
// presentación para la UI; no afectan la contabilidad del ledger.
type Product struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Text  string `json:"text"`
}
