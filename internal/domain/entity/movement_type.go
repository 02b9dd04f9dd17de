package entity

// MovementType una transición declarada entre dos sectores adyacentes del
// orden total. Es la unidad atómica de contabilidad del ledger: cada celda
// del ledger se indexa por (movement type, producto).
// Invariante: Source y Target siempre son sectores consecutivos del orden;
// no existen aristas que salten etapas ni que vayan hacia atrás.
type MovementType struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	SubLabel string `json:"subLabel"`
	Source   string `json:"source"`
	Target   string `json:"target"`
	Unit     string `json:"unit"` // Cajas | Unidades
}
