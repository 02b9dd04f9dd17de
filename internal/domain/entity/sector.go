package entity

// Tipos de unidad de medida por sector.
const (
	SectorTypeCajas    = "cajas"    // se cuenta en cajas (depósito de sala)
	SectorTypeUnidades = "unidades" // se cuenta en unidades sueltas
)

// Sector una etapa del flujo físico del stock (depósito, puerta, candy, ...).
// Los sectores forman un orden total fijo; el orden se define en el catálogo
// y no es mutable en runtime.
type Sector struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"` // cajas | unidades
}
