package catalog

import "github.com/jhoicas/candystock-api/internal/domain/entity"

// Catálogo fijo del local: productos, sectores y movimientos declarados.
// Se define en tiempo de configuración y no es mutable en runtime; el ledger
// y el resolver de rutas se apoyan en que este orden no cambia.

// Products catálogo de SKUs de candy.
var Products = []entity.Product{
	{ID: "balde", Name: "Balde", Color: "bg-[#d9ead3]", Text: "text-gray-800"},
	{ID: "botellas", Name: "Botellas", Color: "bg-[#fff2cc]", Text: "text-gray-800"},
	{ID: "latas", Name: "Latas", Color: "bg-[#c9daf8]", Text: "text-gray-800"},
	{ID: "confites", Name: "Confites", Color: "bg-[#d0e0e3]", Text: "text-gray-800"},
	{ID: "nachos", Name: "Nachos", Color: "bg-[#ead1dc]", Text: "text-gray-800"},
	{ID: "bolsas_pop", Name: "Bolsas Pop", Color: "bg-[#b4a7d6]", Text: "text-white"},
	{ID: "pringles", Name: "Pringles", Color: "bg-[#fce5cd]", Text: "text-gray-800"},
	{ID: "vasos_720", Name: "Vasos 720", Color: "bg-[#76a5af]", Text: "text-white"},
	{ID: "vasos_pl", Name: "Vasos PL", Color: "bg-[#e06666]", Text: "text-white"},
}

// SectorOrder orden lógico del flujo físico. Es un orden total estricto:
// ningún sector repite posición.
var SectorOrder = []string{"depoSala1", "deposito", "puerta", "candy", "desperdicio"}

// Sectors etapas del flujo.
var Sectors = []entity.Sector{
	{ID: "depoSala1", Name: "Depo Sala 1", Type: entity.SectorTypeCajas},
	{ID: "deposito", Name: "Deposito", Type: entity.SectorTypeUnidades},
	{ID: "puerta", Name: "Puerta", Type: entity.SectorTypeUnidades},
	{ID: "candy", Name: "Candy", Type: entity.SectorTypeUnidades},
	{ID: "desperdicio", Name: "Desperdicio", Type: entity.SectorTypeUnidades},
}

// MovementTypes aristas declaradas entre sectores adyacentes del orden.
var MovementTypes = []entity.MovementType{
	{ID: "move_1", Label: "Depo sala1 a Deposito", SubLabel: "(En cajas)", Source: "depoSala1", Target: "deposito", Unit: "Cajas"},
	{ID: "move_2", Label: "Deposito a Puerta", SubLabel: "(Unidades)", Source: "deposito", Target: "puerta", Unit: "Unidades"},
	{ID: "move_3", Label: "Puerta a Candy", SubLabel: "(Unidades)", Source: "puerta", Target: "candy", Unit: "Unidades"},
	{ID: "move_4", Label: "Candy a Desperdicio", SubLabel: "(Unidades)", Source: "candy", Target: "desperdicio", Unit: "Unidades"},
}

// MovementIDs ids de los movimientos declarados, en orden de flujo.
func MovementIDs() []string {
	ids := make([]string, len(MovementTypes))
	for i, m := range MovementTypes {
		ids[i] = m.ID
	}
	return ids
}

// ProductByID busca un producto del catálogo. Devuelve false si no existe.
func ProductByID(id string) (entity.Product, bool) {
	for _, p := range Products {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// SectorByID busca un sector del catálogo. Devuelve false si no existe.
func SectorByID(id string) (entity.Sector, bool) {
	for _, s := range Sectors {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Sector{}, false
}

// MovementByID busca un movimiento declarado. Devuelve false si no existe.
func MovementByID(id string) (entity.MovementType, bool) {
	for _, m := range MovementTypes {
		if m.ID == id {
			return m, true
		}
	}
	return entity.MovementType{}, false
}

// sectorIndex posición de un sector en el orden total; -1 si no pertenece.
func sectorIndex(id string) int {
	for i, s := range SectorOrder {
		if s == id {
			return i
		}
	}
	return -1
}
