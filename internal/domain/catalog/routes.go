package catalog

import "github.com/jhoicas/candystock-api/internal/domain/entity"

// ResolveRoute descompone un par (origen, destino) en la cadena ordenada de
// movimientos atómicos que lo realizan, uno por cada par de sectores
// adyacentes del recorrido. Esto habilita la carga "salto de etapa": un par
// no adyacente registra movimiento en cada arista intermedia, todas con las
// mismas cantidades.
//
// Función pura sobre el catálogo estático. Devuelve secuencia vacía si algún
// sector no existe o si origen no está estrictamente antes que destino
// (moverse hacia atrás o hacia uno mismo nunca es válido). Un par adyacente
// sin arista declarada se omite en silencio; con el catálogo actual esa rama
// es inalcanzable porque la topología está completamente conectada.
func ResolveRoute(fromSector, toSector string) []entity.MovementType {
	fromIdx := sectorIndex(fromSector)
	toIdx := sectorIndex(toSector)

	if fromIdx == -1 || toIdx == -1 || fromIdx >= toIdx {
		return nil
	}

	var moves []entity.MovementType
	for i := fromIdx; i < toIdx; i++ {
		source := SectorOrder[i]
		target := SectorOrder[i+1]
		for _, m := range MovementTypes {
			if m.Source == source && m.Target == target {
				moves = append(moves, m)
				break
			}
		}
	}
	return moves
}
