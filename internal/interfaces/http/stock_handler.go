package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/candystock-api/internal/application/dto"
	"github.com/jhoicas/candystock-api/internal/application/stock"
	"github.com/jhoicas/candystock-api/internal/domain"
	"github.com/jhoicas/candystock-api/internal/domain/catalog"
)

// StockHandler maneja las peticiones del ledger de stock (protegido).
type StockHandler struct {
	register *stock.RegisterMovementUseCase
	undo     *stock.UndoTransactionUseCase
	query    *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(register *stock.RegisterMovementUseCase, undo *stock.UndoTransactionUseCase, query *stock.QueryUseCase) *StockHandler {
	return &StockHandler{register: register, undo: undo, query: query}
}

// GetCatalog godoc
// @Summary      Catálogo estático: productos, sectores y movimientos
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.CatalogResponse
// @Router       /api/catalog [get]
func (h *StockHandler) GetCatalog(c *fiber.Ctx) error {
	return c.JSON(dto.CatalogResponse{
		Products:  catalog.Products,
		Sectors:   catalog.Sectors,
		Movements: catalog.MovementTypes,
		Order:     catalog.SectorOrder,
	})
}

// RegisterMovement godoc
// @Summary      Registrar movimiento de stock
// @Description  Acepta un move_id concreto o un par (from_sector, to_sector);
//
//	la ruta se expande a todas las aristas intermedias y cada una
//	recibe los mismos valores. Incrementos + entradas de historial
//	se aplican en un único grupo atómico.
//
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterMovementRequest  true  "move_id o from_sector/to_sector, values"
// @Success      201   {object}  dto.RegisterMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/movements [post]
func (h *StockHandler) RegisterMovement(c *fiber.Ctx) error {
	userID := GetUserID(c)
	if userID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.RegisterMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}

	// La ruta se resuelve acá, en el borde: el caso de uso siempre recibe la
	// secuencia explícita de aristas.
	moves, err := stock.ResolveMoves(in.MoveID, in.FromSector, in.ToSector)
	if err != nil {
		if errors.Is(err, domain.ErrUnknownMovement) || errors.Is(err, domain.ErrUnknownSector) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sector o movimiento desconocido"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ROUTE", Message: "ruta inválida: el origen debe estar antes que el destino"})
	}

	created, err := h.register.Register(c.Context(), stock.MovementInput{
		UserID: userID,
		Moves:  moves,
		Values: in.Values,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmptyMovement) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "EMPTY_MOVEMENT", Message: "nada para guardar"})
		}
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "las cantidades deben ser positivas"})
		}
		if errors.Is(err, domain.ErrNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto desconocido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}

	resp := dto.RegisterMovementResponse{}
	for _, tx := range created {
		resp.MoveIDs = append(resp.MoveIDs, tx.MoveID)
		resp.Transactions = append(resp.Transactions, dto.ToTransactionResponse(tx))
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// UndoTransaction godoc
// @Summary      Deshacer una transacción exacta del historial
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "id de la transacción"
// @Success      200  {object}  dto.TransactionResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/transactions/{id} [delete]
func (h *StockHandler) UndoTransaction(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id requerido"})
	}
	undone, err := h.undo.Undo(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "transacción no encontrada o ya deshecha"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := dto.ToTransactionResponse(undone)
	return c.JSON(out)
}

// GetCurrentStock godoc
// @Summary      Snapshot del stock acumulado del período actual
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/current [get]
func (h *StockHandler) GetCurrentStock(c *fiber.Ctx) error {
	snap, err := h.query.CurrentStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockResponse{Stock: snap})
}

// GetPreviousStock godoc
// @Summary      Snapshot archivado en el último cierre diario
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockResponse
// @Router       /api/stock/previous [get]
func (h *StockHandler) GetPreviousStock(c *fiber.Ctx) error {
	snap, err := h.query.PreviousStock(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.StockResponse{Stock: snap})
}

// GetHistory godoc
// @Summary      Historial de transacciones, más nuevas primero
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        limit   query  int  false  "cantidad (default 50)"
// @Param        offset  query  int  false  "desplazamiento"
// @Success      200  {array}  dto.TransactionResponse
// @Router       /api/transactions [get]
func (h *StockHandler) GetHistory(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	page.DefaultPage()
	list, err := h.query.History(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	out := make([]dto.TransactionResponse, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ToTransactionResponse(t))
	}
	return c.JSON(fiber.Map{"total": len(out), "transactions": out})
}
