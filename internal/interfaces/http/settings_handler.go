package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/candystock-api/internal/application/dto"
	"github.com/jhoicas/candystock-api/internal/application/reset"
	"github.com/jhoicas/candystock-api/internal/application/settings"
	"github.com/jhoicas/candystock-api/internal/domain"
)

// SettingsHandler configuración del cierre diario y estado del controlador.
type SettingsHandler struct {
	uc         *settings.UseCase
	controller *reset.Controller
}

// NewSettingsHandler construye el handler.
func NewSettingsHandler(uc *settings.UseCase, controller *reset.Controller) *SettingsHandler {
	return &SettingsHandler{uc: uc, controller: controller}
}

// GetSettings godoc
// @Summary      Configuración del cierre diario
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SettingsResponse
// @Router       /api/settings [get]
func (h *SettingsHandler) GetSettings(c *fiber.Ctx) error {
	cfg, err := h.uc.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SettingsResponse{ResetTime: cfg.ResetTime, LastResetDate: cfg.LastResetDate})
}

// UpdateSettings godoc
// @Summary      Cambiar el horario del cierre diario (solo operador)
// @Tags         settings
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateSettingsRequest  true  "resetTime en formato HH:MM"
// @Success      200   {object}  dto.SettingsResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Router       /api/settings [put]
func (h *SettingsHandler) UpdateSettings(c *fiber.Ctx) error {
	var in dto.UpdateSettingsRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cfg, err := h.uc.UpdateResetTime(c.Context(), in.ResetTime)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidResetTime) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "horario inválido, formato esperado HH:MM"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.SettingsResponse{ResetTime: cfg.ResetTime, LastResetDate: cfg.LastResetDate})
}

// GetResetStatus godoc
// @Summary      Estado del controlador de cierre diario
// @Tags         settings
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ResetStatusResponse
// @Router       /api/reset/status [get]
func (h *SettingsHandler) GetResetStatus(c *fiber.Ctx) error {
	cfg, err := h.uc.Get(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(dto.ResetStatusResponse{
		State:         h.controller.State(),
		ResetTime:     cfg.ResetTime,
		LastResetDate: cfg.LastResetDate,
	})
}
