package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/distribuidora-api/internal/application/dto"
	"github.com/jhoicas/distribuidora-api/internal/application/usecase"
	"github.com/jhoicas/distribuidora-api/internal/domain"
)

// AddressHandler catálogos de estados y ciudades para formularios de dirección.
type AddressHandler struct {
	uc *usecase.AddressUseCase
}

// NewAddressHandler construye el handler.
func NewAddressHandler(uc *usecase.AddressUseCase) *AddressHandler {
	return &AddressHandler{uc: uc}
}

// ListStates godoc
// @Summary      Listar estados
// @Tags         addresses
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.StateResponse
// @Router       /api/states [get]
func (h *AddressHandler) ListStates(c *fiber.Ctx) error {
	out, err := h.uc.ListStates(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ListCities godoc
// @Summary      Listar ciudades de un estado
// @Tags         addresses
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del estado"
// @Success      200  {array}  dto.CityResponse
// @Router       /api/states/{id}/cities [get]
func (h *AddressHandler) ListCities(c *fiber.Ctx) error {
	out, err := h.uc.ListCities(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "id es requerido"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
