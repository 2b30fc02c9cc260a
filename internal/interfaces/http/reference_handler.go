package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastell/milasset-api/internal/application/dto"
	"github.com/jcastell/milasset-api/internal/application/reference"
)

// ReferenceHandler serves the base and equipment lookup lists (protected,
// any authenticated role).
type ReferenceHandler struct {
	uc *reference.UseCase
}

// NewReferenceHandler builds the handler.
func NewReferenceHandler(uc *reference.UseCase) *ReferenceHandler {
	return &ReferenceHandler{uc: uc}
}

// ListBases godoc
// @Summary      List bases
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.BaseResponse
// @Router       /api/bases [get]
func (h *ReferenceHandler) ListBases(c *fiber.Ctx) error {
	bases, err := h.uc.Bases(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.BaseResponse, 0, len(bases))
	for _, b := range bases {
		out = append(out, dto.BaseResponse{ID: b.ID, Name: b.Name})
	}
	return c.JSON(out)
}

// ListEquipment godoc
// @Summary      List equipment catalog
// @Tags         reference
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.EquipmentResponse
// @Router       /api/equipment [get]
func (h *ReferenceHandler) ListEquipment(c *fiber.Ctx) error {
	equipment, err := h.uc.Equipment(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.EquipmentResponse, 0, len(equipment))
	for _, e := range equipment {
		out = append(out, dto.EquipmentResponse{ID: e.ID, Name: e.Name, Category: e.Category})
	}
	return c.JSON(out)
}
