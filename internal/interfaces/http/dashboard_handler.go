package http

import (
	"github.com/gofiber/fiber/v2"

	appdashboard "github.com/jcastell/milasset-api/internal/application/dashboard"
	"github.com/jcastell/milasset-api/internal/application/dto"
	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
)

// DashboardHandler serves the balance aggregate and stock views (protected).
type DashboardHandler struct {
	uc *appdashboard.UseCase
}

// NewDashboardHandler builds the handler.
func NewDashboardHandler(uc *appdashboard.UseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Summary godoc
// @Summary      Balance aggregate for one base over a date window
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        base_id     query  int     true   "Base"
// @Param        start_date  query  string  false  "YYYY-MM-DD, default beginning of ledger"
// @Param        end_date    query  string  false  "YYYY-MM-DD, default now"
// @Success      200  {object}  dto.DashboardResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) Summary(c *fiber.Ctx) error {
	start, err := appledger.ParseOptionalDate("start_date", c.Query("start_date"))
	if err != nil {
		return respondError(c, err)
	}
	end, err := appledger.ParseOptionalDate("end_date", c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	baseID := int64(c.QueryInt("base_id"))

	s, err := h.uc.Summary(c.Context(), GetScope(c), baseID, start, end)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.DashboardResponse{
		BaseID:         baseID,
		OpeningBalance: s.OpeningBalance,
		Purchases:      s.Purchases,
		TransferIn:     s.TransferIn,
		TransferOut:    s.TransferOut,
		Assigned:       s.Assigned,
		Expended:       s.Expended,
		NetMovement:    s.NetMovement,
		ClosingBalance: s.ClosingBalance,
	})
}

// Stock godoc
// @Summary      Current per-equipment stock at a base
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        base_id  query  int  true  "Base"
// @Success      200  {array}  dto.StockItemResponse
// @Router       /api/stock [get]
func (h *DashboardHandler) Stock(c *fiber.Ctx) error {
	items, err := h.uc.Stock(c.Context(), GetScope(c), int64(c.QueryInt("base_id")))
	if err != nil {
		return respondError(c, err)
	}
	out := make([]dto.StockItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.StockItemResponse{
			EquipmentID:   it.EquipmentID,
			EquipmentName: it.EquipmentName,
			Category:      it.Category,
			OnHand:        it.OnHand,
			Assigned:      it.Assigned,
		})
	}
	return c.JSON(out)
}
