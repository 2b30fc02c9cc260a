package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastell/milasset-api/internal/application/dto"
	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// LedgerHandler serves the four transaction endpoints (protected).
type LedgerHandler struct {
	uc *appledger.UseCase
}

// NewLedgerHandler builds the handler.
func NewLedgerHandler(uc *appledger.UseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// CreatePurchase godoc
// @Summary      Record a purchase
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "base_id, equipment_id, quantity, purchase_date"
// @Success      201  {object}  dto.LedgerEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *LedgerHandler) CreatePurchase(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	entry, err := h.uc.RecordPurchaseFromRequest(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerEntryResponse(entry))
}

// ListPurchases godoc
// @Summary      List purchases
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Param        base_id       query  int     false  "Base filter (commanders are fixed to their own base)"
// @Param        equipment_id  query  int     false  "Equipment filter"
// @Param        start_date    query  string  false  "YYYY-MM-DD"
// @Param        end_date      query  string  false  "YYYY-MM-DD"
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/purchases [get]
func (h *LedgerHandler) ListPurchases(c *fiber.Ctx) error {
	return h.list(c, entity.KindPurchase)
}

// CreateTransfer godoc
// @Summary      Record an inter-base transfer
// @Description  Writes both legs atomically: transfer_out at the source and
// @Description  transfer_in at the destination, linked by a transfer id.
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTransferRequest  true  "source_base_id, dest_base_id, equipment_id, quantity, transfer_date"
// @Success      201  {object}  map[string]interface{}
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/transfers [post]
func (h *LedgerHandler) CreateTransfer(c *fiber.Ctx) error {
	var in dto.CreateTransferRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	outLeg, inLeg, err := h.uc.RecordTransferFromRequest(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transfer_id": outLeg.TransferID,
		"out":         dto.NewLedgerEntryResponse(outLeg),
		"in":          dto.NewLedgerEntryResponse(inLeg),
	})
}

// ListTransfers godoc
// @Summary      List transfer legs
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/transfers [get]
func (h *LedgerHandler) ListTransfers(c *fiber.Ctx) error {
	return h.list(c, entity.KindTransferOut, entity.KindTransferIn)
}

// CreateAssignment godoc
// @Summary      Assign equipment to personnel
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAssignmentRequest  true  "base_id, equipment_id, personnel_name, quantity, assigned_date"
// @Success      201  {object}  dto.LedgerEntryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/assignments [post]
func (h *LedgerHandler) CreateAssignment(c *fiber.Ctx) error {
	var in dto.CreateAssignmentRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	entry, err := h.uc.RecordAssignmentFromRequest(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerEntryResponse(entry))
}

// ListAssignments godoc
// @Summary      List assignments
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/assignments [get]
func (h *LedgerHandler) ListAssignments(c *fiber.Ctx) error {
	return h.list(c, entity.KindAssignment)
}

// CreateExpenditure godoc
// @Summary      Record an expenditure
// @Tags         ledger
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenditureRequest  true  "base_id, equipment_id, quantity, expended_date"
// @Success      201  {object}  dto.LedgerEntryResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/expenditures [post]
func (h *LedgerHandler) CreateExpenditure(c *fiber.Ctx) error {
	var in dto.CreateExpenditureRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "malformed body"})
	}
	entry, err := h.uc.RecordExpenditureFromRequest(c.Context(), GetScope(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLedgerEntryResponse(entry))
}

// ListExpenditures godoc
// @Summary      List expenditures
// @Tags         ledger
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LedgerEntryResponse
// @Router       /api/expenditures [get]
func (h *LedgerHandler) ListExpenditures(c *fiber.Ctx) error {
	return h.list(c, entity.KindExpenditure)
}

func (h *LedgerHandler) list(c *fiber.Ctx, kinds ...entity.Kind) error {
	from, err := appledger.ParseOptionalDate("start_date", c.Query("start_date"))
	if err != nil {
		return respondError(c, err)
	}
	to, err := appledger.ParseOptionalDate("end_date", c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "invalid pagination"})
	}
	page.DefaultPage()

	entries, err := h.uc.List(c.Context(), GetScope(c), appledger.ListInput{
		Kinds:       kinds,
		BaseID:      int64(c.QueryInt("base_id")),
		EquipmentID: int64(c.QueryInt("equipment_id")),
		From:        from,
		To:          to,
		Limit:       page.Limit,
		Offset:      page.Offset,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLedgerEntryResponses(entries))
}
