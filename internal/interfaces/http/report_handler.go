package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"

	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
	"github.com/jcastell/milasset-api/internal/application/report"
)

// ReportHandler serves downloadable ledger reports (protected).
type ReportHandler struct {
	exporter *report.Exporter
}

// NewReportHandler builds the handler.
func NewReportHandler(exporter *report.Exporter) *ReportHandler {
	return &ReportHandler{exporter: exporter}
}

// LedgerExport godoc
// @Summary      Download the ledger as an .xlsx workbook
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        base_id     query  int     false  "Base filter"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {file}  binary
// @Router       /api/reports/ledger.xlsx [get]
func (h *ReportHandler) LedgerExport(c *fiber.Ctx) error {
	from, err := appledger.ParseOptionalDate("start_date", c.Query("start_date"))
	if err != nil {
		return respondError(c, err)
	}
	to, err := appledger.ParseOptionalDate("end_date", c.Query("end_date"))
	if err != nil {
		return respondError(c, err)
	}

	data, err := h.exporter.LedgerWorkbook(c.Context(), GetScope(c), int64(c.QueryInt("base_id")), from, to)
	if err != nil {
		return respondError(c, err)
	}

	filename := fmt.Sprintf("ledger-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
