package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jcastell/milasset-api/internal/application/auth"
	appdashboard "github.com/jcastell/milasset-api/internal/application/dashboard"
	appledger "github.com/jcastell/milasset-api/internal/application/ledger"
	"github.com/jcastell/milasset-api/internal/application/reference"
	"github.com/jcastell/milasset-api/internal/application/report"
	"github.com/jcastell/milasset-api/internal/domain/entity"
)

// RouterDeps dependencies for the router.
type RouterDeps struct {
	AuthUC      *auth.UseCase
	LedgerUC    *appledger.UseCase
	DashboardUC *appdashboard.UseCase
	ReferenceUC *reference.UseCase
	Exporter    *report.Exporter
	JWTSecret   string
}

// Router registers the API routes.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (public)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/token", authHandler.Token)

	// Everything else requires a Bearer token.
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Reference data (any authenticated role)
	referenceHandler := NewReferenceHandler(deps.ReferenceUC)
	protected.Get("/bases", referenceHandler.ListBases)
	protected.Get("/equipment", referenceHandler.ListEquipment)

	// Transactions. The route gates are coarse; the usecases enforce the
	// own-base rules on top.
	ledgerHandler := NewLedgerHandler(deps.LedgerUC)
	canPurchase := RequireRole(entity.RoleAdmin, entity.RoleLogisticsOfficer)
	canExpend := RequireRole(entity.RoleAdmin, entity.RoleBaseCommander)

	protected.Post("/purchases", canPurchase, ledgerHandler.CreatePurchase)
	protected.Get("/purchases", ledgerHandler.ListPurchases)
	protected.Post("/transfers", canPurchase, ledgerHandler.CreateTransfer)
	protected.Get("/transfers", ledgerHandler.ListTransfers)
	protected.Post("/assignments", canExpend, ledgerHandler.CreateAssignment)
	protected.Get("/assignments", ledgerHandler.ListAssignments)
	protected.Post("/expenditures", canExpend, ledgerHandler.CreateExpenditure)
	protected.Get("/expenditures", ledgerHandler.ListExpenditures)

	// Dashboard and stock
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
	protected.Get("/stock", dashboardHandler.Stock)

	// Reports
	reportHandler := NewReportHandler(deps.Exporter)
	protected.Get("/reports/ledger.xlsx", reportHandler.LedgerExport)

	// Prometheus
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
}
