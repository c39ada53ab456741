// Package server assembles the fiber application: middleware, error
// rendering and the route table.
package server

import (
	"time"

	"truckfin-backend/internal/audit"
	"truckfin-backend/internal/auth"
	"truckfin-backend/internal/calculator"
	"truckfin-backend/internal/cashflow"
	"truckfin-backend/internal/config"
	"truckfin-backend/internal/dashboard"
	"truckfin-backend/internal/expense"
	"truckfin-backend/internal/goal"
	"truckfin-backend/internal/income"
	"truckfin-backend/internal/metrics"
	"truckfin-backend/internal/paystructure"
	"truckfin-backend/internal/report"
	"truckfin-backend/internal/state"
	"truckfin-backend/internal/store"
	"truckfin-backend/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Deps struct {
	Config  *config.Config
	Store   *store.Store
	State   *state.Service
	Audit   *audit.Service
	Metrics *metrics.Metrics // nil disables /metrics
	Now     func() time.Time
}

func New(d Deps) *fiber.App {
	if d.Now == nil {
		d.Now = func() time.Time { return time.Now().UTC() }
	}
	cfg, svc, st := d.Config, d.State, d.Store

	app := fiber.New(fiber.Config{
		AppName:      "truckfin",
		ErrorHandler: errorHandler,
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(requestLogger())
	if d.Metrics != nil {
		app.Use(d.Metrics.Middleware())
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins(),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}))

	app.Get("/healthz", func(c *fiber.Ctx) error {
		if err := st.Ping(c.UserContext()); err != nil {
			return fiber.NewError(fiber.StatusServiceUnavailable, "Database unavailable")
		}
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if d.Metrics != nil {
		app.Get("/metrics", d.Metrics.Handler())
	}

	api := app.Group("/api")

	// Public
	api.Post("/users", auth.RegisterHandler(cfg, svc))
	api.Post("/auth/login", auth.LoginHandler(cfg, st))
	api.Get("/catalog", calculator.CatalogHandler())

	// Protected
	protected := api.Group("")
	protected.Use(auth.JWTMiddleware(cfg))

	self := auth.RequireSelf("id")
	selfUser := auth.RequireSelf("userId")

	// User and settings
	protected.Get("/users/:id", self, user.GetUserHandler(svc))
	protected.Patch("/users/:id/cash", self, user.UpdateCashHandler(svc))
	protected.Patch("/users/:id/settings", self, user.UpdateSettingsHandler(svc))
	protected.Patch("/users/:id/role", self, user.SetRoleHandler(svc))
	protected.Get("/users/:userId/state", selfUser, user.GetStateHandler(svc))
	protected.Post("/users/:userId/reset", selfUser, user.ResetHandler(svc))
	protected.Get("/users/:userId/tax-settings", selfUser, user.GetTaxSettingsHandler(svc))
	protected.Put("/users/:userId/tax-settings", selfUser, user.SaveTaxSettingsHandler(svc))
	protected.Get("/users/:userId/tax-estimate", selfUser, user.TaxEstimateHandler(svc))

	// Expenses
	protected.Get("/users/:userId/expenses", selfUser, expense.ListExpensesHandler(svc))
	protected.Get("/users/:userId/expenses/summary", selfUser, expense.ExpenseSummaryHandler(svc))
	protected.Post("/expenses", expense.CreateExpenseHandler(svc))
	protected.Patch("/expenses/:id", expense.UpdateExpenseHandler(svc))
	protected.Delete("/expenses/:id", expense.DeleteExpenseHandler(svc))

	// Goals
	protected.Get("/users/:userId/goals", selfUser, goal.ListGoalsHandler(svc))
	protected.Post("/goals", goal.CreateGoalHandler(svc))
	protected.Patch("/goals/:id", goal.UpdateGoalHandler(svc))
	protected.Patch("/goals/:id/progress", goal.UpdateProgressHandler(svc))

	// Income
	protected.Get("/users/:userId/income-logs", selfUser, income.ListIncomeLogsHandler(svc))
	protected.Post("/income-logs", income.LogActivityHandler(svc))
	protected.Patch("/income-logs/:id", income.UpdateIncomeLogHandler(svc))
	protected.Delete("/income-logs/:id", income.DeleteIncomeLogHandler(svc))

	// Pay structures
	protected.Get("/users/:userId/pay-structures", selfUser, paystructure.ListPayStructuresHandler(svc))
	protected.Post("/pay-structures", paystructure.CreatePayStructureHandler(svc))
	protected.Patch("/pay-structures/:id", paystructure.UpdatePayStructureHandler(svc))
	protected.Patch("/pay-structures/:id/toggle", paystructure.TogglePayStructureHandler(svc))
	protected.Delete("/pay-structures/:id", paystructure.DeletePayStructureHandler(svc))

	// Calculators
	protected.Get("/users/:userId/week-off", selfUser, calculator.WeekOffHandler(svc))
	protected.Post("/users/:userId/what-if", selfUser, calculator.WhatIfHandler(svc))

	// Cash flow and dashboard
	protected.Get("/users/:userId/cash-adjustments", selfUser, cashflow.ListCashAdjustmentsHandler(st))
	protected.Get("/users/:userId/cash-adjustments/summary/monthly", selfUser, cashflow.MonthlySummaryHandler(st))
	protected.Get("/users/:userId/dashboard/summary", selfUser, dashboard.SummaryHandler(st, d.Now))
	protected.Get("/users/:userId/dashboard/income-chart", selfUser, dashboard.IncomeChartHandler(st, d.Now))
	protected.Get("/users/:userId/export.xlsx", selfUser, report.ExportHandler(svc, d.Now))

	// Audit
	protected.Get("/users/:userId/audit-logs", selfUser, audit.ListAuditLogsHandler(d.Audit))
	protected.Post("/audit-logs/:id/undo", audit.UndoAuditLogHandler(d.Audit))

	return app
}
