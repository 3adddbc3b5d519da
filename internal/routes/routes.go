// Package routes defines the API routing configuration.
// It groups the display-facing endpoints by module and wires them to
// their handlers.
package routes

import (
	"github.com/gofiber/fiber/v2"

	"ctlpay/internal/handlers"
	"ctlpay/internal/services/connectivity"
	"ctlpay/internal/services/history"
	"ctlpay/internal/services/scanner"
	"ctlpay/internal/services/transaction"
	"ctlpay/internal/services/wallet"
)

// Deps carries the services the HTTP layer binds to.
type Deps struct {
	Monitor      *connectivity.Monitor
	Transactions transaction.Service
	Wallet       wallet.Service
	Ledger       *history.Ledger
	Scanner      *scanner.Scanner
	ScannerHub   *scanner.Hub
}

// SetupRoutes configures all application routes.
func SetupRoutes(app *fiber.App, deps Deps) {
	statusHandler := handlers.NewStatusHandler(deps.Monitor)
	transactionHandler := handlers.NewTransactionHandler(deps.Transactions)
	walletHandler := handlers.NewWalletHandler(deps.Wallet)
	historyHandler := handlers.NewHistoryHandler(deps.Ledger)
	scannerHandler := handlers.NewScannerHandler(deps.Scanner, deps.ScannerHub, deps.Transactions)

	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"service": "ctlpay",
			"version": "1.0.0",
			"docs":    "/api",
		})
	})

	api := app.Group("/api")

	api.Get("/status", statusHandler.GetStatus)
	api.Post("/status/probe", statusHandler.Probe)

	api.Get("/transaction", transactionHandler.Current)
	api.Post("/transaction/load", transactionHandler.Load)
	api.Post("/transaction/pay", transactionHandler.Pay)
	api.Post("/transaction/cancel", transactionHandler.Cancel)
	api.Post("/transaction/acknowledge", transactionHandler.Acknowledge)

	api.Get("/wallet/balance", walletHandler.GetBalance)
	api.Post("/wallet/refresh", walletHandler.RefreshBalance)
	api.Post("/wallet/recharge", walletHandler.TopUp)
	api.Get("/wallet/quote", walletHandler.Quote)
	api.Get("/wallet/operators", walletHandler.Operators)

	api.Get("/history", historyHandler.List)
	api.Delete("/history", historyHandler.Clear)

	api.Get("/scanner", scannerHandler.Status)
	api.Post("/scanner/start", scannerHandler.Start)
	api.Post("/scanner/stop", scannerHandler.Stop)
	api.Post("/scanner/frame", scannerHandler.Frame)
}
