// Package main is the entry point for the vending-machine payment client.
// It wires the remote gateway, the connectivity monitor, the purchase and
// wallet services, the history journal and the QR scanner, then serves the
// local API the display binds to.
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"ctlpay/internal/config"
	"ctlpay/internal/gateway"
	"ctlpay/internal/metrics"
	"ctlpay/internal/models"
	"ctlpay/internal/routes"
	"ctlpay/internal/services/connectivity"
	"ctlpay/internal/services/history"
	"ctlpay/internal/services/scanner"
	"ctlpay/internal/services/transaction"
	"ctlpay/internal/services/wallet"
)

func main() {
	config.LoadEnv()
	cfg := config.Load()

	collector := metrics.NewCollector()
	client := gateway.NewClient(cfg.APIBaseURL, cfg.HTTPTimeout)

	operators := loadOperators(cfg)

	monitor := connectivity.NewMonitor(client, cfg.HealthInterval, collector)
	monitor.Subscribe(func(state connectivity.State) {
		if state.Online {
			log.Println("serveur CTL-Pay joignable")
		} else {
			log.Printf("serveur CTL-Pay injoignable: %s", state.LastError)
		}
	})

	store, closeStore := newHistoryStore(cfg)
	defer closeStore()
	ledger := history.NewLedger(store, cfg.HistoryLimit)

	walletService := wallet.NewService(client, monitor, operators, collector)
	transactionService := transaction.NewService(client, monitor, walletService, ledger, collector)

	hub := scanner.NewHub(0)
	qrScanner := scanner.New(hub.Open)

	monitor.Start(context.Background())
	defer monitor.Stop()
	defer qrScanner.Stop()

	// Best-effort warm-up: the display shows a stale zero until the first
	// refresh succeeds.
	warmCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPTimeout)
	if _, err := walletService.RefreshBalance(warmCtx); err != nil {
		log.Printf("solde initial indisponible: %v", err)
	}
	cancel()

	if cfg.MetricsAddr != "" {
		go serveMetrics(cfg.MetricsAddr)
	}

	app := fiber.New(fiber.Config{
		AppName:      "ctlpay",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: config.GetEnv("CORS_ORIGINS", "http://localhost:5173"),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,DELETE",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	routes.SetupRoutes(app, routes.Deps{
		Monitor:      monitor,
		Transactions: transactionService,
		Wallet:       walletService,
		Ledger:       ledger,
		Scanner:      qrScanner,
		ScannerHub:   hub,
	})

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("serveur HTTP arrêté: %v", err)
		}
	}()
	log.Printf("client CTL-Pay à l'écoute sur le port %s", cfg.Port)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("arrêt en cours...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Printf("arrêt du serveur HTTP: %v", err)
	}
}

func loadOperators(cfg *config.Config) []models.Operator {
	if cfg.OperatorsFile == "" {
		return config.DefaultOperators()
	}
	operators, err := config.LoadOperators(cfg.OperatorsFile)
	if err != nil {
		log.Fatalf("barème opérateurs illisible (%s): %v", cfg.OperatorsFile, err)
	}
	return operators
}

func newHistoryStore(cfg *config.Config) (history.Store, func()) {
	if cfg.RedisAddr == "" {
		return history.NewMemoryStore(), func() {}
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("Redis injoignable (%s), historique en mémoire: %v", cfg.RedisAddr, err)
		_ = client.Close()
		return history.NewMemoryStore(), func() {}
	}

	log.Printf("historique persisté dans Redis (%s)", cfg.RedisAddr)
	return history.NewRedisStore(client), func() {
		if err := client.Close(); err != nil {
			log.Printf("fermeture Redis: %v", err)
		}
	}
}

// serveMetrics exposes Prometheus metrics on a dedicated listener, kept
// off the display-facing API.
func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Printf("métriques exposées sur %s/metrics", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Printf("serveur de métriques arrêté: %v", err)
	}
}
