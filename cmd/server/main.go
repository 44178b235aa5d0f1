package main

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"skycast/internal/api"
	"skycast/internal/config"
	"skycast/internal/logging"
	"skycast/internal/metrics"
	"skycast/internal/routes"
)

func main() {
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// .env is optional; real deployments set variables directly.
	_ = godotenv.Load()

	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = "development"
	}

	if err := logging.Init(appEnv); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logging.Close()

	logging.Info("Skycast starting up",
		"environment", appEnv,
		"timestamp", time.Now().Format(time.RFC3339),
	)

	cfg, err := config.Load()
	if err != nil {
		logging.Error("Invalid configuration", "error", err.Error())
		log.Fatalf("Invalid configuration: %v", err)
	}

	metricsReg := metrics.NewMetricsRegistry()

	deps, err := api.InitDependencies(cfg, metricsReg)
	if err != nil {
		logging.Error("Failed to initialize dependencies", "error", err.Error())
		log.Fatalf("Failed to initialize dependencies: %v", err)
	}

	upSince := time.Now()

	router := routes.RegisterRoutes(deps, upSince)

	// Metrics endpoint lives outside the Chi router so it skips the
	// request middleware chain.
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", router)
	logging.Info("Prometheus metrics endpoint registered at /metrics")

	logging.Info("Server starting",
		"addr", cfg.HTTPAddr,
		"environment", appEnv,
	)

	log.Printf("Starting server on %s", cfg.HTTPAddr)
	serveErr := http.ListenAndServe(cfg.HTTPAddr, mux)

	logging.Error("Server stopped", "error", serveErr.Error())
	if err := deps.Cache.Close(); err != nil {
		logging.Error("Failed to close cache", "error", err.Error())
	}
	os.Exit(1)
}
