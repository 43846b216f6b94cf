package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"auracall/internal/common/logging"
	"auracall/internal/config"
	"auracall/internal/handlers"
	"auracall/internal/middleware"
	"auracall/internal/routing"
	"auracall/internal/server"
	"auracall/internal/storage/sqlite"
	"auracall/internal/summary"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	logging.InitGlobalLogger()
	defer logging.MustSync()

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logging.Error("Invalid configuration", err)
		os.Exit(1)
	}

	store, err := sqlite.NewAdapter(&sqlite.Config{DatabasePath: cfg.DatabasePath})
	if err != nil {
		logging.Error("Failed to initialize database", err, logging.String("path", cfg.DatabasePath))
		os.Exit(1)
	}
	defer store.Close()

	repo := routing.NewRepository()
	repo.Load(routing.DefaultRules(), routing.DefaultGroups())

	simulator := routing.NewSimulator(routing.NewBasicRuleEngine(), routing.NewWeightedSelector(nil))
	summarizer := summary.NewClient(cfg.GeminiAPIKey, cfg.GeminiAPIURL, cfg.GeminiModel, nil)

	h := handlers.New(store, repo, simulator, summarizer, cfg)

	router := mux.NewRouter()
	router.Use(middleware.LoggingMiddleware)

	api := router.PathPrefix("/api").Subrouter()

	// Routing rule engine
	api.HandleFunc("/routing/rules", h.GetRoutingRules).Methods("GET")
	api.HandleFunc("/routing/rules", h.SaveRoutingRule).Methods("POST")
	api.HandleFunc("/routing/rules/reorder", h.ReorderRoutingRules).Methods("POST")
	api.HandleFunc("/routing/rules/{id}", h.UpdateRoutingRule).Methods("PUT")
	api.HandleFunc("/routing/rules/{id}", h.DeleteRoutingRule).Methods("DELETE")
	api.HandleFunc("/routing/groups", h.GetTargetGroups).Methods("GET")
	api.HandleFunc("/routing/groups", h.SaveTargetGroup).Methods("POST")
	api.HandleFunc("/routing/groups/{id}", h.UpdateTargetGroup).Methods("PUT")
	api.HandleFunc("/routing/groups/{id}", h.DeleteTargetGroup).Methods("DELETE")
	api.HandleFunc("/routing/simulate", h.SimulateCall).Methods("POST")

	// Targets
	api.HandleFunc("/targets", h.GetTargets).Methods("GET")
	api.HandleFunc("/targets/{id}", h.GetTarget).Methods("GET")

	// Campaigns
	api.HandleFunc("/campaigns", h.GetCampaigns).Methods("GET")
	api.HandleFunc("/campaigns", h.CreateCampaign).Methods("POST")
	api.HandleFunc("/campaigns/{id}", h.GetCampaign).Methods("GET")
	api.HandleFunc("/campaigns/{id}", h.UpdateCampaign).Methods("PUT")
	api.HandleFunc("/campaigns/{id}", h.DeleteCampaign).Methods("DELETE")

	// Tracked numbers
	api.HandleFunc("/numbers", h.GetNumbers).Methods("GET")
	api.HandleFunc("/numbers/search", h.SearchNumbers).Methods("GET")
	api.HandleFunc("/numbers/purchase", h.PurchaseNumbers).Methods("POST")
	api.HandleFunc("/numbers/{id}/assign", h.AssignNumber).Methods("POST")

	// Call logs
	api.HandleFunc("/calls", h.GetCalls).Methods("GET")
	api.HandleFunc("/calls/export", h.ExportCalls).Methods("GET")

	// Dashboard statistics
	api.HandleFunc("/stats", h.GetStats).Methods("GET")
	api.HandleFunc("/stats/volume", h.GetCallVolume).Methods("GET")
	api.HandleFunc("/stats/campaigns", h.GetCallsByCampaign).Methods("GET")
	api.HandleFunc("/stats/status", h.GetStatusBreakdown).Methods("GET")

	// AI report summary
	api.HandleFunc("/reports/summary", h.GenerateReportSummary).Methods("POST")

	// Health check
	router.HandleFunc("/health", h.HealthCheck).Methods("GET")

	srv := server.New(router, cfg.Port, cfg.TLSCert, cfg.TLSKey)
	if err := srv.Start(); err != nil {
		logging.Error("Failed to start server", err)
		os.Exit(1)
	}

	scheme := "http"
	if cfg.TLSCert != "" {
		scheme = "https"
	}
	logging.Info("AuraCall service started",
		logging.String("port", cfg.Port),
		logging.String("scheme", scheme),
		logging.String("database", cfg.DatabasePath))

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logging.Info("Shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil && err != http.ErrServerClosed {
		logging.Error("Server forced to shutdown", err)
	}

	logging.Info("Server exited")
}
