package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/avandyk/wealth-analytics/internal/api"
	"github.com/avandyk/wealth-analytics/internal/config"
	"github.com/avandyk/wealth-analytics/internal/database"
	"github.com/avandyk/wealth-analytics/internal/repository"
	"github.com/avandyk/wealth-analytics/internal/scheduler"
	"github.com/avandyk/wealth-analytics/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	accountRepo := repository.NewAccountRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)
	valuationRepo := repository.NewValuationRepository(db)
	materializedRepo := repository.NewMaterializedRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	accountService := service.NewAccountService(accountRepo, snapshotRepo)
	returnService := service.NewReturnService(accountRepo, snapshotRepo)
	wealthService := service.NewWealthService(accountRepo, snapshotRepo, valuationRepo)
	materializedService := service.NewMaterializedService(materializedRepo, wealthService)
	importService := service.NewImportService(snapshotRepo, valuationRepo)

	// Create router
	router := api.NewRouter(api.Services{
		System:       systemService,
		Account:      accountService,
		Return:       returnService,
		Wealth:       wealthService,
		Materialized: materializedService,
		Import:       importService,
	}, cfg)

	// Start the materialized refresh scheduler
	var refreshScheduler *scheduler.Scheduler
	if cfg.Scheduler.Enabled {
		refreshScheduler, err = scheduler.New(materializedService, cfg.Scheduler.RefreshSchedule)
		if err != nil {
			log.Fatalf("Failed to create scheduler: %v", err)
		}
		refreshScheduler.Start()
		log.Printf("Materialized refresh scheduled: %s", cfg.Scheduler.RefreshSchedule)
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	if refreshScheduler != nil {
		refreshScheduler.Stop()
	}

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
