package main

import (
	"context"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Elgringol/Abonos-Riazor-Berberecho/api/routes"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/config"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/handlers"
	mongorepo "github.com/Elgringol/Abonos-Riazor-Berberecho/internal/repositories/mongodb"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/services"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/internal/store"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/pkg/mongodb"
	"github.com/Elgringol/Abonos-Riazor-Berberecho/pkg/sheets"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/lmittmann/tint"
)

func main() {
	// Load .env if present; real deployments use environment variables
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	// Connect to MongoDB
	mongoClient, err := mongodb.NewClient(cfg.MongoDB.URI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer func() {
		if err := mongoClient.Disconnect(context.Background()); err != nil {
			slog.Error("Error disconnecting from MongoDB", "error", err)
		}
	}()

	db := mongoClient.Database(cfg.MongoDB.Database)
	stateRepo := mongorepo.NewStateRepository(db)

	clock := clockwork.NewRealClock()
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Open the state store; a broken store degrades to defaults and flags
	// the sync error rather than refusing to start
	st := store.Open(context.Background(), stateRepo, clock)
	defer st.Close()

	// Initialize services
	sheetClient := sheets.NewClient(cfg.Sheet.CSVURL)
	rosterService := services.NewRosterService(sheetClient)
	raffleService := services.NewRaffleService(st, rosterService, rng, clock, cfg.Raffle.Season)
	slotService := services.NewSlotService(st, rosterService, clock, cfg)
	passService := services.NewPassService(rosterService, clock, cfg)

	// Warm the roster cache; the sheet being down is not fatal, the first
	// admin action will retry
	if err := rosterService.Refresh(context.Background()); err != nil {
		slog.Warn("Initial roster fetch failed", "error", err)
	}

	// Initialize handlers
	handlerDeps := routes.HandlerDependencies{
		MemberHandler: handlers.NewMemberHandler(rosterService),
		SlotHandler:   handlers.NewSlotHandler(slotService, st),
		RaffleHandler: handlers.NewRaffleHandler(raffleService),
		PassHandler:   handlers.NewPassHandler(passService),
	}

	router := routes.SetupRouter(cfg, handlerDeps)

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Run server in a goroutine so that it doesn't block
	go func() {
		slog.Info("Server starting", "port", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
	}

	slog.Info("Server exiting")
}

func setupLogger(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	slog.SetDefault(slog.New(tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})))
}
