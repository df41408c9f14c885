// Package main initializes and starts the account API server,
// setting up configuration, logging, the persistence slot, the
// account store, services, and handlers.
package main

import (
	"cmp"
	"fmt"
	"log"

	nethttp "net/http"

	"github.com/atinyakov/AccountKeeper/internal/config"
	"github.com/atinyakov/AccountKeeper/internal/db"
	"github.com/atinyakov/AccountKeeper/internal/logger"
	"github.com/atinyakov/AccountKeeper/internal/repository"
	"github.com/atinyakov/AccountKeeper/internal/server/handler/http"
	"github.com/atinyakov/AccountKeeper/internal/service"
	"github.com/atinyakov/AccountKeeper/internal/storage"
	"github.com/atinyakov/AccountKeeper/internal/store"
	"go.uber.org/zap"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

func main() {
	// Parse command-line and environment configuration.
	options, err := config.Parse()
	if err != nil {
		log.Fatal(err)
	}

	// Print build metadata (or "N/A" if unset).
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	// Initialize structured logging.
	lg := logger.New()
	if err := lg.Init(options.LogLevel); err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer func() { _ = lg.Log.Sync() }()
	zapLogger := lg.Log

	slot, err := openSlot(options, zapLogger)
	if err != nil {
		zapLogger.Fatal("cannot open storage", zap.Error(err))
	}

	accounts := store.New(slot,
		store.WithKey(options.StorageKey),
		store.WithDemoSeed(options.SeedDemo),
		store.WithLogger(zapLogger),
	)
	if err := accounts.LoadFromStorage(); err != nil {
		zapLogger.Fatal("cannot load accounts", zap.Error(err))
	}
	zapLogger.Info("accounts loaded", zap.Int("count", accounts.Count()))

	accountService := service.NewAccountService(accounts)
	accountHandler := &http.AccountHandler{AccountService: accountService, Logger: zapLogger}
	router := http.NewRouter(accountHandler, zapLogger)

	server := &nethttp.Server{
		Addr:    options.Port,
		Handler: router,
	}

	zapLogger.Info("starting HTTP server", zap.String("addr", options.Port))
	if err := server.ListenAndServe(); err != nil {
		zapLogger.Fatal("failed to start HTTP server", zap.Error(err))
	}
}

// openSlot picks PostgreSQL when a DSN is configured and the file slot otherwise.
func openSlot(options *config.Options, zapLogger *zap.Logger) (store.Slot, error) {
	if options.DatabaseDSN != "" {
		postgresDB, err := db.InitPostgres(options.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		zapLogger.Info("using postgres storage")
		return repository.NewPostgresSlotRepository(postgresDB), nil
	}

	zapLogger.Info("using file storage", zap.String("dir", options.StorageDir))
	fileSlot, err := storage.NewFile(options.StorageDir)
	if err != nil {
		return nil, err
	}
	return fileSlot, nil
}
