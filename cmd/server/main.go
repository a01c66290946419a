package main

import (
	"net/http"
	"os"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"

	"github.com/pometrix/ledger-export/internal/application/service"
	"github.com/pometrix/ledger-export/internal/config"
	"github.com/pometrix/ledger-export/internal/domain/ledger"
	domainsvc "github.com/pometrix/ledger-export/internal/domain/service"
	"github.com/pometrix/ledger-export/internal/infrastructure/api"
	"github.com/pometrix/ledger-export/internal/infrastructure/cache"
	"github.com/pometrix/ledger-export/internal/infrastructure/db"
	"github.com/pometrix/ledger-export/internal/infrastructure/handler"
	"github.com/pometrix/ledger-export/internal/infrastructure/logger"
	"github.com/pometrix/ledger-export/internal/infrastructure/middleware"
)

func main() {
	cfg, err := config.Load("config.yaml")
	if err != nil {
		logger.GetDefaultLogger().Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.NewJSONLogger(os.Stdout, logger.ParseLevel(cfg.LogLevel))
	logger.SetDefaultLogger(log)

	log.Info("Starting ledger export service", map[string]interface{}{
		"listen_addr": cfg.ListenAddr,
		"data_dir":    cfg.DataDir,
	})

	// Document archive.
	if err := os.MkdirAll(cfg.DataDir, 0755); err != nil {
		log.Fatal("Failed to create data directory", map[string]interface{}{
			"dir":   cfg.DataDir,
			"error": err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.DataDir)
	badgerOpts.Logger = nil

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"error": err.Error(),
		})
	}
	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing database", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	store := db.NewBadgerFileStore(badgerDB)

	// Quotation source, optionally cached.
	httpClient := &http.Client{Timeout: time.Duration(cfg.QuoteTimeoutSeconds) * time.Second}
	var quoteSource domainsvc.QuoteSource = api.NewBCUQuoteClient(cfg.QuoteEndpoint, httpClient, log)
	if cfg.QuoteCache {
		quoteSource = cache.NewCachingQuoteSource(quoteSource, cache.NewQuoteCache(0))
	}

	resolver := service.NewRateResolver(quoteSource, log)
	builder := ledger.NewBuilder(&ledger.Encoder{TrailingDelimiter: cfg.TrailingDelimiter})
	naming := service.NewNamingService(store, log)
	exportSvc := service.NewExportService(resolver, builder, naming, store, log)

	// HTTP surface.
	router := mux.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestLogging(log))
	handler.NewExportHandler(exportSvc, log).RegisterRoutes(router)

	log.Info("Server listening", map[string]interface{}{"addr": cfg.ListenAddr})
	if err := http.ListenAndServe(cfg.ListenAddr, router); err != nil {
		log.Fatal("Server stopped", map[string]interface{}{"error": err.Error()})
	}
}
