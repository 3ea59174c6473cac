package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/subosito/gotenv"
	"go.uber.org/zap"

	"github.com/torralabs/torra-onboarding/internal/application/service"
	"github.com/torralabs/torra-onboarding/internal/config"
	"github.com/torralabs/torra-onboarding/internal/domain/wizard"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/external/admissao"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/external/viacep"
	"github.com/torralabs/torra-onboarding/internal/infrastructure/persistence"
	httpserver "github.com/torralabs/torra-onboarding/internal/interfaces/http"
	"github.com/torralabs/torra-onboarding/internal/validate"
	"github.com/torralabs/torra-onboarding/pkg/utils"
)

func main() {
	// A local .env complements configs/config.yaml for credentials.
	_ = gotenv.Load()

	cfg, err := config.Load("configs/config.yaml")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger, err := utils.NewLogger(utils.LoggerConfig{
		Level:      cfg.Logger.Level,
		OutputPath: cfg.Logger.OutputPath,
		Format:     cfg.Logger.Format,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting Torra onboarding service",
		zap.String("storage_driver", cfg.Storage.Driver),
		zap.Int("port", cfg.Server.Port))

	store, closer, err := buildStore(cfg.Storage, logger)
	if err != nil {
		logger.Fatal("Failed to initialize snapshot store", zap.Error(err))
	}
	if closer != nil {
		defer closer.Close()
	}

	if err := os.MkdirAll(cfg.Onboarding.ExportDir, 0755); err != nil {
		logger.Fatal("Failed to create export directory", zap.Error(err))
	}

	wiz := wizard.New(store, logger)

	tokens := admissao.NewMemoryTokenStore(cfg.API.AuthToken)
	apiClient := admissao.NewClient(admissao.Config{
		BaseURL:           cfg.API.BaseURL,
		EmployeeID:        cfg.API.EmployeeID,
		Timeout:           cfg.API.Timeout,
		UploadParallelism: cfg.Onboarding.UploadParallel,
	}, tokens, logger)

	cepClient := viacep.NewClient(cfg.API.BaseURL, cfg.API.Timeout, logger)

	opts := validate.Options{MinHireAge: cfg.Onboarding.MinHireAge}
	onboarding := service.NewOnboardingService(wiz, apiClient, opts, logger)
	documents := service.NewDocumentService(wiz, apiClient, logger)
	exporter := service.NewSummaryExporter(wiz, logger)

	handlers := httpserver.NewHandlers(onboarding, documents, exporter, cepClient, cfg.Onboarding.ExportDir, logger)
	server := httpserver.NewServer(httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, handlers, onboarding, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := server.Start(ctx); err != nil {
		logger.Fatal("HTTP server failed", zap.Error(err))
	}

	logger.Info("Server exited successfully")
}

// buildStore selects the snapshot store from configuration. The sqlite store
// holds a connection and is returned as a closer; the file store needs no
// teardown.
func buildStore(cfg config.StorageConfig, logger *zap.Logger) (wizard.Store, io.Closer, error) {
	switch cfg.Driver {
	case "sqlite":
		store, err := persistence.NewSQLiteStore(cfg.Path, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		store, err := persistence.NewFileStore(cfg.Dir, logger)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	}
}
