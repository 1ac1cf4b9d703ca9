package main

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/stocklane/backoffice-golang/internal/catalog"
	"github.com/stocklane/backoffice-golang/internal/config"
	"github.com/stocklane/backoffice-golang/internal/database"
	"github.com/stocklane/backoffice-golang/internal/handlers"
	"github.com/stocklane/backoffice-golang/internal/routes"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync()

	db, err := database.Open(cfg.DSN)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	var opts []catalog.Option
	if cfg.StrictAttributes {
		opts = append(opts, catalog.WithAttributeMismatchPolicy(catalog.MismatchFail))
	}
	opts = append(opts, catalog.WithRequireExplicitBaseUnit(cfg.RequireBaseUnit))

	engine := catalog.NewEngine(db, logger.Named("catalog"), opts...)

	app := &handlers.Handlers{
		Engine: engine,
		Log:    logger.Named("http"),
	}

	router := routes.SetupRouter(app, cfg.CORSAllowOrigin)

	logger.Info("starting back-office API server", zap.String("addr", cfg.ListenAddr))
	if err := router.Run(cfg.ListenAddr); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	zcfg := zap.NewProductionConfig()
	if !cfg.LogAsJSON {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
