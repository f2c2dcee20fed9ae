package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"
	"gorm.io/gorm/logger"

	"github.com/theleywin/masheel-api/src/controllers"
	"github.com/theleywin/masheel-api/src/lib"
	"github.com/theleywin/masheel-api/src/routes"
	"github.com/theleywin/masheel-api/src/store"
)

func main() {
	cfg, err := lib.LoadConfig()
	if err != nil {
		panic(err)
	}

	log, err := lib.NewLogger(cfg.Env)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	level := logger.Warn
	if cfg.IsDevelopment() {
		level = logger.Info
	}
	st, err := store.Open(cfg, store.WithLogLevel(level))
	if err != nil {
		log.Fatal("failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := st.Close(); err != nil {
			log.Error("failed to close database", zap.Error(err))
		}
	}()
	log.Info("connected to database", zap.String("driver", cfg.DBDriver))

	if err := st.AutoMigrate(context.Background()); err != nil {
		log.Fatal("failed to migrate database", zap.Error(err))
	}
	log.Info("database migration completed")

	tokens := lib.NewJWTIssuer(cfg.TokenSecret, cfg.TokenTTL)
	hasher := lib.BcryptHasher{Cost: cfg.BcryptCost}
	handler := controllers.NewHandler(st, tokens, hasher, log)

	app := routes.NewApp(handler, cfg.CORSOrigins, cfg.IsDevelopment())

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		<-quit
		log.Info("shutting down")
		if err := app.Shutdown(); err != nil {
			log.Error("shutdown failed", zap.Error(err))
		}
	}()

	log.Info("server is running", zap.String("port", cfg.Port), zap.String("env", cfg.Env))
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Error("server stopped", zap.Error(err))
	}
}
