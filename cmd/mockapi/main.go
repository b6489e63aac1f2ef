package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vet-booking-client/internal/mockapi"
	"vet-booking-client/internal/platform/config"
	"vet-booking-client/internal/platform/logger"

	"github.com/google/uuid"
)

func main() {
	cfgPath := flag.String("config", "", "path to config.yml")
	flag.Parse()

	cfg, err := config.Load(*cfgPath)
	if err != nil {
		logger.NewFromEnv().Error("config", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    "mockapi",
	})

	secret := cfg.Mock.JWTSecret
	if secret == "" {
		// secreto efímero: los tokens no sobreviven un reinicio
		secret = uuid.NewString()
		log.Warn("JWT_SECRET not set, using an ephemeral secret", nil)
	}

	srv, err := mockapi.New(mockapi.Options{
		Secret:   secret,
		TokenTTL: cfg.Mock.TokenTTL,
		Logger:   log,
		Seed:     cfg.Mock.Seed,
	})
	if err != nil {
		log.Error("mockapi", map[string]any{"error": err.Error()})
		os.Exit(1)
	}

	httpSrv := &http.Server{
		Addr:         cfg.Mock.Addr,
		Handler:      srv.Handler(),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpSrv.Shutdown(shutdownCtx)
	}()

	log.Info("starting server", map[string]any{"addr": cfg.Mock.Addr, "swagger": "/swagger/index.html"})
	if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
