package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"bcvrates-service/internal/bootstrap"
	infraconfig "bcvrates-service/internal/infrastructure/config"
	"bcvrates-service/internal/infrastructure/logx"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	_ "time/tzdata"
)

func init() { _ = godotenv.Load() }

func main() {
	logger := logx.L()
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg := bootstrap.ProvideConfig()
	api, cleanup, err := bootstrap.InitAPI(ctx, logger, cfg, bootstrap.APIOptions{})
	if err != nil {
		logger.Fatal("bootstrap api", zap.Error(err))
	}
	defer cleanup()

	port := cfg.Port
	if port == "" {
		port = infraconfig.DefaultHTTPPort
	}
	server := &http.Server{
		Addr:              ":" + port,
		Handler:           api.Handler,
		ReadHeaderTimeout: infraconfig.DefaultReadHeaderTime,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("server started", zap.String("addr", server.Addr),
			zap.String("provider", cfg.Provider), zap.String("storage", cfg.Storage))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	if api.Worker != nil {
		g.Go(func() error {
			api.Worker.Start(gctx)
			return nil
		})
	}
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), infraconfig.DefaultShutdownTimeout)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server exited", zap.Error(err))
	}
	logger.Info("server stopped")
}
