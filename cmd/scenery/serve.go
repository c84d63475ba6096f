package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/venek/scenery/internal/dataset"
	"github.com/venek/scenery/internal/logging"
	"github.com/venek/scenery/internal/server"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "serve the scenes over HTTP",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, scenes, metric, err := loadSetup()
	if err != nil {
		return err
	}
	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return err
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A failed load is not fatal to the process: the server comes up in
	// its terminal error state with navigation disabled.
	ds, loadErr := dataset.Load(ctx, cfg.Data.Source)
	if loadErr != nil {
		logger.Error("dataset load failed", zap.String("source", cfg.Data.Source), zap.Error(loadErr))
	} else {
		logger.Info("dataset loaded", zap.String("source", cfg.Data.Source), zap.Int("records", ds.Len()))
	}

	srv, err := server.New(logger, server.Options{
		Config: &server.Config{
			Host: cfg.Server.Host,
			Port: cfg.Server.Port,
		},
		Dataset: ds,
		LoadErr: loadErr,
		Scenes:  scenes,
		Metric:  metric,
	})
	if err != nil {
		return err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})
	return g.Wait()
}
