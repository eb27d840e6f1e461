package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/resume-builder/internal/autosave"
	"github.com/jonathan/resume-builder/internal/server"
)

var (
	servePort int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long: `Start an HTTP server that exposes the live resume, versions, cover letters,
applications and text generation as REST endpoints. The live resume is saved
on the autosave interval and once more on shutdown.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Port to listen on (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := *appConfig
	if servePort != 0 {
		cfg.Port = servePort
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ws, err := openWorkspace(ctx, &cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := ws.Close(); err != nil {
			logger.Warn("failed to close workspace", zap.Error(err))
		}
	}()

	srv := server.New(server.Config{Port: cfg.Port}, ws, logger.Named("server"))
	saver := autosave.New(ws.Session, ws.Store(), cfg.Autosave(), logger.Named("autosave"))

	logger.Info("starting",
		zap.Int("port", cfg.Port),
		zap.String("storage", cfg.StorageDriver),
		zap.Duration("autosave_interval", saver.Interval()),
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run(gctx)
	})
	g.Go(func() error {
		return saver.Run(gctx)
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("serve failed: %w", err)
	}
	return nil
}
