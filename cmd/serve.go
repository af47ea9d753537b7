package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"smartrental/internal/logging"
	"smartrental/pkg/database"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 15 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the reminder scheduler",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger := logging.WithComponent("server")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		pool, err := connect(ctx, cfg)
		if err != nil {
			return err
		}
		defer pool.Close()

		if migrate, _ := cmd.Flags().GetBool("migrate"); migrate {
			if _, err := database.Migrate(ctx, pool); err != nil {
				return fmt.Errorf("migrate: %w", err)
			}
		}

		s, cleanup, err := buildServer(ctx, cfg, pool)
		if err != nil {
			return err
		}
		defer cleanup()

		if noScheduler, _ := cmd.Flags().GetBool("no-scheduler"); !noScheduler {
			s.scheduler.Start()
		}

		e := newEcho()
		registerRoutes(e, s)

		errCh := make(chan error, 1)
		go func() {
			addr := fmt.Sprintf(":%d", cfg.Port)
			logger.Info().Str("addr", addr).Str("version", Version).Msg("smartrental server starting")
			if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()

		select {
		case err := <-errCh:
			return fmt.Errorf("http server: %w", err)
		case <-ctx.Done():
		}

		logger.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	},
}

func init() {
	serveCmd.Flags().Bool("migrate", false, "Apply pending migrations before serving")
	serveCmd.Flags().Bool("no-scheduler", false, "Do not run scheduled jobs in this process")
}
