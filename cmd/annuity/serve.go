package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rpgo/annuity-planner/internal/calculation"
	"github.com/rpgo/annuity-planner/internal/config"
	"github.com/rpgo/annuity-planner/internal/mortality"
	"github.com/rpgo/annuity-planner/internal/server"
	"github.com/rpgo/annuity-planner/pkg/logger"
)

func serveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long:  "Run the HTTP API. Settings come from ANNUITY_* environment variables or a .env file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port, _ = cmd.Flags().GetInt("port")
				if err := cfg.Validate(); err != nil {
					return err
				}
			}

			log := logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.DevMode})

			var table *mortality.Table
			if cfg.MortalityTable != "" {
				if table, err = mortality.Load(cfg.MortalityTable); err != nil {
					return err
				}
			}
			calc, err := calculation.NewCalculator(cfg.Assumptions, table)
			if err != nil {
				return err
			}
			calc.SetLogger(logger.NewAdapter(log, "calculation"))

			srv := server.New(server.Config{
				Port:           cfg.Port,
				Log:            log,
				Calculator:     calc,
				AllowedOrigins: cfg.AllowedOrigins,
				DevMode:        cfg.DevMode,
			})

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}
	cmd.Flags().Int("port", 8080, "Port to listen on (overrides ANNUITY_PORT)")
	return cmd
}
