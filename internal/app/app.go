// Package app holds the vidhub command tree.
package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vidhub/backend/internal/config"
	"github.com/vidhub/backend/internal/handlers"
	"github.com/vidhub/backend/internal/httpserver"
	"github.com/vidhub/backend/internal/logging"
	"github.com/vidhub/backend/internal/middleware"
)

// Run executes the command named by args.
func Run(ctx context.Context, args []string) error {
	root := NewRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// NewRootCommand builds the vidhub command tree.
func NewRootCommand() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "vidhub",
		Short:         "Stock video aggregation API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a vidhub.toml config file")

	load := func() (config.Config, error) {
		var opts []config.Option
		if configFile != "" {
			opts = append(opts, config.WithFile(configFile))
		}
		cfg, err := config.Load(opts...)
		if err != nil {
			return config.Config{}, err
		}
		if err := cfg.Validate(); err != nil {
			return config.Config{}, fmt.Errorf("invalid configuration: %w", err)
		}
		return cfg, nil
	}

	root.AddCommand(newServeCommand(load), newCheckCommand(load))
	return root
}

func newServeCommand(load func() (config.Config, error)) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("port") {
				cfg.Port = port
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 0, "override the listen port")
	return cmd
}

func newCheckCommand(load func() (config.Config, error)) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate configuration and reach the cache backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return check(cmd.Context(), cfg, cmd.OutOrStdout())
		},
	}
}

func serve(ctx context.Context, cfg config.Config) error {
	logger := logging.New(cfg.LogLevel, os.Stdout)
	logger = logger.With("service", "vidhub")
	ctx = logging.WithLogger(ctx, logger)

	rt, err := buildDependencies(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := rt.Close(); err != nil {
			logger.Warn("close dependencies", "error", err)
		}
	}()

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, rt.deps)
	handler := middleware.RequestLogger(logger)(mux)

	srv := httpserver.New(cfg.Port, handler, cfg.ProviderTimeout+5*time.Second)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("starting http server", "addr", srv.Addr(), "provider", cfg.Provider, "cache", cfg.Cache.Backend)
	if err := srv.ListenAndServe(ctx); err != nil {
		return err
	}
	logger.Info("http server stopped")
	return nil
}
