// Command juliadoc-mcp serves Julia documentation tools over MCP stdio.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jonathanfischer97/juliadoc-mcp/config"
	"github.com/jonathanfischer97/juliadoc-mcp/runner"
	"github.com/jonathanfischer97/juliadoc-mcp/server"
)

// version is set by the release build.
var version = "dev"

type serveOptions struct {
	juliaBin    string
	projectPath string
	cacheTTL    time.Duration
	timeout     time.Duration
	logLevel    string
	logger      *zap.Logger
}

func main() {
	opts := serveOptions{logger: zap.NewNop()}

	root := &cobra.Command{
		Use:   "juliadoc-mcp",
		Short: "MCP server exposing Julia documentation, package listings, and source",
		Args:  cobra.NoArgs,
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.logger.Sync()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.FromEnv()
			if err != nil {
				return err
			}
			if opts.juliaBin != "" {
				cfg.JuliaBin = opts.juliaBin
			}
			if opts.projectPath != "" {
				cfg.ProjectPath = opts.projectPath
			}
			if opts.cacheTTL > 0 {
				cfg.CacheTTL = opts.cacheTTL
			}
			if opts.timeout > 0 {
				cfg.Timeout = opts.timeout
			}
			if opts.logLevel != "" {
				cfg.LogLevel = opts.logLevel
			}

			logger, err := buildLogger(cfg.LogLevel)
			if err != nil {
				return err
			}
			opts.logger = logger

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			r := runner.New(runner.Config{
				Bin:     cfg.JuliaBin,
				Project: cfg.ProjectPath,
				Timeout: cfg.Timeout,
				Logger:  logger,
			})
			srv, err := server.New(server.Options{
				Runner:  r,
				TTL:     cfg.CacheTTL,
				Logger:  logger,
				Version: version,
			})
			if err != nil {
				return err
			}
			defer srv.Close()

			logger.Info("serving over stdio",
				zap.String("version", version),
				zap.Duration("cache_ttl", cfg.CacheTTL),
				zap.Duration("timeout", cfg.Timeout))

			if err := srv.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		},
	}

	root.Flags().StringVar(&opts.juliaBin, "julia-bin", "", "path to the julia executable (overrides JULIA_BIN)")
	root.Flags().StringVar(&opts.projectPath, "project", "", "Julia project directory (overrides JULIA_PROJECT_PATH)")
	root.Flags().DurationVar(&opts.cacheTTL, "cache-ttl", 0, "cached response lifetime (overrides JULIADOC_CACHE_TTL)")
	root.Flags().DurationVar(&opts.timeout, "timeout", 0, "per-invocation interpreter deadline (overrides JULIADOC_TIMEOUT)")
	root.Flags().StringVar(&opts.logLevel, "log-level", "", "zap log level (overrides JULIADOC_LOG_LEVEL)")
	root.Version = version

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// buildLogger writes structured logs to stderr only. Stdout belongs to the
// MCP transport.
func buildLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("parsing log level %q: %w", level, err)
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	return cfg.Build()
}
