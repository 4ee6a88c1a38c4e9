package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lewisviz/lewis/internal/server"
	"github.com/lewisviz/lewis/pkg/cache"
	"github.com/lewisviz/lewis/pkg/pipeline"
)

// serveCommand creates the serve command for running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		redis   string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP rendering API",
		Long: `Run the HTTP rendering API.

Endpoints:
  GET  /healthz     liveness check
  POST /v1/parse    notation in, molecule document out
  POST /v1/render   notation in, rendered diagram out

With --redis, rendered artifacts are cached in Redis so multiple instances
share results; otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), addr, redis, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", c.Config.Server.Addr, "listen address")
	cmd.Flags().StringVar(&redis, "redis", c.Config.Server.Redis, "redis address for shared caching (host:port)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe builds the cache backend and runs the server until interrupted.
func (c *CLI) runServe(ctx context.Context, addr, redisAddr string, noCache bool) error {
	store, err := c.serveCache(ctx, redisAddr, noCache)
	if err != nil {
		return err
	}

	runner := pipeline.NewRunner(store, nil, c.Logger)
	defer runner.Close()

	srv := server.New(runner, c.Logger)
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

// serveCache picks the cache backend for the server: Redis when configured,
// the local file cache otherwise.
func (c *CLI) serveCache(ctx context.Context, redisAddr string, noCache bool) (cache.Cache, error) {
	if noCache {
		if redisAddr != "" {
			printWarning("--no-cache set, ignoring --redis")
		}
		return cache.NewNullCache(), nil
	}
	if redisAddr != "" {
		store, err := cache.NewRedisCache(ctx, redisAddr)
		if err != nil {
			return nil, fmt.Errorf("redis cache: %w", err)
		}
		c.Logger.Info("using redis cache", "addr", redisAddr)
		return store, nil
	}
	return c.newCache(false)
}
