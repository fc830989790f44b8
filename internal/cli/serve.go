package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/rafterlab/rafterplan/internal/api"
	"github.com/rafterlab/rafterplan/pkg/cache"
	"github.com/rafterlab/rafterplan/pkg/pipeline"
	"github.com/rafterlab/rafterplan/pkg/store"
)

const (
	// shutdownTimeout bounds graceful shutdown of in-flight requests.
	shutdownTimeout = 10 * time.Second

	// storeCloseTimeout bounds store disconnection on shutdown.
	storeCloseTimeout = 5 * time.Second
)

// serveOpts holds the command-line flags for the serve command.
type serveOpts struct {
	addr      string // listen address
	mongoURI  string // MongoDB connection string (memory store if empty)
	redisAddr string // Redis address (file cache if empty)
	noCache   bool   // disable plan and artifact caching
}

// serveCommand creates the serve command for running the API server.
func (c *CLI) serveCommand() *cobra.Command {
	opts := serveOpts{addr: defaultAddr}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the planning API server",
		Long: `Run the HTTP API server.

The server exposes the planning pipeline over REST: compute plans from
posted site descriptions, store and retrieve them, and render stored
plans as SVG blueprints.

Plans are kept in MongoDB when --mongo-uri (or MONGO_URI) is set and in
process memory otherwise. Caching uses Redis when --redis-addr (or
REDIS_ADDR) is set and the local file cache otherwise. Set
REDIS_NAMESPACE to prefix cache keys when deployments share one Redis
server.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runServe(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.addr, "addr", opts.addr, "listen address")
	cmd.Flags().StringVar(&opts.mongoURI, "mongo-uri", "", "MongoDB connection string (default: $MONGO_URI)")
	cmd.Flags().StringVar(&opts.redisAddr, "redis-addr", "", "Redis address (default: $REDIS_ADDR)")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")

	return cmd
}

// runServe wires the store, cache, and router together and serves until
// the context is cancelled.
func (c *CLI) runServe(ctx context.Context, opts serveOpts) error {
	st, err := c.newStore(ctx, opts.mongoURI)
	if err != nil {
		return fmt.Errorf("initialize store: %w", err)
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), storeCloseTimeout)
		defer cancel()
		if err := st.Close(closeCtx); err != nil {
			c.Logger.Warn("store close failed", "error", err)
		}
	}()

	serveCache, keyer, err := c.newServeCache(ctx, opts)
	if err != nil {
		return fmt.Errorf("initialize cache: %w", err)
	}
	runner := pipeline.NewRunner(serveCache, keyer, c.Logger)
	defer runner.Close()

	server := api.NewServer(st, runner, c.Logger)

	httpServer := &http.Server{
		Addr:              opts.addr,
		Handler:           server.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", opts.addr)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		c.Logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// newStore selects the plan store backend. MongoDB when a URI is
// configured, otherwise an in-process store that loses its plans on
// restart.
func (c *CLI) newStore(ctx context.Context, mongoURI string) (store.Store, error) {
	uri := mongoURI
	if uri == "" {
		uri = os.Getenv("MONGO_URI")
	}
	if uri == "" {
		c.Logger.Warn("no MongoDB configured, storing plans in memory")
		return store.NewMemoryStore(), nil
	}
	return store.NewMongoStore(ctx, store.MongoConfig{URI: uri})
}

// newServeCache selects the cache backend for the server. Redis when an
// address is configured, otherwise the same file cache the CLI uses.
// On Redis, REDIS_NAMESPACE prefixes all keys so deployments can share
// one server. A nil keyer means the runner's default.
func (c *CLI) newServeCache(ctx context.Context, opts serveOpts) (cache.Cache, cache.Keyer, error) {
	if opts.noCache {
		return cache.NewNullCache(), nil, nil
	}
	addr := opts.redisAddr
	if addr == "" {
		addr = os.Getenv("REDIS_ADDR")
	}
	if addr == "" {
		fileCache, err := newCache(false)
		return fileCache, nil, err
	}
	redisCache, err := cache.NewRedisCache(ctx, cache.RedisConfig{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	if err != nil {
		return nil, nil, err
	}
	var keyer cache.Keyer
	if ns := os.Getenv("REDIS_NAMESPACE"); ns != "" {
		keyer = cache.NewScopedKeyer(nil, ns+":")
	}
	return redisCache, keyer, nil
}
