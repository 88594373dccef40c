// Command platformctl runs operator tasks against a switchyard deployment.
//
//	platformctl migrate up
//	platformctl admin grant ops@example.com
//	platformctl billing run-cycle
//	platformctl search reindex --concurrency 4
//	platformctl invite create 42 new@example.com --role admin
//
// Configuration is read from the same environment as the server.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/common/logger"
	"switchyard.app/platform/core/config"
	"switchyard.app/platform/core/db"
	"switchyard.app/platform/internal/bootstrap"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "platformctl",
	Short:         "Operate a switchyard deployment",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadConfig() (config.Config, error) {
	cfg, err := config.Load(config.ServiceTypeCLI)
	if err != nil {
		return config.Config{}, fmt.Errorf("loading config: %w", err)
	}
	logger.Setup(cfg)
	return cfg, nil
}

// runtime is the set of connections a command needs. close releases them.
type runtime struct {
	cfg      config.Config
	services *service.Services
	close    func()
}

func openRuntime(ctx context.Context) (*runtime, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if err := id.Init(3); err != nil {
		return nil, fmt.Errorf("initializing id generator: %w", err)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	closers := []func(){database.Close}
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// Triggers emitted by CLI writes are dropped when redis is not configured.
	var producer queue.Producer
	if cfg.Pipeline.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		client := redis.NewClient(opts)
		if err := client.Ping(ctx).Err(); err != nil {
			slog.WarnContext(ctx, "redis unavailable, triggers will not be emitted", "error", err)
			_ = client.Close()
		} else {
			p := queue.NewRedisProducer(client, cfg.Pipeline.RedisStream, slog.Default())
			closers = append(closers, func() { _ = p.Close() })
			producer = p
		}
	}

	integrations, err := bootstrap.NewIntegrations(ctx, cfg)
	if err != nil {
		closeAll()
		return nil, err
	}

	return &runtime{
		cfg: cfg,
		services: service.NewServices(
			store.NewStores(database.Queries()),
			service.NewTxRunner(database),
			integrations.Deps(cfg, producer),
		),
		close: closeAll,
	}, nil
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q", s)
	}
	return id, nil
}
