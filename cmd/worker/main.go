package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"

	"switchyard.app/platform/common/id"
	"switchyard.app/platform/common/logger"
	"switchyard.app/platform/common/otel"
	"switchyard.app/platform/core/config"
	"switchyard.app/platform/core/db"
	"switchyard.app/platform/internal/bootstrap"
	"switchyard.app/platform/internal/queue"
	"switchyard.app/platform/internal/service"
	"switchyard.app/platform/internal/store"
	"switchyard.app/platform/internal/worker"
)

func main() {
	ctx := context.Background()

	cfg, err := config.Load(config.ServiceTypeWorker)
	if err != nil {
		slog.ErrorContext(ctx, "failed to load config", "error", err)
		os.Exit(1)
	}

	fmt.Printf("%s\n", banner)

	telemetry, err := otel.Setup(ctx, cfg.OTel, cfg.Env)
	if err != nil {
		os.Stderr.WriteString("failed to initialize otel: " + err.Error() + "\n")
		os.Exit(1)
	}

	logger.Setup(cfg)

	slog.InfoContext(ctx, "switchyard worker starting",
		"env", cfg.Env,
		"consumer_group", cfg.Pipeline.RedisGroup,
		"consumer_name", cfg.Pipeline.RedisConsumer)

	// Different node ID than the server
	if err := id.Init(2); err != nil {
		slog.ErrorContext(ctx, "failed to initialize id generator", "error", err)
		os.Exit(1)
	}

	database, err := db.New(ctx, cfg.DB)
	if err != nil {
		slog.ErrorContext(ctx, "failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer database.Close()
	slog.InfoContext(ctx, "database connected")

	redisOpts, err := redis.ParseURL(cfg.Pipeline.RedisURL)
	if err != nil {
		slog.ErrorContext(ctx, "failed to parse redis url", "error", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(redisOpts)
	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.ErrorContext(ctx, "failed to connect to redis", "error", err)
		os.Exit(1)
	}
	defer redisClient.Close()
	slog.InfoContext(ctx, "redis connected", "stream", cfg.Pipeline.RedisStream)

	// Automation and summary tasks produced while handling events go back
	// onto the same stream.
	producer := queue.NewRedisProducer(redisClient, cfg.Pipeline.RedisStream, slog.Default())

	integrations, err := bootstrap.NewIntegrations(ctx, cfg)
	if err != nil {
		slog.ErrorContext(ctx, "failed to initialize integrations", "error", err)
		os.Exit(1)
	}

	services := service.NewServices(
		store.NewStores(database.Queries()),
		service.NewTxRunner(database),
		integrations.Deps(cfg, producer),
	)

	prefetcher := worker.NewPrefetcher(services.Email(), worker.PrefetcherConfig{
		Workers:   cfg.Jobs.PrefetchWorkers,
		QueueSize: cfg.Jobs.PrefetchQueueSize,
	})
	services.SetBodyQueue(prefetcher)

	consumer, err := queue.NewRedisConsumer(ctx, redisClient, queue.ConsumerConfig{
		Stream:       cfg.Pipeline.RedisStream,
		Group:        cfg.Pipeline.RedisGroup,
		Consumer:     cfg.Pipeline.RedisConsumer,
		DLQStream:    cfg.Pipeline.RedisDLQStream,
		BatchSize:    10,
		Block:        5 * time.Second,
		MaxAttempts:  cfg.Pipeline.MaxAttempts,
		RequeueDelay: time.Second,
	})
	if err != nil {
		slog.ErrorContext(ctx, "failed to create consumer", "error", err)
		os.Exit(1)
	}

	processor := worker.NewProcessor(services.WebhookProcessor(), services.Automations(), services.Calls())

	w := worker.New(consumer, processor, worker.Config{
		MaxAttempts: cfg.Pipeline.MaxAttempts,
	})

	reclaimer := worker.NewRedisReclaimer(redisClient, worker.RedisReclaimerConfig{
		Stream:        cfg.Pipeline.RedisStream,
		Group:         cfg.Pipeline.RedisGroup,
		Consumer:      cfg.Pipeline.RedisConsumer + "-reclaimer",
		MinIdle:       5 * time.Minute,
		Interval:      time.Minute,
		BatchSize:     10,
		MaxDeliveries: int64(cfg.Pipeline.MaxAttempts) + 2,
	}, consumer, w.ProcessMessage)

	scheduler := worker.NewScheduler(
		worker.Job{
			Name:       "campaign_dispatch",
			Interval:   cfg.Jobs.SchedulerInterval,
			RunOnStart: true,
			Run: func(ctx context.Context) error {
				res, err := services.CallScheduler().Tick(ctx)
				if err != nil {
					return err
				}
				if res.Dispatched > 0 || res.Completed > 0 || res.Promoted > 0 {
					slog.InfoContext(ctx, "campaign tick",
						"promoted", res.Promoted,
						"dispatched", res.Dispatched,
						"failed", res.Failed,
						"skipped", res.Skipped,
						"deferred", res.Deferred,
						"completed", res.Completed)
				}
				return nil
			},
		},
		worker.Job{
			Name:     "billing_cycle",
			Interval: cfg.Jobs.BillingInterval,
			Run: func(ctx context.Context) error {
				summary, err := services.Billing().RunCycle(ctx)
				if err != nil {
					return err
				}
				slog.InfoContext(ctx, "billing cycle complete",
					"processed", summary.Processed,
					"invoices", summary.Invoices,
					"failed", summary.Failed)
				return nil
			},
		},
		worker.Job{
			Name:       "invitation_expiry",
			Interval:   cfg.Jobs.InvitationExpiryInterval,
			RunOnStart: true,
			Run: func(ctx context.Context) error {
				_, err := services.Invitations().ExpireOld(ctx)
				return err
			},
		},
	)

	runCtx, stop := context.WithCancel(ctx)
	defer stop()

	prefetcher.Start(runCtx)
	scheduler.Start(runCtx)

	errCh := make(chan error, 2)
	go func() {
		errCh <- w.Run(runCtx)
	}()
	go func() {
		reclaimer.Run(runCtx)
		errCh <- nil
	}()

	slog.InfoContext(ctx, "worker initialized and running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.InfoContext(ctx, "shutting down worker...")

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	// Stop intake first, then drain in-flight work
	reclaimer.Stop()
	scheduler.Stop()
	w.Stop()
	prefetcher.Stop()

	select {
	case <-shutdownCtx.Done():
		slog.WarnContext(ctx, "shutdown timeout exceeded")
	case err := <-errCh:
		if err != nil {
			slog.ErrorContext(ctx, "worker error during shutdown", "error", err)
		}
	}
	stop()

	if telemetry != nil {
		if err := telemetry.Shutdown(shutdownCtx); err != nil {
			slog.ErrorContext(shutdownCtx, "otel shutdown error", "error", err)
		}
	}

	slog.InfoContext(ctx, "worker shutdown complete")
}

const banner = `
 ___ __      __ ___  _____  ___  _  _ __   __ _    ___  ___
/ __|\ \    / /|_ _||_   _|/ __|| || |\ \ / //_\  | _ \|   \
\__ \ \ \/\/ /  | |   | | | (__ | __ | \ V // _ \ |   /| |) |
|___/  \_/\_/  |___|  |_|  \___||_||_|  |_|/_/ \_\|_|_\|___/  worker
`
