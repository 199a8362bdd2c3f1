// cmd/leadflow-server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	awsclients "leadflow/internal/common/aws"
	"leadflow/internal/common/config"
	"leadflow/internal/common/database"
	"leadflow/internal/common/gateway"
	"leadflow/internal/common/logger"
	"leadflow/internal/common/observability"

	"leadflow/internal/actions"
	fl "leadflow/internal/actions/discovery/find-leads"
	ss "leadflow/internal/actions/discovery/search-strategy"
	el "leadflow/internal/actions/enrichment/enrich-lead"
	qs "leadflow/internal/actions/enrichment/quick-summary"
	vc "leadflow/internal/actions/enrichment/verify-contact"
	ge "leadflow/internal/actions/outreach/generate-email"
	bq "leadflow/internal/actions/qualification/batch-qualify"
	cl "leadflow/internal/actions/qualification/compare-leads"
	ql "leadflow/internal/actions/qualification/qualify-lead"
	qv "leadflow/internal/actions/qualification/quick-validate"
	sc "leadflow/internal/actions/qualification/suggest-criteria"

	"leadflow/internal/activity"
	"leadflow/internal/leadindex"
	"leadflow/internal/outreach"
	"leadflow/internal/router"
	"leadflow/internal/usage"
	"leadflow/internal/users"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config load failed: %v\n", err)
		os.Exit(1)
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting leadflow server...")

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init PostgreSQL with retry (optional) ---
	var pg *database.PostgresClient
	if cfg.Database.Postgres.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		zapLog.Info("PostgreSQL connected successfully")
	} else {
		zapLog.Info("PostgreSQL not configured; activity log and suspension checks disabled")
	}

	// --- Init Redis with retry (optional) ---
	var rdb *database.RedisClient
	if cfg.Database.Redis.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			rdb, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			return rdb.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer rdb.Close()
		zapLog.Info("Redis connected successfully")
	} else {
		zapLog.Info("Redis not configured; usage counters disabled")
	}

	// --- Init Elasticsearch with retry (optional) ---
	var esClient *database.ElasticsearchClient
	if cfg.Database.Elasticsearch.Enabled() {
		err = retryWithBackoff(func() error {
			var err error
			esClient, err = database.NewElasticsearch(cfg.Database.Elasticsearch)
			if err != nil {
				return err
			}
			return esClient.Ping()
		}, 15, 2*time.Second, zapLog, "Elasticsearch connection")

		if err != nil {
			zapLog.Fatal("elasticsearch failed after retries", zap.Error(err))
		}
		zapLog.Info("Elasticsearch connected successfully")
	} else {
		zapLog.Info("Elasticsearch not configured; lead search disabled")
	}

	// --- Init Gateway Client ---
	gw := gateway.NewClient(cfg.Gateway, log)
	zapLog.Info("Gateway client initialized",
		zap.String("baseURL", cfg.Gateway.BaseURL),
		zap.String("fastModel", cfg.Gateway.FastModel),
		zap.String("deepModel", cfg.Gateway.DeepModel),
	)

	// --- Register ALL 11 Action Handlers ---
	handlers := []actions.Handler{
		fl.NewHandler(fl.LoadConfig(), gw, log),
		ss.NewHandler(gw, log),
		ql.NewHandler(gw, log),
		qv.NewHandler(gw, log),
		sc.NewHandler(gw, log),
		bq.NewHandler(gw, log),
		cl.NewHandler(gw, log),
		el.NewHandler(gw, log),
		qs.NewHandler(gw, log),
		vc.NewHandler(gw, log),
		ge.NewHandler(gw, log),
	}
	zapLog.Info("All 11 action handlers registered successfully")

	// --- Wire Optional Collaborators ---
	opts := []router.Option{router.WithObservability(obs)}

	if pg != nil {
		opts = append(opts,
			router.WithActivityStore(activity.NewStore(pg.DB)),
			router.WithUserStore(users.NewStore(pg.DB)),
		)
	}
	if rdb != nil {
		opts = append(opts, router.WithUsageTracker(usage.NewTracker(rdb.Client)))
	}
	if esClient != nil {
		opts = append(opts, router.WithLeadIndex(leadindex.New(esClient.Client, cfg.Database.Elasticsearch.LeadIndex)))
	}

	if cfg.Outreach.Email.Enabled || cfg.Outreach.SMS.Enabled {
		var emailSender outreach.EmailSender
		var smsSender outreach.SMSSender

		if cfg.Outreach.Email.Enabled {
			sesClient, err := awsclients.NewSESClient(ctx, cfg.Outreach.AWS.Region)
			if err != nil {
				zapLog.Fatal("ses client failed", zap.Error(err))
			}
			emailSender = sesClient
		}
		if cfg.Outreach.SMS.Enabled {
			snsClient, err := awsclients.NewSNSClient(ctx, cfg.Outreach.AWS.Region)
			if err != nil {
				zapLog.Fatal("sns client failed", zap.Error(err))
			}
			smsSender = snsClient
		}

		opts = append(opts, router.WithOutreach(outreach.NewService(
			emailSender, smsSender,
			cfg.Outreach.Email.FromEmail, cfg.Outreach.SMS.SenderID,
			log,
		)))
		zapLog.Info("Outreach delivery initialized",
			zap.Bool("email", cfg.Outreach.Email.Enabled),
			zap.Bool("sms", cfg.Outreach.SMS.Enabled),
		)
	}

	rt := router.New(handlers, log, opts...)

	// --- HTTP Server ---
	mux := http.NewServeMux()
	mux.Handle("/", rt.Handler())
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      mux,
		ReadTimeout:  config.GetDuration(cfg.Server.ReadTimeout),
		WriteTimeout: config.GetDuration(cfg.Server.WriteTimeout),
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, draining connections...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.GetDuration(cfg.Server.ShutdownTimeout))
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Leadflow server stopped gracefully")
}
