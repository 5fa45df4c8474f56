// Command synapse runs the engineer recommendation service.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/synapsehq/synapse/internal/adapters/http/api"
	service "github.com/synapsehq/synapse/internal/app"
	"github.com/synapsehq/synapse/internal/config"
	"github.com/synapsehq/synapse/internal/domain/affinity"
	"github.com/synapsehq/synapse/internal/domain/proficiency"
	"github.com/synapsehq/synapse/internal/engine"
	"github.com/synapsehq/synapse/pkg/logger"
	"github.com/synapsehq/synapse/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout       = 10 * time.Second
	writeTimeout      = 30 * time.Second
	idleTimeout       = 60 * time.Second
	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 30 * time.Second
)

func main() {
	if err := logger.Init(); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		return
	}
	log := logger.Get()

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		return
	}
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	svc := service.New(
		service.WithLogger(log.Named("service")),
		service.WithEngine(newEngine(cfg)),
		service.WithWeights(cfg.Weights()),
		serviceDemoOption(cfg),
	)
	if err := svc.Start(ctx); err != nil {
		log.Error(ctx, "failed to start service", logger.Error(err))
		return
	}
	defer svc.Stop()

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}))
	api.NewServer(svc, cfg.MaxRecommendLimit).Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error(ctx, "HTTP server failed", logger.Error(err))
			stop()
		}
	}()

	<-ctx.Done()
	log.Info(ctx, "shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}
	log.Info(ctx, "server stopped")
}

// newEngine builds the scoring engine from configuration.
func newEngine(cfg *config.Config) *engine.Engine {
	blenderOpts := []proficiency.Option{
		proficiency.WithShortfallPenalty(cfg.ShortfallPenalty),
	}
	if cfg.BlendCurve == "saturating" {
		blenderOpts = append(blenderOpts, proficiency.WithSaturatingCurve(cfg.BlendSaturation))
	} else {
		blenderOpts = append(blenderOpts, proficiency.WithLogisticCurve(cfg.BlendSteepness, cfg.BlendMidpoint))
	}

	indexOpts := []proficiency.IndexOption{
		proficiency.WithAggregation(proficiency.Aggregation(cfg.ImplicitAggregation)),
		proficiency.WithHalfLife(time.Duration(cfg.ImplicitHalfLifeDays) * 24 * time.Hour),
	}

	return engine.New(
		engine.WithBlender(proficiency.NewBlender(blenderOpts...)),
		engine.WithIndexOptions(indexOpts...),
		engine.WithTrainer(affinity.NewTrainer(
			affinity.WithRank(cfg.FactorRank),
			affinity.WithEpochs(cfg.TrainEpochs),
			affinity.WithLearningRate(cfg.LearningRate),
			affinity.WithRegularization(cfg.Regularization),
		)),
		engine.WithWorkerCount(cfg.WorkerCount),
	)
}

// serviceDemoOption enables demo seeding when configured.
func serviceDemoOption(cfg *config.Config) service.Option {
	if cfg.SeedDemoData {
		return service.WithDemoData(cfg.SeedEngineers)
	}
	return func(*service.Service) {}
}
