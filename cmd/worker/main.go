package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/kirillkom/financial-report-aggregator/internal/bootstrap"
	"github.com/kirillkom/financial-report-aggregator/internal/config"
	"github.com/kirillkom/financial-report-aggregator/internal/observability/logging"
	"github.com/kirillkom/financial-report-aggregator/internal/observability/metrics"
)

func main() {
	cfg := config.Load()
	slog.SetDefault(logging.NewJSONLogger("worker", cfg.LogLevel))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := bootstrap.New(ctx, cfg)
	if err != nil {
		log.Fatalf("bootstrap error: %v", err)
	}
	defer app.Close()

	workerMetrics := metrics.NewWorkerMetrics("worker")
	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", workerMetrics.Handler())
	metricsServer := &http.Server{
		Addr:        ":" + cfg.WorkerMetricsPort,
		Handler:     metricsMux,
		ReadTimeout: 10 * time.Second,
	}
	go func() {
		if err := metricsServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("worker metrics server error: %v", err)
		}
	}()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = metricsServer.Shutdown(shutdownCtx)
	}()

	log.Printf("worker subscribed to %s", cfg.NATSSubject)
	err = app.Queue.SubscribeBatchSubmitted(ctx, func(handlerCtx context.Context, batchID string) error {
		processCtx, cancel := context.WithTimeout(handlerCtx, 5*time.Minute)
		defer cancel()

		if batch, err := app.Repo.GetByID(processCtx, batchID); err == nil {
			workerMetrics.ObserveQueueLag("worker", time.Since(batch.CreatedAt))
		}

		workerMetrics.StartBatch()
		start := time.Now()
		processErr := app.ProcessUC.ProcessByID(processCtx, batchID)
		workerMetrics.FinishBatch("worker", time.Since(start), processErr)
		return processErr
	})
	if err != nil {
		log.Fatalf("worker subscribe error: %v", err)
	}
}
