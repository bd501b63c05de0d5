package bootstrap

import (
	"context"
	"fmt"

	"github.com/kirillkom/financial-report-aggregator/internal/catalog"
	"github.com/kirillkom/financial-report-aggregator/internal/config"
	"github.com/kirillkom/financial-report-aggregator/internal/core/ports"
	"github.com/kirillkom/financial-report-aggregator/internal/core/usecase"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/merger/pdfcli"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/merger/xlsxmerge"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/queue/nats"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/repository/postgres"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/resilience"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/sniffer/pdfsniff"
	"github.com/kirillkom/financial-report-aggregator/internal/infrastructure/storage/localfs"
)

type App struct {
	Config config.Config

	Queue     ports.MessageQueue
	Repo      ports.BatchRepository
	IngestUC  ports.BatchIngestor
	ProcessUC ports.BatchProcessor

	closeFn func()
}

func New(ctx context.Context, cfg config.Config) (*App, error) {
	db, err := postgres.OpenDB(cfg.PostgresDSN)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	repo := postgres.NewBatchRepository(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	storage, err := localfs.New(cfg.StoragePath)
	if err != nil {
		return nil, fmt.Errorf("init object storage: %w", err)
	}

	queue, err := nats.NewWithOptions(cfg.NATSURL, cfg.NATSSubject, nats.Options{
		ResilienceExecutor: resilience.NewExecutor(resilience.DefaultConfig()),
	})
	if err != nil {
		return nil, fmt.Errorf("init message queue: %w", err)
	}

	cat, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("load report catalog: %w", err)
	}

	docMerger, err := pdfcli.NewWithBinary(cfg.PDFMergeBinary)
	if err != nil {
		return nil, fmt.Errorf("init pdf merger: %w", err)
	}

	ingestUC := usecase.NewIngestBatchUseCase(repo, storage, queue)
	processUC := usecase.NewProcessBatchUseCase(
		repo,
		storage,
		pdfsniff.New(),
		docMerger,
		xlsxmerge.New(),
		storage,
		cat,
	)

	return &App{
		Config: cfg,
		Queue:  queue,
		Repo:   repo,

		IngestUC:  ingestUC,
		ProcessUC: processUC,

		closeFn: func() {
			queue.Close()
			_ = db.Close()
		},
	}, nil
}

func (a *App) Close() {
	if a.closeFn != nil {
		a.closeFn()
	}
}
