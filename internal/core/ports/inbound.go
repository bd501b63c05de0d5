package ports

import (
	"context"
	"io"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

// BatchUpload is one file of an incoming batch, in upload order.
type BatchUpload struct {
	Filename string
	Body     io.Reader
}

// BatchIngestor is the inbound contract for batch upload orchestration.
type BatchIngestor interface {
	Upload(ctx context.Context, month, year string, uploads []BatchUpload) (*domain.Batch, error)
}

// BatchProcessor is the inbound contract for asynchronous batch processing.
type BatchProcessor interface {
	ProcessByID(ctx context.Context, batchID string) error
}

// BatchReader is the inbound read model for batch state and results.
type BatchReader interface {
	GetByID(ctx context.Context, id string) (*domain.Batch, error)
	GetResult(ctx context.Context, id string) (*domain.BatchResult, error)
}
