package ports

import (
	"context"
	"io"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

// BatchRepository persists batch state, input file rows and run results.
type BatchRepository interface {
	CreateBatch(ctx context.Context, batch *domain.Batch, files []domain.BatchFile) error
	GetByID(ctx context.Context, id string) (*domain.Batch, error)
	ListFiles(ctx context.Context, batchID string) ([]domain.BatchFile, error)
	UpdateStatus(ctx context.Context, id string, status domain.BatchStatus, errMessage string) error
	SaveResult(ctx context.Context, id string, result domain.BatchResult) error
	GetResult(ctx context.Context, id string) (*domain.BatchResult, error)
}

// ObjectStorage stores raw uploaded files.
type ObjectStorage interface {
	Save(ctx context.Context, key string, data io.Reader) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
}

// ArtifactStore receives final merged artifacts with month/year routing
// hints and returns a location reference.
type ArtifactStore interface {
	SaveArtifact(ctx context.Context, data []byte, filename, month, year string) (string, error)
}

// MessageQueue publishes/consumes batch-submitted events.
type MessageQueue interface {
	PublishBatchSubmitted(ctx context.Context, batchID string) error
	SubscribeBatchSubmitted(ctx context.Context, handler func(context.Context, string) error) error
}

// ContentSniffer extracts identifying signals from a document file's first
// page. A zero-value signal with a nil error means the content carried no
// usable signal; that is an expected outcome.
type ContentSniffer interface {
	Sniff(ctx context.Context, data []byte) (domain.ContentSignal, error)
}

// DocumentMerger concatenates ordered document files into one artifact.
type DocumentMerger interface {
	Merge(ctx context.Context, parts [][]byte) ([]byte, error)
}

// WorkbookMerger combines the three ledger-bundle spreadsheets into one
// workbook with named sections.
type WorkbookMerger interface {
	Merge(ctx context.Context, trailingTwelve, yearToDate, generalLedger []byte) ([]byte, error)
}
