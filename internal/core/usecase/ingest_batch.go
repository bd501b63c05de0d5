package usecase

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
	"github.com/kirillkom/financial-report-aggregator/internal/core/ports"
)

type IngestBatchUseCase struct {
	repo    ports.BatchRepository
	storage ports.ObjectStorage
	queue   ports.MessageQueue
}

func NewIngestBatchUseCase(
	repo ports.BatchRepository,
	storage ports.ObjectStorage,
	queue ports.MessageQueue,
) *IngestBatchUseCase {
	return &IngestBatchUseCase{
		repo:    repo,
		storage: storage,
		queue:   queue,
	}
}

// Upload stores an ordered batch of report files, persists the batch and
// publishes it for processing. Upload order is preserved: it is the stable
// tie-break for merge ordering and decides which property spelling becomes
// canonical.
func (uc *IngestBatchUseCase) Upload(
	ctx context.Context,
	month, year string,
	uploads []ports.BatchUpload,
) (*domain.Batch, error) {
	if len(uploads) == 0 {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload batch", errors.New("no files in batch"))
	}
	if month == "" || year == "" {
		return nil, domain.WrapError(domain.ErrInvalidInput, "upload batch", errors.New("month and year are required"))
	}

	batchID := uuid.NewString()
	now := time.Now().UTC()

	files := make([]domain.BatchFile, 0, len(uploads))
	for i, upload := range uploads {
		storageKey := fmt.Sprintf("%s_%d_%s", batchID, i, sanitizeFilename(upload.Filename))
		if err := uc.storage.Save(ctx, storageKey, upload.Body); err != nil {
			return nil, fmt.Errorf("save file %q to object storage: %w", upload.Filename, err)
		}
		files = append(files, domain.BatchFile{
			ID:          uuid.NewString(),
			BatchID:     batchID,
			Position:    i,
			Filename:    upload.Filename,
			Media:       MediaKindForFilename(upload.Filename),
			StoragePath: storageKey,
		})
	}

	batch := &domain.Batch{
		ID:        batchID,
		Status:    domain.StatusUploaded,
		Month:     month,
		Year:      year,
		FileCount: len(files),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := uc.repo.CreateBatch(ctx, batch, files); err != nil {
		return nil, fmt.Errorf("create batch metadata: %w", err)
	}

	if err := uc.queue.PublishBatchSubmitted(ctx, batch.ID); err != nil {
		return nil, fmt.Errorf("publish batch event: %w", err)
	}

	return batch, nil
}

// MediaKindForFilename maps a filename extension to the declared media kind.
// Unrecognized extensions are treated as documents so the file still flows
// through classification rather than being dropped.
func MediaKindForFilename(name string) domain.MediaKind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xls", ".xlsm", ".csv":
		return domain.MediaSpreadsheet
	default:
		return domain.MediaDocumentPDF
	}
}

func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	base = strings.ReplaceAll(base, " ", "_")
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return r
		case r >= 'A' && r <= 'Z':
			return r
		case r >= '0' && r <= '9':
			return r
		case r == '.', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" {
		return "document.bin"
	}
	return base
}
