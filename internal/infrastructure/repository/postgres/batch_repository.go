package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

type BatchRepository struct {
	db *sql.DB
}

func NewBatchRepository(db *sql.DB) *BatchRepository {
	return &BatchRepository{db: db}
}

func OpenDB(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("sql open: %w", err)
	}
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("db ping: %w", err)
	}
	return db, nil
}

func (r *BatchRepository) EnsureSchema(ctx context.Context) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	// Serialize bootstrap DDL across api/worker startups.
	if _, err := tx.ExecContext(ctx, `SELECT pg_advisory_xact_lock($1)`, int64(2026082801)); err != nil {
		return fmt.Errorf("acquire schema lock: %w", err)
	}

	const query = `
CREATE TABLE IF NOT EXISTS batches (
	id TEXT PRIMARY KEY,
	status TEXT NOT NULL,
	month TEXT NOT NULL,
	year TEXT NOT NULL,
	file_count INTEGER NOT NULL DEFAULT 0,
	error_message TEXT,
	result JSONB,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS batch_files (
	id TEXT PRIMARY KEY,
	batch_id TEXT NOT NULL REFERENCES batches(id),
	position INTEGER NOT NULL,
	filename TEXT NOT NULL,
	media TEXT NOT NULL,
	storage_path TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_batches_status ON batches(status);
CREATE INDEX IF NOT EXISTS idx_batch_files_batch_id ON batch_files(batch_id, position);
`
	if _, err := tx.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("execute schema ddl: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit schema tx: %w", err)
	}
	return nil
}

func (r *BatchRepository) CreateBatch(ctx context.Context, batch *domain.Batch, files []domain.BatchFile) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin batch tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	_, err = tx.ExecContext(ctx, `
INSERT INTO batches (id, status, month, year, file_count, error_message, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
`,
		batch.ID, string(batch.Status), batch.Month, batch.Year, batch.FileCount, batch.Error,
		batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}

	for _, f := range files {
		_, err = tx.ExecContext(ctx, `
INSERT INTO batch_files (id, batch_id, position, filename, media, storage_path)
VALUES ($1,$2,$3,$4,$5,$6)
`,
			f.ID, f.BatchID, f.Position, f.Filename, string(f.Media), f.StoragePath,
		)
		if err != nil {
			return fmt.Errorf("insert batch file %d: %w", f.Position, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit batch tx: %w", err)
	}
	return nil
}

func (r *BatchRepository) GetByID(ctx context.Context, id string) (*domain.Batch, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, status, month, year, file_count, error_message, created_at, updated_at
FROM batches
WHERE id = $1
`, id)

	var batch domain.Batch
	var status string
	var errMessage sql.NullString
	err := row.Scan(
		&batch.ID, &status, &batch.Month, &batch.Year, &batch.FileCount,
		&errMessage, &batch.CreatedAt, &batch.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrBatchNotFound, "get batch", err)
	}
	if err != nil {
		return nil, fmt.Errorf("scan batch: %w", err)
	}
	batch.Status = domain.BatchStatus(status)
	batch.Error = errMessage.String
	return &batch, nil
}

func (r *BatchRepository) ListFiles(ctx context.Context, batchID string) ([]domain.BatchFile, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT id, batch_id, position, filename, media, storage_path
FROM batch_files
WHERE batch_id = $1
ORDER BY position ASC
`, batchID)
	if err != nil {
		return nil, fmt.Errorf("query batch files: %w", err)
	}
	defer rows.Close()

	var files []domain.BatchFile
	for rows.Next() {
		var f domain.BatchFile
		var media string
		if err := rows.Scan(&f.ID, &f.BatchID, &f.Position, &f.Filename, &media, &f.StoragePath); err != nil {
			return nil, fmt.Errorf("scan batch file: %w", err)
		}
		f.Media = domain.MediaKind(media)
		files = append(files, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate batch files: %w", err)
	}
	return files, nil
}

func (r *BatchRepository) UpdateStatus(ctx context.Context, id string, status domain.BatchStatus, errMessage string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE batches
SET status = $2, error_message = $3, updated_at = $4
WHERE id = $1
`, id, string(status), errMessage, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("update batch status: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrBatchNotFound, "update batch status", sql.ErrNoRows)
	}
	return nil
}

func (r *BatchRepository) SaveResult(ctx context.Context, id string, result domain.BatchResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("marshal batch result: %w", err)
	}

	res, err := r.db.ExecContext(ctx, `
UPDATE batches
SET result = $2, updated_at = $3
WHERE id = $1
`, id, payload, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save batch result: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if affected == 0 {
		return domain.WrapError(domain.ErrBatchNotFound, "save batch result", sql.ErrNoRows)
	}
	return nil
}

func (r *BatchRepository) GetResult(ctx context.Context, id string) (*domain.BatchResult, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT result
FROM batches
WHERE id = $1
`, id)

	var payload []byte
	err := row.Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.WrapError(domain.ErrBatchNotFound, "get batch result", err)
	}
	if err != nil {
		return nil, fmt.Errorf("scan batch result: %w", err)
	}
	if len(payload) == 0 {
		return nil, nil
	}

	var result domain.BatchResult
	if err := json.Unmarshal(payload, &result); err != nil {
		return nil, fmt.Errorf("unmarshal batch result: %w", err)
	}
	return &result, nil
}
