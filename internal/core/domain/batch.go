package domain

import "time"

type BatchStatus string

const (
	StatusUploaded   BatchStatus = "uploaded"
	StatusProcessing BatchStatus = "processing"
	StatusReady      BatchStatus = "ready"
	StatusFailed     BatchStatus = "failed"
)

// Batch is one uploaded report batch. Month and Year are routing hints for
// artifact naming and storage, supplied by the caller at upload time.
type Batch struct {
	ID        string      `json:"id"`
	Status    BatchStatus `json:"status"`
	Month     string      `json:"month"`
	Year      string      `json:"year"`
	FileCount int         `json:"file_count"`
	Error     string      `json:"error,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}

// BatchFile is one stored input file of a batch, in upload order.
type BatchFile struct {
	ID          string    `json:"id"`
	BatchID     string    `json:"batch_id"`
	Position    int       `json:"position"`
	Filename    string    `json:"filename"`
	Media       MediaKind `json:"media"`
	StoragePath string    `json:"storage_path"`
}

// MergeManifest is the ordered concatenation plan for one property.
// Documents are sorted by rank ascending with upload order breaking ties.
// The general-ledger file is tracked separately and never concatenated;
// unknown-kind files are surfaced for manual review, never merged.
type MergeManifest struct {
	Documents    []ClassifiedFile `json:"documents"`
	Ledger       *ClassifiedFile  `json:"ledger,omitempty"`
	Unidentified []ClassifiedFile `json:"unidentified,omitempty"`
}

// PropertyReport is the per-property outcome of one batch run. Collaborator
// failures (merge, upload) are recorded here and never abort the batch.
type PropertyReport struct {
	Identity          PropertyIdentity   `json:"identity"`
	Completeness      CompletenessResult `json:"completeness"`
	Manifest          MergeManifest      `json:"manifest"`
	MissingSheetParts []ReportKind       `json:"missing_sheet_parts,omitempty"`
	DocumentArtifact  string             `json:"document_artifact,omitempty"`
	WorkbookArtifact  string             `json:"workbook_artifact,omitempty"`
	Error             string             `json:"error,omitempty"`
}

// BatchResult is the immutable outcome of one pipeline invocation.
type BatchResult struct {
	BatchID      string           `json:"batch_id"`
	Month        string           `json:"month"`
	Year         string           `json:"year"`
	Properties   []PropertyReport `json:"properties"`
	Unattributed []ClassifiedFile `json:"unattributed,omitempty"`
}
