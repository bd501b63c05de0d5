package usecase

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/kirillkom/financial-report-aggregator/internal/catalog"
	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
	"github.com/kirillkom/financial-report-aggregator/internal/core/engine"
	"github.com/kirillkom/financial-report-aggregator/internal/core/ports"
)

type ProcessBatchUseCase struct {
	repo      ports.BatchRepository
	storage   ports.ObjectStorage
	sniffer   ports.ContentSniffer
	docMerger ports.DocumentMerger
	wbMerger  ports.WorkbookMerger
	artifacts ports.ArtifactStore

	catalog   *catalog.Catalog
	resolver  *engine.Resolver
	evaluator *engine.Evaluator
}

func NewProcessBatchUseCase(
	repo ports.BatchRepository,
	storage ports.ObjectStorage,
	sniffer ports.ContentSniffer,
	docMerger ports.DocumentMerger,
	wbMerger ports.WorkbookMerger,
	artifacts ports.ArtifactStore,
	cat *catalog.Catalog,
) *ProcessBatchUseCase {
	return &ProcessBatchUseCase{
		repo:      repo,
		storage:   storage,
		sniffer:   sniffer,
		docMerger: docMerger,
		wbMerger:  wbMerger,
		artifacts: artifacts,
		catalog:   cat,
		resolver:  engine.NewResolver(cat),
		evaluator: engine.NewEvaluator(cat),
	}
}

// ProcessByID runs the full pipeline for one batch: classify every file,
// group by property, evaluate completeness, build manifests and invoke the
// merge/upload collaborators per property. Classification failures degrade
// per file; collaborator failures are recorded per property. Only
// repository failures fail the batch itself.
func (uc *ProcessBatchUseCase) ProcessByID(ctx context.Context, batchID string) error {
	if err := uc.repo.UpdateStatus(ctx, batchID, domain.StatusProcessing, ""); err != nil {
		return fmt.Errorf("set status=processing: %w", err)
	}

	result, err := uc.runPipeline(ctx, batchID)
	if err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, batchID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return err
	}

	if err := uc.repo.SaveResult(ctx, batchID, *result); err != nil {
		if failErr := uc.repo.UpdateStatus(ctx, batchID, domain.StatusFailed, err.Error()); failErr != nil {
			return fmt.Errorf("%w; mark failed status: %v", err, failErr)
		}
		return fmt.Errorf("save batch result: %w", err)
	}

	if err := uc.repo.UpdateStatus(ctx, batchID, domain.StatusReady, ""); err != nil {
		return fmt.Errorf("set status=ready: %w", err)
	}
	return nil
}

func (uc *ProcessBatchUseCase) runPipeline(ctx context.Context, batchID string) (*domain.BatchResult, error) {
	batch, err := uc.repo.GetByID(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("fetch batch by id: %w", err)
	}
	files, err := uc.repo.ListFiles(ctx, batchID)
	if err != nil {
		return nil, fmt.Errorf("list batch files: %w", err)
	}

	grouper := engine.NewGrouper()
	contents := make(map[int][]byte, len(files))
	for _, file := range files {
		data := uc.readFile(ctx, file)
		contents[file.Position] = data
		grouper.Add(uc.classify(ctx, file, data))
	}

	result := &domain.BatchResult{
		BatchID:      batch.ID,
		Month:        batch.Month,
		Year:         batch.Year,
		Unattributed: grouper.Unattributed(),
	}
	for _, set := range grouper.Groups() {
		result.Properties = append(result.Properties, uc.buildPropertyReport(ctx, batch, set, contents))
	}
	return result, nil
}

// readFile loads a stored input. A read failure degrades the file to
// filename-only classification instead of failing the batch.
func (uc *ProcessBatchUseCase) readFile(ctx context.Context, file domain.BatchFile) []byte {
	rc, err := uc.storage.Open(ctx, file.StoragePath)
	if err != nil {
		return nil
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil
	}
	return data
}

func (uc *ProcessBatchUseCase) classify(ctx context.Context, file domain.BatchFile, data []byte) domain.ClassifiedFile {
	var signal domain.ContentSignal
	if file.Media == domain.MediaDocumentPDF && len(data) > 0 && uc.sniffer != nil {
		// Sniffing is best effort; an empty signal falls back to the
		// filename heuristics.
		signal, _ = uc.sniffer.Sniff(ctx, data)
	}
	return uc.resolver.Resolve(file.Filename, file.Media, file.Position, signal)
}

func (uc *ProcessBatchUseCase) buildPropertyReport(
	ctx context.Context,
	batch *domain.Batch,
	set *domain.PropertyDocumentSet,
	contents map[int][]byte,
) domain.PropertyReport {
	report := domain.PropertyReport{
		Identity:     set.Identity,
		Completeness: uc.evaluator.Evaluate(set, engine.SheetKinds(set)),
		Manifest:     engine.BuildManifest(set),
	}

	var failures []string
	if path, err := uc.mergeDocuments(ctx, batch, set.Identity, report.Manifest, contents); err != nil {
		failures = append(failures, err.Error())
	} else {
		report.DocumentArtifact = path
	}

	if uc.catalog.RequiresLedgerBundle(set.Identity.Code) {
		parts, missing := engine.SheetBundle(set)
		if len(missing) > 0 {
			// Partial workbook merges are never attempted; the missing
			// parts are reported by name instead.
			report.MissingSheetParts = missing
		} else if path, err := uc.mergeWorkbooks(ctx, batch, set.Identity, parts, contents); err != nil {
			failures = append(failures, err.Error())
		} else {
			report.WorkbookArtifact = path
		}
	}

	report.Error = strings.Join(failures, "; ")
	return report
}

func (uc *ProcessBatchUseCase) mergeDocuments(
	ctx context.Context,
	batch *domain.Batch,
	identity domain.PropertyIdentity,
	manifest domain.MergeManifest,
	contents map[int][]byte,
) (string, error) {
	if len(manifest.Documents) == 0 {
		return "", nil
	}

	parts := make([][]byte, 0, len(manifest.Documents))
	for _, f := range manifest.Documents {
		parts = append(parts, contents[f.Position])
	}

	merged, err := uc.docMerger.Merge(ctx, parts)
	if err != nil {
		return "", fmt.Errorf("merge documents: %w", err)
	}

	filename := ArtifactFilename(identity.CanonicalName, batch.Month, batch.Year, "pdf")
	path, err := uc.artifacts.SaveArtifact(ctx, merged, filename, batch.Month, batch.Year)
	if err != nil {
		return "", fmt.Errorf("store document artifact: %w", err)
	}
	return path, nil
}

func (uc *ProcessBatchUseCase) mergeWorkbooks(
	ctx context.Context,
	batch *domain.Batch,
	identity domain.PropertyIdentity,
	parts map[domain.ReportKind]domain.ClassifiedFile,
	contents map[int][]byte,
) (string, error) {
	merged, err := uc.wbMerger.Merge(ctx,
		contents[parts[domain.KindTrailingTwelve].Position],
		contents[parts[domain.KindYearToDate].Position],
		contents[parts[domain.KindGeneralLedger].Position],
	)
	if err != nil {
		return "", fmt.Errorf("merge ledger workbook: %w", err)
	}

	filename := ArtifactFilename(identity.CanonicalName, batch.Month, batch.Year, "xlsx")
	path, err := uc.artifacts.SaveArtifact(ctx, merged, filename, batch.Month, batch.Year)
	if err != nil {
		return "", fmt.Errorf("store workbook artifact: %w", err)
	}
	return path, nil
}

// ArtifactFilename is the output naming convention for merged packages.
func ArtifactFilename(displayName, month, year, ext string) string {
	return fmt.Sprintf("%s Financials %s %s.%s", displayName, month, year, ext)
}
