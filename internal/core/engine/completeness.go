package engine

import (
	"sort"

	"github.com/kirillkom/financial-report-aggregator/internal/catalog"
	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

// Evaluator computes the expected/found/missing report-kind view of one
// property's document set. Evaluation is pure and recomputable at any time.
type Evaluator struct {
	catalog *catalog.Catalog
}

func NewEvaluator(c *catalog.Catalog) *Evaluator {
	return &Evaluator{catalog: c}
}

// Evaluate derives completeness for a property set. The supplementary kinds
// come from outside the document set — for ledger properties, the
// separately supplied spreadsheet bundle can satisfy the trailing-twelve,
// year-to-date and general-ledger kinds without a matching document.
func (e *Evaluator) Evaluate(set *domain.PropertyDocumentSet, supplementary []domain.ReportKind) domain.CompletenessResult {
	expected := e.catalog.ExpectedKinds(set.Identity.Code)

	found := make(map[domain.ReportKind]struct{})
	for _, f := range set.Documents {
		if f.Kind != domain.KindUnknown {
			found[f.Kind] = struct{}{}
		}
	}
	for _, k := range supplementary {
		if k != domain.KindUnknown {
			found[k] = struct{}{}
		}
	}

	result := domain.CompletenessResult{
		Expected: expected,
		Found:    e.sortKinds(found),
	}
	for _, k := range expected {
		if _, ok := found[k]; !ok {
			result.Missing = append(result.Missing, k)
		}
	}
	result.IsComplete = len(result.Missing) == 0
	return result
}

func (e *Evaluator) sortKinds(kinds map[domain.ReportKind]struct{}) []domain.ReportKind {
	out := make([]domain.ReportKind, 0, len(kinds))
	for k := range kinds {
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool {
		return e.catalog.RankOf(out[i]) < e.catalog.RankOf(out[j])
	})
	return out
}

// SheetBundle picks one spreadsheet per bundle part (trailing-twelve,
// year-to-date, general ledger) from a property's sheets, first upload wins.
// Missing names the parts that are absent, in rank order; the caller must
// not attempt a partial workbook merge when it is non-empty.
func SheetBundle(set *domain.PropertyDocumentSet) (parts map[domain.ReportKind]domain.ClassifiedFile, missing []domain.ReportKind) {
	wanted := []domain.ReportKind{domain.KindTrailingTwelve, domain.KindYearToDate, domain.KindGeneralLedger}
	parts = make(map[domain.ReportKind]domain.ClassifiedFile, len(wanted))
	for _, sheet := range set.Sheets {
		for _, k := range wanted {
			if sheet.Kind == k {
				if _, ok := parts[k]; !ok {
					parts[k] = sheet
				}
			}
		}
	}
	for _, k := range wanted {
		if _, ok := parts[k]; !ok {
			missing = append(missing, k)
		}
	}
	return parts, missing
}

// SheetKinds returns the non-unknown kinds present among a property's
// spreadsheets, for use as the supplementary found-set.
func SheetKinds(set *domain.PropertyDocumentSet) []domain.ReportKind {
	seen := make(map[domain.ReportKind]struct{})
	var out []domain.ReportKind
	for _, sheet := range set.Sheets {
		if sheet.Kind == domain.KindUnknown {
			continue
		}
		if _, ok := seen[sheet.Kind]; ok {
			continue
		}
		seen[sheet.Kind] = struct{}{}
		out = append(out, sheet.Kind)
	}
	return out
}
