package engine

import (
	"sort"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

// BuildManifest orders a property's document files for concatenation:
// stable sort by rank ascending, ties broken by upload order. A
// general-ledger document is tracked for completeness but never enters the
// concatenation sequence; unknown-kind files are surfaced as unidentified
// instead of being merged in arbitrary position.
func BuildManifest(set *domain.PropertyDocumentSet) domain.MergeManifest {
	var manifest domain.MergeManifest

	ordered := make([]domain.ClassifiedFile, len(set.Documents))
	copy(ordered, set.Documents)
	sort.SliceStable(ordered, func(i, j int) bool {
		if ordered[i].Rank != ordered[j].Rank {
			return ordered[i].Rank < ordered[j].Rank
		}
		return ordered[i].Position < ordered[j].Position
	})

	for _, f := range ordered {
		switch f.Kind {
		case domain.KindUnknown:
			manifest.Unidentified = append(manifest.Unidentified, f)
		case domain.KindGeneralLedger:
			if manifest.Ledger == nil {
				ledger := f
				manifest.Ledger = &ledger
			}
		default:
			manifest.Documents = append(manifest.Documents, f)
		}
	}

	// Unknown spreadsheets need manual review too.
	for _, f := range set.Sheets {
		if f.Kind == domain.KindUnknown {
			manifest.Unidentified = append(manifest.Unidentified, f)
		}
	}

	return manifest
}
