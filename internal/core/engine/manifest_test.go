package engine

import (
	"testing"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

func TestBuildManifestOrdersByRankWithStableTies(t *testing.T) {
	set := &domain.PropertyDocumentSet{
		Documents: []domain.ClassifiedFile{
			{Name: "rent_roll.pdf", Kind: domain.KindRentRoll, Rank: 5, Position: 0},
			{Name: "balance.pdf", Kind: domain.KindBalanceSheet, Rank: 1, Position: 1},
			{Name: "rent_roll (1).pdf", Kind: domain.KindRentRoll, Rank: 5, Position: 2},
			{Name: "budget.pdf", Kind: domain.KindBudgetComparison, Rank: 4, Position: 3},
		},
	}

	manifest := BuildManifest(set)
	wantOrder := []string{"balance.pdf", "budget.pdf", "rent_roll.pdf", "rent_roll (1).pdf"}
	if len(manifest.Documents) != len(wantOrder) {
		t.Fatalf("expected %d documents, got %d", len(wantOrder), len(manifest.Documents))
	}
	for i, name := range wantOrder {
		if manifest.Documents[i].Name != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, manifest.Documents[i].Name)
		}
	}
}

func TestBuildManifestExcludesLedger(t *testing.T) {
	set := &domain.PropertyDocumentSet{
		Documents: []domain.ClassifiedFile{
			{Name: "balance.pdf", Kind: domain.KindBalanceSheet, Rank: 1, Position: 0},
			{Name: "general_ledger.pdf", Kind: domain.KindGeneralLedger, Rank: 8, Position: 1},
		},
	}

	manifest := BuildManifest(set)
	for _, f := range manifest.Documents {
		if f.Kind == domain.KindGeneralLedger {
			t.Fatalf("general ledger must never enter the concatenation sequence")
		}
	}
	if manifest.Ledger == nil || manifest.Ledger.Name != "general_ledger.pdf" {
		t.Fatalf("ledger file must be tracked separately, got %+v", manifest.Ledger)
	}
}

func TestBuildManifestSurfacesUnidentified(t *testing.T) {
	set := &domain.PropertyDocumentSet{
		Documents: []domain.ClassifiedFile{
			{Name: "mystery.pdf", Kind: domain.KindUnknown, Rank: domain.UnknownRank, Position: 0},
			{Name: "balance.pdf", Kind: domain.KindBalanceSheet, Rank: 1, Position: 1},
		},
		Sheets: []domain.ClassifiedFile{
			{Name: "mystery.xlsx", Kind: domain.KindUnknown, Rank: domain.UnknownRank, Media: domain.MediaSpreadsheet, Position: 2},
		},
	}

	manifest := BuildManifest(set)
	if len(manifest.Documents) != 1 {
		t.Fatalf("unknown files must not be merged, got %d documents", len(manifest.Documents))
	}
	if len(manifest.Unidentified) != 2 {
		t.Fatalf("expected both unknown files surfaced, got %d", len(manifest.Unidentified))
	}
}
