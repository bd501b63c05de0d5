package engine

import (
	"testing"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

func TestGrouperCodeIsAuthoritative(t *testing.T) {
	g := NewGrouper()
	g.Add(domain.ClassifiedFile{
		Name: "a.pdf", Media: domain.MediaDocumentPDF,
		Kind: domain.KindBalanceSheet, Rank: 1,
		PropertyName: "Marsh Point", PropertyCode: "marshp", Position: 0,
	})
	g.Add(domain.ClassifiedFile{
		Name: "b.pdf", Media: domain.MediaDocumentPDF,
		Kind: domain.KindRentRoll, Rank: 5,
		PropertyName: "MARSH POINT APARTMENTS", PropertyCode: "marshp", Position: 1,
	})

	groups := g.Groups()
	if len(groups) != 1 {
		t.Fatalf("expected one group for shared code, got %d", len(groups))
	}
	set := groups[0]
	if set.Identity.CanonicalName != "Marsh Point" {
		t.Fatalf("expected first-seen name to be canonical, got %q", set.Identity.CanonicalName)
	}
	for _, f := range set.Documents {
		if f.PropertyName != "Marsh Point" {
			t.Fatalf("expected later files rewritten to canonical name, got %q", f.PropertyName)
		}
	}
}

func TestGrouperNameFallbackForCodelessFiles(t *testing.T) {
	g := NewGrouper()
	g.Add(domain.ClassifiedFile{
		Name: "a.pdf", Media: domain.MediaDocumentPDF,
		Kind: domain.KindBalanceSheet, Rank: 1,
		PropertyName: "Westgate Crossing", Position: 0,
	})
	g.Add(domain.ClassifiedFile{
		Name: "b.pdf", Media: domain.MediaDocumentPDF,
		Kind: domain.KindBudgetComparison, Rank: 4,
		PropertyName: "  westgate   CROSSING ", Position: 1,
	})

	if len(g.Groups()) != 1 {
		t.Fatalf("expected case/whitespace-normalized names to collapse, got %d groups", len(g.Groups()))
	}
}

func TestGrouperTotalCoverage(t *testing.T) {
	g := NewGrouper()
	files := []domain.ClassifiedFile{
		{Name: "a.pdf", Media: domain.MediaDocumentPDF, Kind: domain.KindBalanceSheet, Rank: 1, PropertyCode: "marshp", PropertyName: "Marsh Point", Position: 0},
		{Name: "b.xlsx", Media: domain.MediaSpreadsheet, Kind: domain.KindTrailingTwelve, Rank: 2, PropertyCode: "emersn", PropertyName: "Emerson Mills", Position: 1},
		{Name: "randomfile.pdf", Media: domain.MediaDocumentPDF, Kind: domain.KindUnknown, Rank: domain.UnknownRank, Position: 2},
	}
	for _, f := range files {
		g.Add(f)
	}

	if g.Total() != len(files) {
		t.Fatalf("total coverage violated: %d files in, %d accounted for", len(files), g.Total())
	}
	if len(g.Unattributed()) != 1 {
		t.Fatalf("expected exactly one unattributed file, got %d", len(g.Unattributed()))
	}
	if g.Unattributed()[0].Kind != domain.KindUnknown {
		t.Fatalf("unattributed bucket must keep classified kind")
	}
}

func TestGrouperRoutesSpreadsheetsToSheetBundle(t *testing.T) {
	g := NewGrouper()
	g.Add(domain.ClassifiedFile{
		Name: "T12_emersn.xlsx", Media: domain.MediaSpreadsheet,
		Kind: domain.KindTrailingTwelve, Rank: 2,
		PropertyCode: "emersn", PropertyName: "Emerson Mills", Position: 0,
	})
	g.Add(domain.ClassifiedFile{
		Name: "Balance_Sheet_emersn.pdf", Media: domain.MediaDocumentPDF,
		Kind: domain.KindBalanceSheet, Rank: 1,
		PropertyCode: "emersn", PropertyName: "Emerson Mills", Position: 1,
	})

	set := g.Groups()[0]
	if len(set.Sheets) != 1 || len(set.Documents) != 1 {
		t.Fatalf("expected split by media kind, got %d sheets / %d documents", len(set.Sheets), len(set.Documents))
	}
}
