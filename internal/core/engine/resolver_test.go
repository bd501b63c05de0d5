package engine

import (
	"testing"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

func TestResolveContentSignalWins(t *testing.T) {
	r := NewResolver(testCatalog(t))

	file := r.Resolve("Balance_Sheet_marshp.pdf", domain.MediaDocumentPDF, 0, domain.ContentSignal{
		PropertyName: "Harborview Lofts",
		PropertyCode: "hrbrvw",
	})
	if file.PropertyCode != "hrbrvw" || file.PropertyName != "Harborview Lofts" {
		t.Fatalf("content signal must take precedence, got (%q, %q)", file.PropertyName, file.PropertyCode)
	}
	if file.Kind != domain.KindBalanceSheet {
		t.Fatalf("expected balance sheet kind, got %v", file.Kind)
	}
}

func TestResolveFilenameCodeWithDisplayName(t *testing.T) {
	r := NewResolver(testCatalog(t))

	file := r.Resolve("Balance_Sheet_marshp.pdf", domain.MediaDocumentPDF, 0, domain.ContentSignal{})
	if file.PropertyCode != "marshp" {
		t.Fatalf("expected code marshp, got %q", file.PropertyCode)
	}
	if file.PropertyName != "Marsh Point" {
		t.Fatalf("expected display name from lookup table, got %q", file.PropertyName)
	}
}

func TestResolveUnrecognizedCodeTitleCased(t *testing.T) {
	r := NewResolver(testCatalog(t))

	file := r.Resolve("Report_unknownprop_budget.pdf", domain.MediaDocumentPDF, 0, domain.ContentSignal{})
	if file.Kind != domain.KindBudgetComparison {
		t.Fatalf("expected budget comparison, got %v", file.Kind)
	}
	if file.PropertyCode != "unknownprop" || file.PropertyName != "Unknownprop" {
		t.Fatalf("expected title-cased fallback name, got (%q, %q)", file.PropertyName, file.PropertyCode)
	}
}

func TestResolveNoSignalStaysUnattributed(t *testing.T) {
	r := NewResolver(testCatalog(t))

	file := r.Resolve("randomfile.pdf", domain.MediaDocumentPDF, 3, domain.ContentSignal{})
	if file.Attributed() {
		t.Fatalf("expected unattributed file, got (%q, %q)", file.PropertyName, file.PropertyCode)
	}
	if file.Kind != domain.KindUnknown || file.Rank != domain.UnknownRank {
		t.Fatalf("expected unknown kind with sentinel rank, got (%v, %d)", file.Kind, file.Rank)
	}
	if file.Position != 3 {
		t.Fatalf("expected position preserved, got %d", file.Position)
	}
}

func TestResolveSubtypeOverridesOnlyTrailingTwelve(t *testing.T) {
	r := NewResolver(testCatalog(t))

	// Range starting in January rewrites a filename-detected T12 to YTD.
	file := r.Resolve("12_Month_marshp.pdf", domain.MediaDocumentPDF, 0, domain.ContentSignal{
		Subtype: domain.KindYearToDate,
	})
	if file.Kind != domain.KindYearToDate || file.Rank != 3 {
		t.Fatalf("expected YTD override, got (%v, %d)", file.Kind, file.Rank)
	}

	// Range starting elsewhere keeps the trailing-twelve kind.
	file = r.Resolve("12_Month_marshp.pdf", domain.MediaDocumentPDF, 0, domain.ContentSignal{
		Subtype: domain.KindTrailingTwelve,
	})
	if file.Kind != domain.KindTrailingTwelve || file.Rank != 2 {
		t.Fatalf("expected trailing twelve, got (%v, %d)", file.Kind, file.Rank)
	}

	// An independently detected kind is never overridden.
	file = r.Resolve("YTD_emersn.xlsx", domain.MediaSpreadsheet, 0, domain.ContentSignal{
		Subtype: domain.KindTrailingTwelve,
	})
	if file.Kind != domain.KindYearToDate {
		t.Fatalf("subtype hint must not override a non-T12 kind, got %v", file.Kind)
	}
}

func TestTitleCase(t *testing.T) {
	cases := map[string]string{
		"unknownprop": "Unknownprop",
		"marsh point": "Marsh Point",
		"OAK-RIDGE":   "Oak-Ridge",
	}
	for in, want := range cases {
		if got := TitleCase(in); got != want {
			t.Fatalf("TitleCase(%q) = %q, want %q", in, got, want)
		}
	}
}
