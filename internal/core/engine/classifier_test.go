package engine

import (
	"testing"

	"github.com/kirillkom/financial-report-aggregator/internal/catalog"
	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

func testCatalog(t *testing.T) *catalog.Catalog {
	t.Helper()
	c, err := catalog.Load("")
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	return c
}

func TestClassifyByKeyword(t *testing.T) {
	cls := NewClassifier(testCatalog(t))

	cases := []struct {
		filename string
		kind     domain.ReportKind
		rank     int
	}{
		{"Balance_Sheet_marshp.pdf", domain.KindBalanceSheet, 1},
		{"12_Month_marshp.pdf", domain.KindTrailingTwelve, 2},
		{"T12_emersn.xlsx", domain.KindTrailingTwelve, 2},
		{"YTD_emersn.xlsx", domain.KindYearToDate, 3},
		{"Report_unknownprop_budget.pdf", domain.KindBudgetComparison, 4},
		{"Rent_Roll_wstgte.pdf", domain.KindRentRoll, 5},
		{"Aged_Receivables_lkview.pdf", domain.KindAgedReceivables, 6},
		{"Payables_Aging_lkview.pdf", domain.KindPayablesAging, 7},
		{"GL_emersn.xlsx", domain.KindGeneralLedger, 8},
		{"randomfile.pdf", domain.KindUnknown, domain.UnknownRank},
	}
	for _, tc := range cases {
		kind, rank := cls.Classify(tc.filename)
		if kind != tc.kind || rank != tc.rank {
			t.Fatalf("Classify(%q) = (%v, %d), want (%v, %d)", tc.filename, kind, rank, tc.kind, tc.rank)
		}
	}
}

func TestClassifyFirstMatchWins(t *testing.T) {
	cls := NewClassifier(testCatalog(t))

	// Budget precedes rent roll in taxonomy order; a name matching both
	// resolves to the earlier entry.
	kind, _ := cls.Classify("budget_vs_rent_roll_wstgte.pdf")
	if kind != domain.KindBudgetComparison {
		t.Fatalf("expected budget comparison for ambiguous name, got %v", kind)
	}
}

func TestCodeFromFilenameKnownCodeDelimited(t *testing.T) {
	cls := NewClassifier(testCatalog(t))

	cases := []struct {
		filename string
		code     string
	}{
		{"Balance_Sheet_marshp.pdf", "marshp"},
		{"T12_emersn.xlsx", "emersn"},
		{"report_oakrdg_final.pdf", "oakrdg"},
		{"statement_wstgte.pdf", "wstgte"},
	}
	for _, tc := range cases {
		if got := cls.CodeFromFilename(tc.filename); got != tc.code {
			t.Fatalf("CodeFromFilename(%q) = %q, want %q", tc.filename, got, tc.code)
		}
	}
}

func TestCodeFromFilenameFallbackHeuristic(t *testing.T) {
	cls := NewClassifier(testCatalog(t))

	cases := []struct {
		filename string
		code     string
	}{
		// Trailing report keyword is stripped before taking the last token.
		{"Report_unknownprop_budget.pdf", "unknownprop"},
		// Trailing subtype tokens strip, including disambiguators.
		{"statement_riverbnd_t12.pdf", "riverbnd"},
		{"statement_riverbnd_T-12 (1).pdf", "riverbnd"},
		{"statement_riverbnd_ytd.pdf", "riverbnd"},
		// No underscore means no candidate.
		{"randomfile.pdf", ""},
	}
	for _, tc := range cases {
		if got := cls.CodeFromFilename(tc.filename); got != tc.code {
			t.Fatalf("CodeFromFilename(%q) = %q, want %q", tc.filename, got, tc.code)
		}
	}
}
