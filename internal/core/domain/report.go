package domain

// MediaKind is the declared media family of an uploaded file.
type MediaKind string

const (
	MediaDocumentPDF MediaKind = "pdf"
	MediaSpreadsheet MediaKind = "spreadsheet"
)

// ReportKind is a canonical financial report category.
type ReportKind string

const (
	KindBalanceSheet     ReportKind = "balance_sheet"
	KindTrailingTwelve   ReportKind = "t12_statement"
	KindYearToDate       ReportKind = "ytd_statement"
	KindBudgetComparison ReportKind = "budget_comparison"
	KindRentRoll         ReportKind = "rent_roll"
	KindAgedReceivables  ReportKind = "aged_receivables"
	KindPayablesAging    ReportKind = "payables_aging"
	KindGeneralLedger    ReportKind = "general_ledger"
	KindUnknown          ReportKind = "unknown"
)

// UnknownRank keeps unclassified files out of any ordered merge.
const UnknownRank = 999

// ContentSignal is what content sniffing recovered from a file's first page.
// The zero value means "no signal", which is an expected outcome, not an
// error.
type ContentSignal struct {
	PropertyName string
	PropertyCode string
	// Subtype is set only when a statement date range was found: either
	// KindYearToDate (range starts in January) or KindTrailingTwelve.
	Subtype ReportKind
}

// HasProperty reports whether the sniffer recovered a property identity.
func (s ContentSignal) HasProperty() bool {
	return s.PropertyName != "" || s.PropertyCode != ""
}

// ClassifiedFile is the immutable classification outcome for one input file.
type ClassifiedFile struct {
	Name         string     `json:"name"`
	Media        MediaKind  `json:"media"`
	Kind         ReportKind `json:"kind"`
	Rank         int        `json:"rank"`
	PropertyName string     `json:"property_name,omitempty"`
	PropertyCode string     `json:"property_code,omitempty"`
	// Position is the file's index in the upload order; it is the stable
	// tie-break for equal ranks.
	Position int `json:"position"`
}

// Attributed reports whether the file carries any property signal.
func (f ClassifiedFile) Attributed() bool {
	return f.PropertyName != "" || f.PropertyCode != ""
}
