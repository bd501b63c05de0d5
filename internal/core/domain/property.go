package domain

import "strings"

// PropertyIdentity identifies one real-estate property within a batch. The
// code is the authoritative grouping key when present; the canonical name is
// a display label fixed to the first spelling encountered for that code.
type PropertyIdentity struct {
	CanonicalName string `json:"canonical_name"`
	Code          string `json:"code,omitempty"`
}

// NormalizeName collapses case and whitespace so that the same property
// reported under different spellings compares equal.
func NormalizeName(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), " ")
}

// PropertyDocumentSet accumulates one property's classified files during a
// grouping run. Document-media files feed the merge manifest; spreadsheet
// files form the supplementary sheet bundle. Lifetime is a single batch run.
type PropertyDocumentSet struct {
	Identity  PropertyIdentity `json:"identity"`
	Documents []ClassifiedFile `json:"documents"`
	Sheets    []ClassifiedFile `json:"sheets,omitempty"`
}

// Size returns the total number of files attributed to the property.
func (s *PropertyDocumentSet) Size() int {
	return len(s.Documents) + len(s.Sheets)
}

// CompletenessResult is the derived expected/found/missing report-kind view
// of one property's document set. It is recomputed on demand and never
// stored independently of its inputs.
type CompletenessResult struct {
	Expected   []ReportKind `json:"expected"`
	Found      []ReportKind `json:"found"`
	Missing    []ReportKind `json:"missing"`
	IsComplete bool         `json:"is_complete"`
}
