// Package engine implements the report identification and grouping core:
// filename classification against the taxonomy, property resolution, the
// batch grouping fold, completeness evaluation and manifest building. Every
// function here is a pure function of its inputs; the only cross-file state
// is the Grouper, which is scoped to one batch run.
package engine

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/kirillkom/financial-report-aggregator/internal/catalog"
	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

// Classifier maps filenames to report kinds and extracts candidate property
// codes.
type Classifier struct {
	catalog *catalog.Catalog
}

func NewClassifier(c *catalog.Catalog) *Classifier {
	return &Classifier{catalog: c}
}

// Classify lowercases the filename and returns the first taxonomy entry with
// a matching keyword substring. Taxonomy order is a priority order: a name
// matching several entries resolves to the earliest one.
func (c *Classifier) Classify(filename string) (domain.ReportKind, int) {
	lower := strings.ToLower(filename)
	for _, entry := range c.catalog.Entries() {
		for _, kw := range entry.Keywords {
			if strings.Contains(lower, kw) {
				return entry.Kind, entry.Rank
			}
		}
	}
	return domain.KindUnknown, domain.UnknownRank
}

// subtypeSuffixRe strips a trailing report-subtype token (t12/t-12/ytd),
// optionally followed by a parenthesized disambiguator like "(1)".
var subtypeSuffixRe = regexp.MustCompile(`(?i)[_\s-](t-?12|ytd)(\s*\(\d+\))?$`)

// CodeFromFilename extracts a candidate property code from a filename.
// Known codes win when they appear as delimited substrings (preceded by an
// underscore, followed by underscore, dot, space or end). Otherwise the
// extension and any trailing subtype or report-keyword tokens are stripped
// and the token after the last remaining underscore is the candidate.
// Returns "" when no candidate can be found.
func (c *Classifier) CodeFromFilename(filename string) string {
	lower := strings.ToLower(filename)
	for _, code := range c.catalog.KnownCodes() {
		if containsDelimited(lower, code) {
			return code
		}
	}

	stem := strings.TrimSuffix(lower, strings.ToLower(filepath.Ext(lower)))
	stem = subtypeSuffixRe.ReplaceAllString(stem, "")
	stem = c.trimKeywordTokens(stem)

	idx := strings.LastIndex(stem, "_")
	if idx < 0 || idx == len(stem)-1 {
		return ""
	}
	candidate := strings.TrimSpace(stem[idx+1:])
	if candidate == "" || !isCodeToken(candidate) {
		return ""
	}
	return candidate
}

// trimKeywordTokens drops trailing underscore-separated tokens that are
// themselves taxonomy keywords ("..._budget" names the report, not the
// property).
func (c *Classifier) trimKeywordTokens(stem string) string {
	for {
		idx := strings.LastIndex(stem, "_")
		if idx < 0 {
			return stem
		}
		tail := stem[idx+1:]
		if !c.isKeyword(tail) {
			return stem
		}
		stem = stem[:idx]
	}
}

func (c *Classifier) isKeyword(token string) bool {
	for _, entry := range c.catalog.Entries() {
		for _, kw := range entry.Keywords {
			if token == kw {
				return true
			}
		}
	}
	return false
}

func containsDelimited(name, code string) bool {
	for start := 0; ; {
		idx := strings.Index(name[start:], code)
		if idx < 0 {
			return false
		}
		idx += start
		before := idx - 1
		after := idx + len(code)
		precededOK := before >= 0 && name[before] == '_'
		followedOK := after == len(name) ||
			name[after] == '_' || name[after] == '.' || name[after] == ' '
		if precededOK && followedOK {
			return true
		}
		start = idx + 1
	}
}

func isCodeToken(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		default:
			return false
		}
	}
	return true
}
