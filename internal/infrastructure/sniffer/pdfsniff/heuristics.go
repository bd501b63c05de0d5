package pdfsniff

import (
	"regexp"
	"strings"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
	"github.com/kirillkom/financial-report-aggregator/internal/core/engine"
)

var (
	// "Marsh Point (marshp)" anchored at line start: a name of
	// alphanumerics, spaces, ampersand, apostrophe or hyphen followed by a
	// lowercase code in parentheses.
	namedCodeRe = regexp.MustCompile(`(?m)^\s*([A-Za-z0-9][A-Za-z0-9 &'\-]*?)\s*\(([a-z0-9_]+)\)`)

	// "Property = Marsh Point" or "Property: Marsh Point", terminated by a
	// parenthesis, end of line, or the literal token "Page".
	propertyFieldRe = regexp.MustCompile(`(?mi)^\s*Property\s*[=:]\s*([A-Za-z0-9][A-Za-z0-9 &'\-]*?)\s*(?:\(|[Pp]age\b|$)`)

	// "February 2025 - January 2026"; separators among hyphen, en dash,
	// em dash, "to".
	periodRe = regexp.MustCompile(`(?i)\b(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}\s*(?:-|–|—|to)\s*(January|February|March|April|May|June|July|August|September|October|November|December)\s+\d{4}`)
)

// ExtractSignal runs the named heuristics over extracted first-page text.
// Each heuristic independently yields an optional result; absence of all of
// them is an expected outcome, not an error.
func ExtractSignal(text string) domain.ContentSignal {
	signal := extractProperty(text)
	signal.Subtype = extractStatementSubtype(text)
	return signal
}

// extractProperty tries the "Name (code)" pattern first, then the
// "Property = Name" field.
func extractProperty(text string) domain.ContentSignal {
	if m := namedCodeRe.FindStringSubmatch(text); m != nil {
		return domain.ContentSignal{
			PropertyName: engine.TitleCase(strings.TrimSpace(m[1])),
			PropertyCode: strings.ToLower(m[2]),
		}
	}
	if m := propertyFieldRe.FindStringSubmatch(text); m != nil {
		name := strings.TrimSpace(m[1])
		if name != "" {
			return domain.ContentSignal{PropertyName: engine.TitleCase(name)}
		}
	}
	return domain.ContentSignal{}
}

// extractStatementSubtype looks for a month-year date range. A range
// starting in January is a year-to-date statement; any other start month is
// a trailing-twelve statement. No range means no override.
func extractStatementSubtype(text string) domain.ReportKind {
	m := periodRe.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	if strings.EqualFold(m[1], "January") {
		return domain.KindYearToDate
	}
	return domain.KindTrailingTwelve
}
