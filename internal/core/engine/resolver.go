package engine

import (
	"strings"

	"github.com/kirillkom/financial-report-aggregator/internal/catalog"
	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

// Resolver combines content- and filename-derived signals into one
// ClassifiedFile per input. Precedence for the property identity: content
// (name, code) first, then filename-derived code mapped through the display
// name table, then the title-cased code itself, then no signal at all.
type Resolver struct {
	catalog    *catalog.Catalog
	classifier *Classifier
}

func NewResolver(c *catalog.Catalog) *Resolver {
	return &Resolver{catalog: c, classifier: NewClassifier(c)}
}

// Resolve classifies one file. The content signal may be the zero value when
// sniffing found nothing; that degrades to filename-only resolution and is
// not an error.
func (r *Resolver) Resolve(name string, media domain.MediaKind, position int, signal domain.ContentSignal) domain.ClassifiedFile {
	kind, rank := r.classifier.Classify(name)

	// The subtype hint only corrects a filename-detected trailing-twelve
	// statement; it never overrides an independently detected kind.
	if kind == domain.KindTrailingTwelve && signal.Subtype != "" {
		kind = signal.Subtype
		rank = r.catalog.RankOf(kind)
	}

	file := domain.ClassifiedFile{
		Name:     name,
		Media:    media,
		Kind:     kind,
		Rank:     rank,
		Position: position,
	}

	if signal.HasProperty() {
		file.PropertyName = signal.PropertyName
		file.PropertyCode = signal.PropertyCode
		if file.PropertyName == "" {
			file.PropertyName = r.displayName(file.PropertyCode)
		}
		return file
	}

	code := r.classifier.CodeFromFilename(name)
	if code == "" {
		return file
	}
	file.PropertyCode = code
	file.PropertyName = r.displayName(code)
	return file
}

func (r *Resolver) displayName(code string) string {
	if name, ok := r.catalog.DisplayName(code); ok {
		return name
	}
	return TitleCase(code)
}

// TitleCase uppercases the first letter of each space- or hyphen-separated
// word and lowercases the rest.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	startOfWord := true
	for _, r := range strings.ToLower(s) {
		if startOfWord && r >= 'a' && r <= 'z' {
			b.WriteRune(r - ('a' - 'A'))
		} else {
			b.WriteRune(r)
		}
		startOfWord = r == ' ' || r == '-' || r == '\''
	}
	return b.String()
}
