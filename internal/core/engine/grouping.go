package engine

import "github.com/kirillkom/financial-report-aggregator/internal/core/domain"

// Grouper folds a batch of classified files into per-property document sets.
// It is the only stateful piece of the engine and lives for one batch run.
//
// Lookup is by code when the file has one, otherwise by normalized display
// name. The code is the authoritative grouping key: the first name seen for
// a code becomes canonical, and later files carrying a different spelling
// are rewritten to it.
type Grouper struct {
	groups       []*domain.PropertyDocumentSet
	byCode       map[string]*domain.PropertyDocumentSet
	byName       map[string]*domain.PropertyDocumentSet
	unattributed []domain.ClassifiedFile
}

func NewGrouper() *Grouper {
	return &Grouper{
		byCode: make(map[string]*domain.PropertyDocumentSet),
		byName: make(map[string]*domain.PropertyDocumentSet),
	}
}

// Add routes one classified file to its property's set or, when it carries
// no property signal, to the unattributed bucket. Files keep their
// classified kind either way; nothing is silently dropped.
func (g *Grouper) Add(file domain.ClassifiedFile) {
	if !file.Attributed() {
		g.unattributed = append(g.unattributed, file)
		return
	}

	set := g.lookup(file)
	if set == nil {
		set = &domain.PropertyDocumentSet{
			Identity: domain.PropertyIdentity{
				CanonicalName: file.PropertyName,
				Code:          file.PropertyCode,
			},
		}
		g.groups = append(g.groups, set)
		if set.Identity.Code != "" {
			g.byCode[set.Identity.Code] = set
		}
		if set.Identity.CanonicalName != "" {
			g.byName[domain.NormalizeName(set.Identity.CanonicalName)] = set
		}
	}

	// Same code, different spelling: the canonical name wins.
	file.PropertyName = set.Identity.CanonicalName
	file.PropertyCode = set.Identity.Code

	if file.Media == domain.MediaSpreadsheet {
		set.Sheets = append(set.Sheets, file)
		return
	}
	set.Documents = append(set.Documents, file)
}

func (g *Grouper) lookup(file domain.ClassifiedFile) *domain.PropertyDocumentSet {
	if file.PropertyCode != "" {
		return g.byCode[file.PropertyCode]
	}
	return g.byName[domain.NormalizeName(file.PropertyName)]
}

// Groups returns the property sets in first-seen order.
func (g *Grouper) Groups() []*domain.PropertyDocumentSet {
	return g.groups
}

// Unattributed returns the files that carried no property signal, in upload
// order.
func (g *Grouper) Unattributed() []domain.ClassifiedFile {
	return g.unattributed
}

// Total returns how many files the grouper has seen. Together with the
// groups and the bucket it satisfies the total-coverage invariant: every
// input file lands in exactly one place.
func (g *Grouper) Total() int {
	n := len(g.unattributed)
	for _, set := range g.groups {
		n += set.Size()
	}
	return n
}
