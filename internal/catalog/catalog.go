// Package catalog holds the static report taxonomy: canonical report kinds
// with merge ranks and matching keywords, the code→display-name table, and
// the allowlist of property codes that require the supplementary three-sheet
// ledger bundle. It is loaded once at process start and never mutated.
package catalog

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/financial-report-aggregator/internal/core/domain"
)

//go:embed default.yaml
var defaultCatalogYAML []byte

// Entry is one taxonomy row. Entry order in the catalog is a priority order
// for keyword matching, not just a display order.
type Entry struct {
	Kind     domain.ReportKind `yaml:"kind"`
	Rank     int               `yaml:"rank"`
	Keywords []string          `yaml:"keywords"`
}

type catalogFile struct {
	Taxonomy    []Entry           `yaml:"taxonomy"`
	Properties  map[string]string `yaml:"properties"`
	LedgerCodes []string          `yaml:"ledger_codes"`
}

type Catalog struct {
	entries      []Entry
	ranks        map[domain.ReportKind]int
	displayNames map[string]string
	ledgerCodes  map[string]struct{}
	knownCodes   []string
}

// Load reads a catalog YAML from path, or the embedded default when path is
// empty.
func Load(path string) (*Catalog, error) {
	raw := defaultCatalogYAML
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read catalog file: %w", err)
		}
		raw = data
	}
	return parse(raw)
}

func parse(raw []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("unmarshal catalog yaml: %w", err)
	}
	if len(file.Taxonomy) == 0 {
		return nil, fmt.Errorf("catalog has no taxonomy entries")
	}

	c := &Catalog{
		entries:      file.Taxonomy,
		ranks:        make(map[domain.ReportKind]int, len(file.Taxonomy)),
		displayNames: make(map[string]string, len(file.Properties)),
		ledgerCodes:  make(map[string]struct{}, len(file.LedgerCodes)),
	}
	for _, e := range file.Taxonomy {
		if e.Kind == "" || e.Rank <= 0 {
			return nil, fmt.Errorf("catalog entry %q has no kind or rank", e.Kind)
		}
		c.ranks[e.Kind] = e.Rank
	}
	for code, name := range file.Properties {
		c.displayNames[code] = name
	}
	for _, code := range file.LedgerCodes {
		c.ledgerCodes[code] = struct{}{}
	}

	codes := make(map[string]struct{}, len(c.displayNames)+len(c.ledgerCodes))
	for code := range c.displayNames {
		codes[code] = struct{}{}
	}
	for code := range c.ledgerCodes {
		codes[code] = struct{}{}
	}
	c.knownCodes = make([]string, 0, len(codes))
	for code := range codes {
		c.knownCodes = append(c.knownCodes, code)
	}
	sort.Strings(c.knownCodes)

	return c, nil
}

// Entries returns taxonomy rows in priority order.
func (c *Catalog) Entries() []Entry {
	return c.entries
}

// RankOf returns the merge rank of a kind; unknown kinds get the sentinel
// rank that keeps them out of ordered merges.
func (c *Catalog) RankOf(kind domain.ReportKind) int {
	if rank, ok := c.ranks[kind]; ok {
		return rank
	}
	return domain.UnknownRank
}

// DisplayName maps a property code to its configured display name.
func (c *Catalog) DisplayName(code string) (string, bool) {
	name, ok := c.displayNames[code]
	return name, ok
}

// RequiresLedgerBundle reports whether a property code is in the special
// ledger allowlist.
func (c *Catalog) RequiresLedgerBundle(code string) bool {
	_, ok := c.ledgerCodes[code]
	return ok
}

// KnownCodes returns all configured property codes, sorted.
func (c *Catalog) KnownCodes() []string {
	return c.knownCodes
}

// ExpectedKinds returns the expected report-kind set for a property code, in
// rank order: the base document set, plus the general ledger for properties
// in the ledger allowlist.
func (c *Catalog) ExpectedKinds(code string) []domain.ReportKind {
	out := make([]domain.ReportKind, 0, len(c.entries))
	for _, e := range c.entries {
		if e.Kind == domain.KindGeneralLedger && !c.RequiresLedgerBundle(code) {
			continue
		}
		out = append(out, e.Kind)
	}
	sort.Slice(out, func(i, j int) bool { return c.RankOf(out[i]) < c.RankOf(out[j]) })
	return out
}
