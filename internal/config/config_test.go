package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	t.Setenv("NATS_SUBJECT", "")
	t.Setenv("API_RATE_LIMIT_RPS", "")
	t.Setenv("PDF_MERGE_BINARY", "")

	cfg := Load()
	if cfg.NATSSubject != "reports.batch" {
		t.Fatalf("expected default subject reports.batch, got %q", cfg.NATSSubject)
	}
	if cfg.APIRateLimitRPS != 10 {
		t.Fatalf("expected default rate limit 10 rps, got %d", cfg.APIRateLimitRPS)
	}
	if cfg.PDFMergeBinary != "pdfunite" {
		t.Fatalf("expected default merge binary pdfunite, got %q", cfg.PDFMergeBinary)
	}
	if cfg.CatalogPath != "" {
		t.Fatalf("expected embedded catalog by default, got %q", cfg.CatalogPath)
	}
}

func TestLoadParsesOverrides(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "3")
	t.Setenv("API_RATE_LIMIT_BURST", "5")
	t.Setenv("CATALOG_PATH", "/etc/fra/catalog.yaml")

	cfg := Load()
	if cfg.APIRateLimitRPS != 3 || cfg.APIRateLimitBurst != 5 {
		t.Fatalf("expected rate limit overrides, got %d/%d", cfg.APIRateLimitRPS, cfg.APIRateLimitBurst)
	}
	if cfg.CatalogPath != "/etc/fra/catalog.yaml" {
		t.Fatalf("expected catalog path override, got %q", cfg.CatalogPath)
	}
}

func TestLoadFallsBackOnBadInt(t *testing.T) {
	t.Setenv("API_RATE_LIMIT_RPS", "not-a-number")

	cfg := Load()
	if cfg.APIRateLimitRPS != 10 {
		t.Fatalf("expected fallback on unparsable int, got %d", cfg.APIRateLimitRPS)
	}
}
