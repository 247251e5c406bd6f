package datafile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"CompanyBrief/internal/domain"
)

func TestLoadDatasets(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "datasets.json")
	content := `{
		"curated_company_data": {
			"https://acme.example/about": {
				"title": "About Acme",
				"content": "summary",
				"raw_content": "full text",
				"evaluation": {"overall_score": "8.5"}
			}
		},
		"curated_financial_data": {
			"https://filings.example/fy25": {"title": "FY25 Filing", "content": "numbers"}
		}
	}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	datasets, err := NewLoader(path).LoadDatasets(context.Background(), "ignored")
	if err != nil {
		t.Fatalf("LoadDatasets: %v", err)
	}

	company := datasets[domain.CategoryCompany]
	if len(company) != 1 {
		t.Fatalf("expected one company document, got %d", len(company))
	}
	doc := company["https://acme.example/about"]
	if doc.Title != "About Acme" || doc.EffectiveContent() != "full text" {
		t.Fatalf("unexpected document: %+v", doc)
	}
	if doc.Score() != 8.5 {
		t.Fatalf("score must parse from the evaluation block, got %v", doc.Score())
	}

	if len(datasets[domain.CategoryFinancial]) != 1 {
		t.Fatalf("financial dataset missing")
	}
	if len(datasets[domain.CategoryIndustry]) != 0 || len(datasets[domain.CategoryRevenue]) != 0 {
		t.Fatalf("absent keys must yield empty datasets")
	}
}

func TestLoadDatasetsErrors(t *testing.T) {
	t.Parallel()

	if _, err := NewLoader(filepath.Join(t.TempDir(), "missing.json")).LoadDatasets(context.Background(), ""); err == nil {
		t.Fatalf("missing file must be an error")
	}

	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := NewLoader(path).LoadDatasets(context.Background(), ""); err == nil {
		t.Fatalf("malformed JSON must be an error")
	}
}
