package datafile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
)

// Loader reads curated datasets from a JSON file, for runs without a curation
// database. The file mirrors the curation service's state keys:
//
//	{
//	  "curated_company_data":   {"<url>": {"title": ..., "content": ...}},
//	  "curated_industry_data":  {...},
//	  "curated_financial_data": {...},
//	  "curated_revenue_data":   {...}
//	}
type Loader struct {
	path string
}

var _ ports.DatasetSource = (*Loader)(nil)

// NewLoader points the loader at a dataset file.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

type datasetFile struct {
	Company   domain.CategoryDataset `json:"curated_company_data"`
	Industry  domain.CategoryDataset `json:"curated_industry_data"`
	Financial domain.CategoryDataset `json:"curated_financial_data"`
	Revenue   domain.CategoryDataset `json:"curated_revenue_data"`
}

// LoadDatasets parses the file; the job id is ignored since the file already
// belongs to one run.
func (l *Loader) LoadDatasets(_ context.Context, _ string) (map[domain.Category]domain.CategoryDataset, error) {
	raw, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("read dataset file: %w", err)
	}

	var parsed datasetFile
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("parse dataset file: %w", err)
	}

	return map[domain.Category]domain.CategoryDataset{
		domain.CategoryCompany:   parsed.Company,
		domain.CategoryIndustry:  parsed.Industry,
		domain.CategoryFinancial: parsed.Financial,
		domain.CategoryRevenue:   parsed.Revenue,
	}, nil
}
