package domain

// ResearchContext is the immutable company identity threaded through every
// pipeline component.
type ResearchContext struct {
	Company    string
	Industry   string
	HQLocation string
	JobID      string
}

// PipelineState is the shared accumulator for a single pipeline run. It is
// owned by the orchestrating call and passed by pointer; during briefing
// fan-out each category task writes only its own briefing field, so the key
// space is statically partitioned and no locking is required.
type PipelineState struct {
	Company    string
	Industry   string
	HQLocation string
	JobID      string

	// Curated inputs, one dataset per category.
	CompanyData   CategoryDataset
	IndustryData  CategoryDataset
	FinancialData CategoryDataset
	RevenueData   CategoryDataset

	// Disjoint fan-out targets, one per category.
	CompanyBriefing   string
	IndustryBriefing  string
	FinancialBriefing string
	RevenueBriefing   string

	// Briefings holds the successful results keyed by category, assembled at
	// the fan-in barrier.
	Briefings map[Category]string

	References      []string
	ReferenceInfo   map[string]ReferenceInfo
	ReferenceTitles map[string]string

	// Report is set at most once per run; a re-run overwrites wholesale.
	Report string
	Status string

	Messages []string
}

// ReferenceInfo carries per-reference metadata collected upstream.
type ReferenceInfo struct {
	Site string `json:"site"`
	Date string `json:"date"`
}

// Context extracts the immutable research context from the state.
func (s *PipelineState) Context() ResearchContext {
	ctx := ResearchContext{
		Company:    s.Company,
		Industry:   s.Industry,
		HQLocation: s.HQLocation,
		JobID:      s.JobID,
	}
	if ctx.Company == "" {
		ctx.Company = "Unknown Company"
	}
	if ctx.Industry == "" {
		ctx.Industry = "Unknown"
	}
	if ctx.HQLocation == "" {
		ctx.HQLocation = "Unknown"
	}
	return ctx
}

// Dataset returns the curated dataset backing the given category.
func (s *PipelineState) Dataset(cat Category) CategoryDataset {
	switch cat {
	case CategoryCompany:
		return s.CompanyData
	case CategoryIndustry:
		return s.IndustryData
	case CategoryFinancial:
		return s.FinancialData
	case CategoryRevenue:
		return s.RevenueData
	}
	return nil
}

// SetDataset stores the curated dataset for the given category.
func (s *PipelineState) SetDataset(cat Category, docs CategoryDataset) {
	switch cat {
	case CategoryCompany:
		s.CompanyData = docs
	case CategoryIndustry:
		s.IndustryData = docs
	case CategoryFinancial:
		s.FinancialData = docs
	case CategoryRevenue:
		s.RevenueData = docs
	}
}

// Briefing returns the briefing text stored for the given category.
func (s *PipelineState) Briefing(cat Category) string {
	switch cat {
	case CategoryCompany:
		return s.CompanyBriefing
	case CategoryIndustry:
		return s.IndustryBriefing
	case CategoryFinancial:
		return s.FinancialBriefing
	case CategoryRevenue:
		return s.RevenueBriefing
	}
	return ""
}

// SetBriefing writes the briefing field owned by the given category.
func (s *PipelineState) SetBriefing(cat Category, content string) {
	switch cat {
	case CategoryCompany:
		s.CompanyBriefing = content
	case CategoryIndustry:
		s.IndustryBriefing = content
	case CategoryFinancial:
		s.FinancialBriefing = content
	case CategoryRevenue:
		s.RevenueBriefing = content
	}
}

// AppendMessage records a human-readable progress line in the run log.
func (s *PipelineState) AppendMessage(msg string) {
	s.Messages = append(s.Messages, msg)
}
