package domain

import "strconv"

// Category is one of the four fixed research facets.
type Category string

const (
	CategoryCompany   Category = "company"
	CategoryIndustry  Category = "industry"
	CategoryFinancial Category = "financial"
	CategoryRevenue   Category = "revenue"
)

// Categories lists the facets in compile order.
var Categories = []Category{
	CategoryCompany,
	CategoryIndustry,
	CategoryFinancial,
	CategoryRevenue,
}

// Evaluation carries the upstream ranking verdict for a document.
// OverallScore arrives as a string from the curation service.
type Evaluation struct {
	OverallScore string `json:"overall_score"`
}

// Document is a single curated research source consumed read-only.
type Document struct {
	URL        string     `json:"url"`
	Title      string     `json:"title"`
	Content    string     `json:"content"`
	RawContent string     `json:"raw_content"`
	Query      string     `json:"query"`
	Evaluation Evaluation `json:"evaluation"`
}

// EffectiveContent prefers the raw scrape over the summarized content.
func (d Document) EffectiveContent() string {
	if d.RawContent != "" {
		return d.RawContent
	}
	return d.Content
}

// Score parses the evaluation score; missing or unparseable scores rank as 0.
func (d Document) Score() float64 {
	score, err := strconv.ParseFloat(d.Evaluation.OverallScore, 64)
	if err != nil {
		return 0
	}
	return score
}

// CategoryDataset maps source locators to curated documents for one category.
type CategoryDataset map[string]Document

// Briefing is the generated text for one category. Empty content signals a
// failed or skipped generation.
type Briefing struct {
	Category Category
	Content  string
}
