package usecase

import (
	"fmt"
	"sort"

	"CompanyBrief/internal/domain"
)

// TruncationMarker is appended to a document block whose content was cut at
// the per-document length ceiling.
const TruncationMarker = "... [content truncated]"

// SelectorLimits bounds the text the selector may hand to the prompt builder.
type SelectorLimits struct {
	MaxDocLength int
	TotalBudget  int
}

// DocumentPair keeps a document together with its source locator.
type DocumentPair struct {
	Locator  string
	Document domain.Document
}

// PairsFromDataset normalizes a dataset map into locator/document pairs.
// Locators are ordered lexicographically first so that equal-score documents
// keep a stable relative order across runs.
func PairsFromDataset(docs domain.CategoryDataset) []DocumentPair {
	locators := make([]string, 0, len(docs))
	for locator := range docs {
		locators = append(locators, locator)
	}
	sort.Strings(locators)

	pairs := make([]DocumentPair, 0, len(docs))
	for _, locator := range locators {
		pairs = append(pairs, DocumentPair{Locator: locator, Document: docs[locator]})
	}
	return pairs
}

// PairsFromList normalizes a document list, synthesizing locators for
// documents without a URL.
func PairsFromList(docs []domain.Document) []DocumentPair {
	pairs := make([]DocumentPair, 0, len(docs))
	for i, doc := range docs {
		locator := doc.URL
		if locator == "" {
			locator = fmt.Sprintf("doc_%d", i)
		}
		pairs = append(pairs, DocumentPair{Locator: locator, Document: doc})
	}
	return pairs
}

// SelectDocuments orders documents by descending evaluation score (stable on
// ties), truncates each to the per-document ceiling, and accumulates prompt
// blocks until the total character budget would be exceeded. Documents past
// the budget are dropped, not truncated; the top-scored document is therefore
// never dropped, only truncated.
func SelectDocuments(pairs []DocumentPair, limits SelectorLimits) []string {
	sorted := make([]DocumentPair, len(pairs))
	copy(sorted, pairs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Document.Score() > sorted[j].Document.Score()
	})

	var blocks []string
	total := 0
	for _, pair := range sorted {
		content := pair.Document.EffectiveContent()
		if len(content) > limits.MaxDocLength {
			content = content[:limits.MaxDocLength] + TruncationMarker
		}
		entry := fmt.Sprintf("Title: %s\n\nContent: %s", pair.Document.Title, content)
		if total+len(entry) >= limits.TotalBudget {
			break
		}
		blocks = append(blocks, entry)
		total += len(entry)
	}

	return blocks
}
