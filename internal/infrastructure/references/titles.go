package references

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"CompanyBrief/internal/ports"
)

// HTTPTitleResolver fetches a page and extracts its <title> element to use as
// the descriptive link text in the references section.
type HTTPTitleResolver struct {
	client *http.Client
}

var _ ports.TitleResolver = (*HTTPTitleResolver)(nil)

// NewHTTPTitleResolver wires an HTTP client; a nil client gets a short
// default timeout so a slow reference page cannot stall compilation.
func NewHTTPTitleResolver(client *http.Client) *HTTPTitleResolver {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPTitleResolver{client: client}
}

// ResolveTitle downloads the page and returns its title text.
func (r *HTTPTitleResolver) ResolveTitle(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("parse page: %w", err)
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())
	if title == "" {
		return "", fmt.Errorf("page has no title")
	}

	return title, nil
}
