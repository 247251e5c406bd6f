package references

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"CompanyBrief/internal/domain"
)

type stubResolver struct {
	titles map[string]string
	err    error
}

func (s *stubResolver) ResolveTitle(_ context.Context, pageURL string) (string, error) {
	if s.err != nil {
		return "", s.err
	}
	return s.titles[pageURL], nil
}

func TestRenderReferencesEmpty(t *testing.T) {
	t.Parallel()

	r := NewRenderer(nil, nil)
	if got := r.RenderReferences(context.Background(), nil, nil, nil); got != "" {
		t.Fatalf("no references means no section, got %q", got)
	}
}

func TestRenderReferencesFullMetadata(t *testing.T) {
	t.Parallel()

	r := NewRenderer(nil, nil)
	refs := []string{"https://acme.example/about", "https://news.example/story"}
	info := map[string]domain.ReferenceInfo{
		"https://acme.example/about": {Site: "Acme Corp", Date: "12 Mar 2026"},
	}
	titles := map[string]string{
		"https://acme.example/about": "About Acme",
		"https://news.example/story": "Acme Raises Series C",
	}

	got := r.RenderReferences(context.Background(), refs, info, titles)

	if !strings.HasPrefix(got, "## References\n") {
		t.Fatalf("section must open with the References heading: %q", got)
	}
	lines := strings.Split(got, "\n")
	var entries []string
	for _, line := range lines {
		if strings.HasPrefix(line, "* ") {
			entries = append(entries, line)
		}
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d: %q", len(entries), got)
	}
	if entries[0] != "* [About Acme](https://acme.example/about). Acme Corp. 12 Mar 2026." {
		t.Fatalf("unexpected first entry: %q", entries[0])
	}
	if entries[1] != "* [Acme Raises Series C](https://news.example/story)." {
		t.Fatalf("entry without metadata must stop after the link: %q", entries[1])
	}
}

func TestRenderReferencesResolvesMissingTitles(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{titles: map[string]string{
		"https://acme.example/team": "Leadership — Acme",
	}}
	r := NewRenderer(resolver, nil)

	got := r.RenderReferences(context.Background(), []string{"https://acme.example/team"}, nil, nil)
	if !strings.Contains(got, "[Leadership — Acme](https://acme.example/team)") {
		t.Fatalf("resolver title must be used: %q", got)
	}
}

func TestRenderReferencesHostFallback(t *testing.T) {
	t.Parallel()

	resolver := &stubResolver{err: fmt.Errorf("timeout")}
	r := NewRenderer(resolver, nil)

	got := r.RenderReferences(context.Background(), []string{"https://acme.example/deep/path"}, nil, nil)
	if !strings.Contains(got, "[acme.example](https://acme.example/deep/path)") {
		t.Fatalf("failed resolution must fall back to the URL host: %q", got)
	}
}

func TestHTTPTitleResolver(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>  Acme — About Us  </title></head><body></body></html>`)
	}))
	t.Cleanup(server.Close)

	resolver := NewHTTPTitleResolver(server.Client())
	title, err := resolver.ResolveTitle(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("ResolveTitle: %v", err)
	}
	if title != "Acme — About Us" {
		t.Fatalf("title must be trimmed, got %q", title)
	}
}

func TestHTTPTitleResolverErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.NotFound(w, r)
		default:
			fmt.Fprint(w, `<html><head></head><body>no title element</body></html>`)
		}
	}))
	t.Cleanup(server.Close)

	resolver := NewHTTPTitleResolver(server.Client())

	if _, err := resolver.ResolveTitle(context.Background(), server.URL+"/missing"); err == nil {
		t.Fatalf("non-200 status must be an error")
	}
	if _, err := resolver.ResolveTitle(context.Background(), server.URL+"/untitled"); err == nil {
		t.Fatalf("a page without a title element must be an error")
	}
}
