package references

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"CompanyBrief/internal/domain"
	"CompanyBrief/internal/ports"
)

// Renderer formats the collected reference records into the Markdown block
// appended after compilation. Links are rendered with descriptive titles; a
// configured resolver fills in titles the curation service did not supply.
type Renderer struct {
	resolver ports.TitleResolver
	logger   *slog.Logger
}

var _ ports.ReferenceRenderer = (*Renderer)(nil)

// NewRenderer wires an optional title resolver.
func NewRenderer(resolver ports.TitleResolver, logger *slog.Logger) *Renderer {
	return &Renderer{resolver: resolver, logger: logger}
}

// RenderReferences renders the "## References" section. Entry order follows
// the reference list; formatting stays stable so the normalizer can leave the
// section untouched.
func (r *Renderer) RenderReferences(ctx context.Context, refs []string, info map[string]domain.ReferenceInfo, titles map[string]string) string {
	if len(refs) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("## References\n")
	for _, ref := range refs {
		b.WriteString("\n* ")
		b.WriteString(r.entry(ctx, ref, info[ref], titles[ref]))
	}
	return b.String()
}

// entry renders one MLA-flavored reference line.
func (r *Renderer) entry(ctx context.Context, ref string, info domain.ReferenceInfo, title string) string {
	if title == "" {
		title = r.resolveTitle(ctx, ref)
	}

	line := fmt.Sprintf("[%s](%s).", title, ref)
	if info.Site != "" {
		line += " " + info.Site + "."
	}
	if info.Date != "" {
		line += " " + info.Date + "."
	}
	return line
}

// resolveTitle asks the resolver for a descriptive page title, degrading to
// the URL host when resolution is unavailable or fails.
func (r *Renderer) resolveTitle(ctx context.Context, ref string) string {
	if r.resolver != nil {
		title, err := r.resolver.ResolveTitle(ctx, ref)
		if err == nil && title != "" {
			return title
		}
		if err != nil && r.logger != nil {
			r.logger.Warn("title resolution failed", "url", ref, "error", err)
		}
	}

	if parsed, err := url.Parse(ref); err == nil && parsed.Host != "" {
		return parsed.Host
	}
	return ref
}
