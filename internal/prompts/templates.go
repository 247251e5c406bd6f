// Package prompts holds the completion-backend prompt templates as plain
// configuration data. The templates encode editorial rules in natural
// language; nothing in the pipeline attempts to enforce those rules in code.
package prompts

import (
	"fmt"
	"strings"

	"CompanyBrief/internal/domain"
)

// Separator delimits document blocks inside a briefing prompt.
var Separator = "\n" + strings.Repeat("-", 40) + "\n"

// BriefingTemplate renders the category-specific briefing instructions. An
// unknown category falls back to a generic research-briefing instruction.
func BriefingTemplate(cat domain.Category, rc domain.ResearchContext) string {
	switch cat {
	case domain.CategoryCompany:
		return fmt.Sprintf(`Generate a focused company briefing for %[1]s, a company in the %[2]s industry.
Key requirements:
1. Open with the exact format: "%[1]s is a [type of company] whose main business is [what it does] serving [whom]"
2. Structure the briefing under exactly these headings with bullet points:

### Core Products/Services
* List distinct products or features
* Include only verified technical capabilities

### Leadership Team
* List key leadership team members
* Include their positions and professional backgrounds

### Target Market
* List specific target user groups
* List verified use cases
* List confirmed customers/partners

### Key Differentiators
* List unique features or capabilities
* List proven advantages

### Business Model
* State how the product/service is priced
* List sales/distribution channels

3. Every bullet must be a single, verifiable fact
4. Never write phrases like "no information found" or "data not available"
5. Bullet points only, no prose paragraphs
6. Provide only the briefing content, no explanations or commentary.`, rc.Company, rc.Industry)

	case domain.CategoryIndustry:
		return fmt.Sprintf(`Generate an industry-focused briefing for %[1]s, a company in the %[2]s industry.
Key requirements:
1. Structure the briefing under exactly these headings with bullet points:

### Market Overview
* Identify the specific market segment %[1]s operates in
* Give the market size with the corresponding year
* Give the market growth rate with the corresponding year range

### Direct Competitors
* List direct competitor names
* List their specific competing products
* List their market positioning

### Competitive Advantages
* List unique technical capabilities
* List proven advantages

### Market Challenges
* List specific, verifiable challenges

2. Every bullet must be a specific, verifiable fact
3. Bullet points only, no prose paragraphs
4. Never write phrases like "no information found" or "data not available"
5. Provide only the briefing content, no explanations.`, rc.Company, rc.Industry)

	case domain.CategoryFinancial:
		return fmt.Sprintf(`Generate a financial briefing for %[1]s, a company in the %[2]s industry.
Key requirements:
1. Structure the briefing under exactly these headings with bullet points:

### Funding & Investment
* Total funding raised with dates
* Each funding round with its date
* List participating investors by name

### Revenue Model
* If applicable, state how the product/service is priced

2. Include specific figures wherever possible
3. Bullet points only, no prose paragraphs
4. Never write phrases like "no information found" or "data not available"
5. Never record the same funding round twice; merge rounds announced in the same month into one
6. Never give funding amounts as ranges; settle on a single figure from the available information
7. Provide only the briefing content, no explanations or commentary.`, rc.Company, rc.Industry)

	case domain.CategoryRevenue:
		return fmt.Sprintf(`Generate a revenue-mix briefing for %[1]s covering how revenue splits across its lines of business, for a company in the %[2]s industry.

Key requirements:
1. Structure the briefing under exactly these headings with bullet points:

### Revenue Composition
* List revenue by business segment or product line with its share of total revenue
* Note revenue trends per segment (yearly or quarterly) where available

### Latest Earnings Summary
* Cite the core revenue figures disclosed in the most recent financial report
* Include total revenue and year-over-year growth
* Include regional revenue split if applicable

2. Include specific figures and dates wherever possible
3. Bullet points only, no prose paragraphs
4. Never write phrases like "no information found" or "data not available"
5. Never give revenue as ranges; settle on a single figure from the available information
6. Provide only the briefing content, no explanations or commentary.`, rc.Company, rc.Industry)
	}

	return fmt.Sprintf("Write a focused, insightful research briefing for %s in the %s industry based on the provided documents.", rc.Company, rc.Industry)
}

// BriefingPrompt assembles the full prompt for one category from the template
// and the selected document blocks.
func BriefingPrompt(cat domain.Category, rc domain.ResearchContext, blocks []string) string {
	return fmt.Sprintf(`%s
Analyze the following documents, extract the key information, and output only the research briefing without explanations or commentary:
%s%s%s
`, BriefingTemplate(cat, rc), Separator, strings.Join(blocks, Separator), Separator)
}

// CompileSystemPrompt primes the backend for the merge pass.
const CompileSystemPrompt = "You are a professional report editor who merges multiple research briefings into a well-structured, comprehensive company research report."

// CompilePrompt renders the single-shot merge instruction over the combined
// briefing text.
func CompilePrompt(rc domain.ResearchContext, combined string) string {
	return fmt.Sprintf(`You are writing a comprehensive research report about %[1]s.

Here are the research briefings collected so far:
%[2]s

Based on this content, write a complete and focused research report. The company operates in the %[3]s industry.

Writing requirements:
1. Merge all sections into one coherent narrative with no repetition
2. Preserve the important information from every section
3. Organize the content logically and remove transitional or commentary language
4. Use clear section headings and structure

Follow this document structure exactly:

%[4]s

## Company Overview
[company content, optionally with ### subsections]

## Industry Overview
[industry content, optionally with ### subsections]

## Financial Overview
[financial content, optionally with ### subsections]

## Revenue Mix Overview
[revenue-mix content, optionally with ### subsections]

Output the full report in clean Markdown without any explanations or commentary.
`, rc.Company, combined, rc.Industry, domain.ReportTitle(rc.Company))
}

// NormalizeSystemPrompt primes the backend for the cleanup pass.
const NormalizeSystemPrompt = "You are a professional Markdown formatting expert who unifies document structure and keeps formatting clean, consistent, and canonical."

// NormalizePrompt renders the streaming cleanup instruction over the compiled
// report.
func NormalizePrompt(rc domain.ResearchContext, content string) string {
	return fmt.Sprintf(`You are a professional briefing editor. You will receive a report about %[1]s.
Current report content:
%[2]s

Process the report as follows:

1. Remove redundant or repeated information
2. Remove information unrelated to %[1]s
3. Remove sections that are hollow or carry no substantive information
4. Remove all meta-commentary (sentences like "here is the news...")

Follow this document structure exactly:

## Company Overview
[company content with ### subsections]

## Industry Overview
[industry content with ### subsections]

## Financial Overview
[financial content with ### subsections]

## Revenue Mix Overview
[revenue-mix content with ### subsections]

## References
[the references as provided -- keep their formatting untouched]

Critical rules:
1. The document must begin with the heading "%[3]s"
2. Only these level-2 (##) headings are allowed, in this order and format:
   - ## Company Overview
   - ## Industry Overview
   - ## Financial Overview
   - ## Revenue Mix Overview
   - ## References
3. No other level-2 (##) heading is allowed
4. Inside the Company/Industry/Financial/Revenue Mix Overview sections, only level-3 (###) headings may be used for subsections
5. Code fences are forbidden
6. Never leave more than one blank line between sections
7. All bullet points use "*"
8. Leave one blank line before and after every section or list
9. Never change the formatting of the References section content
10. In the References section, never display full raw link addresses. For each link, derive the page's title or most representative name (for example from the link path or known site), then cite it with Markdown syntax [title text](link address).
    Wrong: https://example.com/blog/2025/04/deep-dive-xyz
    Right: [Deep dive: is XYZ worth buying after the pullback?](https://example.com/blog/2025/04/deep-dive-xyz)

Return the cleaned report in perfect Markdown, with no explanations or notes attached.
`, rc.Company, content, domain.ReportTitle(rc.Company))
}
