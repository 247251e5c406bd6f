package domain

import (
	"fmt"
	"strings"
)

// SectionHeadings is the exact ordered set of level-2 headings the final
// report must contain, and nothing else at that level.
var SectionHeadings = []string{
	"## Company Overview",
	"## Industry Overview",
	"## Financial Overview",
	"## Revenue Mix Overview",
	"## References",
}

// ReportTitle renders the mandatory level-1 heading for a company.
func ReportTitle(company string) string {
	return fmt.Sprintf("# %s Research Report", company)
}

// CheckReportStructure verifies the canonical heading contract: exactly one
// level-1 heading containing the company name, followed by the five required
// level-2 headings in order with no other level-2 heading present.
func CheckReportStructure(report, company string) error {
	var h1 []string
	var h2 []string
	for _, line := range strings.Split(report, "\n") {
		trimmed := strings.TrimRight(line, " \t")
		switch {
		case strings.HasPrefix(trimmed, "## "):
			h2 = append(h2, trimmed)
		case strings.HasPrefix(trimmed, "# "):
			h1 = append(h1, trimmed)
		}
	}

	if len(h1) != 1 {
		return fmt.Errorf("expected exactly one level-1 heading, found %d", len(h1))
	}
	if !strings.Contains(h1[0], company) {
		return fmt.Errorf("title %q does not mention company %q", h1[0], company)
	}

	if len(h2) != len(SectionHeadings) {
		return fmt.Errorf("expected %d level-2 headings, found %d", len(SectionHeadings), len(h2))
	}
	for i, want := range SectionHeadings {
		if h2[i] != want {
			return fmt.Errorf("level-2 heading %d: got %q, want %q", i+1, h2[i], want)
		}
	}

	return nil
}
