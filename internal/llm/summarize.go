package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/martin/startup-applier/internal/types"
)

// summaryResult is the JSON shape requested from the model.
type summaryResult struct {
	AboutSummary string `json:"about_summary"`
	RoleSummary  string `json:"role_summary"`
}

const summaryPromptTemplate = `Summarize this job posting for a human reviewer deciding whether to apply.

COMPANY: %s
WHAT THEY DO: %s

ROLE: %s
DESCRIPTION: %s
REQUIREMENTS: %s

Return JSON with exactly these keys:
{
  "about_summary": "1-2 sentences: what the company does and why it matters",
  "role_summary": "1-2 sentences: what this role involves and the key requirements"
}`

// Summarize produces short reviewer-facing summaries of the company and role.
func (g *Generator) Summarize(ctx context.Context, job types.Job) (aboutSummary, roleSummary string, err error) {
	prompt := fmt.Sprintf(summaryPromptTemplate,
		job.Company.Name,
		truncate(job.Company.Description, 600),
		job.Title,
		truncate(job.Description, 800),
		truncate(job.Requirements, 600),
	)

	raw, err := g.client.GenerateJSON(ctx, prompt)
	if err != nil {
		return "", "", fmt.Errorf("failed to generate summaries: %w", err)
	}

	var result summaryResult
	if err := json.Unmarshal([]byte(raw), &result); err != nil {
		return "", "", fmt.Errorf("failed to parse summary JSON: %w", err)
	}
	return strings.TrimSpace(result.AboutSummary), strings.TrimSpace(result.RoleSummary), nil
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
