package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// Candidate header labels per section, tried in order. The first label that
// yields an acceptable block wins; later labels are not consulted.
var (
	companyDescriptionLabels = []string{
		"About", "About the company", "About us", "Who we are", "What we do",
	}
	roleDescriptionLabels = []string{
		"About the role", "What you'll do", "The role", "Role description",
		"Job description", "Description", "Responsibilities",
	}
	requirementLabels = []string{
		"Requirements", "Qualifications", "What we're looking for",
		"You should have", "What you bring", "Skills", "Minimum qualifications",
	}
	cultureLabels = []string{
		"Culture", "Values", "Who you are", "You are",
		"Ideal candidate", "What we offer", "Benefits", "Perks",
	}
)

// boundaryLine matches a line that starts the next section: the fixed
// vocabulary of header strings that terminate a captured block.
var boundaryLine = regexp.MustCompile(
	`(?i)^\s*(?:about|requirements|qualifications|culture|values|benefits|perks|what you|the role|who you|skills|responsibilities|apply|already)\b`)

const (
	minSectionLength = 10
	maxSectionLength = 1000
)

// ExtractSection recovers the text block following the first matching header
// label. Two shapes are tried per label: the header alone on its line with
// content running to the next boundary line, and the header followed by an
// inline colon. Returns the raw block (truncated, not normalized), or "".
func ExtractSection(pageText string, labels []string) string {
	lines := strings.Split(pageText, "\n")

	for _, label := range labels {
		headerOnly := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `\s*$`)
		headerInline := regexp.MustCompile(`(?i)^\s*` + regexp.QuoteMeta(label) + `\s*:\s*(.+)$`)

		for i, line := range lines {
			var captured []string

			if headerOnly.MatchString(line) {
				captured = collectUntilBoundary(lines[i+1:])
			} else if m := headerInline.FindStringSubmatch(line); m != nil {
				captured = append([]string{m[1]}, collectUntilBoundary(lines[i+1:])...)
			} else {
				continue
			}

			text := strings.TrimSpace(strings.Join(captured, "\n"))
			if len(text) > minSectionLength {
				if len(text) > maxSectionLength {
					cut := maxSectionLength
					// Back off to a rune start so the cut never splits
					// a multibyte character.
					for cut > 0 && !utf8.RuneStart(text[cut]) {
						cut--
					}
					text = text[:cut]
				}
				return text
			}
		}
	}
	return ""
}

// collectUntilBoundary gathers lines until one matches the boundary
// vocabulary or the document ends.
func collectUntilBoundary(lines []string) []string {
	var out []string
	for _, line := range lines {
		if boundaryLine.MatchString(line) {
			break
		}
		out = append(out, line)
	}
	return out
}
