package markdown

import "strings"

const (
	h1Prefix          = "# "
	assessmentHeading = "## Assessment"
)

// FirstHeading returns the text of the first level-1 heading outside fenced
// code, or fallback when there is none.
func FirstHeading(text, fallback string) string {
	var fences fenceScanner
	for _, line := range splitLines(text) {
		if !fences.step(line) && strings.HasPrefix(line, h1Prefix) {
			return strings.TrimSpace(line[len(h1Prefix):])
		}
	}
	return fallback
}

// StripLeadingH1 removes the first non-blank line when it is a level-1
// heading. Leading newlines are dropped from the result.
func StripLeadingH1(text string) string {
	lines := splitLines(text)
	idx := 0
	for idx < len(lines) && strings.TrimSpace(lines[idx]) == "" {
		idx++
	}
	if idx < len(lines) && strings.HasPrefix(lines[idx], h1Prefix) {
		lines = append(lines[:idx:idx], lines[idx+1:]...)
	}
	return strings.TrimLeft(strings.Join(lines, "\n"), "\n")
}

// MergeLesson joins the overview and assessment bodies under a synthesized
// "## Assessment" heading. Each document loses its leading title. The heading
// is emitted even when the assessment body is empty, the result never starts
// with a blank line, and it always ends with the assessment body followed by
// a newline.
func MergeLesson(overview, assessment string) string {
	overviewBody := strings.TrimSpace(StripLeadingH1(overview))
	assessmentBody := strings.TrimSpace(StripLeadingH1(assessment))

	var b strings.Builder
	b.Grow(len(overviewBody) + len(assessmentBody) + len(assessmentHeading) + 6)
	if overviewBody != "" {
		b.WriteString(overviewBody)
		b.WriteString("\n\n")
	}
	b.WriteString(assessmentHeading)
	b.WriteString("\n\n")
	b.WriteString(assessmentBody)
	b.WriteString("\n")
	return b.String()
}
